package engine

import "testing"

func TestFixedPointFromFloat(t *testing.T) {
	cases := []struct {
		input      float32
		value      int8
		fractional int16
	}{
		{0, 0, 0},
		{0.5, 0, 180},
		{1.25, 1, 90},
		{2, 2, 0},
		{11.75, 11, 270},
		{-3, -3, 0},
	}
	for _, c := range cases {
		got := FromFloat(c.input)
		if got.IntegerPart() != c.value {
			t.Errorf("Expected integer part %d for %v, got %d", c.value, c.input, got.IntegerPart())
		}
		if got.Fractional() != c.fractional {
			t.Errorf("Expected fractional part %d for %v, got %d", c.fractional, c.input, got.Fractional())
		}
	}
}

func TestFixedPointZeroPlusOne(t *testing.T) {
	zero := NewFixedPoint(0, 0)
	one := NewFixedPoint(1, 0)

	sum := zero.Add(one)
	if sum.IntegerPart() != 1 {
		t.Errorf("Expected integer part 1, got %d", sum.IntegerPart())
	}
	if sum.Fractional() != 0 {
		t.Errorf("Expected fractional part 0, got %d", sum.Fractional())
	}
}

func TestFixedPointRepeatedSmallAddition(t *testing.T) {
	sum := NewFixedPoint(0, 0)
	step := NewFixedPoint(0, 1)

	for i := 0; i < 732; i++ {
		sum = sum.Add(step)
	}

	if sum.IntegerPart() != 2 {
		t.Errorf("Expected integer part 2, got %d", sum.IntegerPart())
	}
	if sum.Fractional() != 12 {
		t.Errorf("Expected fractional part 12, got %d", sum.Fractional())
	}
}

func TestFixedPointFractionalOverflowOnAddition(t *testing.T) {
	a := NewFixedPoint(3, 180)
	b := NewFixedPoint(4, 240)
	sum := a.Add(b)

	if sum.IntegerPart() != 8 {
		t.Errorf("Expected integer part 8, got %d", sum.IntegerPart())
	}
	if sum.Fractional() != 60 {
		t.Errorf("Expected fractional part 60, got %d", sum.Fractional())
	}
}

func TestFixedPointRepeatedSmallSubtraction(t *testing.T) {
	sum := NewFixedPoint(0, 0)
	step := NewFixedPoint(0, 1)

	for i := 0; i < 732; i++ {
		sum = sum.Sub(step)
	}

	if sum.IntegerPart() != -2 {
		t.Errorf("Expected integer part -2, got %d", sum.IntegerPart())
	}
	if sum.Fractional() != -12 {
		t.Errorf("Expected fractional part -12, got %d", sum.Fractional())
	}
}

func TestFixedPointFractionalUnderflowOnSubtraction(t *testing.T) {
	a := NewFixedPoint(3, 180)
	b := NewFixedPoint(4, 240)
	diff := a.Sub(b)

	if diff.IntegerPart() != -1 {
		t.Errorf("Expected integer part -1, got %d", diff.IntegerPart())
	}
	if diff.Fractional() != -60 {
		t.Errorf("Expected fractional part -60, got %d", diff.Fractional())
	}
}

func TestFixedPointDidOverflow(t *testing.T) {
	start := NewFixedPoint(0, 0)
	half := NewFixedPoint(0, 180)

	addHalf := start.Add(half)
	addFull := start.Add(half).Add(half)
	subHalf := start.Sub(half)
	subFull := start.Sub(half).Sub(half)

	if start.DidOverflow(start) {
		t.Error("Expected no overflow for unchanged value")
	}
	if addHalf.DidOverflow(start) {
		t.Error("Expected no overflow after adding half")
	}
	if !addFull.DidOverflow(start) {
		t.Error("Expected overflow after adding a full unit")
	}
	if subHalf.DidOverflow(start) {
		t.Error("Expected no overflow after subtracting half")
	}
	if !subFull.DidOverflow(start) {
		t.Error("Expected overflow after subtracting a full unit")
	}
}

func TestFixedPointMapToRangeEndpoints(t *testing.T) {
	fromMin := NewFixedPoint(0, 0)
	fromMax := NewFixedPoint(12, 0)

	if got := fromMin.MapToRange(fromMin, fromMax, 0, 160); got != 0 {
		t.Errorf("Expected 0 at range minimum, got %d", got)
	}
	if got := fromMax.MapToRange(fromMin, fromMax, 0, 160); got != 160 {
		t.Errorf("Expected 160 at range maximum, got %d", got)
	}
	if got := NewFixedPoint(6, 0).MapToRange(fromMin, fromMax, 0, 160); got != 80 {
		t.Errorf("Expected 80 at range middle, got %d", got)
	}
}

func TestFixedPointMapToRangeOutsideInputRange(t *testing.T) {
	fromMin := NewFixedPoint(0, 0)
	fromMax := NewFixedPoint(1, 0)

	if got := NewFixedPoint(0, -180).MapToRange(fromMin, fromMax, 0, 100); got != -50 {
		t.Errorf("Expected -50 below range minimum, got %d", got)
	}
	if got := NewFixedPoint(1, 180).MapToRange(fromMin, fromMax, 0, 100); got != 150 {
		t.Errorf("Expected 150 above range maximum, got %d", got)
	}
}

func TestFixedPointMapToRangeOverSmallRange(t *testing.T) {
	fromMin := NewFixedPoint(0, 0)
	fromMax := NewFixedPoint(100, 0)

	cases := []struct {
		input    int8
		expected int16
	}{
		{-10, -1},
		{0, 0},
		{50, 5},
		{100, 10},
		{110, 11},
	}
	for _, c := range cases {
		if got := NewFixedPoint(c.input, 0).MapToRange(fromMin, fromMax, 0, 10); got != c.expected {
			t.Errorf("Expected %d for input %d, got %d", c.expected, c.input, got)
		}
	}
}

func TestFixedPointMapToRangeWithNonZeroInputMin(t *testing.T) {
	fromMin := NewFixedPoint(10, 0)
	fromMax := NewFixedPoint(110, 0)

	if got := NewFixedPoint(10, 0).MapToRange(fromMin, fromMax, 100, 1000); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}
	if got := NewFixedPoint(60, 0).MapToRange(fromMin, fromMax, 100, 1000); got != 550 {
		t.Errorf("Expected 550, got %d", got)
	}
	if got := NewFixedPoint(110, 0).MapToRange(fromMin, fromMax, 100, 1000); got != 1000 {
		t.Errorf("Expected 1000, got %d", got)
	}
}
