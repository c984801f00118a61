package engine

// FixedPoint is a fixed point number tailored to a 60fps simulation.
// The fractional part is scaled by 1/360 so that walker speeds divide
// a grid square into a whole number of ticks. A bit-aligned fraction
// would allow shifting instead of division, but 360 is what the tick
// rates need.
type FixedPoint struct {
	value      int8
	fractional int16
}

// NewFixedPoint creates a fixed point value from its components.
// The fractional part should be in the range [-359..359]. Note that
// NewFixedPoint(1, -180) and NewFixedPoint(0, 180) both represent 0.5.
func NewFixedPoint(value int8, fractional int16) FixedPoint {
	return FixedPoint{value: value, fractional: fractional}
}

// FromFloat converts a float to fixed point, truncating the fraction
// to 360ths. Negative fractions lose their sign; positions never go
// negative, so only whole negative values convert exactly.
func FromFloat(value float32) FixedPoint {
	integral := int8(value)
	remainder := value - float32(integral)
	if remainder > 0 {
		return NewFixedPoint(integral, 0).Add(NewFixedPoint(0, int16(remainder*360)))
	}
	return NewFixedPoint(integral, 0).Sub(NewFixedPoint(0, int16(remainder*360)))
}

// Add returns the sum of two fixed point values, renormalizing the
// fractional part into range.
func (f FixedPoint) Add(other FixedPoint) FixedPoint {
	fractional := f.fractional + other.fractional
	value := f.value + other.value
	if fractional >= 360 {
		value++
		fractional -= 360
	}
	return FixedPoint{value: value, fractional: fractional}
}

// Sub returns the difference of two fixed point values, renormalizing
// the fractional part into range.
func (f FixedPoint) Sub(other FixedPoint) FixedPoint {
	fractional := f.fractional - other.fractional
	value := f.value - other.value
	if fractional <= -360 {
		value--
		fractional += 360
	}
	return FixedPoint{value: value, fractional: fractional}
}

// DidOverflow reports whether the integer part changed between a prior
// value and this one. Walkers use this to detect entering a new square.
func (f FixedPoint) DidOverflow(prior FixedPoint) bool {
	return f.value != prior.value
}

// IntegerPart returns the integer component. 1.5 -> 1, -1.5 -> -1.
func (f FixedPoint) IntegerPart() int8 {
	return f.value
}

// Fractional returns the fractional component in 360ths.
func (f FixedPoint) Fractional() int16 {
	return f.fractional
}

// MapToRange maps the value from the range [fromMin, fromMax] onto
// [toMin, toMax]. Inputs outside the source range map proportionally
// outside the target range. Everything is scaled into 360ths, which
// needs 9 extra bits, so the arithmetic runs in int32.
func (f FixedPoint) MapToRange(fromMin, fromMax FixedPoint, toMin, toMax int16) int16 {
	toDelta := int32(toMax - toMin)
	fromMinScaled := int32(fromMin.fractional) + int32(fromMin.value)*360
	fromMaxScaled := int32(fromMax.fractional) + int32(fromMax.value)*360
	fromDeltaScaled := fromMaxScaled - fromMinScaled
	selfScaled := int32(f.fractional) + int32(f.value)*360

	return int16(int32(toMin) + ((selfScaled-fromMinScaled)*toDelta)/fromDeltaScaled)
}
