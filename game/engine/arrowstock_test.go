package engine

import "testing"

func TestArrowStockTakeAndReturn(t *testing.T) {
	stock := NewArrowStock(0, 0, 2, 0)

	if stock.Count(DirLeft) != 2 {
		t.Errorf("Expected 2 left arrows, got %d", stock.Count(DirLeft))
	}
	if stock.Count(DirUp) != 0 || stock.Count(DirDown) != 0 || stock.Count(DirRight) != 0 {
		t.Error("Expected other directions to be empty")
	}

	if !stock.Take(DirLeft) {
		t.Error("Expected to take a left arrow")
	}
	if !stock.Take(DirLeft) {
		t.Error("Expected to take a second left arrow")
	}
	if stock.Take(DirLeft) {
		t.Error("Expected the stock to be exhausted")
	}

	stock.Return(DirLeft)
	if stock.Count(DirLeft) != 1 {
		t.Errorf("Expected 1 left arrow after return, got %d", stock.Count(DirLeft))
	}

	if stock.Take(DirUp) {
		t.Error("Expected taking from an empty direction to fail")
	}
}
