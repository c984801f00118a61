package engine

// ArrowStock is the stock of placeable arrows, indexed by direction.
type ArrowStock [4]uint8

// NewArrowStock creates a stock with the given per-direction counts.
func NewArrowStock(up, down, left, right uint8) ArrowStock {
	var stock ArrowStock
	stock[DirUp] = up
	stock[DirDown] = down
	stock[DirLeft] = left
	stock[DirRight] = right
	return stock
}

// Count returns the number of remaining arrows for a direction.
func (s *ArrowStock) Count(d Direction) uint8 {
	return s[d]
}

// Take consumes one arrow for the direction, returning false when the
// stock is exhausted.
func (s *ArrowStock) Take(d Direction) bool {
	if s[d] == 0 {
		return false
	}
	s[d]--
	return true
}

// Return puts one arrow for the direction back into stock.
func (s *ArrowStock) Return(d Direction) {
	s[d]++
}
