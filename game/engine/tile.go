package engine

// TileType represents the contents of a grid square.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileRocket
	TileHole
	TileUp
	TileUpHalf
	TileDown
	TileDownHalf
	TileLeft
	TileLeftHalf
	TileRight
	TileRightHalf
)

// Diminish shrinks an arrow one step. A full arrow becomes a half
// arrow, a half arrow becomes empty. Other tile types are unaffected.
func (t TileType) Diminish() TileType {
	switch t {
	case TileUp:
		return TileUpHalf
	case TileDown:
		return TileDownHalf
	case TileLeft:
		return TileLeftHalf
	case TileRight:
		return TileRightHalf
	case TileUpHalf, TileDownHalf, TileLeftHalf, TileRightHalf:
		return TileEmpty
	default:
		return t
	}
}

// Direction returns the direction an arrow tile points in. The second
// return is false for non-arrow tiles.
func (t TileType) Direction() (Direction, bool) {
	switch t {
	case TileUp, TileUpHalf:
		return DirUp, true
	case TileDown, TileDownHalf:
		return DirDown, true
	case TileLeft, TileLeftHalf:
		return DirLeft, true
	case TileRight, TileRightHalf:
		return DirRight, true
	default:
		return DirUp, false
	}
}

// IsArrow reports whether the tile is a full or half arrow.
func (t TileType) IsArrow() bool {
	_, ok := t.Direction()
	return ok
}

// IsFullArrow reports whether the tile is a full strength arrow.
func (t TileType) IsFullArrow() bool {
	switch t {
	case TileUp, TileDown, TileLeft, TileRight:
		return true
	default:
		return false
	}
}

// ArrowTile returns the full arrow tile pointing in the given
// direction.
func ArrowTile(d Direction) TileType {
	switch d {
	case DirUp:
		return TileUp
	case DirDown:
		return TileDown
	case DirLeft:
		return TileLeft
	default:
		return TileRight
	}
}

func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileRocket:
		return "rocket"
	case TileHole:
		return "hole"
	case TileUp:
		return "arrow-up"
	case TileUpHalf:
		return "arrow-up-half"
	case TileDown:
		return "arrow-down"
	case TileDownHalf:
		return "arrow-down-half"
	case TileLeft:
		return "arrow-left"
	case TileLeftHalf:
		return "arrow-left-half"
	case TileRight:
		return "arrow-right"
	case TileRightHalf:
		return "arrow-right-half"
	default:
		return "unknown"
	}
}
