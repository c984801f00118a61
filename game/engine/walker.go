package engine

import "fmt"

// WalkerType determines how fast a walker moves.
type WalkerType uint8

const (
	WalkerMouse WalkerType = iota
	WalkerCat
)

func (t WalkerType) String() string {
	switch t {
	case WalkerMouse:
		return "mouse"
	default:
		return "cat"
	}
}

// WalkerState is the overall state of a walker.
type WalkerState uint8

const (
	WalkerAlive WalkerState = iota
	WalkerDead
	WalkerRescued
)

func (s WalkerState) String() string {
	switch s {
	case WalkerAlive:
		return "alive"
	case WalkerDead:
		return "dead"
	default:
		return "rescued"
	}
}

// WalkResult indicates significant positions reached in a walk cycle.
type WalkResult uint8

const (
	WalkNone WalkResult = iota
	WalkNewSquare
)

// Mice cross a square in 60 ticks, cats in 90.
var (
	mouseSpeed = NewFixedPoint(0, 6)
	catSpeed   = NewFixedPoint(0, 4)
)

// Walker is a cat or a mouse moving across the grid.
type Walker struct {
	x         FixedPoint
	y         FixedPoint
	direction Direction
	kind      WalkerType
	state     WalkerState
}

// NewWalker creates an alive walker at whole grid coordinates.
func NewWalker(x, y int8, direction Direction, kind WalkerType) Walker {
	return Walker{
		x:         NewFixedPoint(x, 0),
		y:         NewFixedPoint(y, 0),
		direction: direction,
		kind:      kind,
		state:     WalkerAlive,
	}
}

// Walk advances the position of the walker one tick, wrapping at the
// grid edges. It returns WalkNewSquare when the integer part of the
// position changed.
func (w *Walker) Walk() WalkResult {
	speed := mouseSpeed
	if w.kind == WalkerCat {
		speed = catSpeed
	}

	newSquare := false
	switch w.direction {
	case DirUp:
		start := w.y
		w.y = w.y.Sub(speed)
		newSquare = w.y.DidOverflow(start)
	case DirDown:
		start := w.y
		w.y = w.y.Add(speed)
		newSquare = w.y.DidOverflow(start)
	case DirLeft:
		start := w.x
		w.x = w.x.Sub(speed)
		newSquare = w.x.DidOverflow(start)
	case DirRight:
		start := w.x
		w.x = w.x.Add(speed)
		newSquare = w.x.DidOverflow(start)
	}

	// Wrap onto the toroidal grid
	if w.x.IntegerPart() < 0 {
		w.x = w.x.Add(NewFixedPoint(WorldWidth, 0))
	} else if w.x.IntegerPart() >= WorldWidth {
		w.x = w.x.Sub(NewFixedPoint(WorldWidth, 0))
	}
	if w.y.IntegerPart() < 0 {
		w.y = w.y.Add(NewFixedPoint(WorldHeight, 0))
	} else if w.y.IntegerPart() >= WorldHeight {
		w.y = w.y.Sub(NewFixedPoint(WorldHeight, 0))
	}

	if newSquare {
		return WalkNewSquare
	}
	return WalkNone
}

// Type returns the type of walker.
func (w *Walker) Type() WalkerType {
	return w.kind
}

// X returns the x-coordinate of the walker.
func (w *Walker) X() FixedPoint {
	return w.x
}

// Y returns the y-coordinate of the walker.
func (w *Walker) Y() FixedPoint {
	return w.y
}

// Direction returns the walk direction of the walker.
func (w *Walker) Direction() Direction {
	return w.direction
}

// SetDirection sets the walk direction of the walker.
func (w *Walker) SetDirection(direction Direction) {
	w.direction = direction
}

// State returns the state of the walker.
func (w *Walker) State() WalkerState {
	return w.state
}

// Rescue marks the walker rescued. Only a live walker can be rescued.
func (w *Walker) Rescue() {
	if w.state != WalkerAlive {
		panic(fmt.Sprintf("rescue of %s walker", w.state))
	}
	w.state = WalkerRescued
}

// Kill marks the walker dead. Only a live walker can be killed.
func (w *Walker) Kill() {
	if w.state != WalkerAlive {
		panic(fmt.Sprintf("kill of %s walker", w.state))
	}
	w.state = WalkerDead
}
