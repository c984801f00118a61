package engine

// WorldWidth is the width of the world in squares.
const WorldWidth = 12

// WorldHeight is the height of the world in squares.
const WorldHeight = 9

// maxWalkers bounds the walker registries, if all squares were filled
// with walkers.
const maxWalkers = WorldWidth * WorldHeight

// maxTiles is the number of squares in the world.
const maxTiles = WorldWidth * WorldHeight

// World is the entire state of a 12x9 puzzle. Each square controls its
// top and left walls, and can hold one of a cat, mouse, rocket or hole.
// The packed form is described in mapdata.go; the runtime keeps the
// packed bytes alongside unpacked walker and tile representations.
type World struct {
	data   [MapDataSize]byte
	mice   []Walker
	cats   []Walker
	tiles  [maxTiles]TileType
	name   string
	author string
}

// NewWorld creates an empty world with walls around the edge.
func NewWorld() *World {
	w := &World{
		mice: make([]Walker, 0, maxWalkers),
		cats: make([]Walker, 0, maxWalkers),
	}

	// Walls along the top and left edges, which via wrapping also
	// close the bottom and right edges
	for x := 0; x < WorldWidth; x++ {
		w.SetWall(x, 0, DirUp, true)
	}
	for y := 0; y < WorldHeight; y++ {
		w.SetWall(0, y, DirLeft, true)
	}

	return w
}

// wallIndexAndMask returns the index into the wall block of a
// particular wall and the mask required to get or set it. Down walls
// are stored as the top wall of the square below; right walls as the
// left wall of the square to the right.
func wallIndexAndMask(x, y int, direction Direction) (int, byte) {
	if x < 0 || x >= WorldWidth || y < 0 || y >= WorldHeight {
		panic("wall coordinate out of range")
	}

	var eX, eY int
	var mask byte
	switch direction {
	case DirUp:
		eX, eY, mask = x, y, topWallMask[x&0x03]
	case DirDown:
		eX, eY, mask = x, (y+1)%WorldHeight, topWallMask[x&0x03]
	case DirLeft:
		eX, eY, mask = x, y, leftWallMask[x&0x03]
	case DirRight:
		eX, eY, mask = (x+1)%WorldWidth, y, leftWallMask[(x+1)&0x03]
	}

	return (eY*WorldWidth + eX) / 4, mask
}

// SetWall sets a wall present or absent. Coordinates must be in range
// 0-11 and 0-8.
func (w *World) SetWall(x, y int, direction Direction, present bool) {
	index, mask := wallIndexAndMask(x, y, direction)
	if present {
		w.data[wallBlockOffset+index] |= mask
	} else {
		w.data[wallBlockOffset+index] &^= mask
	}
}

// Wall reports the presence of a wall in the specified position and
// direction.
func (w *World) Wall(x, y int, direction Direction) bool {
	index, mask := wallIndexAndMask(x, y, direction)
	return w.data[wallBlockOffset+index]&mask == mask
}

// CreateWalker adds a walker to the world. It returns false if the
// square already holds an entity.
func (w *World) CreateWalker(x, y int, direction Direction, kind WalkerType) bool {
	if x < 0 || x >= WorldWidth || y < 0 || y >= WorldHeight {
		panic("walker coordinate out of range")
	}

	entity := &w.data[entityBlockOffset+y*WorldWidth+x]
	if *entity&entityTypeMask != entityTypeEmpty {
		return false
	}

	walker := NewWalker(int8(x), int8(y), direction, kind)
	switch kind {
	case WalkerMouse:
		w.mice = append(w.mice, walker)
	case WalkerCat:
		w.cats = append(w.cats, walker)
	}

	// Record the walker in the packed data, preserving any arrow bits
	*entity &= arrowPresentMask | arrowDirectionMask
	*entity |= entityDirectionBits(direction) | entityTypeBits(kind)

	return true
}

// SetArrow places an arrow tile at the specified location.
func (w *World) SetArrow(x, y int, tile TileType) {
	w.SetTile(x, y, tile)
}

// SetTile sets the tile at the specified location. No occupancy
// checking is performed.
func (w *World) SetTile(x, y int, tile TileType) {
	if x < 0 || x >= WorldWidth || y < 0 || y >= WorldHeight {
		panic("tile coordinate out of range")
	}
	w.tiles[y*WorldWidth+x] = tile
}

// Tile returns the tile at the specified location.
func (w *World) Tile(x, y int) TileType {
	if x < 0 || x >= WorldWidth || y < 0 || y >= WorldHeight {
		panic("tile coordinate out of range")
	}
	return w.tiles[y*WorldWidth+x]
}

// Arrow returns the arrow tile at the specified location.
func (w *World) Arrow(x, y int) TileType {
	return w.Tile(x, y)
}

// Mice returns a snapshot of the live mice.
func (w *World) Mice() []Walker {
	out := make([]Walker, len(w.mice))
	copy(out, w.mice)
	return out
}

// Cats returns a snapshot of the live cats.
func (w *World) Cats() []Walker {
	out := make([]Walker, len(w.cats))
	copy(out, w.cats)
	return out
}

// Tick advances the simulation one step.
//   - Mice move 6 units, cats 4 units
//   - On reaching a new square, walkers check holes/rockets: holes
//     kill everything, rockets rescue mice, cats destroy rockets
//   - Then arrows: walkers are turned to the arrow direction; a cat
//     turned 180 degrees diminishes the arrow
//   - Then walls
//   - A dead mouse or rescued cat loses the puzzle; all mice rescued
//     wins it
//
// Dead and rescued walkers are pruned before Tick returns.
func (w *World) Tick() WorldStateChange {
	change := NoChange

	for i := range w.mice {
		w.stepWalker(&w.mice[i])
	}
	for i := range w.cats {
		w.stepWalker(&w.cats[i])
	}

	for i := range w.mice {
		if w.mice[i].State() == WalkerDead {
			change = Lose
		}
	}
	for i := range w.cats {
		if w.cats[i].State() == WalkerRescued {
			change = Lose
		}
	}

	if len(w.mice) > 0 {
		allRescued := true
		for i := range w.mice {
			if w.mice[i].State() != WalkerRescued {
				allRescued = false
				break
			}
		}
		if allRescued {
			change = Win
		}
	}

	w.mice = retainAlive(w.mice)
	w.cats = retainAlive(w.cats)

	return change
}

func (w *World) stepWalker(walker *Walker) {
	if walker.Walk() != WalkNewSquare {
		return
	}
	w.checkRocketsAndHoles(walker)
	w.checkArrows(walker)
	w.checkWalls(walker)
}

// checkWalls redirects a walker blocked by walls. The first clear
// direction out of straight ahead, right, left, reverse is used. A
// walker boxed in on all sides keeps its direction, which level design
// prevents in practice.
func (w *World) checkWalls(walker *Walker) {
	x := int(walker.X().IntegerPart())
	y := int(walker.Y().IntegerPart())
	direction := walker.Direction()

	candidates := [4]Direction{
		direction,
		direction.TurnRight(),
		direction.TurnLeft(),
		direction.TurnAround(),
	}
	for _, candidate := range candidates {
		if !w.Wall(x, y, candidate) {
			walker.SetDirection(candidate)
			break
		}
	}
}

// checkArrows turns a walker to face the arrow it stands on. A cat
// turned 180 degrees diminishes the arrow; mice never do.
func (w *World) checkArrows(walker *Walker) {
	x := int(walker.X().IntegerPart())
	y := int(walker.Y().IntegerPart())

	arrow := w.Tile(x, y)
	direction, ok := arrow.Direction()
	if !ok {
		return
	}

	if walker.Type() == WalkerCat && walker.Direction().TurnAround() == direction {
		w.SetTile(x, y, arrow.Diminish())
	}
	walker.SetDirection(direction)
}

// checkRocketsAndHoles handles a walker arriving on a hole or rocket
// square. Holes kill, rockets rescue. The win/lose consequences are
// evaluated by Tick.
func (w *World) checkRocketsAndHoles(walker *Walker) {
	x := int(walker.X().IntegerPart())
	y := int(walker.Y().IntegerPart())

	switch w.Tile(x, y) {
	case TileHole:
		walker.Kill()
	case TileRocket:
		walker.Rescue()
	}
}

func retainAlive(walkers []Walker) []Walker {
	out := walkers[:0]
	for _, walker := range walkers {
		if walker.State() == WalkerAlive {
			out = append(out, walker)
		}
	}
	return out
}
