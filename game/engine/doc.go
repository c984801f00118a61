// Package engine implements the deterministic core of Shoko Rocket, a
// ChuChu Rocket style grid puzzle.
//
// The engine simulates a 12x9 toroidal grid at a fixed 60 ticks per
// second. Mice and cats walk the grid, are redirected by arrows and
// walls, fall into holes and board rockets. All positions use a fixed
// point representation with a 1/360 fractional unit, so a mouse crosses
// a square in exactly 60 ticks and a cat in 90. The simulation is fully
// deterministic; no floating point is used anywhere.
//
// Core Types:
//
// World holds a complete puzzle: the packed 199 byte map data, the tile
// grid and the live walkers. Tick advances the world one step and
// reports whether the puzzle was won or lost. Worlds are built either
// empty via NewWorld or from packed map bytes via LoadWorld.
//
// Usage:
//
//	world, err := engine.LoadWorld(mapData)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	world.SetArrow(4, 4, engine.TileUp)
//	for {
//		if change := world.Tick(); change != engine.NoChange {
//			break
//		}
//	}
//
// The package has no dependencies and is safe to embed anywhere a
// deterministic replay of a puzzle is needed. A World is not safe for
// concurrent use; callers serialize access.
package engine
