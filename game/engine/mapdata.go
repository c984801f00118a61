package engine

import (
	"bytes"
	"fmt"
)

// The packed map layout:
//
//	struct Header_t
//	{
//	  char[32] name;
//	  char[32] author;
//	}
//
// Followed by 27 wall bytes, each packing four squares:
//
//	{
//	  uint8_t: 1 wall_up_0;
//	  uint8_t: 1 wall_left_0;
//	  ...
//	  uint8_t: 1 wall_up_3;
//	  uint8_t: 1 wall_left_3;
//	}
//
// Followed by 108 entity bytes:
//
//	{
//	  uint8_t: 3 entity;          // 0 empty, 1 mouse, 2 cat, 3 rocket, 4 hole
//	  uint8_t: 2 entity_direction; // 0 up, 1 down, 2 left, 3 right
//	  uint8_t: 1 arrow;           // 0 empty, 1 arrow
//	  uint8_t: 2 arrow_direction; // 0 up, 1 down, 2 left, 3 right
//	}
//
// For a total of 64 + 27 + 108 = 199 bytes.
const (
	mapNameSize       = 32
	mapNameOffset     = 0
	mapAuthorSize     = 32
	mapAuthorOffset   = mapNameOffset + mapNameSize
	wallBlockSize     = 27
	wallBlockOffset   = mapAuthorOffset + mapAuthorSize
	entityBlockSize   = WorldWidth * WorldHeight
	entityBlockOffset = wallBlockOffset + wallBlockSize

	// MapDataSize is the size of a packed map in bytes.
	MapDataSize = entityBlockOffset + entityBlockSize
)

// Four walls pack into each byte, interleaving top and left bits.
var (
	leftWallMask = [4]byte{0b00000010, 0b00001000, 0b00100000, 0b10000000}
	topWallMask  = [4]byte{0b00000001, 0b00000100, 0b00010000, 0b01000000}
)

const (
	entityTypeMask      = 0b11100000
	entityDirectionMask = 0b00011000
	arrowPresentMask    = 0b00000100
	arrowDirectionMask  = 0b00000011

	entityTypeEmpty  = 0b00000000
	entityTypeMouse  = 0b00100000
	entityTypeCat    = 0b01000000
	entityTypeRocket = 0b01100000
	entityTypeHole   = 0b10000000

	entityDirectionUp    = 0b00000000
	entityDirectionDown  = 0b00001000
	entityDirectionLeft  = 0b00010000
	entityDirectionRight = 0b00011000

	arrowDirectionUp    = 0b00000000
	arrowDirectionDown  = 0b00000001
	arrowDirectionLeft  = 0b00000010
	arrowDirectionRight = 0b00000011
)

func entityTypeBits(kind WalkerType) byte {
	if kind == WalkerCat {
		return entityTypeCat
	}
	return entityTypeMouse
}

func entityDirectionBits(direction Direction) byte {
	switch direction {
	case DirUp:
		return entityDirectionUp
	case DirDown:
		return entityDirectionDown
	case DirLeft:
		return entityDirectionLeft
	default:
		return entityDirectionRight
	}
}

func entityDirection(b byte) Direction {
	switch b & entityDirectionMask {
	case entityDirectionUp:
		return DirUp
	case entityDirectionDown:
		return DirDown
	case entityDirectionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

func arrowDirection(b byte) Direction {
	switch b & arrowDirectionMask {
	case arrowDirectionUp:
		return DirUp
	case arrowDirectionDown:
		return DirDown
	case arrowDirectionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// LoadWorld deserializes a packed map into a runnable world. Rockets
// and holes become tiles, mice and cats become walkers, and arrow bits
// become full arrow tiles.
func LoadWorld(data []byte) (*World, error) {
	if len(data) != MapDataSize {
		return nil, fmt.Errorf("map data must be %d bytes, got %d", MapDataSize, len(data))
	}

	w := &World{
		mice: make([]Walker, 0, maxWalkers),
		cats: make([]Walker, 0, maxWalkers),
	}
	copy(w.data[:], data)
	w.name = decodeHeaderString(data[mapNameOffset : mapNameOffset+mapNameSize])
	w.author = decodeHeaderString(data[mapAuthorOffset : mapAuthorOffset+mapAuthorSize])

	for y := 0; y < WorldHeight; y++ {
		for x := 0; x < WorldWidth; x++ {
			entity := data[entityBlockOffset+y*WorldWidth+x]

			switch entity & entityTypeMask {
			case entityTypeEmpty:
			case entityTypeMouse:
				w.mice = append(w.mice, NewWalker(int8(x), int8(y), entityDirection(entity), WalkerMouse))
			case entityTypeCat:
				w.cats = append(w.cats, NewWalker(int8(x), int8(y), entityDirection(entity), WalkerCat))
			case entityTypeRocket:
				w.SetTile(x, y, TileRocket)
			case entityTypeHole:
				w.SetTile(x, y, TileHole)
			default:
				return nil, fmt.Errorf("unknown entity type %#02x at %d,%d", entity&entityTypeMask, x, y)
			}

			if entity&arrowPresentMask != 0 {
				if w.Tile(x, y) != TileEmpty {
					return nil, fmt.Errorf("arrow overlaps %s at %d,%d", w.Tile(x, y), x, y)
				}
				w.SetTile(x, y, ArrowTile(arrowDirection(entity)))
			}
		}
	}

	return w, nil
}

// Name returns the name of the map the world was loaded from.
func (w *World) Name() string {
	return w.name
}

// Author returns the author of the map the world was loaded from.
func (w *World) Author() string {
	return w.author
}

// Data returns a copy of the packed map bytes.
func (w *World) Data() []byte {
	out := make([]byte, MapDataSize)
	copy(out, w.data[:])
	return out
}

func decodeHeaderString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
