// Package mapfile converts between the ASCII art map sources levels are
// authored in and the 199 byte packed form the engine loads.
//
// A map source draws the grid with box drawing characters. Only the
// top and left walls are parsed; junction characters are cosmetic. The
// grid uses five characters per column: a wall position, two entity
// characters and two arrow characters.
//
//	Wall symbols:   ─ │ (plus cosmetic ┘ ┐ ┌ └ ┼ ├ ┤ ┴ ┬)
//	Entity symbols: M C followed by < > ^ v, or R H followed by a space
//	Arrow symbols:  A followed by < > ^ v
package mapfile

import (
	"fmt"
	"strings"
)

const (
	worldWidth  = 12
	worldHeight = 9

	// Art dimensions: alternating wall and entity rows, with a final
	// cosmetic wall row, five characters per column plus the right
	// border.
	artRows    = worldHeight*2 + 1
	artColumns = worldWidth*5 + 1
)

// Packed layout offsets. These mirror the engine's map format; the
// round trip through engine.LoadWorld is covered by tests.
const (
	nameSize          = 32
	authorOffset      = nameSize
	authorSize        = 32
	wallBlockOffset   = authorOffset + authorSize
	wallBlockSize     = 27
	entityBlockOffset = wallBlockOffset + wallBlockSize
	entityBlockSize   = worldWidth * worldHeight

	packedSize = entityBlockOffset + entityBlockSize
)

var (
	leftWallMask = [4]byte{0b00000010, 0b00001000, 0b00100000, 0b10000000}
	topWallMask  = [4]byte{0b00000001, 0b00000100, 0b00010000, 0b01000000}
)

const (
	entityTypeMask  = 0b11100000
	entityMouse     = 0b00100000
	entityCat       = 0b01000000
	entityRocket    = 0b01100000
	entityHole      = 0b10000000
	entityDirMask   = 0b00011000
	entityDirUp     = 0b00000000
	entityDirDown   = 0b00001000
	entityDirLeft   = 0b00010000
	entityDirRight  = 0b00011000
	arrowPresent    = 0b00000100
	arrowDirMask    = 0b00000011
	arrowDirUp      = 0b00000000
	arrowDirDown    = 0b00000001
	arrowDirLeft    = 0b00000010
	arrowDirRight   = 0b00000011
)

// Encode packs a named map source into its 199 byte form.
func Encode(name, author string, art []string) ([]byte, error) {
	out := make([]byte, packedSize)

	if err := encodeHeaderString(name, out[:nameSize]); err != nil {
		return nil, fmt.Errorf("map name: %w", err)
	}
	if err := encodeHeaderString(author, out[authorOffset:authorOffset+authorSize]); err != nil {
		return nil, fmt.Errorf("map author: %w", err)
	}

	if len(art) != artRows {
		return nil, fmt.Errorf("map art must be %d rows, got %d", artRows, len(art))
	}
	rows := make([][]rune, artRows)
	for i, row := range art {
		rows[i] = []rune(row)
		if len(rows[i]) != artColumns {
			return nil, fmt.Errorf("row %d must be %d characters long, got %d", i, artColumns, len(rows[i]))
		}
	}

	// The final row is cosmetic, but must agree with the top row so
	// the wraparound walls read the same from both sides
	for col := 0; col < worldWidth; col++ {
		if rows[0][col*5+1] != rows[artRows-1][col*5+1] {
			return nil, fmt.Errorf("column %d: top and bottom walls must be consistent", col)
		}
	}

	// Within a wall row, all four characters of a cell must agree
	for y := 0; y < worldHeight; y++ {
		row := rows[y*2]
		for col := 0; col < worldWidth; col++ {
			for i := 2; i < 5; i++ {
				if row[col*5+1] != row[col*5+i] {
					return nil, fmt.Errorf("row %d column %d: all top walls within a cell must be the same", y*2, col)
				}
			}
		}
	}

	// Entity rows wrap left to right
	for y := 0; y < worldHeight; y++ {
		row := rows[y*2+1]
		if row[0] != row[artColumns-1] {
			return nil, fmt.Errorf("row %d: left and right walls must be consistent", y*2+1)
		}
	}

	walls := out[wallBlockOffset : wallBlockOffset+wallBlockSize]
	entities := out[entityBlockOffset : entityBlockOffset+entityBlockSize]

	for y := 0; y < worldHeight; y++ {
		wallRow := rows[y*2]
		entityRow := rows[y*2+1]

		for col := 0; col < worldWidth; col++ {
			switch wallRow[col*5+1] {
			case '─':
				walls[(y*worldWidth+col)/4] |= topWallMask[col&0x03]
			case ' ':
			case '-':
				return nil, fmt.Errorf("row %d column %d: top wall must be ' ' or '─', found '-' (look closely)", y*2, col)
			default:
				return nil, fmt.Errorf("row %d column %d: top wall must be ' ' or '─'", y*2, col)
			}

			switch entityRow[col*5] {
			case '│':
				walls[(y*worldWidth+col)/4] |= leftWallMask[col&0x03]
			case ' ':
			case '|':
				return nil, fmt.Errorf("row %d column %d: left wall must be ' ' or '│', found '|' (look closely)", y*2+1, col)
			default:
				return nil, fmt.Errorf("row %d column %d: left wall must be ' ' or '│'", y*2+1, col)
			}

			entity, err := entityBits(entityRow[col*5+1], entityRow[col*5+2])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y*2+1, col, err)
			}
			arrow, err := arrowBits(entityRow[col*5+3], entityRow[col*5+4])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y*2+1, col, err)
			}
			entities[y*worldWidth+col] = entity | arrow
		}
	}

	return out, nil
}

func encodeHeaderString(s string, out []byte) error {
	if len(s) == 0 {
		return fmt.Errorf("cannot be empty")
	}
	if len(s) > len(out) {
		return fmt.Errorf("longer than %d bytes", len(out))
	}
	copy(out, s)
	return nil
}

func entityBits(kind, direction rune) (byte, error) {
	switch kind {
	case 'M', 'C':
		bits := byte(entityMouse)
		if kind == 'C' {
			bits = entityCat
		}
		switch direction {
		case '^':
			return bits | entityDirUp, nil
		case 'v':
			return bits | entityDirDown, nil
		case '<':
			return bits | entityDirLeft, nil
		case '>':
			return bits | entityDirRight, nil
		default:
			return 0, fmt.Errorf("a mouse or cat must be followed by one of <>^v")
		}
	case 'R', 'H':
		if direction != ' ' {
			return 0, fmt.Errorf("a rocket or hole must be followed by a space")
		}
		if kind == 'R' {
			return entityRocket, nil
		}
		return entityHole, nil
	case ' ':
		if direction != ' ' {
			return 0, fmt.Errorf("unexpected characters in entity cell")
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected characters in entity cell")
	}
}

func arrowBits(marker, direction rune) (byte, error) {
	switch marker {
	case 'A':
		switch direction {
		case '^':
			return arrowPresent | arrowDirUp, nil
		case 'v':
			return arrowPresent | arrowDirDown, nil
		case '<':
			return arrowPresent | arrowDirLeft, nil
		case '>':
			return arrowPresent | arrowDirRight, nil
		default:
			return 0, fmt.Errorf("an arrow must be followed by one of <>^v")
		}
	case ' ':
		if direction != ' ' {
			return 0, fmt.Errorf("unexpected characters in arrow cell")
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected characters in arrow cell")
	}
}

// Decode renders a packed map back into a source that Encode accepts
// and packs to the same bytes.
func Decode(data []byte) (name, author string, art []string, err error) {
	if len(data) != packedSize {
		return "", "", nil, fmt.Errorf("map data must be %d bytes, got %d", packedSize, len(data))
	}

	name = trimHeaderString(data[:nameSize])
	author = trimHeaderString(data[authorOffset : authorOffset+authorSize])
	walls := data[wallBlockOffset : wallBlockOffset+wallBlockSize]
	entities := data[entityBlockOffset : entityBlockOffset+entityBlockSize]

	topWall := func(x, y int) bool {
		return walls[(y*worldWidth+x)/4]&topWallMask[x&0x03] != 0
	}
	leftWall := func(x, y int) bool {
		return walls[(y*worldWidth+x)/4]&leftWallMask[x&0x03] != 0
	}

	wallRow := func(y int) string {
		var b strings.Builder
		for col := 0; col < worldWidth; col++ {
			b.WriteRune('┼')
			fill := "    "
			if topWall(col, y) {
				fill = "────"
			}
			b.WriteString(fill)
		}
		b.WriteRune('┼')
		return b.String()
	}

	art = make([]string, 0, artRows)
	for y := 0; y < worldHeight; y++ {
		art = append(art, wallRow(y))

		var b strings.Builder
		for col := 0; col < worldWidth; col++ {
			if leftWall(col, y) {
				b.WriteRune('│')
			} else {
				b.WriteRune(' ')
			}
			b.WriteString(entityGlyph(entities[y*worldWidth+col]))
			b.WriteString(arrowGlyph(entities[y*worldWidth+col]))
		}
		// Right border wraps back to the first column
		if leftWall(0, y) {
			b.WriteRune('│')
		} else {
			b.WriteRune(' ')
		}
		art = append(art, b.String())
	}
	// The closing row mirrors the top for wraparound consistency
	art = append(art, wallRow(0))

	return name, author, art, nil
}

func trimHeaderString(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func entityGlyph(b byte) string {
	var kind byte
	switch b & entityTypeMask {
	case entityMouse:
		kind = 'M'
	case entityCat:
		kind = 'C'
	case entityRocket:
		return "R "
	case entityHole:
		return "H "
	default:
		return "  "
	}

	switch b & entityDirMask {
	case entityDirUp:
		return string(kind) + "^"
	case entityDirDown:
		return string(kind) + "v"
	case entityDirLeft:
		return string(kind) + "<"
	default:
		return string(kind) + ">"
	}
}

func arrowGlyph(b byte) string {
	if b&arrowPresent == 0 {
		return "  "
	}
	switch b & arrowDirMask {
	case arrowDirUp:
		return "A^"
	case arrowDirDown:
		return "Av"
	case arrowDirLeft:
		return "A<"
	default:
		return "A>"
	}
}
