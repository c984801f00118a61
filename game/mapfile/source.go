package mapfile

import (
	"fmt"
	"strings"
)

// Level sources on disk carry the name on the first line, the author
// on the second and the map art below.

// ParseSource splits a level source into its parts. It does not
// validate the art; Encode does that.
func ParseSource(src []byte) (name, author string, art []string, err error) {
	lines := strings.Split(strings.TrimRight(string(src), "\n"), "\n")
	if len(lines) != artRows+2 {
		return "", "", nil, fmt.Errorf("level source must be %d lines, got %d", artRows+2, len(lines))
	}
	return lines[0], lines[1], lines[2:], nil
}

// FormatSource renders a level back into the on-disk source form.
func FormatSource(name, author string, art []string) []byte {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('\n')
	b.WriteString(author)
	b.WriteByte('\n')
	for _, row := range art {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// EncodeSource packs a level source in one step.
func EncodeSource(src []byte) ([]byte, error) {
	name, author, art, err := ParseSource(src)
	if err != nil {
		return nil, err
	}
	return Encode(name, author, art)
}
