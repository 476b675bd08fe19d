package droid

import "strings"

// Glyph returns the character used to draw t.
func (t Tile) Glyph() rune {
	switch t {
	case Wall:
		return '#'
	case Free:
		return ' '
	case Goal:
		return 'x'
	case Start:
		return 's'
	}
	return '.'
}

// Render draws the explored part of the area, one line per row, with the
// droid shown as 'D'.
func Render(a Area, droid Point) string {
	var (
		b = a.Bounds()
		s strings.Builder
	)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := Point{x, y}
			if p == droid {
				s.WriteByte('D')
				continue
			}
			s.WriteRune(a[p].Glyph())
		}
		s.WriteByte('\n')
	}
	return s.String()
}
