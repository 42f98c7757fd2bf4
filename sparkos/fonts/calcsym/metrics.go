package calcsym

import (
	"errors"
	"fmt"

	"tinygo.org/x/tinyfont"
)

// LineMetrics derives font cell metrics for tinyterm-like renderers.
//
// It returns:
//   - fontHeight: total cell height in pixels (YAdvance, or the glyph extent when larger)
//   - fontOffset: baseline offset from the top of the cell
//
// The computation scans the printable ASCII glyphs of font.
func LineMetrics(font tinyfont.Fonter) (fontHeight int16, fontOffset int16, err error) {
	if font == nil {
		return 0, 0, errors.New("nil font")
	}

	minY, maxY := 0, 0
	first := true
	for r := rune(0x21); r < 0x7f; r++ {
		info := font.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		if first {
			minY, maxY = top, bottom
			first = false
			continue
		}
		if top < minY {
			minY = top
		}
		if bottom > maxY {
			maxY = bottom
		}
	}
	if first {
		return 0, 0, errors.New("no glyphs")
	}

	height := maxY - minY
	offset := -minY
	if height <= 0 || offset < 0 {
		return 0, 0, fmt.Errorf("invalid metrics: height=%d offset=%d", height, offset)
	}
	if adv := int(font.GetYAdvance()); adv > height {
		height = adv
	}
	if height > 127 || offset > 127 {
		return 0, 0, fmt.Errorf("metrics too large: height=%d offset=%d", height, offset)
	}
	return int16(height), int16(offset), nil
}
