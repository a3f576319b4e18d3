package document

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode"

	"golang.org/x/image/font/sfnt"
)

const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularTTF []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldTTF []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	italicTTF []byte
)

// face is one embedded TrueType style with its parsed character map.
type face struct {
	style string // gofpdf style string
	ttf   []byte
	font  *sfnt.Font
}

var loadFaces = sync.OnceValues(func() (map[Weight]*face, error) {
	faces := map[Weight]*face{
		Regular: {style: "", ttf: regularTTF},
		Bold:    {style: "B", ttf: boldTTF},
		Italic:  {style: "I", ttf: italicTTF},
	}
	for w, f := range faces {
		parsed, err := sfnt.Parse(f.ttf)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", w, err)
		}
		f.font = parsed
	}
	return faces, nil
})

// missingGlyph returns the first rune of s the face cannot draw.
func (f *face) missingGlyph(buf *sfnt.Buffer, s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		idx, err := f.font.GlyphIndex(buf, r)
		if err != nil || idx == 0 {
			return r, true
		}
	}
	return 0, false
}
