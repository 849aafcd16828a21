package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts holds the parsed regular and bold typefaces. It is safe for
// concurrent use; faces are created per FaceSet.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// DefaultFonts returns the bundled Go fonts.
func DefaultFonts() (*Fonts, error) {
	return LoadFonts("", "")
}

// LoadFonts parses TrueType/OpenType files. An empty path falls back to the
// bundled Go font of that weight.
func LoadFonts(regularPath, boldPath string) (*Fonts, error) {
	regular, err := parseFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := parseFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold}, nil
}

func parseFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		raw, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, err
		}
		data = raw
	}
	return opentype.Parse(data)
}

// Faces returns a face cache rendering at 72*scale DPI, so a size in points
// equals a size in CSS pixels at scale 1.
func (f *Fonts) Faces(scale float64) *FaceSet {
	if scale <= 0 {
		scale = 1
	}
	return &FaceSet{fonts: f, scale: scale, faces: map[faceKey]font.Face{}}
}

type faceKey struct {
	bold bool
	size float64
}

// FaceSet caches faces for one layout or capture. Not safe for concurrent use.
type FaceSet struct {
	fonts *Fonts
	scale float64
	faces map[faceKey]font.Face
}

// Face returns the face for a style.
func (s *FaceSet) Face(style RunStyle) (font.Face, error) {
	key := faceKey{bold: style.Bold, size: style.Size}
	if face, ok := s.faces[key]; ok {
		return face, nil
	}
	src := s.fonts.regular
	if style.Bold {
		src = s.fonts.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    style.Size,
		DPI:     72 * s.scale,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	s.faces[key] = face
	return face, nil
}

// Width measures s in unscaled CSS pixels.
func (s *FaceSet) Width(style RunStyle, text string) (float64, error) {
	face, err := s.Face(style)
	if err != nil {
		return 0, err
	}
	return fromFixed(font.MeasureString(face, text)) / s.scale, nil
}

// Ascent is the distance from the top of a line box to its baseline, in CSS pixels.
func (s *FaceSet) Ascent(style RunStyle) (float64, error) {
	face, err := s.Face(style)
	if err != nil {
		return 0, err
	}
	m := face.Metrics()
	ascent := fromFixed(m.Ascent) / s.scale
	descent := fromFixed(m.Descent) / s.scale
	return (style.LineHeight()-(ascent+descent))/2 + ascent, nil
}

// Close releases every cached face.
func (s *FaceSet) Close() {
	for k, face := range s.faces {
		_ = face.Close()
		delete(s.faces, k)
	}
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
