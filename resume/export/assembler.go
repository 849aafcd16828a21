package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// PixelsPerMillimeter converts CSS pixels (96 DPI) to millimetres.
const PixelsPerMillimeter = 96 / 25.4

var ErrAssembly = errors.New("pdf assembly failed")

// PageSizeMM converts bitmap pixel dimensions captured at scale to the
// physical page size in millimetres.
func PageSizeMM(widthPx, heightPx int, scale float64) (float64, float64) {
	if scale <= 0 {
		scale = 1
	}
	return float64(widthPx) / scale / PixelsPerMillimeter, float64(heightPx) / scale / PixelsPerMillimeter
}

// Assembler builds a PDF one bitmap page at a time. Each page is sized to
// its own bitmap; pages are append-only.
type Assembler struct {
	scale float64
	pdf   *gofpdf.Fpdf
	pages int
}

func NewAssembler(scale float64) *Assembler {
	return &Assembler{scale: scale}
}

// AddPage appends a page sized to img and places img over the whole page.
func (a *Assembler) AddPage(img image.Image) error {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: empty bitmap for page %d", ErrAssembly, a.pages+1)
	}
	w, h := PageSizeMM(b.Dx(), b.Dy(), a.scale)
	size := gofpdf.SizeType{Wd: w, Ht: h}

	if a.pdf == nil {
		a.pdf = gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "mm", Size: size})
		a.pdf.SetMargins(0, 0, 0)
		a.pdf.SetAutoPageBreak(false, 0)
		a.pdf.SetCreator("docbuilder", true)
	}
	a.pdf.AddPageFormat("P", size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: encode page %d: %w", ErrAssembly, a.pages+1, err)
	}
	name := fmt.Sprintf("page-%d", a.pages+1)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	a.pdf.RegisterImageOptionsReader(name, opts, &buf)
	a.pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	if a.pdf.Err() {
		return fmt.Errorf("%w: page %d: %w", ErrAssembly, a.pages+1, a.pdf.Error())
	}
	a.pages++
	return nil
}

// Pages returns the number of pages added so far.
func (a *Assembler) Pages() int { return a.pages }

// Bytes finalises the document.
func (a *Assembler) Bytes() ([]byte, error) {
	if a.pdf == nil {
		return nil, fmt.Errorf("%w: no pages", ErrAssembly)
	}
	var out bytes.Buffer
	if err := a.pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssembly, err)
	}
	return out.Bytes(), nil
}
