package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"unicode"

	"docbuilder-backend/resume/layout"
)

var (
	ErrNothingToExport = errors.New("no materialized pages to export")
	ErrCapture         = errors.New("page capture failed")
)

// Capturer rasterizes one laid-out page.
type Capturer interface {
	Capture(ctx context.Context, f layout.Frame) (*image.RGBA, error)
}

// Exporter turns materialized page frames into one PDF.
type Exporter struct {
	Capturer Capturer
	Scale    float64
}

func NewExporter(c Capturer, scale float64) *Exporter {
	return &Exporter{Capturer: c, Scale: scale}
}

// Export captures the frames strictly in order and appends each bitmap as a
// page. The first failure aborts the whole export; no partial document is
// ever returned.
func (e *Exporter) Export(ctx context.Context, frames []layout.Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNothingToExport
	}
	asm := NewAssembler(e.Scale)
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := e.Capturer.Capture(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrCapture, f.Number, err)
		}
		if err := asm.AddPage(img); err != nil {
			return nil, err
		}
	}
	data, err := asm.Bytes()
	if err != nil {
		return nil, err
	}

	info, err := Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("%w: read back: %w", ErrAssembly, err)
	}
	if len(info.Pages) != len(frames) {
		return nil, fmt.Errorf("%w: expected %d pages, wrote %d", ErrAssembly, len(frames), len(info.Pages))
	}
	return data, nil
}

// Filename returns resume-<fullName>.pdf, or resume-draft.pdf without a name.
func Filename(fullName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(fullName))
	name = strings.TrimSpace(name)
	if name == "" {
		name = "draft"
	}
	return "resume-" + name + ".pdf"
}
