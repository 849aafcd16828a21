package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"docbuilder-backend/resume/layout"
)

// DefaultScale is the oversampling factor applied to CSS pixel bounds.
const DefaultScale = 2

var (
	ErrDetached         = errors.New("page frame has no bounds")
	ErrImageUnavailable = errors.New("image unavailable")
	ErrNoImageSource    = errors.New("no image source configured")
)

// ImageSource opens stored images by key.
type ImageSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Rasterizer draws laid-out page frames to bitmaps.
type Rasterizer struct {
	Fonts  *layout.Fonts
	Images ImageSource
	Scale  float64
}

func NewRasterizer(fonts *layout.Fonts, images ImageSource) *Rasterizer {
	return &Rasterizer{Fonts: fonts, Images: images, Scale: DefaultScale}
}

// Capture draws a frame at the oversampling scale. The bitmap bounds are
// the frame's pixel size times the scale and the background is filled with
// the frame's base colour so nothing is left transparent.
func (r *Rasterizer) Capture(ctx context.Context, f layout.Frame) (*image.RGBA, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: page %d", ErrDetached, f.Number)
	}
	if r.Fonts == nil {
		return nil, layout.ErrNoFonts
	}
	scale := r.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	bounds := image.Rect(0, 0, int(math.Ceil(f.Width*scale)), int(math.Ceil(f.Height*scale)))
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(layout.RGBA(f.Background)), image.Point{}, draw.Src)

	faces := r.Fonts.Faces(scale)
	defer faces.Close()
	images := map[string]image.Image{}

	for _, pl := range f.Placements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, op := range pl.Box.Ops {
			x := (pl.X + op.X) * scale
			y := (pl.Y + op.Y) * scale
			switch op.Kind {
			case layout.OpRect:
				rect := image.Rect(round(x), round(y), round(x+op.W*scale), round(y+op.H*scale))
				draw.Draw(canvas, rect, image.NewUniform(layout.RGBA(op.Fill)), image.Point{}, draw.Over)
			case layout.OpText:
				face, err := faces.Face(op.Style)
				if err != nil {
					return nil, err
				}
				d := font.Drawer{
					Dst:  canvas,
					Src:  image.NewUniform(layout.RGBA(op.Style.Color)),
					Face: face,
					Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
				}
				d.DrawString(op.Text)
			case layout.OpImage:
				src, err := r.image(ctx, images, op.ImageKey)
				if err != nil {
					return nil, err
				}
				rect := image.Rect(round(x), round(y), round(x+op.W*scale), round(y+op.H*scale))
				draw.CatmullRom.Scale(canvas, rect, src, squareCrop(src.Bounds()), draw.Over, nil)
			}
		}
	}
	return canvas, nil
}

func (r *Rasterizer) image(ctx context.Context, cache map[string]image.Image, key string) (image.Image, error) {
	if img, ok := cache[key]; ok {
		return img, nil
	}
	if r.Images == nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageUnavailable, key, ErrNoImageSource)
	}
	rc, err := r.Images.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageUnavailable, key, err)
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageUnavailable, key, err)
	}
	cache[key] = img
	return img, nil
}

// squareCrop returns the centred square of b.
func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}

func round(v float64) int {
	return int(math.Round(v))
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
