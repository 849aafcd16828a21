package layout

// Geometry is the on-screen approximation of a physical page, in CSS pixels.
type Geometry struct {
	Width     float64
	Height    float64
	Padding   float64
	Gap       float64
	MinHeight float64
}

// DefaultGeometry approximates an A4 sheet at 96 DPI with a 32px padding,
// a 24px gap between sections and an 800px minimum page height.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:     794,
		Height:    1123,
		Padding:   32,
		Gap:       24,
		MinHeight: 800,
	}
}

// ContentWidth is the width available to section content.
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Padding
}

// Capacity is the pixel allowance of one page when every section weight
// includes its trailing gap: sum(h) + (n-1)*gap <= Height - 2*Padding.
func (g Geometry) Capacity() float64 {
	return g.Height - 2*g.Padding + g.Gap
}

// PageHeight returns the height of a page holding sections of the given
// heights. Pages grow with their content and never fall below MinHeight.
func (g Geometry) PageHeight(heights []float64) float64 {
	total := 2 * g.Padding
	for i, h := range heights {
		if i > 0 {
			total += g.Gap
		}
		total += h
	}
	if total < g.MinHeight {
		return g.MinHeight
	}
	return total
}
