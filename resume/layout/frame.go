package layout

import "docbuilder-backend/resume/section"

// Placement positions a box on a page, in CSS pixels from the page origin.
type Placement struct {
	Box Box
	X   float64
	Y   float64
}

// Frame is a page container ready to be rasterized: its pixel bounds,
// background and the boxes placed on it.
type Frame struct {
	Number     int
	Width      float64
	Height     float64
	Background string
	Placements []Placement
}

// Frame stacks boxes top to bottom inside the page padding. The frame is as
// tall as its content, but never shorter than the geometry minimum.
func (e *Engine) Frame(number int, boxes []Box, t section.Template) Frame {
	g := e.geometry
	heights := make([]float64, len(boxes))
	placements := make([]Placement, 0, len(boxes))
	y := g.Padding
	for i, b := range boxes {
		heights[i] = b.Height
		placements = append(placements, Placement{Box: b, X: g.Padding, Y: y})
		y += b.Height + g.Gap
	}
	return Frame{
		Number:     number,
		Width:      g.Width,
		Height:     g.PageHeight(heights),
		Background: ThemeFor(t).Background,
		Placements: placements,
	}
}
