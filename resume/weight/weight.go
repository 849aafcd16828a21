package weight

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"docbuilder-backend/resume/layout"
	"docbuilder-backend/resume/section"
)

// Strategy names a weight strategy. The capacities of different strategies
// are in different units and are not comparable.
type Strategy string

const (
	Height Strategy = "height"
	Words  Strategy = "words"
)

// DefaultWordCapacity is how many words fit on one page for the Words strategy.
const DefaultWordCapacity = 350

var (
	ErrStaleLayout     = errors.New("layout does not match sections")
	ErrUnknownStrategy = errors.New("unknown weight strategy")
)

// ParseStrategy maps a strategy name, defaulting to Height.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Height:
		return Height, nil
	case Words:
		return Words, nil
	}
	return "", ErrUnknownStrategy
}

// DefaultCapacity returns the calibrated page capacity of a strategy.
func DefaultCapacity(s Strategy, g layout.Geometry) float64 {
	if s == Words {
		return DefaultWordCapacity
	}
	return g.Capacity()
}

// Estimator assigns one weight per section. A single pagination pass must
// use exactly one Estimator for all sections.
type Estimator interface {
	Strategy() Strategy
	Weights(sections []section.Section) ([]float64, error)
}

// MeasuredHeight weighs each section by its laid-out height plus the
// inter-section gap. The measurement must come from a layout pass over the
// exact sections being weighed.
type MeasuredHeight struct {
	Measurement layout.Measurement
}

func (MeasuredHeight) Strategy() Strategy { return Height }

func (m MeasuredHeight) Weights(sections []section.Section) ([]float64, error) {
	if len(m.Measurement.Boxes) != len(sections) {
		return nil, fmt.Errorf("%w: %d boxes for %d sections", ErrStaleLayout, len(m.Measurement.Boxes), len(sections))
	}
	gap := m.Measurement.Geometry.Gap
	out := make([]float64, len(sections))
	for i, s := range sections {
		box := m.Measurement.Boxes[i]
		if box.SectionID != s.ID || box.Fingerprint != s.Fingerprint() {
			return nil, fmt.Errorf("%w: section %s", ErrStaleLayout, s.ID)
		}
		out[i] = sanitize(box.Height + gap)
	}
	return out, nil
}

// WordCount weighs each section by the number of whitespace-delimited
// tokens in its text, labels, titles, placeholders and alt text.
type WordCount struct{}

func (WordCount) Strategy() Strategy { return Words }

func (WordCount) Weights(sections []section.Section) ([]float64, error) {
	out := make([]float64, len(sections))
	for i, s := range sections {
		out[i] = float64(CountWords(s.Root))
	}
	return out, nil
}

// CountWords walks a node tree and counts its whitespace-delimited tokens.
func CountWords(n section.Node) int {
	total := 0
	for _, v := range []string{n.Text, n.Label, n.Title, n.Placeholder, n.Alt} {
		total += len(strings.Fields(v))
	}
	for _, child := range n.Children {
		total += CountWords(child)
	}
	return total
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
