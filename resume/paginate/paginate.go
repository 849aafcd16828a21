package paginate

import "docbuilder-backend/resume/section"

// Page is a contiguous, non-empty run of sections. Number is 1-based.
type Page struct {
	Number   int
	Sections []section.Section
	Weights  []float64
	Total    float64
}

// Paginate partitions sections into pages in one greedy left-to-right pass.
// A page is closed when the next weight would push it past capacity and it
// already holds a section, so an oversized section gets a page of its own.
// Order is preserved and nothing is split. Missing weights count as zero.
func Paginate(sections []section.Section, weights []float64, capacity float64) []Page {
	var pages []Page
	var current Page
	for i, s := range sections {
		w := 0.0
		if i < len(weights) && weights[i] > 0 {
			w = weights[i]
		}
		if current.Total+w > capacity && len(current.Sections) > 0 {
			pages = append(pages, current)
			current = Page{}
		}
		current.Sections = append(current.Sections, s)
		current.Weights = append(current.Weights, w)
		current.Total += w
	}
	if len(current.Sections) > 0 {
		pages = append(pages, current)
	}
	for i := range pages {
		pages[i].Number = i + 1
	}
	return pages
}
