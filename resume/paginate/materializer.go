package paginate

import "docbuilder-backend/resume/section"

// Materializer tracks how many leading pages are rendered and eligible for
// export. It starts at 1, grows only through AddPage and resets to 1 when
// the template changes.
type Materializer struct {
	template section.Template
	count    int
}

func NewMaterializer(t section.Template) *Materializer {
	return &Materializer{template: t, count: 1}
}

// Restore rebuilds a materializer from a persisted counter. Values below 1
// are raised to 1.
func Restore(t section.Template, count int) *Materializer {
	if count < 1 {
		count = 1
	}
	return &Materializer{template: t, count: count}
}

func (m *Materializer) Count() int { return m.count }

func (m *Materializer) Template() section.Template { return m.template }

// AddPage materializes one more page unless every computed page already is.
// It reports whether the counter changed.
func (m *Materializer) AddPage(total int) bool {
	if m.count >= total {
		return false
	}
	m.count++
	return true
}

// Clamp lowers the counter to the number of computed pages, keeping it at
// least 1. Content edits can shrink the page count below a persisted value.
func (m *Materializer) Clamp(total int) {
	if m.count > total {
		m.count = total
	}
	if m.count < 1 {
		m.count = 1
	}
}

// SetTemplate switches template; a change resets the counter to 1.
func (m *Materializer) SetTemplate(t section.Template) {
	if t == m.template {
		return
	}
	m.template = t
	m.count = 1
}

// Visible returns the first min(count, len(pages)) pages.
func (m *Materializer) Visible(pages []Page) []Page {
	n := m.count
	if n > len(pages) {
		n = len(pages)
	}
	return pages[:n]
}
