package layout

import (
	"testing"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/model"
	"docbuilder-backend/resume/section"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	fonts, err := DefaultFonts()
	if err != nil {
		t.Fatalf("load fonts: %v", err)
	}
	return NewEngine(DefaultGeometry(), fonts)
}

func sampleSections(t *testing.T, locale i18n.Locale) []section.Section {
	t.Helper()
	doc := model.Resume{
		PersonalInfo: model.PersonalInfo{FullName: "Ayesha Khan", Title: "Engineer", Email: "a@example.com", Summary: "Short summary."},
		Experience:   []model.Experience{{ID: "1", Company: "Acme", Position: "Dev", StartDate: "2020"}},
		Skills:       []string{"Go", "SQL", "Kubernetes"},
	}
	sections, err := section.Build(doc, section.Modern, locale)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return sections
}

func TestGeometryCapacity(t *testing.T) {
	g := DefaultGeometry()
	if g.ContentWidth() != 730 {
		t.Fatalf("content width = %v", g.ContentWidth())
	}
	if g.Capacity() != 1083 {
		t.Fatalf("capacity = %v", g.Capacity())
	}
}

func TestPageHeightGrowsButRespectsMinimum(t *testing.T) {
	g := DefaultGeometry()
	if h := g.PageHeight(nil); h != g.MinHeight {
		t.Fatalf("empty page height = %v", h)
	}
	if h := g.PageHeight([]float64{600, 500}); h != 32+600+24+500+32 {
		t.Fatalf("page height = %v", h)
	}
}

func TestLayoutProducesPositiveHeights(t *testing.T) {
	e := newTestEngine(t)
	sections := sampleSections(t, i18n.English)
	m, err := e.Layout(sections, section.Modern)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(m.Boxes) != len(sections) {
		t.Fatalf("expected %d boxes, got %d", len(sections), len(m.Boxes))
	}
	for i, b := range m.Boxes {
		if b.Height <= 0 {
			t.Fatalf("box %s has height %v", b.SectionID, b.Height)
		}
		if b.Fingerprint != sections[i].Fingerprint() {
			t.Fatalf("box %s fingerprint mismatch", b.SectionID)
		}
		if len(b.Ops) == 0 {
			t.Fatalf("box %s has no ops", b.SectionID)
		}
	}
}

func TestLongTextWrapsToMoreLines(t *testing.T) {
	e := newTestEngine(t)
	short := []section.Section{{ID: "summary", Kind: section.KindSummary, Direction: i18n.LTR,
		Root: section.Node{Role: section.RoleText, Text: "one line"}}}
	long := []section.Section{{ID: "summary", Kind: section.KindSummary, Direction: i18n.LTR,
		Root: section.Node{Role: section.RoleText, Text: repeatWords("lorem", 300)}}}

	ms, err := e.Layout(short, section.Modern)
	if err != nil {
		t.Fatalf("layout short: %v", err)
	}
	ml, err := e.Layout(long, section.Modern)
	if err != nil {
		t.Fatalf("layout long: %v", err)
	}
	if ml.Boxes[0].Height <= ms.Boxes[0].Height*2 {
		t.Fatalf("long text should wrap: short=%v long=%v", ms.Boxes[0].Height, ml.Boxes[0].Height)
	}
	for _, op := range ml.Boxes[0].Ops {
		if op.X+op.W > e.Geometry().ContentWidth()+0.5 {
			t.Fatalf("line overflows content width: %+v", op)
		}
	}
}

func TestRTLTextIsRightAligned(t *testing.T) {
	e := newTestEngine(t)
	s := []section.Section{{ID: "summary", Kind: section.KindSummary, Direction: i18n.RTL,
		Root: section.Node{Role: section.RoleText, Text: "abc"}}}
	m, err := e.Layout(s, section.Classic)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	op := m.Boxes[0].Ops[0]
	right := op.X + op.W
	if diff := e.Geometry().ContentWidth() - right; diff > 0.01 || diff < -0.01 {
		t.Fatalf("rtl text should end at the right edge, ends at %v", right)
	}
}

func TestFrameStacksBoxes(t *testing.T) {
	e := newTestEngine(t)
	boxes := []Box{{SectionID: "a", Height: 100}, {SectionID: "b", Height: 50}}
	f := e.Frame(2, boxes, section.Classic)
	if f.Number != 2 || f.Width != 794 || f.Height != 800 {
		t.Fatalf("unexpected frame %+v", f)
	}
	if f.Placements[0].Y != 32 || f.Placements[1].Y != 32+100+24 {
		t.Fatalf("unexpected placements %+v", f.Placements)
	}
	if f.Background != ThemeFor(section.Classic).Background {
		t.Fatalf("unexpected background %s", f.Background)
	}
}

func TestLayoutWithoutFonts(t *testing.T) {
	e := NewEngine(DefaultGeometry(), nil)
	if _, err := e.Layout(nil, section.Modern); err != ErrNoFonts {
		t.Fatalf("expected ErrNoFonts, got %v", err)
	}
}

func TestRGBA(t *testing.T) {
	c := RGBA("2563EB")
	if c.R != 0x25 || c.G != 0x63 || c.B != 0xEB || c.A != 0xff {
		t.Fatalf("unexpected colour %+v", c)
	}
	if RGBA("zz").A != 0xff {
		t.Fatalf("invalid colour should be opaque")
	}
}

func repeatWords(w string, n int) string {
	out := make([]byte, 0, n*(len(w)+1))
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, w...)
	}
	return string(out)
}
