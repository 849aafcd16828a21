package paginate

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"docbuilder-backend/resume/section"
)

func makeSections(n int) []section.Section {
	out := make([]section.Section, n)
	for i := range out {
		out[i] = section.Section{ID: fmt.Sprintf("s%d", i)}
	}
	return out
}

func weightsOf(pages []Page) [][]float64 {
	out := make([][]float64, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Weights)
	}
	return out
}

func TestPaginateScenarios(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		want    [][]float64
	}{
		{name: "two fit then overflow", weights: []float64{40, 40, 40}, want: [][]float64{{40, 40}, {40}}},
		{name: "single oversized section", weights: []float64{150}, want: [][]float64{{150}}},
		{name: "empty input", weights: []float64{}, want: [][]float64{}},
		{name: "exact fit", weights: []float64{50, 50, 1}, want: [][]float64{{50, 50}, {1}}},
		{name: "oversized in the middle", weights: []float64{30, 150, 30}, want: [][]float64{{30}, {150}, {30}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := Paginate(makeSections(len(tt.weights)), tt.weights, 100)
			if diff := cmp.Diff(tt.want, weightsOf(pages)); diff != "" {
				t.Fatalf("partition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginateMissingWeightsCountAsZero(t *testing.T) {
	pages := Paginate(makeSections(3), []float64{90}, 100)
	if len(pages) != 1 || len(pages[0].Sections) != 3 || pages[0].Total != 90 {
		t.Fatalf("unexpected pages %+v", pages)
	}
}

func TestPaginateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const capacity = 100.0
	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(20)
		sections := makeSections(n)
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = float64(rng.Intn(160))
		}

		pages := Paginate(sections, weights, capacity)

		var flat []string
		for i, p := range pages {
			if p.Number != i+1 {
				t.Fatalf("page %d numbered %d", i, p.Number)
			}
			if len(p.Sections) == 0 {
				t.Fatalf("empty page in %v", weights)
			}
			if len(p.Sections) > 1 && p.Total > capacity {
				t.Fatalf("multi-section page over capacity: %v", p.Weights)
			}
			for _, s := range p.Sections {
				flat = append(flat, s.ID)
			}
		}
		if n == 0 && len(pages) != 0 {
			t.Fatalf("expected no pages for empty input")
		}
		if diff := cmp.Diff(section.IDs(sections), flat, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("sections reordered, dropped or duplicated (-want +got):\n%s", diff)
		}

		again := Paginate(sections, weights, capacity)
		if diff := cmp.Diff(pages, again); diff != "" {
			t.Fatalf("re-pagination differs:\n%s", diff)
		}
	}
}

func TestMaterializer(t *testing.T) {
	m := NewMaterializer(section.Modern)
	if m.Count() != 1 {
		t.Fatalf("counter should start at 1, got %d", m.Count())
	}
	if !m.AddPage(3) || !m.AddPage(3) {
		t.Fatalf("expected counter to grow")
	}
	if m.AddPage(3) || m.Count() != 3 {
		t.Fatalf("counter must not exceed total pages, got %d", m.Count())
	}

	m.SetTemplate(section.Modern)
	if m.Count() != 3 {
		t.Fatalf("same template must not reset, got %d", m.Count())
	}
	m.SetTemplate(section.Classic)
	if m.Count() != 1 || m.Template() != section.Classic {
		t.Fatalf("template change must reset to 1, got %d", m.Count())
	}
}

func TestMaterializerVisible(t *testing.T) {
	pages := Paginate(makeSections(3), []float64{80, 80, 80}, 100)
	if got := NewMaterializer(section.Modern).Visible(pages); len(got) != 1 || got[0].Number != 1 {
		t.Fatalf("expected only the first page, got %d", len(got))
	}
	if got := Restore(section.Modern, 10).Visible(pages); len(got) != 3 {
		t.Fatalf("visible pages should be capped at total, got %d", len(got))
	}
	m := Restore(section.Modern, 10)
	m.Clamp(len(pages))
	if m.Count() != 3 {
		t.Fatalf("clamp should lower the counter to 3, got %d", m.Count())
	}
	m.Clamp(0)
	if m.Count() != 1 {
		t.Fatalf("clamp should keep the counter at 1, got %d", m.Count())
	}
	if got := Restore(section.Modern, 0).Count(); got != 1 {
		t.Fatalf("restored counter should be at least 1, got %d", got)
	}
	if got := NewMaterializer(section.Modern).Visible(nil); len(got) != 0 {
		t.Fatalf("no pages should stay empty, got %d", len(got))
	}
}
