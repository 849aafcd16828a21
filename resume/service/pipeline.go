package service

import (
	"context"
	"errors"
	"fmt"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/export"
	"docbuilder-backend/resume/layout"
	"docbuilder-backend/resume/model"
	"docbuilder-backend/resume/paginate"
	"docbuilder-backend/resume/section"
	"docbuilder-backend/resume/weight"
)

var ErrExportUnavailable = errors.New("export is not configured")

// Options selects the default weight strategy and the page capacity of each
// strategy. A zero capacity uses that strategy's calibrated default.
type Options struct {
	Strategy      weight.Strategy
	CapacityPx    float64
	CapacityWords float64
}

// Request is an immutable snapshot of the inputs of one pipeline run.
type Request struct {
	Resume       model.Resume
	Template     section.Template
	Locale       i18n.Locale
	Materialized int
	// Strategy overrides the pipeline default when set.
	Strategy weight.Strategy
}

// Result is the full output of one run. Frames holds the laid-out
// materialized pages only.
type Result struct {
	Template     section.Template
	Locale       i18n.Locale
	Strategy     weight.Strategy
	Capacity     float64
	Sections     []section.Section
	Weights      []float64
	Pages        []paginate.Page
	Materialized int
	Frames       []layout.Frame
}

// Pipeline recomputes sections, weights and pages from scratch on every
// call and exports the materialized pages on demand.
type Pipeline struct {
	engine   *layout.Engine
	exporter *export.Exporter
	opts     Options
}

func NewPipeline(engine *layout.Engine, exporter *export.Exporter, opts Options) *Pipeline {
	if opts.Strategy == "" {
		opts.Strategy = weight.Height
	}
	return &Pipeline{engine: engine, exporter: exporter, opts: opts}
}

// Run builds, lays out, weighs and paginates one snapshot.
func (p *Pipeline) Run(req Request) (Result, error) {
	strategy := p.opts.Strategy
	if req.Strategy != "" {
		strategy = req.Strategy
	}
	capacity := p.capacity(strategy)

	sections, err := section.Build(req.Resume, req.Template, req.Locale)
	if err != nil {
		return Result{}, err
	}
	measurement, err := p.engine.Layout(sections, req.Template)
	if err != nil {
		return Result{}, err
	}
	weights, err := p.weigh(strategy, sections, &measurement, req.Template)
	if err != nil {
		return Result{}, err
	}

	pages := paginate.Paginate(sections, weights, capacity)
	mat := paginate.Restore(req.Template, req.Materialized)
	mat.Clamp(len(pages))
	visible := mat.Visible(pages)

	// Pages partition sections in order, so boxes are taken by position.
	frames := make([]layout.Frame, 0, len(visible))
	next := 0
	for _, page := range visible {
		n := len(page.Sections)
		if next+n > len(measurement.Boxes) {
			return Result{}, fmt.Errorf("%w: %d boxes for page %d", weight.ErrStaleLayout, len(measurement.Boxes), page.Number)
		}
		boxes := append([]layout.Box(nil), measurement.Boxes[next:next+n]...)
		next += n
		frames = append(frames, p.engine.Frame(page.Number, boxes, req.Template))
	}

	return Result{
		Template:     req.Template,
		Locale:       req.Locale,
		Strategy:     strategy,
		Capacity:     capacity,
		Sections:     sections,
		Weights:      weights,
		Pages:        pages,
		Materialized: mat.Count(),
		Frames:       frames,
	}, nil
}

// weigh applies one strategy to every section. A stale measurement is
// replaced by a fresh layout pass before heights are trusted.
func (p *Pipeline) weigh(strategy weight.Strategy, sections []section.Section, m *layout.Measurement, t section.Template) ([]float64, error) {
	if strategy == weight.Words {
		return weight.WordCount{}.Weights(sections)
	}
	weights, err := weight.MeasuredHeight{Measurement: *m}.Weights(sections)
	if !errors.Is(err, weight.ErrStaleLayout) {
		return weights, err
	}
	fresh, err := p.engine.Layout(sections, t)
	if err != nil {
		return nil, err
	}
	*m = fresh
	return weight.MeasuredHeight{Measurement: fresh}.Weights(sections)
}

func (p *Pipeline) capacity(s weight.Strategy) float64 {
	configured := p.opts.CapacityPx
	if s == weight.Words {
		configured = p.opts.CapacityWords
	}
	if configured > 0 {
		return configured
	}
	return weight.DefaultCapacity(s, p.engine.Geometry())
}

// Export rasterizes and assembles the materialized pages of a run.
func (p *Pipeline) Export(ctx context.Context, res Result) ([]byte, error) {
	if p.exporter == nil {
		return nil, ErrExportUnavailable
	}
	return p.exporter.Export(ctx, res.Frames)
}
