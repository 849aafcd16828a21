package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/internal/invoices"
	"docbuilder-backend/resume/export"
	"docbuilder-backend/resume/layout"
	"docbuilder-backend/resume/model"
	"docbuilder-backend/resume/paginate"
	"docbuilder-backend/resume/render"
	"docbuilder-backend/resume/section"
	"docbuilder-backend/resume/service"
	"docbuilder-backend/resume/weight"
)

func main() {
	outDir := flag.String("out", "./out", "output directory")
	templateName := flag.String("template", "modern", "resume template: modern, classic or minimal")
	localeName := flag.String("locale", "english", "document locale")
	strategyName := flag.String("strategy", "height", "pagination strategy: height or words")
	all := flag.Bool("all", true, "materialize every computed page before exporting")
	flag.Parse()

	if err := run(*outDir, *templateName, *localeName, *strategyName, *all); err != nil {
		fmt.Fprintf(os.Stderr, "renderdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(outDir, templateName, localeName, strategyName string, all bool) error {
	t, err := section.ParseTemplate(templateName)
	if err != nil {
		return err
	}
	locale, err := i18n.ParseLocale(localeName)
	if err != nil {
		return err
	}
	strategy, err := weight.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	fonts, err := layout.DefaultFonts()
	if err != nil {
		return err
	}
	engine := layout.NewEngine(layout.DefaultGeometry(), fonts)
	rasterizer := render.NewRasterizer(fonts, nil)
	pipeline := service.NewPipeline(engine, export.NewExporter(rasterizer, rasterizer.Scale), service.Options{Strategy: strategy})

	req := service.Request{Resume: sampleResume(), Template: t, Locale: locale, Materialized: 1}
	res, err := pipeline.Run(req)
	if err != nil {
		return err
	}
	if all {
		mat := paginate.Restore(t, res.Materialized)
		for mat.AddPage(len(res.Pages)) {
		}
		req.Materialized = mat.Count()
		if res, err = pipeline.Run(req); err != nil {
			return err
		}
	}

	for _, page := range res.Pages {
		fmt.Printf("page %d:", page.Number)
		for _, s := range page.Sections {
			fmt.Printf(" %s", s.ID)
		}
		fmt.Println()
	}

	data, err := pipeline.Export(context.Background(), res)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	resumePath := filepath.Join(outDir, export.Filename(req.Resume.PersonalInfo.FullName))
	if err := os.WriteFile(resumePath, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("OK: wrote %s (%d of %d pages, capacity %.0f)\n", resumePath, len(res.Frames), len(res.Pages), res.Capacity)

	renderer, err := invoices.NewRenderer("", "")
	if err != nil {
		return err
	}
	inv := sampleInvoice(string(locale))
	pdfBytes, err := renderer.Render(inv)
	if err != nil {
		return err
	}
	invoicePath := filepath.Join(outDir, invoices.Filename(inv))
	if err := os.WriteFile(invoicePath, pdfBytes, 0o644); err != nil {
		return err
	}
	fmt.Printf("OK: wrote %s\n", invoicePath)
	return nil
}

func sampleResume() model.Resume {
	return model.Resume{
		PersonalInfo: model.PersonalInfo{
			FullName: "Jordan Lee",
			Title:    "Senior Backend Engineer",
			Email:    "jordan.lee@example.com",
			Phone:    "+1-555-0102",
			Address:  "Austin, TX",
			Summary:  "Backend engineer with 8+ years of experience building resilient APIs and data services. Led platform modernization initiatives spanning cloud migration and observability adoption.",
		},
		Experience: []model.Experience{
			{
				ID:          "exp_1",
				Company:     "Acme Logistics",
				Position:    "Senior Backend Engineer",
				StartDate:   "2021-04",
				EndDate:     "Present",
				Description: "Designed a routing service that reduced shipment latency by 18%. Implemented distributed tracing to cut incident triage time by 35%.",
			},
			{
				ID:          "exp_2",
				Company:     "Blue Harbor Systems",
				Position:    "Backend Engineer",
				StartDate:   "2018-01",
				EndDate:     "2021-03",
				Description: "Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
		Education: []model.Education{
			{ID: "edu_1", Institution: "University of Texas", Degree: "BSc Computer Science", StartDate: "2012", EndDate: "2016"},
		},
		Skills:         []string{"Go", "PostgreSQL", "Redis", "AWS", "Docker", "Kubernetes"},
		Certifications: []string{"AWS Solutions Architect"},
		Languages:      []string{"English", "Spanish"},
	}
}

func sampleInvoice(language string) invoices.Invoice {
	items, totals := invoices.ComputeTotals([]invoices.Item{
		{Description: "Resume design", Quantity: 1, Price: 120},
		{Description: "Cover letter review", Quantity: 2, Price: 35.5},
	}, 8)
	return invoices.Invoice{
		InvoiceNumber: 1,
		ClientName:    "Acme Logistics",
		ClientEmail:   "billing@acme.example",
		CompanyName:   "Docbuilder Studio",
		Items:         items,
		TaxPercentage: 8,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.Tax,
		TotalAmount:   totals.Total,
		Status:        invoices.StatusDraft,
		Language:      language,
		CreatedAt:     time.Now().UTC(),
	}
}
