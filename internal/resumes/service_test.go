package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"docbuilder-backend/internal/shared/storage/object/local"
	"docbuilder-backend/internal/shared/util"
	"docbuilder-backend/resume/export"
	"docbuilder-backend/resume/layout"
	"docbuilder-backend/resume/model"
	"docbuilder-backend/resume/render"
	"docbuilder-backend/resume/service"
)

func newService(t *testing.T) *Service {
	t.Helper()
	fonts, err := layout.DefaultFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	store := local.New(t.TempDir(), "http://localhost:8080/files")
	engine := layout.NewEngine(layout.DefaultGeometry(), fonts)
	rasterizer := render.NewRasterizer(fonts, store)
	return &Service{
		Repo:     NewMemoryRepo(),
		Pipeline: service.NewPipeline(engine, export.NewExporter(rasterizer, rasterizer.Scale), service.Options{}),
		Store:    store,
	}
}

func longInput(entries int) Input {
	in := Input{
		TemplateID: "modern",
		Resume: model.Resume{
			PersonalInfo: model.PersonalInfo{FullName: "Ayesha Khan", Title: "Engineer", Email: "a@example.com"},
			Skills:       []string{"Go", "SQL"},
		},
	}
	for i := 0; i < entries; i++ {
		in.Experience = append(in.Experience, model.Experience{
			ID:          fmt.Sprintf("e%d", i),
			Company:     fmt.Sprintf("Company %d", i),
			Position:    "Engineer",
			StartDate:   "2020-01",
			Description: strings.Repeat("Built and operated services for many customers. ", 6),
		})
	}
	return in
}

func TestCreateAppliesDefaultsAndOwnership(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, "user-1", longInput(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Title != "Ayesha Khan" || rec.Language != "english" || rec.PagesToRender != 1 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if _, err := svc.Get(ctx, "user-2", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
	if err := svc.Delete(ctx, "user-2", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting another user's resume, got %v", err)
	}
	if _, err := svc.Update(ctx, "user-2", rec.ID, longInput(1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating another user's resume, got %v", err)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	bad := longInput(0)
	bad.TemplateID = "fancy"
	if _, err := svc.Create(ctx, "user-1", bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for template, got %v", err)
	}
	bad = longInput(0)
	bad.PersonalInfo.Email = "nope"
	if _, err := svc.Create(ctx, "user-1", bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for email, got %v", err)
	}
	bad = longInput(0)
	bad.PersonalInfo.ProfileImageKey = util.HashUserKey("someone-else") + "/profile/1_a.png"
	if _, err := svc.Create(ctx, "user-1", bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for foreign image key, got %v", err)
	}
}

func TestAddPageGrowsUntilAllPagesMaterialized(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	rec, err := svc.Create(ctx, "user-1", longInput(10))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, err := svc.Preview(ctx, "user-1", rec.ID, RenderOptions{})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	total := len(res.Pages)
	if total < 2 {
		t.Fatalf("expected a multi-page resume, got %d pages", total)
	}
	if res.Materialized != 1 || len(res.Frames) != 1 {
		t.Fatalf("expected one materialized page, got %d", res.Materialized)
	}

	for i := 2; i <= total; i++ {
		res, added, err := svc.AddPage(ctx, "user-1", rec.ID, RenderOptions{})
		if err != nil {
			t.Fatalf("AddPage: %v", err)
		}
		if !added || res.Materialized != i {
			t.Fatalf("step %d: added=%v materialized=%d", i, added, res.Materialized)
		}
	}
	_, added, err := svc.AddPage(ctx, "user-1", rec.ID, RenderOptions{})
	if err != nil || added {
		t.Fatalf("expected no-op at the last page, added=%v err=%v", added, err)
	}
	stored, _ := svc.Get(ctx, "user-1", rec.ID)
	if stored.PagesToRender != total {
		t.Fatalf("persisted counter = %d, want %d", stored.PagesToRender, total)
	}

	// A template override previews from a single page.
	res, err = svc.Preview(ctx, "user-1", rec.ID, RenderOptions{Template: "classic"})
	if err != nil {
		t.Fatalf("Preview classic: %v", err)
	}
	if res.Materialized != 1 {
		t.Fatalf("template switch should reset to 1, got %d", res.Materialized)
	}

	in := longInput(10)
	in.TemplateID = "minimal"
	updated, err := svc.Update(ctx, "user-1", rec.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PagesToRender != 1 {
		t.Fatalf("template change should persist counter 1, got %d", updated.PagesToRender)
	}
}

func TestExportProducesMaterializedPages(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	rec, err := svc.Create(ctx, "user-1", longInput(10))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := svc.AddPage(ctx, "user-1", rec.ID, RenderOptions{}); err != nil {
		t.Fatalf("AddPage: %v", err)
	}

	out, err := svc.Export(ctx, "user-1", rec.ID, RenderOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.Filename != "resume-Ayesha Khan.pdf" || out.Pages != 2 {
		t.Fatalf("unexpected export %q pages=%d", out.Filename, out.Pages)
	}
	info, err := export.Inspect(out.Data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(info.Pages) != 2 {
		t.Fatalf("pdf pages = %d", len(info.Pages))
	}
}

func TestExportEmptyResume(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	rec, err := svc.Create(ctx, "user-1", Input{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Export(ctx, "user-1", rec.ID, RenderOptions{}); !errors.Is(err, export.ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}

func TestUploadImageIsUsedOnExport(t *testing.T) {
	svc := newService(t)
	svc.ArchiveExports = true
	ctx := context.Background()
	rec, err := svc.Create(ctx, "user-1", longInput(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UploadImage(ctx, "user-1", rec.ID, "note.txt", strings.NewReader("plain text")); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	obj, err := svc.UploadImage(ctx, "user-1", rec.ID, "me.png", &buf)
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if !strings.HasPrefix(obj.Key, util.HashUserKey("user-1")+"/profile/") || obj.ContentType != "image/png" {
		t.Fatalf("unexpected object %+v", obj)
	}
	stored, _ := svc.Get(ctx, "user-1", rec.ID)
	if stored.PersonalInfo.ProfileImageKey != obj.Key || stored.PersonalInfo.ProfileImageURL != obj.URL {
		t.Fatalf("resume not pointed at image: %+v", stored.PersonalInfo)
	}

	out, err := svc.Export(ctx, "user-1", rec.ID, RenderOptions{})
	if err != nil {
		t.Fatalf("Export with image: %v", err)
	}
	if !strings.Contains(out.ArchiveURL, "/exports/") {
		t.Fatalf("expected archived export url, got %q", out.ArchiveURL)
	}
}

func TestPreviewDraftValidatesOptions(t *testing.T) {
	svc := newService(t)
	if _, err := svc.PreviewDraft(model.Resume{}, 1, RenderOptions{Strategy: "lines"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	res, err := svc.PreviewDraft(longInput(2).Resume, 1, RenderOptions{Locale: "ur", Strategy: "words"})
	if err != nil {
		t.Fatalf("PreviewDraft: %v", err)
	}
	if res.Locale != "urdu" || res.Strategy != "words" || len(res.Pages) == 0 {
		t.Fatalf("unexpected result locale=%s strategy=%s pages=%d", res.Locale, res.Strategy, len(res.Pages))
	}
}
