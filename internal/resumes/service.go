package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/internal/shared/metrics"
	"docbuilder-backend/internal/shared/storage/object"
	"docbuilder-backend/internal/shared/telemetry"
	"docbuilder-backend/internal/shared/util"
	"docbuilder-backend/resume/export"
	"docbuilder-backend/resume/model"
	"docbuilder-backend/resume/paginate"
	"docbuilder-backend/resume/section"
	"docbuilder-backend/resume/service"
	"docbuilder-backend/resume/weight"
)

const maxTitleLength = 200

// ArchivePath is the authenticated route serving archived exports to their
// owner.
const ArchivePath = "/api/v1/files/"

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// Input is the editable part of a resume as submitted by clients.
type Input struct {
	Title      string `json:"title"`
	Language   string `json:"language"`
	TemplateID string `json:"templateId"`
	model.Resume
}

// RenderOptions override the stored template and locale for one request.
type RenderOptions struct {
	Template string
	Locale   string
	Strategy string
}

// Exported is a finished PDF.
type Exported struct {
	Data       []byte
	Filename   string
	Pages      int
	ArchiveURL string
}

// Service contains business logic for resumes.
type Service struct {
	Repo     Repo
	Pipeline *service.Pipeline
	Store    object.Store
	// ArchiveExports keeps a copy of every exported PDF in the object store.
	ArchiveExports bool
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Record, error) {
	rec := Record{
		ID:            uuid.NewString(),
		UserID:        userID,
		PagesToRender: 1,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.apply(&rec, in); err != nil {
		return Record{}, err
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	rec.UpdatedAt = rec.CreatedAt
	return rec, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (Record, error) {
	if strings.TrimSpace(id) == "" {
		return Record{}, ErrNotFound
	}
	return s.Repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.List(ctx, userID, limit, offset)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.Repo.Count(ctx, userID)
}

// Update replaces the editable fields. Switching template resets the
// materialized page count to 1.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Record, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return Record{}, err
	}
	previous := rec.TemplateID
	if err := s.apply(&rec, in); err != nil {
		return Record{}, err
	}
	if rec.TemplateID != previous {
		rec.PagesToRender = 1
	}
	return s.Repo.Update(ctx, rec)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

// UploadImage stores a cropped profile photo and points the resume at it.
func (s *Service) UploadImage(ctx context.Context, userID, id, fileName string, r io.Reader) (object.Object, error) {
	if s.Store == nil {
		return object.Object{}, errors.New("object store not configured")
	}
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return object.Object{}, err
	}
	contentType, body, err := object.Sniff(r)
	if err != nil {
		return object.Object{}, err
	}
	if !allowedImageTypes[contentType] {
		return object.Object{}, fmt.Errorf("%w: %s", ErrInvalidImage, contentType)
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = "profile"
	}
	obj, err := object.Save(ctx, s.Store, userID, "profile", fileName, body)
	if err != nil {
		return object.Object{}, err
	}
	rec.PersonalInfo.ProfileImageKey = obj.Key
	rec.PersonalInfo.ProfileImageURL = obj.URL
	if _, err := s.Repo.Update(ctx, rec); err != nil {
		return object.Object{}, err
	}
	return obj, nil
}

// Preview paginates a stored resume.
func (s *Service) Preview(ctx context.Context, userID, id string, opts RenderOptions) (service.Result, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return service.Result{}, err
	}
	req, err := s.request(rec, opts)
	if err != nil {
		return service.Result{}, err
	}
	return s.run(req)
}

// AddPage materializes one more page and persists the counter.
func (s *Service) AddPage(ctx context.Context, userID, id string, opts RenderOptions) (service.Result, bool, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return service.Result{}, false, err
	}
	req, err := s.request(rec, opts)
	if err != nil {
		return service.Result{}, false, err
	}
	res, err := s.run(req)
	if err != nil {
		return service.Result{}, false, err
	}

	mat := paginate.Restore(res.Template, res.Materialized)
	added := mat.AddPage(len(res.Pages))
	switch {
	case string(res.Template) != rec.TemplateID:
		// Adding a page under another template adopts that template.
		rec.TemplateID = string(res.Template)
		rec.PagesToRender = mat.Count()
		if _, err := s.Repo.Update(ctx, rec); err != nil {
			return service.Result{}, false, err
		}
	case !added && mat.Count() == rec.PagesToRender:
		return res, false, nil
	default:
		if err := s.Repo.SetPagesToRender(ctx, userID, id, mat.Count()); err != nil {
			return service.Result{}, false, err
		}
	}
	req.Materialized = mat.Count()
	res, err = s.run(req)
	return res, added, err
}

// Export renders the materialized pages of a stored resume to PDF.
func (s *Service) Export(ctx context.Context, userID, id string, opts RenderOptions) (Exported, error) {
	start := time.Now()
	metrics.IncExportStarted()

	out, err := s.export(ctx, userID, id, opts)
	metrics.ObserveExportDurationMs(metrics.Since(start))
	if err != nil {
		metrics.IncExportFailed()
		return Exported{}, err
	}
	metrics.IncExportCompleted(out.Pages)
	return out, nil
}

func (s *Service) export(ctx context.Context, userID, id string, opts RenderOptions) (Exported, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return Exported{}, err
	}
	req, err := s.request(rec, opts)
	if err != nil {
		return Exported{}, err
	}
	res, err := s.run(req)
	if err != nil {
		return Exported{}, err
	}
	data, err := s.Pipeline.Export(ctx, res)
	if err != nil {
		return Exported{}, err
	}

	out := Exported{
		Data:     data,
		Filename: export.Filename(rec.PersonalInfo.FullName),
		Pages:    len(res.Frames),
	}
	if s.ArchiveExports && s.Store != nil {
		obj, err := object.Save(ctx, s.Store, userID, "exports", out.Filename, bytes.NewReader(data))
		if err != nil {
			telemetry.Warn("resume.export_archive_failed", map[string]any{
				"resume_id": id,
				"error":     err.Error(),
			})
		} else {
			out.ArchiveURL = ArchivePath + obj.Key
		}
	}
	return out, nil
}

// PreviewDraft paginates unsaved form state.
func (s *Service) PreviewDraft(doc model.Resume, materialized int, opts RenderOptions) (service.Result, error) {
	if err := doc.Validate(); err != nil {
		return service.Result{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	t, locale, strategy, err := parseOptions(opts, section.Modern, i18n.English)
	if err != nil {
		return service.Result{}, err
	}
	return s.run(service.Request{
		Resume:       doc,
		Template:     t,
		Locale:       locale,
		Materialized: materialized,
		Strategy:     strategy,
	})
}

func (s *Service) run(req service.Request) (service.Result, error) {
	if s.Pipeline == nil {
		return service.Result{}, errors.New("pagination pipeline not configured")
	}
	res, err := s.Pipeline.Run(req)
	if err != nil {
		return service.Result{}, err
	}
	metrics.ObservePreview(len(res.Pages))
	return res, nil
}

// request resolves the stored template and locale against per-request
// overrides. A template override that differs from the stored one starts
// from a single materialized page.
func (s *Service) request(rec Record, opts RenderOptions) (service.Request, error) {
	stored, err := section.ParseTemplate(rec.TemplateID)
	if err != nil {
		stored = section.Modern
	}
	storedLocale, err := i18n.ParseLocale(rec.Language)
	if err != nil {
		storedLocale = i18n.English
	}
	t, locale, strategy, err := parseOptions(opts, stored, storedLocale)
	if err != nil {
		return service.Request{}, err
	}
	mat := paginate.Restore(stored, rec.PagesToRender)
	mat.SetTemplate(t)
	return service.Request{
		Resume:       rec.Resume,
		Template:     t,
		Locale:       locale,
		Materialized: mat.Count(),
		Strategy:     strategy,
	}, nil
}

func parseOptions(opts RenderOptions, t section.Template, locale i18n.Locale) (section.Template, i18n.Locale, weight.Strategy, error) {
	var err error
	if strings.TrimSpace(opts.Template) != "" {
		if t, err = section.ParseTemplate(opts.Template); err != nil {
			return "", "", "", fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}
	if strings.TrimSpace(opts.Locale) != "" {
		if locale, err = i18n.ParseLocale(opts.Locale); err != nil {
			return "", "", "", fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}
	var strategy weight.Strategy
	if strings.TrimSpace(opts.Strategy) != "" {
		if strategy, err = weight.ParseStrategy(opts.Strategy); err != nil {
			return "", "", "", fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}
	return t, locale, strategy, nil
}

// apply validates in and copies it onto rec.
func (s *Service) apply(rec *Record, in Input) error {
	title := strings.TrimSpace(in.Title)
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title too long", ErrInvalidInput)
	}
	if err := in.Resume.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	t, err := section.ParseTemplate(in.TemplateID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	locale := i18n.English
	if strings.TrimSpace(in.Language) != "" {
		if locale, err = i18n.ParseLocale(in.Language); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}

	key := strings.TrimSpace(in.PersonalInfo.ProfileImageKey)
	if key != "" && !util.OwnsKey(rec.UserID, key) {
		return fmt.Errorf("%w: profile image belongs to another user", ErrInvalidInput)
	}
	doc := in.Resume
	doc.PersonalInfo.ProfileImageKey = key
	doc.PersonalInfo.ProfileImageURL = ""
	if key != "" && s.Store != nil {
		doc.PersonalInfo.ProfileImageURL = s.Store.PublicURL(key)
	}

	if title == "" {
		title = strings.TrimSpace(doc.PersonalInfo.FullName)
	}
	rec.Title = title
	rec.Language = string(locale)
	rec.TemplateID = string(t)
	rec.Resume = doc
	return nil
}
