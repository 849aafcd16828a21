package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docbuilder-backend/resume/model"
)

// PGRepo implements Repo using Postgres. Resume content is stored as JSON text.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, language, template_id, personal_info, experience, education, skills, certifications, languages, pages_to_render, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO resumes (
    id, user_id, title, language, template_id,
    personal_info, experience, education, skills, certifications, languages,
    profile_image_key, pages_to_render, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`
	content, err := encodeContent(rec.Resume)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err = r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Title,
		rec.Language,
		rec.TemplateID,
		content.personalInfo,
		content.experience,
		content.education,
		content.skills,
		content.certifications,
		content.languages,
		nullableString(rec.PersonalInfo.ProfileImageKey),
		rec.PagesToRender,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, userID, id string) (Record, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 AND id = $2 LIMIT 1`
	return scanRecord(r.DB.QueryRowContext(ctx, query, userID, id))
}

func (r *PGRepo) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	query := `SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM resumes WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) Update(ctx context.Context, rec Record) (Record, error) {
	query := `
UPDATE resumes SET
    title = $3,
    language = $4,
    template_id = $5,
    personal_info = $6,
    experience = $7,
    education = $8,
    skills = $9,
    certifications = $10,
    languages = $11,
    profile_image_key = $12,
    pages_to_render = $13,
    updated_at = now()
WHERE user_id = $1 AND id = $2
RETURNING ` + resumeColumns
	content, err := encodeContent(rec.Resume)
	if err != nil {
		return Record{}, err
	}
	return scanRecord(r.DB.QueryRowContext(ctx, query,
		rec.UserID,
		rec.ID,
		rec.Title,
		rec.Language,
		rec.TemplateID,
		content.personalInfo,
		content.experience,
		content.education,
		content.skills,
		content.certifications,
		content.languages,
		nullableString(rec.PersonalInfo.ProfileImageKey),
		rec.PagesToRender,
	))
}

func (r *PGRepo) SetPagesToRender(ctx context.Context, userID, id string, pages int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE resumes SET pages_to_render = $3, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, id, pages)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type encodedContent struct {
	personalInfo   string
	experience     string
	education      string
	skills         string
	certifications string
	languages      string
}

func encodeContent(doc model.Resume) (encodedContent, error) {
	var out encodedContent
	fields := []struct {
		dst *string
		val any
	}{
		{&out.personalInfo, doc.PersonalInfo},
		{&out.experience, nonNil(doc.Experience)},
		{&out.education, nonNil(doc.Education)},
		{&out.skills, nonNil(doc.Skills)},
		{&out.certifications, nonNil(doc.Certifications)},
		{&out.languages, nonNil(doc.Languages)},
	}
	for _, f := range fields {
		raw, err := json.Marshal(f.val)
		if err != nil {
			return encodedContent{}, fmt.Errorf("encode resume content: %w", err)
		}
		*f.dst = string(raw)
	}
	return out, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var personalInfo, experience, education, skills, certifications, languages sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Language,
		&rec.TemplateID,
		&personalInfo,
		&experience,
		&education,
		&skills,
		&certifications,
		&languages,
		&rec.PagesToRender,
		&rec.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	decode := []struct {
		raw sql.NullString
		dst any
	}{
		{personalInfo, &rec.PersonalInfo},
		{experience, &rec.Experience},
		{education, &rec.Education},
		{skills, &rec.Skills},
		{certifications, &rec.Certifications},
		{languages, &rec.Languages},
	}
	for _, d := range decode {
		if !d.raw.Valid || d.raw.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(d.raw.String), d.dst); err != nil {
			return Record{}, fmt.Errorf("decode resume %s content: %w", rec.ID, err)
		}
	}
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	} else {
		rec.UpdatedAt = rec.CreatedAt
	}
	return rec, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
