package resumes

import (
	"time"

	"docbuilder-backend/resume/model"
)

// Record is a stored resume. The editable content is embedded so it
// serializes flat, the way the builder form submits it.
type Record struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Language      string `json:"language"`
	TemplateID    string `json:"templateId"`
	PagesToRender int    `json:"pagesToRender"`
	model.Resume
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the list view of a resume.
type Summary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	FullName   string    `json:"fullName"`
	Language   string    `json:"language"`
	TemplateID string    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r Record) Summary() Summary {
	return Summary{
		ID:         r.ID,
		Title:      r.Title,
		FullName:   r.PersonalInfo.FullName,
		Language:   r.Language,
		TemplateID: r.TemplateID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
