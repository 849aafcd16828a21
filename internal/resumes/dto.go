package resumes

import (
	"docbuilder-backend/resume/model"
	"docbuilder-backend/resume/service"
)

type listResponse struct {
	Items  []Summary `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

type draftPreviewRequest struct {
	Template     string `json:"template"`
	Locale       string `json:"locale"`
	Strategy     string `json:"strategy"`
	Materialized int    `json:"materialized"`
	model.Resume
}

type sectionWeight struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

type pageResponse struct {
	Number   int             `json:"number"`
	Total    float64         `json:"total"`
	Visible  bool            `json:"visible"`
	Sections []sectionWeight `json:"sections"`
}

type previewResponse struct {
	ResumeID     string         `json:"resumeId,omitempty"`
	Template     string         `json:"template"`
	Locale       string         `json:"locale"`
	Direction    string         `json:"direction"`
	Strategy     string         `json:"strategy"`
	Capacity     float64        `json:"capacity"`
	TotalPages   int            `json:"totalPages"`
	Materialized int            `json:"materialized"`
	CanAddPage   bool           `json:"canAddPage"`
	Pages        []pageResponse `json:"pages"`
}

func toPreviewResponse(resumeID string, res service.Result) previewResponse {
	out := previewResponse{
		ResumeID:     resumeID,
		Template:     string(res.Template),
		Locale:       string(res.Locale),
		Direction:    string(res.Locale.Direction()),
		Strategy:     string(res.Strategy),
		Capacity:     res.Capacity,
		TotalPages:   len(res.Pages),
		Materialized: res.Materialized,
		CanAddPage:   res.Materialized < len(res.Pages),
		Pages:        make([]pageResponse, 0, len(res.Pages)),
	}
	for _, p := range res.Pages {
		page := pageResponse{
			Number:   p.Number,
			Total:    p.Total,
			Visible:  p.Number <= res.Materialized,
			Sections: make([]sectionWeight, 0, len(p.Sections)),
		}
		for i, s := range p.Sections {
			w := 0.0
			if i < len(p.Weights) {
				w = p.Weights[i]
			}
			page.Sections = append(page.Sections, sectionWeight{ID: s.ID, Kind: string(s.Kind), Weight: w})
		}
		out.Pages = append(out.Pages, page)
	}
	return out
}
