package section

import (
	"fmt"
	"strings"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/model"
)

// presenter renders the content of each section kind for one template.
// Ordering and filtering live in assemble so they stay template-independent.
type presenter interface {
	photo(key string, l i18n.Locale) Node
	header(p model.PersonalInfo, l i18n.Locale) Node
	summary(text string, l i18n.Locale) Node
	experience(e model.Experience, heading string, l i18n.Locale) Node
	education(items []model.Education, l i18n.Locale) Node
	skills(items []string, l i18n.Locale) Node
	certifications(items []string, l i18n.Locale) Node
	languages(items []string, l i18n.Locale) Node
	heading(key string, l i18n.Locale) string
}

func assemble(doc model.Resume, l i18n.Locale, p presenter, withPhoto bool) []Section {
	dir := l.Direction()
	var out []Section
	add := func(id string, kind Kind, root Node) {
		out = append(out, Section{ID: id, Kind: kind, Direction: dir, Root: root})
	}

	info := doc.PersonalInfo
	if key := strings.TrimSpace(info.ProfileImageKey); withPhoto && key != "" {
		add("photo", KindPhoto, p.photo(key, l))
	}
	if hasHeader(info) {
		add("header", KindHeader, p.header(trimInfo(info), l))
	}
	if summary := strings.TrimSpace(info.Summary); summary != "" {
		add("summary", KindSummary, p.summary(summary, l))
	}

	seen := map[string]bool{}
	first := true
	for i, exp := range doc.Experience {
		if strings.TrimSpace(exp.Company) == "" {
			continue
		}
		id := uniqueID(strings.TrimSpace(exp.ID), i, seen)
		seen[id] = true
		heading := ""
		if first {
			heading = p.heading("workExperience", l)
			first = false
		}
		add("experience:"+id, KindExperience, p.experience(trimExperience(exp), heading, l))
	}

	var educations []model.Education
	for _, edu := range doc.Education {
		if strings.TrimSpace(edu.Institution) == "" {
			continue
		}
		educations = append(educations, trimEducation(edu))
	}
	if len(educations) > 0 {
		add("education", KindEducation, p.education(educations, l))
	}
	if skills := model.NonBlank(doc.Skills); len(skills) > 0 {
		add("skills", KindSkills, p.skills(skills, l))
	}
	if certs := model.NonBlank(doc.Certifications); len(certs) > 0 {
		add("certifications", KindCertifications, p.certifications(certs, l))
	}
	if langs := model.NonBlank(doc.Languages); len(langs) > 0 {
		add("languages", KindLanguages, p.languages(langs, l))
	}
	return out
}

func hasHeader(p model.PersonalInfo) bool {
	for _, v := range []string{p.FullName, p.Title, p.Email, p.Phone, p.Address} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func trimInfo(p model.PersonalInfo) model.PersonalInfo {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Title = strings.TrimSpace(p.Title)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	return p
}

func trimExperience(e model.Experience) model.Experience {
	e.Company = strings.TrimSpace(e.Company)
	e.Position = strings.TrimSpace(e.Position)
	e.StartDate = strings.TrimSpace(e.StartDate)
	e.EndDate = strings.TrimSpace(e.EndDate)
	e.Description = strings.TrimSpace(e.Description)
	return e
}

func trimEducation(e model.Education) model.Education {
	e.Institution = strings.TrimSpace(e.Institution)
	e.Degree = strings.TrimSpace(e.Degree)
	e.StartDate = strings.TrimSpace(e.StartDate)
	e.EndDate = strings.TrimSpace(e.EndDate)
	return e
}

// dateRange formats "start - end"; an open end reads as the localised "present".
func dateRange(start, end string, l i18n.Locale, openEnded bool) string {
	if end == "" && openEnded {
		end = i18n.T("present", l)
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	}
	return start + " - " + end
}

// uniqueID keeps id when it is unused, otherwise falls back to the entry
// index and then to "<index>-<n>" until nothing in seen collides.
func uniqueID(id string, index int, seen map[string]bool) string {
	if id != "" && !seen[id] {
		return id
	}
	id = fmt.Sprintf("%d", index)
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%d-%d", index, n)
	}
	return id
}

func nameNode(fullName string, l i18n.Locale) Node {
	n := Node{Role: RoleName, Text: fullName}
	if fullName == "" {
		n.Placeholder = i18n.T("yourName", l)
	}
	return n
}

func textNodes(role Role, items []string) []Node {
	out := make([]Node, len(items))
	for i, item := range items {
		out[i] = Node{Role: role, Text: item}
	}
	return out
}
