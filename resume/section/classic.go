package section

import (
	"strings"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/model"
)

// classicBuilder: left-aligned header with photo, labelled contact lines,
// title-case headings and comma-separated lists.
type classicBuilder struct{}

func (classicBuilder) Template() Template  { return Classic }
func (classicBuilder) SupportsPhoto() bool { return true }

func (b classicBuilder) Build(doc model.Resume, l i18n.Locale) []Section {
	return assemble(doc, l, b, b.SupportsPhoto())
}

func (classicBuilder) heading(key string, l i18n.Locale) string {
	return i18n.T(key, l)
}

func (classicBuilder) photo(key string, l i18n.Locale) Node {
	return Node{Role: RoleImage, ImageKey: key, Alt: i18n.T("profilePhoto", l), Align: AlignStart}
}

func (classicBuilder) header(p model.PersonalInfo, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Align: AlignStart, Children: []Node{nameNode(p.FullName, l)}}
	if p.Title != "" {
		root.Children = append(root.Children, Node{Role: RoleSubtitle, Text: p.Title})
	}
	contact := []struct{ key, value string }{
		{"email", p.Email},
		{"phone", p.Phone},
		{"address", p.Address},
	}
	for _, c := range contact {
		if c.value != "" {
			root.Children = append(root.Children, Node{Role: RoleMeta, Label: i18n.T(c.key, l), Text: c.value})
		}
	}
	return root
}

func (b classicBuilder) summary(text string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("professionalSummary", l), Children: []Node{
		{Role: RoleText, Text: text},
	}}
}

func (classicBuilder) experience(e model.Experience, heading string, l i18n.Locale) Node {
	role := e.Company
	if e.Position != "" {
		role = e.Position + ", " + e.Company
	}
	root := Node{Role: RoleBlock, Title: heading, Children: []Node{
		{Role: RoleStrong, Text: role},
		{Role: RoleMeta, Text: dateRange(e.StartDate, e.EndDate, l, true)},
	}}
	if e.Description != "" {
		root.Children = append(root.Children, Node{Role: RoleText, Text: e.Description})
	}
	return root
}

func (b classicBuilder) education(items []model.Education, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Title: b.heading("education", l)}
	for _, edu := range items {
		entry := Node{Role: RoleBlock, Children: []Node{{Role: RoleStrong, Text: edu.Institution}}}
		if edu.Degree != "" {
			entry.Children = append(entry.Children, Node{Role: RoleText, Text: edu.Degree})
		}
		if dates := dateRange(edu.StartDate, edu.EndDate, l, false); dates != "" {
			entry.Children = append(entry.Children, Node{Role: RoleMeta, Text: dates})
		}
		root.Children = append(root.Children, entry)
	}
	return root
}

func (b classicBuilder) skills(items []string, l i18n.Locale) Node {
	return b.list("skills", items, l)
}

func (b classicBuilder) certifications(items []string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("certifications", l), Children: textNodes(RoleText, items)}
}

func (b classicBuilder) languages(items []string, l i18n.Locale) Node {
	return b.list("languages", items, l)
}

func (b classicBuilder) list(key string, items []string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading(key, l), Children: []Node{
		{Role: RoleText, Text: strings.Join(items, ", ")},
	}}
}
