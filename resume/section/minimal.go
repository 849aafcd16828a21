package section

import (
	"strings"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/model"
)

// minimalBuilder has no photo and renders every list as a single line.
type minimalBuilder struct{}

func (minimalBuilder) Template() Template  { return Minimal }
func (minimalBuilder) SupportsPhoto() bool { return false }

func (b minimalBuilder) Build(doc model.Resume, l i18n.Locale) []Section {
	return assemble(doc, l, b, b.SupportsPhoto())
}

func (minimalBuilder) heading(key string, l i18n.Locale) string {
	return i18n.Upper(i18n.T(key, l), l)
}

func (minimalBuilder) photo(key string, l i18n.Locale) Node {
	return Node{Role: RoleImage, ImageKey: key, Alt: i18n.T("profilePhoto", l)}
}

func (minimalBuilder) header(p model.PersonalInfo, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Align: AlignStart, Children: []Node{nameNode(p.FullName, l)}}
	if p.Title != "" {
		root.Children = append(root.Children, Node{Role: RoleMeta, Text: p.Title})
	}
	var contact []Node
	for _, v := range []string{p.Email, p.Phone, p.Address} {
		if v != "" {
			contact = append(contact, Node{Role: RoleMeta, Text: v})
		}
	}
	if len(contact) > 0 {
		root.Children = append(root.Children, Node{Role: RoleInline, Children: contact})
	}
	return root
}

func (b minimalBuilder) summary(text string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("professionalSummary", l), Children: []Node{
		{Role: RoleText, Text: text},
	}}
}

func (minimalBuilder) experience(e model.Experience, heading string, l i18n.Locale) Node {
	line := e.Company
	if e.Position != "" {
		line = e.Position + " · " + e.Company
	}
	root := Node{Role: RoleBlock, Title: heading, Children: []Node{
		{Role: RoleRow, Children: []Node{
			{Role: RoleStrong, Text: line},
			{Role: RoleMeta, Text: dateRange(e.StartDate, e.EndDate, l, true)},
		}},
	}}
	if e.Description != "" {
		root.Children = append(root.Children, Node{Role: RoleText, Text: e.Description})
	}
	return root
}

func (b minimalBuilder) education(items []model.Education, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Title: b.heading("education", l)}
	for _, edu := range items {
		line := edu.Institution
		if edu.Degree != "" {
			line = edu.Degree + " · " + edu.Institution
		}
		root.Children = append(root.Children, Node{Role: RoleRow, Children: []Node{
			{Role: RoleText, Text: line},
			{Role: RoleMeta, Text: dateRange(edu.StartDate, edu.EndDate, l, false)},
		}})
	}
	return root
}

func (b minimalBuilder) skills(items []string, l i18n.Locale) Node {
	return b.line("skills", items, l)
}

func (b minimalBuilder) certifications(items []string, l i18n.Locale) Node {
	return b.line("certifications", items, l)
}

func (b minimalBuilder) languages(items []string, l i18n.Locale) Node {
	return b.line("languages", items, l)
}

func (b minimalBuilder) line(key string, items []string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading(key, l), Children: []Node{
		{Role: RoleText, Text: strings.Join(items, " · ")},
	}}
}
