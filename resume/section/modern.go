package section

import (
	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/model"
)

// modernBuilder: centred header with photo, capitalised accent headings, skill pills.
type modernBuilder struct{}

func (modernBuilder) Template() Template  { return Modern }
func (modernBuilder) SupportsPhoto() bool { return true }

func (b modernBuilder) Build(doc model.Resume, l i18n.Locale) []Section {
	return assemble(doc, l, b, b.SupportsPhoto())
}

func (modernBuilder) heading(key string, l i18n.Locale) string {
	return i18n.Upper(i18n.T(key, l), l)
}

func (modernBuilder) photo(key string, l i18n.Locale) Node {
	return Node{Role: RoleImage, ImageKey: key, Alt: i18n.T("profilePhoto", l), Align: AlignCenter}
}

func (modernBuilder) header(p model.PersonalInfo, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Align: AlignCenter, Children: []Node{nameNode(p.FullName, l)}}
	if p.Title != "" {
		root.Children = append(root.Children, Node{Role: RoleSubtitle, Text: p.Title})
	}
	var contact []Node
	for _, v := range []string{p.Email, p.Phone, p.Address} {
		if v != "" {
			contact = append(contact, Node{Role: RoleMeta, Text: v})
		}
	}
	if len(contact) > 0 {
		root.Children = append(root.Children, Node{Role: RoleInline, Align: AlignCenter, Children: contact})
	}
	return root
}

func (b modernBuilder) summary(text string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("professionalSummary", l), Children: []Node{
		{Role: RoleText, Text: text},
	}}
}

func (modernBuilder) experience(e model.Experience, heading string, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Title: heading, Children: []Node{
		{Role: RoleRow, Children: []Node{
			{Role: RoleStrong, Text: e.Position},
			{Role: RoleMeta, Text: dateRange(e.StartDate, e.EndDate, l, true)},
		}},
		{Role: RoleAccent, Text: e.Company},
	}}
	if e.Description != "" {
		root.Children = append(root.Children, Node{Role: RoleText, Text: e.Description})
	}
	return root
}

func (b modernBuilder) education(items []model.Education, l i18n.Locale) Node {
	root := Node{Role: RoleBlock, Title: b.heading("education", l)}
	for _, edu := range items {
		root.Children = append(root.Children, Node{Role: RoleRow, Children: []Node{
			{Role: RoleBlock, Children: []Node{
				{Role: RoleStrong, Text: edu.Degree},
				{Role: RoleAccent, Text: edu.Institution},
			}},
			{Role: RoleMeta, Text: dateRange(edu.StartDate, edu.EndDate, l, false)},
		}})
	}
	return root
}

func (b modernBuilder) skills(items []string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("skills", l), Children: []Node{
		{Role: RoleChips, Children: textNodes(RoleChip, items)},
	}}
}

func (b modernBuilder) certifications(items []string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("certifications", l), Children: textNodes(RoleText, items)}
}

func (b modernBuilder) languages(items []string, l i18n.Locale) Node {
	return Node{Role: RoleBlock, Title: b.heading("languages", l), Children: []Node{
		{Role: RoleChips, Children: textNodes(RoleChip, items)},
	}}
}
