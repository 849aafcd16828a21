package layout

import (
	"image/color"
	"strconv"

	"docbuilder-backend/resume/section"
)

// RunStyle captures the inline run formatting of a node.
type RunStyle struct {
	Bold  bool
	Size  float64
	Color string
}

// LineHeight is the vertical advance of one wrapped line.
func (s RunStyle) LineHeight() float64 {
	return s.Size * 1.4
}

// Theme holds the colours and run styles of one template.
type Theme struct {
	Background  string
	Heading     RunStyle
	HeadingRule string
	// HeaderRule is the thickness of the accent rule under the header, 0 for none.
	HeaderRule  float64
	HeaderColor string
	ChipFill    string
	Roles       map[section.Role]RunStyle
	PhotoSize   float64
}

const (
	HeadingColor = "2563EB"
	NameColor    = "1F2937"
	BodyColor    = "374151"
	MetaColor    = "4B5563"
	White        = "FFFFFF"
)

var themes = map[section.Template]Theme{
	section.Modern: {
		Background:  White,
		Heading:     RunStyle{Bold: true, Size: 18, Color: HeadingColor},
		HeadingRule: "D1D5DB",
		HeaderRule:  4,
		HeaderColor: HeadingColor,
		ChipFill:    "DBEAFE",
		PhotoSize:   96,
		Roles: map[section.Role]RunStyle{
			section.RoleName:     {Bold: true, Size: 30, Color: NameColor},
			section.RoleSubtitle: {Size: 20, Color: HeadingColor},
			section.RoleStrong:   {Bold: true, Size: 16, Color: NameColor},
			section.RoleAccent:   {Size: 16, Color: HeadingColor},
			section.RoleText:     {Size: 14, Color: BodyColor},
			section.RoleMeta:     {Size: 14, Color: MetaColor},
			section.RoleChip:     {Size: 14, Color: "1E40AF"},
		},
	},
	section.Classic: {
		Background:  "FFFDF8",
		Heading:     RunStyle{Bold: true, Size: 18, Color: "111111"},
		HeadingRule: "111111",
		PhotoSize:   88,
		Roles: map[section.Role]RunStyle{
			section.RoleName:     {Bold: true, Size: 28, Color: "111111"},
			section.RoleSubtitle: {Size: 18, Color: "333333"},
			section.RoleStrong:   {Bold: true, Size: 16, Color: "111111"},
			section.RoleAccent:   {Size: 16, Color: "333333"},
			section.RoleText:     {Size: 14, Color: "222222"},
			section.RoleMeta:     {Size: 13, Color: "555555"},
			section.RoleChip:     {Size: 14, Color: "222222"},
		},
	},
	section.Minimal: {
		Background: White,
		Heading:    RunStyle{Bold: true, Size: 13, Color: MetaColor},
		PhotoSize:  72,
		Roles: map[section.Role]RunStyle{
			section.RoleName:     {Bold: true, Size: 24, Color: "000000"},
			section.RoleSubtitle: {Size: 16, Color: MetaColor},
			section.RoleStrong:   {Bold: true, Size: 15, Color: "000000"},
			section.RoleAccent:   {Size: 15, Color: BodyColor},
			section.RoleText:     {Size: 14, Color: BodyColor},
			section.RoleMeta:     {Size: 13, Color: MetaColor},
			section.RoleChip:     {Size: 14, Color: BodyColor},
		},
	},
}

// ThemeFor returns the theme of a template, falling back to Modern.
func ThemeFor(t section.Template) Theme {
	if th, ok := themes[t]; ok {
		return th
	}
	return themes[section.Modern]
}

// Style returns the run style of a node role.
func (t Theme) Style(role section.Role) RunStyle {
	if s, ok := t.Roles[role]; ok {
		return s
	}
	return t.Roles[section.RoleText]
}

// RGBA parses a six digit hex colour. Invalid input yields opaque black.
func RGBA(hex string) color.RGBA {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
