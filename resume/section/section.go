package section

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"docbuilder-backend/internal/i18n"
)

// Kind names the content a section carries.
type Kind string

const (
	KindPhoto          Kind = "photo"
	KindHeader         Kind = "header"
	KindSummary        Kind = "summary"
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindSkills         Kind = "skills"
	KindCertifications Kind = "certifications"
	KindLanguages      Kind = "languages"
)

// Role tells the layout engine how to present a node.
type Role string

const (
	RoleBlock    Role = "block"    // vertical stack of children
	RoleRow      Role = "row"      // main column plus a trailing aside (last child)
	RoleInline   Role = "inline"   // horizontal flow, wraps
	RoleChips    Role = "chips"    // horizontal flow of pills
	RoleChip     Role = "chip"
	RoleName     Role = "name"
	RoleSubtitle Role = "subtitle"
	RoleStrong   Role = "strong"
	RoleAccent   Role = "accent"
	RoleText     Role = "text"
	RoleMeta     Role = "meta"
	RoleImage    Role = "image"
)

// Align is resolved against the section direction: start is right for rtl.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
)

// Node is one element of a section's content tree.
type Node struct {
	Role        Role   `json:"role"`
	Text        string `json:"text,omitempty"`
	Label       string `json:"label,omitempty"`
	Title       string `json:"title,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Alt         string `json:"alt,omitempty"`
	ImageKey    string `json:"imageKey,omitempty"`
	Align       Align  `json:"align,omitempty"`
	Children    []Node `json:"children,omitempty"`
}

// Display returns what the node shows: its text, or the placeholder when empty.
func (n Node) Display() string {
	if n.Text != "" {
		return n.Text
	}
	return n.Placeholder
}

// Section is an atomic, orderable unit of resume content. It is rebuilt on
// every change and never persisted.
type Section struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	Direction i18n.Direction `json:"direction"`
	Root      Node           `json:"root"`
}

// Fingerprint identifies the exact content of the section. Layout results
// carry it so stale measurements can be detected.
func (s Section) Fingerprint() string {
	raw, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// IDs returns the section ids in order.
func IDs(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}
