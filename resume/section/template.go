package section

import (
	"errors"
	"strings"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/resume/model"
)

// Template is the closed set of visual resume templates.
type Template string

const (
	Modern  Template = "modern"
	Classic Template = "classic"
	Minimal Template = "minimal"
)

var ErrUnknownTemplate = errors.New("unknown template")

// ParseTemplate maps a stored template id onto a Template. Empty means Modern.
func ParseTemplate(raw string) (Template, error) {
	switch Template(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Modern:
		return Modern, nil
	case Classic:
		return Classic, nil
	case Minimal:
		return Minimal, nil
	}
	return "", ErrUnknownTemplate
}

// Builder turns a resume into the ordered sections of one template.
type Builder interface {
	Template() Template
	// SupportsPhoto reports whether the template has a leading visual header.
	SupportsPhoto() bool
	Build(doc model.Resume, locale i18n.Locale) []Section
}

var builders = map[Template]Builder{
	Modern:  modernBuilder{},
	Classic: classicBuilder{},
	Minimal: minimalBuilder{},
}

// For returns the builder for a template.
func For(t Template) (Builder, error) {
	b, ok := builders[t]
	if !ok {
		return nil, ErrUnknownTemplate
	}
	return b, nil
}

// Build assembles the ordered sections of doc for a template and locale.
// A resume without qualifying content yields an empty slice.
func Build(doc model.Resume, t Template, locale i18n.Locale) ([]Section, error) {
	b, err := For(t)
	if err != nil {
		return nil, err
	}
	return b.Build(doc, locale), nil
}
