package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale identifies one of the supported UI/document languages.
type Locale string

const (
	English Locale = "english"
	Urdu    Locale = "urdu"
)

// Direction is the writing direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

var ErrUnknownLocale = errors.New("unknown locale")

// ParseLocale accepts the stored locale names plus their BCP 47 tags.
func ParseLocale(raw string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "english", "en":
		return English, nil
	case "urdu", "ur":
		return Urdu, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", ErrUnknownLocale
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "ur":
		return Urdu, nil
	}
	return "", ErrUnknownLocale
}

// Tag returns the BCP 47 tag for the locale.
func (l Locale) Tag() language.Tag {
	if l == Urdu {
		return language.Urdu
	}
	return language.English
}

// Direction reports the writing direction of the locale.
func (l Locale) Direction() Direction {
	if l == Urdu {
		return RTL
	}
	return LTR
}

// T looks up a translation, falling back to English and then to the key itself.
func T(key string, l Locale) string {
	if table, ok := translations[l]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	if v, ok := translations[English][key]; ok {
		return v
	}
	return key
}

// Upper upper-cases s using the casing rules of the locale.
func Upper(s string, l Locale) string {
	return cases.Upper(l.Tag()).String(s)
}

// Table returns a copy of the translation table for a locale with English fallbacks filled in.
func Table(l Locale) map[string]string {
	out := make(map[string]string, len(translations[English]))
	for k, v := range translations[English] {
		out[k] = v
	}
	for k, v := range translations[l] {
		out[k] = v
	}
	return out
}
