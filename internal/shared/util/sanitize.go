package util

import (
	"errors"
	"path"
	"strings"
)

const (
	maxFileNameLen = 80
	maxExtLen      = 10
)

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces name to [A-Za-z0-9._-]. Every other run of
// characters becomes a single underscore. Long names are cut while keeping
// the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	gap := false
	for _, r := range strings.TrimSpace(name) {
		if isFileNameRune(r) {
			b.WriteRune(r)
			gap = false
			continue
		}
		if !gap {
			b.WriteByte('_')
			gap = true
		}
	}
	s := strings.Trim(b.String(), "_.")
	if s == "" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		ext := path.Ext(s)
		if len(ext) > maxExtLen {
			ext = ""
		}
		s = s[:maxFileNameLen-len(ext)] + ext
	}
	return s, nil
}

func isFileNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-':
		return true
	}
	return false
}
