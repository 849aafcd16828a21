package model

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Resume represents the canonical resume payload edited by the builder form.
type Resume struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	Languages      []string     `json:"languages"`
}

// PersonalInfo captures top-of-resume contact and identity details.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	// ProfileImageKey is the object store key of the cropped profile photo.
	ProfileImageKey string `json:"profileImageKey,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// Experience represents a work history entry.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education represents an education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Validate enforces formatting rules for fields that are filled in.
// Drafts are allowed to be mostly empty.
func (r Resume) Validate() error {
	if email := strings.TrimSpace(r.PersonalInfo.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return errors.New("personalInfo.email must be a valid email address")
		}
	}
	for i, exp := range r.Experience {
		if err := validateDateField(exp.StartDate, fmt.Sprintf("experience[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDateField(exp.EndDate, fmt.Sprintf("experience[%d].endDate", i)); err != nil {
			return err
		}
	}
	for i, edu := range r.Education {
		if err := validateDateField(edu.StartDate, fmt.Sprintf("education[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDateField(edu.EndDate, fmt.Sprintf("education[%d].endDate", i)); err != nil {
			return err
		}
	}
	return nil
}

var resumeDatePattern = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2]))?$`)

func validateDateField(value, field string) error {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "Present") {
		return nil
	}
	if !resumeDatePattern.MatchString(value) {
		return fmt.Errorf("%s must be YYYY, YYYY-MM or Present", field)
	}
	return nil
}

// NonBlank returns the trimmed non-empty entries of values, preserving order.
func NonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
