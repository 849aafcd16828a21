package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxDisplayName = 80

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register stores a new email/password profile. The hash is produced by the caller.
func (s *Service) Register(ctx context.Context, profile Profile) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	profile.Email = normalizeEmail(profile.Email)
	if strings.TrimSpace(profile.ID) == "" || profile.PasswordHash == "" {
		return fmt.Errorf("%w: id and password are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(profile.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	profile.DisplayName = strings.TrimSpace(profile.DisplayName)
	return s.Repo.Create(ctx, profile)
}

// UpsertFromAuth persists the identity returned by an OAuth provider.
func (s *Service) UpsertFromAuth(ctx context.Context, profile Profile) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	profile.Email = normalizeEmail(profile.Email)
	if strings.TrimSpace(profile.ID) == "" || profile.Email == "" {
		return fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	return s.Repo.Upsert(ctx, profile)
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(id) == "" {
		return Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	email = normalizeEmail(email)
	if email == "" {
		return Profile{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.Repo.GetByEmail(ctx, email)
}

// UpdateProfile validates and stores the editable profile fields. Usernames
// are lower-cased before the uniqueness check.
func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	update.DisplayName = strings.TrimSpace(update.DisplayName)
	update.Username = strings.ToLower(strings.TrimSpace(update.Username))
	if utf8.RuneCountInString(update.DisplayName) > maxDisplayName {
		return Profile{}, fmt.Errorf("%w: display name too long", ErrInvalidInput)
	}
	if update.Username != "" && !usernamePattern.MatchString(update.Username) {
		return Profile{}, fmt.Errorf("%w: username must be 3-30 characters of a-z, 0-9 or _", ErrInvalidInput)
	}
	return s.Repo.UpdateProfile(ctx, id, update)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
