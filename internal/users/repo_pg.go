package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `id, email, display_name, username, avatar_url, password_hash, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (id, email, display_name, username, avatar_url, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		nullableString(profile.DisplayName),
		nullableString(profile.Username),
		nullableString(profile.AvatarURL),
		nullableString(profile.PasswordHash),
	)
	return mapUniqueViolation(err)
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (id, email, display_name, avatar_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  display_name = COALESCE(profiles.display_name, EXCLUDED.display_name),
  avatar_url = EXCLUDED.avatar_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		nullableString(profile.DisplayName),
		nullableString(profile.AvatarURL),
	)
	return mapUniqueViolation(err)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 LIMIT 1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1) LIMIT 1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (Profile, error) {
	query := `
UPDATE profiles SET display_name = $2, username = $3, updated_at = now()
WHERE id = $1
RETURNING ` + profileColumns
	profile, err := scanProfile(r.DB.QueryRowContext(ctx, query,
		id,
		nullableString(update.DisplayName),
		nullableString(update.Username),
	))
	if err != nil {
		return Profile{}, mapUniqueViolation(err)
	}
	return profile, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var profile Profile
	var displayName, username, avatarURL, passwordHash sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&displayName,
		&username,
		&avatarURL,
		&passwordHash,
		&profile.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	profile.DisplayName = displayName.String
	profile.Username = username.String
	profile.AvatarURL = avatarURL.String
	profile.PasswordHash = passwordHash.String
	if updatedAt.Valid {
		profile.UpdatedAt = updatedAt.Time
	} else {
		profile.UpdatedAt = time.Now().UTC()
	}
	return profile, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
