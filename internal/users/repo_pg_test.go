package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs("u1", "a@example.com", "Ana", nil, nil, "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "profiles_email_key"})

	err = repo.Create(context.Background(), Profile{ID: "u1", Email: "a@example.com", DisplayName: "Ana", PasswordHash: "hash"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "email", "display_name", "username", "avatar_url", "password_hash", "created_at", "updated_at"}).
		AddRow("u1", "a@example.com", nil, "ana", nil, nil, created, created)
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = \\$1").WithArgs("u1").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Username != "ana" || got.DisplayName != "" || got.PasswordHash != "" || !got.UpdatedAt.Equal(created) {
		t.Fatalf("unexpected profile %+v", got)
	}

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = \\$1").WithArgs("nope").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateProfileUsernameConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("UPDATE profiles SET display_name").
		WithArgs("u1", "Ana", "ana").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "profiles_username_key"})

	repo := &PGRepo{DB: db}
	if _, err := repo.UpdateProfile(context.Background(), "u1", ProfileUpdate{DisplayName: "Ana", Username: "ana"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
