package users

import "context"

type Repo interface {
	Create(ctx context.Context, profile Profile) error
	Upsert(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (Profile, error)
}
