package resumes

import "context"

// Repo persists resumes. Every method is scoped by user; rows owned by
// another user behave as missing.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	Get(ctx context.Context, userID, id string) (Record, error)
	List(ctx context.Context, userID string, limit, offset int) ([]Record, error)
	Count(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, rec Record) (Record, error)
	SetPagesToRender(ctx context.Context, userID, id string, pages int) error
	Delete(ctx context.Context, userID, id string) error
}
