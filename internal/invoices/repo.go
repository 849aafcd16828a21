package invoices

import "context"

// Repo persists invoices scoped by user. Create assigns the next invoice
// number from the shared counter.
type Repo interface {
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	Get(ctx context.Context, userID, id string) (Invoice, error)
	List(ctx context.Context, userID string, limit, offset int) ([]Invoice, error)
	Count(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, inv Invoice) (Invoice, error)
	Delete(ctx context.Context, userID, id string) error
}
