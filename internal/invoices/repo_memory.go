package invoices

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	rows    map[string]Invoice
	counter int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Invoice)}
}

func (r *MemoryRepo) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	if err := ctx.Err(); err != nil {
		return Invoice{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	inv.InvoiceNumber = r.counter
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	inv.UpdatedAt = inv.CreatedAt
	r.rows[inv.ID] = inv
	return inv, nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID, id string) (Invoice, error) {
	if err := ctx.Err(); err != nil {
		return Invoice{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.rows[id]
	if !ok || inv.UserID != userID {
		return Invoice{}, ErrNotFound
	}
	return inv, nil
}

func (r *MemoryRepo) List(ctx context.Context, userID string, limit, offset int) ([]Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Invoice
	for _, inv := range r.rows {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].InvoiceNumber > out[j].InvoiceNumber
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return []Invoice{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, inv := range r.rows {
		if inv.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	if err := ctx.Err(); err != nil {
		return Invoice{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[inv.ID]
	if !ok || existing.UserID != inv.UserID {
		return Invoice{}, ErrNotFound
	}
	inv.InvoiceNumber = existing.InvoiceNumber
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now().UTC()
	r.rows[inv.ID] = inv
	return inv, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.rows[id]
	if !ok || inv.UserID != userID {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
