package contact

import (
	"context"
	"database/sql"
	"sync"
)

// Repo stores contact messages.
type Repo interface {
	Create(ctx context.Context, msg Message) error
}

type MemoryRepo struct {
	mu   sync.Mutex
	rows []Message
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, msg)
	return nil
}

// Messages returns a copy of the stored messages in insertion order.
func (r *MemoryRepo) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.rows...)
}

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, msg Message) error {
	const query = `
INSERT INTO contact_messages (id, name, email, subject, message, whatsapp, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	var whatsapp any
	if msg.WhatsApp != "" {
		whatsapp = msg.WhatsApp
	}
	_, err := r.DB.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, whatsapp, msg.CreatedAt)
	return err
}
