package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docbuilder-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres. Line items are stored as JSON text.
type PGRepo struct {
	DB *sql.DB
}

const invoiceColumns = `id, user_id, invoice_number, client_name, client_email, client_address, company_name, company_logo_url, items, tax_percentage, subtotal, tax_amount, total_amount, notes, status, language, template_id, created_at, updated_at`

// Create takes the next number from invoice_counter and inserts the row in
// the same transaction so numbers are never reused.
func (r *PGRepo) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	const next = `
UPDATE invoice_counter
SET current_number = current_number + 1, updated_at = now()
WHERE id = 1
RETURNING current_number`
	const insert = `
INSERT INTO invoices (
    id, user_id, invoice_number, client_name, client_email, client_address,
    company_name, company_logo_url, items, tax_percentage, subtotal, tax_amount,
    total_amount, notes, status, language, template_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)`

	items, err := encodeItems(inv.Items)
	if err != nil {
		return Invoice{}, err
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	err = db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, next).Scan(&inv.InvoiceNumber); err != nil {
			return fmt.Errorf("next invoice number: %w", err)
		}
		_, err := tx.ExecContext(ctx, insert,
			inv.ID,
			inv.UserID,
			inv.InvoiceNumber,
			inv.ClientName,
			inv.ClientEmail,
			inv.ClientAddress,
			inv.CompanyName,
			inv.CompanyLogoURL,
			items,
			inv.TaxPercentage,
			inv.Subtotal,
			inv.TaxAmount,
			inv.TotalAmount,
			inv.Notes,
			string(inv.Status),
			inv.Language,
			inv.TemplateID,
			inv.CreatedAt,
		)
		return err
	})
	if err != nil {
		return Invoice{}, err
	}
	inv.UpdatedAt = inv.CreatedAt
	return inv, nil
}

func (r *PGRepo) Get(ctx context.Context, userID, id string) (Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 AND id = $2 LIMIT 1`
	return scanInvoice(r.DB.QueryRowContext(ctx, query, userID, id))
}

func (r *PGRepo) List(ctx context.Context, userID string, limit, offset int) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
FROM invoices
WHERE user_id = $1
ORDER BY created_at DESC, invoice_number DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM invoices WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *PGRepo) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	query := `
UPDATE invoices SET
    client_name = $3,
    client_email = $4,
    client_address = $5,
    company_name = $6,
    company_logo_url = $7,
    items = $8,
    tax_percentage = $9,
    subtotal = $10,
    tax_amount = $11,
    total_amount = $12,
    notes = $13,
    status = $14,
    language = $15,
    template_id = $16,
    updated_at = now()
WHERE user_id = $1 AND id = $2
RETURNING ` + invoiceColumns
	items, err := encodeItems(inv.Items)
	if err != nil {
		return Invoice{}, err
	}
	return scanInvoice(r.DB.QueryRowContext(ctx, query,
		inv.UserID,
		inv.ID,
		inv.ClientName,
		inv.ClientEmail,
		inv.ClientAddress,
		inv.CompanyName,
		inv.CompanyLogoURL,
		items,
		inv.TaxPercentage,
		inv.Subtotal,
		inv.TaxAmount,
		inv.TotalAmount,
		inv.Notes,
		string(inv.Status),
		inv.Language,
		inv.TemplateID,
	))
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeItems(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode invoice items: %w", err)
	}
	return string(raw), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (Invoice, error) {
	var inv Invoice
	var clientEmail, clientAddress, companyName, logoURL, notes, items sql.NullString
	var status string
	var updatedAt sql.NullTime
	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.InvoiceNumber,
		&inv.ClientName,
		&clientEmail,
		&clientAddress,
		&companyName,
		&logoURL,
		&items,
		&inv.TaxPercentage,
		&inv.Subtotal,
		&inv.TaxAmount,
		&inv.TotalAmount,
		&notes,
		&status,
		&inv.Language,
		&inv.TemplateID,
		&inv.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	inv.ClientEmail = clientEmail.String
	inv.ClientAddress = clientAddress.String
	inv.CompanyName = companyName.String
	inv.CompanyLogoURL = logoURL.String
	inv.Notes = notes.String
	inv.Status = Status(status)
	inv.Items = []Item{}
	if items.Valid && items.String != "" {
		if err := json.Unmarshal([]byte(items.String), &inv.Items); err != nil {
			return Invoice{}, fmt.Errorf("decode invoice %s items: %w", inv.ID, err)
		}
	}
	if updatedAt.Valid {
		inv.UpdatedAt = updatedAt.Time
	} else {
		inv.UpdatedAt = inv.CreatedAt
	}
	return inv, nil
}
