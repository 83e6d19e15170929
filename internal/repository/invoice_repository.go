package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accumanage/portal/internal/domain"
)

// InvoiceRepository reads billing records.
type InvoiceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Invoice, error)
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository returns a Postgres-backed implementation.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

func (r *invoiceRepository) ListByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	const query = `
        SELECT id, user_id, number, amount_cents, currency, status, issued_at
        FROM invoices WHERE user_id=$1 ORDER BY issued_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.UserID,
			&inv.Number,
			&inv.AmountCents,
			&inv.Currency,
			&inv.Status,
			&inv.IssuedAt,
		); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
