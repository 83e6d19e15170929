package dto

import (
	"time"

	"github.com/accumanage/portal/internal/domain"
)

// InvoiceListQuery selects whose invoices to list.
type InvoiceListQuery struct {
	UserID string `query:"user_id" validate:"omitempty,uuid"`
}

// InvoiceResponse is the public view of an invoice.
type InvoiceResponse struct {
	ID          string               `json:"id"`
	Number      string               `json:"number"`
	AmountCents int64                `json:"amount_cents"`
	Currency    string               `json:"currency"`
	Status      domain.InvoiceStatus `json:"status"`
	IssuedAt    time.Time            `json:"issued_at"`
}

// FromInvoices maps invoices to responses.
func FromInvoices(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, InvoiceResponse{
			ID:          inv.ID,
			Number:      inv.Number,
			AmountCents: inv.AmountCents,
			Currency:    inv.Currency,
			Status:      inv.Status,
			IssuedAt:    inv.IssuedAt,
		})
	}
	return out
}
