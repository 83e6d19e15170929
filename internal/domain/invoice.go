package domain

import "time"

// InvoiceStatus tracks payment state.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusOpen  InvoiceStatus = "open"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// Invoice is a billing record owned by a single account.
type Invoice struct {
	ID          string
	UserID      string
	Number      string
	AmountCents int64
	Currency    string
	Status      InvoiceStatus
	IssuedAt    time.Time
}
