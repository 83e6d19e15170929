package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/domain"
	"github.com/accumanage/portal/internal/repository"
	apperrors "github.com/accumanage/portal/pkg/util"
)

// BillingService exposes invoices scoped to the authenticated account.
type BillingService struct {
	invoices repository.InvoiceRepository
}

// NewBillingService builds the service.
func NewBillingService(invoices repository.InvoiceRepository) *BillingService {
	return &BillingService{invoices: invoices}
}

// ListInvoices returns the caller's invoices. Privileged callers may pass
// another account's ID; everyone else is limited to their own.
func (s *BillingService) ListInvoices(ctx context.Context, caller *auth.Claims, userID string) ([]domain.Invoice, error) {
	if userID == "" || userID == caller.UserID {
		return s.invoices.ListByUser(ctx, caller.UserID)
	}
	if !auth.HasRole(caller, auth.PrivilegedRoles) {
		return nil, apperrors.NewForbidden("cannot read another account's invoices")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewValidationError("user_id must be a UUID", nil)
	}
	return s.invoices.ListByUser(ctx, userID)
}
