package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/accumanage/portal/internal/api/dto"
	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/service"
	apperrors "github.com/accumanage/portal/pkg/util"
)

// BillingHandler exposes the caller's invoices.
type BillingHandler struct {
	billing *service.BillingService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// ListInvoices handles GET /api/billing/invoices.
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var q dto.InvoiceListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}

	invoices, err := h.billing.ListInvoices(c.UserContext(), claims, q.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInvoices(invoices)})
}
