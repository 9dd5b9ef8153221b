package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/service"
)

// PaymentHandler handles membership payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ConfirmPaymentRequest reports a successful gateway payment for a member.
type ConfirmPaymentRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid4"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
	TxRef    string `json:"tx_ref" validate:"required"`
}

// Confirm godoc
// @Summary Confirm a membership payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmPaymentRequest true "Payment confirmation"
// @Success 201 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /payments/confirm [post]
func (h *PaymentHandler) Confirm(c echo.Context) error {
	var req ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	payment, err := h.paymentService.Confirm(c.Request().Context(), auth.SessionFromContext(c), memberID, amount, req.Currency, req.TxRef)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, payment)
}
