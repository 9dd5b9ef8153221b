package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/service"
)

const qrImageSize = 256

// QRHandler issues membership claim QR codes for the authenticated member.
type QRHandler struct {
	authService service.AuthService
}

// NewQRHandler creates a new QR handler.
func NewQRHandler(authService service.AuthService) *QRHandler {
	return &QRHandler{authService: authService}
}

func (h *QRHandler) claimFor(c echo.Context) ([]byte, error) {
	session, err := auth.Authorize(auth.SessionFromContext(c))
	if err != nil {
		return nil, err
	}

	member, err := h.authService.Profile(c.Request().Context(), session.MemberID)
	if err != nil {
		return nil, err
	}

	// Display fields reflect the effective status at encode time; only the
	// userId matters when the claim is scanned back.
	claim := model.MembershipClaim{
		UserID:           member.ID.String(),
		Name:             member.Name,
		Email:            member.Email,
		MembershipStatus: string(member.EffectiveStatus(time.Now())),
	}
	return json.Marshal(claim)
}

// Image godoc
// @Summary Membership QR code image
// @Tags qr
// @Produce png
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} errors.ErrorResponse
// @Router /qr [get]
func (h *QRHandler) Image(c echo.Context) error {
	payload, err := h.claimFor(c)
	if err != nil {
		return httpError(err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, qrImageSize)
	if err != nil {
		he := errors.NewHTTPError(http.StatusInternalServerError, "encode qr code", "QR_ENCODE_FAILED")
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// Claim godoc
// @Summary Membership claim payload
// @Tags qr
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MembershipClaim
// @Failure 401 {object} errors.ErrorResponse
// @Router /qr/claim [get]
func (h *QRHandler) Claim(c echo.Context) error {
	payload, err := h.claimFor(c)
	if err != nil {
		return httpError(err)
	}
	return c.JSONBlob(http.StatusOK, payload)
}
