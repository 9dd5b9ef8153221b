package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blessing250/Membership/internal/service"
)

// ScanHandler handles QR scan validation endpoints.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// ScanRequest carries a decoded QR payload. The payload is the JSON text the
// scanner read out of the code, passed through unparsed.
type ScanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// Scan godoc
// @Summary Validate a scanned membership claim
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScanRequest true "Decoded QR payload"
// @Success 200 {object} model.ScanRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /scan [post]
func (h *ScanHandler) Scan(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.scanService.Validate(c.Request().Context(), []byte(req.Payload))
	if err != nil {
		// A not-found claim still produced a scan record; the verdict is
		// in the body alongside the error status.
		if rec != nil {
			he := httpError(err)
			return echo.NewHTTPError(he.Code, rec)
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// History godoc
// @Summary Recent scan history
// @Tags scan
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ScanRecord
// @Router /scan/history [get]
func (h *ScanHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scanService.Recent())
}
