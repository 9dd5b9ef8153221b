package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/blessing250/Membership/internal/auth"
	"github.com/blessing250/Membership/internal/errors"
	"github.com/blessing250/Membership/internal/model"
	"github.com/blessing250/Membership/internal/service"
)

// MemberHandler handles member directory endpoints.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UpdateStatusRequest represents a membership status change request.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unpaid paid"`
}

func memberIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}
	return id, nil
}

func httpError(err error) *echo.HTTPError {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// List godoc
// @Summary List members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Membership filter" Enums(all, paid, unpaid)
// @Param search query string false "Name or email substring, case-insensitive"
// @Success 200 {array} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /members [get]
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.memberService.List(c.Request().Context(), c.QueryParam("filter"), c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, members)
}

// Get godoc
// @Summary Get member by id
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	id, err := memberIDParam(c)
	if err != nil {
		return err
	}
	member, err := h.memberService.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, member)
}

// Delete godoc
// @Summary Delete a member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	id, err := memberIDParam(c)
	if err != nil {
		return err
	}
	if err := h.memberService.Delete(c.Request().Context(), auth.SessionFromContext(c), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "member deleted successfully",
	})
}

// UpdateRole godoc
// @Summary Update a member's role
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/{id}/role [patch]
func (h *MemberHandler) UpdateRole(c echo.Context) error {
	id, err := memberIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.memberService.UpdateRole(c.Request().Context(), auth.SessionFromContext(c), id, model.Role(req.Role))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, member)
}

// UpdateStatus godoc
// @Summary Update a member's membership status
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/{id}/status [patch]
func (h *MemberHandler) UpdateStatus(c echo.Context) error {
	id, err := memberIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.memberService.UpdateStatus(c.Request().Context(), auth.SessionFromContext(c), id, model.MembershipStatus(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, member)
}

// Upgrade godoc
// @Summary Mark a membership paid after payment
// @Description Bodyless upgrade endpoint used by the payment flow.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/{id}/membership [patch]
func (h *MemberHandler) Upgrade(c echo.Context) error {
	id, err := memberIDParam(c)
	if err != nil {
		return err
	}

	member, err := h.memberService.UpdateStatus(c.Request().Context(), auth.SessionFromContext(c), id, model.StatusPaid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "membership upgraded successfully",
		"user":    member,
	})
}

// Stats godoc
// @Summary Aggregate member and revenue stats
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 403 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/stats [get]
func (h *MemberHandler) Stats(c echo.Context) error {
	stats, err := h.memberService.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
