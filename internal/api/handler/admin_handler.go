package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/headcount/account-service/internal/core/ports"
)

const auditPageSize = 50

// AdminHandler exposes the administrative account operations. Every route is
// behind the Auth middleware plus RequireRole(admin).
type AdminHandler struct {
	userService ports.UserService
	auditRepo   ports.AuditRepository
}

func NewAdminHandler(userService ports.UserService, auditRepo ports.AuditRepository) *AdminHandler {
	return &AdminHandler{userService: userService, auditRepo: auditRepo}
}

// Test confirms admin access; kept for parity with clients that probe their
// role with it.
//
// @Summary      Admin access check
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /admin/test [get]
func (h *AdminHandler) Test(c echo.Context) error {
	_, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Admin access granted", map[string]string{
		"message": "This is an admin-only endpoint",
		"user":    username,
	})
}

// ListUsers returns live users, paginated by offset/limit query parameters.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size"
// @Success      200     {object}  envelope
// @Failure      401     {object}  envelope
// @Failure      403     {object}  envelope
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.userService.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Users retrieved successfully", listUsersResponse{
		Users:  users,
		Offset: offset,
		Limit:  limit,
	})
}

// UpdateUser applies a partial update to one account.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser soft-deletes one account.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

// UserAudit returns the most recent audit events for one account.
//
// @Summary      Get a user's audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /admin/users/{id}/audit [get]
func (h *AdminHandler) UserAudit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	events, err := h.auditRepo.ListByUser(c.Request().Context(), id, auditPageSize)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Audit events retrieved successfully", events)
}
