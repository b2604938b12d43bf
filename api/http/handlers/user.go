package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/shop/api/http/presenter"
	"github.com/artem13815/shop/pkg/security/jwt"
	"github.com/artem13815/shop/pkg/user"
)

type UserHandler struct {
	uc user.DirectoryUseCase
}

func NewUserHandler(uc user.DirectoryUseCase) *UserHandler { return &UserHandler{uc: uc} }

// List returns all users.
// @Summary List users
// @Tags    user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} user.User
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /user [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.FindAll(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list users")
	}
	return presenter.JSON(c, http.StatusOK, users)
}

// GetByID returns one user. Non-admin callers may only read their own record.
// @Summary Get user by id
// @Tags    user
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Security BearerAuth
// @Success 200 {object} user.User
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /user/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	role, _ := c.Locals(jwt.LocalRole).(string)
	callerID, _ := c.Locals(jwt.LocalUserID).(string)
	if role != string(user.RoleAdmin) && callerID != id.String() {
		return presenter.Error(c, http.StatusForbidden, "operation not permitted for role")
	}
	u, err := h.uc.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "user not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get user")
	}
	return presenter.JSON(c, http.StatusOK, u)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole changes a user's role.
// @Summary Update user role
// @Tags    user
// @Accept  json
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Param   input body updateRoleRequest true "new role"
// @Security BearerAuth
// @Success 200 {object} user.User
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /user/{id}/role [patch]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	u, err := h.uc.UpdateRole(c.Context(), id, user.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			return presenter.Error(c, http.StatusBadRequest, "unknown role")
		case errors.Is(err, user.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "user not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update role")
		}
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// Delete removes a user.
// @Summary Delete user
// @Tags    user
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /user/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "user not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete user")
	}
	return presenter.NoContent(c)
}
