package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/shop/api/http/presenter"
	"github.com/artem13815/shop/pkg/category"
)

type CategoryHandler struct {
	uc category.UseCase
}

func NewCategoryHandler(uc category.UseCase) *CategoryHandler { return &CategoryHandler{uc: uc} }

type categoryRequest struct {
	Name string `json:"name"`
}

// List returns all categories with their products.
// @Summary List categories
// @Tags    category
// @Produce json
// @Security BearerAuth
// @Success 200 {array} category.Category
// @Router  /category [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list categories")
	}
	return presenter.JSON(c, http.StatusOK, cats)
}

// Create adds a category.
// @Summary Create category
// @Tags    category
// @Accept  json
// @Produce json
// @Param   input body categoryRequest true "category payload"
// @Security BearerAuth
// @Success 201 {object} category.Category
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /category [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return presenter.Error(c, http.StatusBadRequest, "name is required")
	}
	cat, err := h.uc.Create(c.Context(), req.Name)
	if err != nil {
		var verr category.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create category")
	}
	return presenter.JSON(c, http.StatusCreated, cat)
}

// Update overwrites a category name.
// @Summary Update category
// @Tags    category
// @Accept  json
// @Produce json
// @Param   id path string true "category id (UUID)"
// @Param   input body categoryRequest true "category payload"
// @Security BearerAuth
// @Success 200 {object} category.Category
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /category/{id} [patch]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	cat, err := h.uc.Update(c.Context(), id, req.Name)
	if err != nil {
		var verr category.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, category.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "category not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update category")
		}
	}
	return presenter.JSON(c, http.StatusOK, cat)
}

// Delete removes a category. Blocked while products reference it.
// @Summary Delete category
// @Tags    category
// @Produce json
// @Param   id path string true "category id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /category/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "category not found")
		case errors.Is(err, category.ErrInUse):
			return presenter.Error(c, http.StatusConflict, "category still has products")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to delete category")
		}
	}
	return presenter.NoContent(c)
}
