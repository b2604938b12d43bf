package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/shop/api/http/presenter"
	"github.com/artem13815/shop/pkg/category"
	"github.com/artem13815/shop/pkg/product"
)

type ProductHandler struct {
	uc product.UseCase
}

func NewProductHandler(uc product.UseCase) *ProductHandler { return &ProductHandler{uc: uc} }

type productRequest struct {
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Stock      int    `json:"stock"`
	CategoryID string `json:"categoryId"`
}

// List returns all products.
// @Summary List products
// @Tags    product
// @Produce json
// @Security BearerAuth
// @Success 200 {array} product.Product
// @Router  /product [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list products")
	}
	return presenter.JSON(c, http.StatusOK, ps)
}

// GetByID returns one product.
// @Summary Get product by id
// @Tags    product
// @Produce json
// @Param   id path string true "product id (UUID)"
// @Security BearerAuth
// @Success 200 {object} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /product/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	p, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "product not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get product")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Create adds a product under an existing category.
// @Summary Create product
// @Tags    product
// @Accept  json
// @Produce json
// @Param   input body productRequest true "product payload"
// @Security BearerAuth
// @Success 201 {object} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /product [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	p, ok := h.parseProduct(c, uuid.Nil)
	if !ok {
		return nil
	}
	created, err := h.uc.Create(c.Context(), p)
	if err != nil {
		return productError(c, err, "failed to create product")
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// Update overwrites a product.
// @Summary Update product
// @Tags    product
// @Accept  json
// @Produce json
// @Param   id path string true "product id (UUID)"
// @Param   input body productRequest true "product payload"
// @Security BearerAuth
// @Success 200 {object} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /product/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	p, ok := h.parseProduct(c, id)
	if !ok {
		return nil
	}
	updated, err := h.uc.Update(c.Context(), p)
	if err != nil {
		return productError(c, err, "failed to update product")
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Delete removes a product.
// @Summary Delete product
// @Tags    product
// @Produce json
// @Param   id path string true "product id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /product/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "product not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete product")
	}
	return presenter.NoContent(c)
}

// parseProduct validates the body into a domain product. On failure it writes
// the error response and returns ok=false.
func (h *ProductHandler) parseProduct(c *fiber.Ctx, id uuid.UUID) (product.Product, bool) {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return product.Product{}, false
	}
	if strings.TrimSpace(req.Name) == "" {
		_ = presenter.Error(c, http.StatusBadRequest, "name is required")
		return product.Product{}, false
	}
	catID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid categoryId")
		return product.Product{}, false
	}
	return product.Product{
		ID:         id,
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: catID,
	}, true
}

func productError(c *fiber.Ctx, err error, fallback string) error {
	var verr product.ErrValidation
	switch {
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, category.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "category not found")
	case errors.Is(err, product.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "product not found")
	default:
		return presenter.Error(c, http.StatusInternalServerError, fallback)
	}
}
