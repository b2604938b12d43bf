package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/shop/api/http/presenter"
	"github.com/artem13815/shop/pkg/order"
	"github.com/artem13815/shop/pkg/product"
	"github.com/artem13815/shop/pkg/user"
)

type OrderHandler struct {
	uc order.UseCase
}

func NewOrderHandler(uc order.UseCase) *OrderHandler { return &OrderHandler{uc: uc} }

type orderItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	UserID string         `json:"userId"`
	Items  []orderItemDTO `json:"items"`
}

// List returns all orders.
// @Summary List orders
// @Tags    order
// @Produce json
// @Security BearerAuth
// @Success 200 {array} order.Order
// @Router  /order [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list orders")
	}
	return presenter.JSON(c, http.StatusOK, orders)
}

// GetByID returns one order with its items.
// @Summary Get order by id
// @Tags    order
// @Produce json
// @Param   id path string true "order id (UUID)"
// @Security BearerAuth
// @Success 200 {object} order.Order
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /order/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	o, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "order not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to get order")
	}
	return presenter.JSON(c, http.StatusOK, o)
}

// Create places a new order in the PENDING state.
// @Summary Create order
// @Tags    order
// @Accept  json
// @Produce json
// @Param   input body createOrderRequest true "order payload"
// @Security BearerAuth
// @Success 201 {object} order.Order
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /order [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid userId")
	}
	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid productId")
		}
		items = append(items, order.Item{ProductID: pid, Quantity: it.Quantity})
	}
	o, err := h.uc.Create(c.Context(), userID, items)
	if err != nil {
		var verr order.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, user.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "user not found")
		case errors.Is(err, product.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "product not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to create order")
		}
	}
	return presenter.JSON(c, http.StatusCreated, o)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus overwrites the order status with any enum member.
// @Summary Update order status
// @Tags    order
// @Accept  json
// @Produce json
// @Param   id path string true "order id (UUID)"
// @Param   input body updateStatusRequest true "new status"
// @Security BearerAuth
// @Success 200 {object} order.Order
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /order/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	o, err := h.uc.UpdateStatus(c.Context(), id, order.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			return presenter.Error(c, http.StatusBadRequest, "unknown order status")
		case errors.Is(err, order.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "order not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update order status")
		}
	}
	return presenter.JSON(c, http.StatusOK, o)
}

// Delete removes an order. Stock levels are not restored.
// @Summary Delete order
// @Tags    order
// @Produce json
// @Param   id path string true "order id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /order/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid UUID")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "order not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete order")
	}
	return presenter.NoContent(c)
}
