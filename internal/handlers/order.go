package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/services"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService services.OrderService
	validator    *services.OrderValidator
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService, validator *services.OrderValidator) *OrderHandler {
	return &OrderHandler{
		log:          log.With("handler", "OrderHandler"),
		orderService: orderService,
		validator:    validator,
	}
}

func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_order_id", errors.New("order id must be an integer"))
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "no_order_data", errors.New("No order data"))
		return
	}
	if err := h.validator.ValidateCreate(&req); err != nil {
		RespondFailure(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Create order failed", "user_id", req.UserID, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondCreated(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.GetOrders(c.Request.Context(), parseListParams(c))
	if err != nil {
		h.log.Error("List orders failed", "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		RespondFailure(c, err)
		return
	}
	RespondOK(c, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	var req services.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "no_order_data", errors.New("No order data"))
		return
	}
	if err := h.validator.ValidateUpdate(&req); err != nil {
		RespondFailure(c, err)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Update order failed", "order_id", id, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}
	order, err := h.orderService.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Delete order failed", "order_id", id, "error", err)
		RespondFailure(c, err)
		return
	}
	RespondOK(c, order)
}
