package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sannaclaudia/WebAPP/internal/application/ordering"
	"github.com/sannaclaudia/WebAPP/internal/domain/catalog"
	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/dto"
	"github.com/sannaclaudia/WebAPP/internal/interfaces/http/middleware"
)

// OrderManager is what the order endpoints need from the ordering service
type OrderManager interface {
	ValidateOrder(ctx context.Context, req ordering.ValidateOrderRequest) (*ordering.ValidationResult, error)
	SubmitOrder(ctx context.Context, req ordering.SubmitOrderRequest) (*ordering.OrderResponse, error)
	CancelOrder(ctx context.Context, req ordering.CancelOrderRequest) error
	ListOrders(ctx context.Context, userID uint) ([]ordering.OrderResponse, error)
	OrderHistory(ctx context.Context, userID uint) ([]ordering.OrderResponse, error)
}

// OrderHandler handles order configuration, placement and cancellation
type OrderHandler struct {
	BaseHandler
	orders OrderManager
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderManager) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ValidateOrder handles POST /api/validate-order. Broken rules are part of
// the 200 response; only malformed bodies get a 400.
func (h *OrderHandler) ValidateOrder(c *gin.Context) {
	var req ValidateOrderRequest
	if !middleware.BindStrictJSON(c, &req) {
		return
	}

	result, err := h.orders.ValidateOrder(c.Request.Context(), ordering.ValidateOrderRequest{
		DishID:        req.DishID,
		Size:          catalog.Size(req.Size),
		IngredientIDs: req.IngredientIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result.ToResponse())
}

// SubmitOrder handles POST /api/orders
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req SubmitOrderRequest
	if !middleware.BindStrictJSON(c, &req) {
		return
	}

	order, err := h.orders.SubmitOrder(c.Request.Context(), ordering.SubmitOrderRequest{
		UserID:        session.UserID,
		DishID:        req.DishID,
		Size:          catalog.Size(req.Size),
		IngredientIDs: req.Ingredients,
		Used2FA:       session.Level == identity.AuthLevelVerified2FA,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// CancelOrder handles DELETE /api/orders/:id
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || orderID == 0 {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	err = h.orders.CancelOrder(c.Request.Context(), ordering.CancelOrderRequest{
		OrderID:   uint(orderID),
		UserID:    session.UserID,
		AuthLevel: session.Level,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Success: true, Message: "Order cancelled successfully"})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), session.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// OrderHistory handles GET /api/orders/history
func (h *OrderHandler) OrderHistory(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	orders, err := h.orders.OrderHistory(c.Request.Context(), session.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
