package orders

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/foodoo/foodoo/internal/auth"
	"github.com/foodoo/foodoo/internal/models"
	"github.com/gin-gonic/gin"
)

// Handler exposes the order lifecycle over HTTP
type Handler struct {
	service *Service
}

// NewHandler creates an order HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the order endpoints on the given (authenticated) group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/my", h.ListMine)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Cancel)
}

// Create handles POST /api/orders
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := h.service.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.renderError(c, err, "Server error creating order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// ListMine handles GET /api/orders/my
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err, "Server error fetching orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// GetByID handles GET /api/orders/:id
func (h *Handler) GetByID(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.service.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		h.renderError(c, err, "Server error fetching order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), userID, orderID, req.Status)
	if err != nil {
		h.renderError(c, err, "Server error updating order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// Cancel handles DELETE /api/orders/:id
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), userID, orderID)
	if err != nil {
		h.renderError(c, err, "Server error cancelling order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

func (h *Handler) renderError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	default:
		log.Printf("Order handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return 0, false
	}
	return uint(id), true
}
