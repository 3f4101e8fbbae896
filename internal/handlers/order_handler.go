package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/middleware"
	"pasta_admin/internal/models"
	"pasta_admin/internal/services"
	"pasta_admin/internal/store"
)

type OrderHandler struct {
	store        *store.Store
	orderService services.OrderService
}

func NewOrderHandler(st *store.Store, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{store: st, orderService: orderService}
}

func canAccessOrder(user *models.User, order models.Order) bool {
	return services.IsAdmin(user) || order.VendorID == user.ID
}

func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if services.IsAdmin(user) {
		c.JSON(http.StatusOK, h.store.Orders())
		return
	}
	c.JSON(http.StatusOK, h.store.OrdersByVendor(user.ID))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, ok := h.store.OrderByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !canAccessOrder(middleware.CurrentUser(c), order) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": h.store.ItemsByOrder(order.ID),
	})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req struct {
		ClientID uint `json:"client_id" binding:"required"`
		Items    []struct {
			ProductID uint `json:"product_id" binding:"required"`
			Quantity  int  `json:"quantity" binding:"required"`
		} `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user := middleware.CurrentUser(c)
	client, ok := h.store.ClientByID(req.ClientID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !canAccessClient(user, client) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	items := make([]store.NewOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, store.NewOrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	// The vendor on the order is whoever creates it, fixed from here on.
	order, created, err := h.orderService.CreateOrder(req.ClientID, user.ID, items)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order, "items": created})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	order, ok := h.store.OrderByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !canAccessOrder(middleware.CurrentUser(c), order) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.orderService.UpdateStatus(id, req.Status)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
