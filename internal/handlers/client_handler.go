package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/middleware"
	"pasta_admin/internal/models"
	"pasta_admin/internal/services"
	"pasta_admin/internal/store"
)

type ClientHandler struct {
	store *store.Store
}

func NewClientHandler(st *store.Store) *ClientHandler {
	return &ClientHandler{store: st}
}

// canAccessClient is the ownership rule: vendors only reach clients
// assigned to them, admins reach everything.
func canAccessClient(user *models.User, client models.Client) bool {
	if services.IsAdmin(user) {
		return true
	}
	return client.VendorID != nil && *client.VendorID == user.ID
}

func (h *ClientHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if services.IsAdmin(user) {
		c.JSON(http.StatusOK, h.store.Clients())
		return
	}
	c.JSON(http.StatusOK, h.store.ClientsByVendor(user.ID))
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, ok := h.store.ClientByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !canAccessClient(middleware.CurrentUser(c), client) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email"`
		Phone    string `json:"phone" binding:"required"`
		Address  string `json:"address"`
		VendorID *uint  `json:"vendor_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user := middleware.CurrentUser(c)
	vendorID := req.VendorID
	if !services.IsAdmin(user) {
		// Vendors always create clients for themselves.
		vendorID = &user.ID
	}

	client, err := h.store.CreateClient(store.NewClient{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		VendorID: vendorID,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, ok := h.store.ClientByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	user := middleware.CurrentUser(c)
	if !canAccessClient(user, client) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		// vendor_id reassigns the client, clear_vendor unassigns it.
		VendorID    *uint `json:"vendor_id"`
		ClearVendor bool  `json:"clear_vendor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Reassigning a client to another vendor is an admin decision.
	if (req.VendorID != nil || req.ClearVendor) && !services.IsAdmin(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only admins can reassign clients"})
		return
	}

	patch := store.ClientPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.ClearVendor {
		var none *uint
		patch.VendorID = &none
	} else if req.VendorID != nil {
		patch.VendorID = &req.VendorID
	}

	updated, err := h.store.UpdateClient(id, patch)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
