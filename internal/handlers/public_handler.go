package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/store"
)

// PublicHandler serves the marketing-site form submissions. No
// authentication; both entities are append-only.
type PublicHandler struct {
	store *store.Store
}

func NewPublicHandler(st *store.Store) *PublicHandler {
	return &PublicHandler{store: st}
}

func (h *PublicHandler) Contact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	msg, err := h.store.CreateContactMessage(req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *PublicHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sub, err := h.store.CreateNewsletterSubscription(req.Email)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// Admin-facing listings of the public submissions.

func (h *PublicHandler) ListContacts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ContactMessages())
}

func (h *PublicHandler) ListSubscriptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.NewsletterSubscriptions())
}
