package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/middleware"
	"pasta_admin/internal/services"
	"pasta_admin/internal/store"
)

type ChatHandler struct {
	store           *store.Store
	whatsappService services.WhatsAppService
}

func NewChatHandler(st *store.Store, whatsappService services.WhatsAppService) *ChatHandler {
	return &ChatHandler{store: st, whatsappService: whatsappService}
}

// List returns a client's conversation thread, oldest first.
func (h *ChatHandler) List(c *gin.Context) {
	clientID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, ok := h.store.ClientByID(clientID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !canAccessClient(middleware.CurrentUser(c), client) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, h.store.ChatsByClient(clientID))
}

// Send relays a dashboard reply to the client over WhatsApp and appends
// it to the thread.
func (h *ChatHandler) Send(c *gin.Context) {
	clientID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, ok := h.store.ClientByID(clientID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !canAccessClient(middleware.CurrentUser(c), client) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	chat, err := h.whatsappService.SendToClient(clientID, req.Message)
	if err != nil {
		// The message may already be in the log with delivery failed.
		if chat.ID != 0 {
			c.JSON(http.StatusBadGateway, gin.H{"chat": chat, "error": err.Error()})
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}
