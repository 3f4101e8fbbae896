package handlers

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/services"
	"pasta_admin/internal/store"
	"pasta_admin/pkg/whatsapp"
)

type WhatsAppHandler struct {
	whatsappService services.WhatsAppService
	webhookSecret   string
}

func NewWhatsAppHandler(whatsappService services.WhatsAppService, webhookSecret string) *WhatsAppHandler {
	return &WhatsAppHandler{whatsappService: whatsappService, webhookSecret: webhookSecret}
}

// QR proxies the bridge's pairing QR for the dashboard widget.
func (h *WhatsAppHandler) QR(c *gin.Context) {
	qr, err := h.whatsappService.QR()
	if err != nil {
		log.Printf("whatsapp qr fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "bridge unavailable"})
		return
	}
	c.JSON(http.StatusOK, qr)
}

func (h *WhatsAppHandler) Status(c *gin.Context) {
	status, err := h.whatsappService.Status()
	if err != nil {
		// An unreachable bridge reads as disconnected.
		c.JSON(http.StatusOK, gin.H{"connected": false})
		return
	}
	c.JSON(http.StatusOK, status)
}

// HandleWebhook receives inbound messages from the bridge and appends
// them to the matching client's chat thread.
func (h *WhatsAppHandler) HandleWebhook(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad webhook secret"})
		return
	}

	var msg whatsapp.WebhookMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	chat, err := h.whatsappService.ReceiveInbound(msg.Phone, msg.Message)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Unknown sender: acknowledge so the bridge does not retry,
			// but record nothing.
			log.Printf("webhook message from unknown phone %s ignored", msg.Phone)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded", "chat_id": chat.ID})
}
