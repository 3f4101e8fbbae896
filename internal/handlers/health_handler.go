package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/store"
)

type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// Check reports liveness plus durability: when the last snapshot write
// failed the process keeps serving from memory, but operators should
// know the disk copy is stale.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.store.LastPersistError(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "degraded",
			"degraded": true,
			"warning":  "snapshot persistence failing: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "degraded": false})
}
