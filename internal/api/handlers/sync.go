package handlers

import (
	"net/http"
	"strings"

	"menusync/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler exposes the operator sync actions.
type SyncHandler struct {
	orchestrator *syncer.Orchestrator
	log          *logrus.Logger
}

func NewSyncHandler(o *syncer.Orchestrator, log *logrus.Logger) *SyncHandler {
	return &SyncHandler{orchestrator: o, log: log}
}

func (h *SyncHandler) SyncProvider(c *gin.Context) {
	providerID := c.Param("id")
	if err := h.orchestrator.ForceSync(c.Request.Context(), providerID); err != nil {
		status := http.StatusBadGateway
		if strings.Contains(err.Error(), "unknown provider") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"provider": providerID, "status": "synced"})
}

func (h *SyncHandler) SyncAll(c *gin.Context) {
	if err := h.orchestrator.ForceSyncAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}
