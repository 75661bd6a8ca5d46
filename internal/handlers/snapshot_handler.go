package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/officelayout/directory-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// SnapshotHandler serves the full-state XML document the map client loads on
// startup.
type SnapshotHandler struct {
	snapshots *services.SnapshotService
	logger    *logrus.Logger
}

// NewSnapshotHandler creates a new SnapshotHandler
func NewSnapshotHandler(snapshots *services.SnapshotService, logger *logrus.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Export streams the snapshot. The document is rebuilt from the live tables on
// every request.
// GET /createxml.php
func (h *SnapshotHandler) Export(c *gin.Context) {
	c.Header("Content-Type", "text/xml")
	c.Status(http.StatusOK)

	if _, err := c.Writer.WriteString(`<?xml version="1.0"?>` + "\n"); err != nil {
		h.logger.WithError(err).Error("Snapshot write failed")
		return
	}

	if err := h.snapshots.WriteSnapshot(c.Writer); err != nil {
		// Headers are already gone; all we can do is log.
		h.logger.WithError(err).Error("Snapshot export failed")
	}
}
