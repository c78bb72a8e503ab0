package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "mughal/internal/errors"
)

// SnapshotExporter serializes the current state document.
type SnapshotExporter interface {
	Export() ([]byte, error)
}

// BackupHandler serves the raw state document to backup jobs.
type BackupHandler struct {
	exporter SnapshotExporter
	now      func() time.Time
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(exporter SnapshotExporter) *BackupHandler {
	return &BackupHandler{exporter: exporter, now: time.Now}
}

// GetSnapshot handles the state document download.
// @Summary     Export snapshot
// @Description Download the full persisted state document (backup endpoint)
// @Tags        backup
// @Produce     json
// @Param       X-API-Key header   string        true "Backup API key"
// @Success     200       {object} models.Snapshot "State document"
// @Failure     401       {object} ErrorResponse "Invalid API key"
// @Failure     500       {object} ErrorResponse "Server error"
// @Failure     503       {object} ErrorResponse "Backup not configured"
// @Router      /backup/snapshot [get]
func (h *BackupHandler) GetSnapshot(c *gin.Context) {
	data, err := h.exporter.Export()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("mughal_erp_state_%s.json", h.now().UTC().Format("20060102T150405Z"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
