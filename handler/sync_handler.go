package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"kb-assessor/service"
)

// SyncRequest is the body for POST /api/v1/sync. Both fields are optional;
// an empty body runs the standard watermark-driven incremental sync.
type SyncRequest struct {
	Since string `json:"since"`
	Full  bool   `json:"full"`
}

// SyncHandler triggers article synchronization on demand.
type SyncHandler struct {
	syncService service.SyncService
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(syncService service.SyncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// HandleSync handles POST /api/v1/sync.
func (h *SyncHandler) HandleSync(c echo.Context) error {
	ctx := c.Request().Context()

	var req SyncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.syncService.Sync(ctx, service.SyncOptions{
		Since: req.Since,
		Full:  req.Full,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
