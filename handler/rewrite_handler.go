package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"kb-assessor/service"
)

// RewriteRequest is the body for POST /api/v1/rewrite.
type RewriteRequest struct {
	ArticleID       int64    `json:"article_id"`
	Recommendations []string `json:"recommendations"`
}

// RewriteHandler exposes the rewrite pipeline.
type RewriteHandler struct {
	rewriteService service.RewriteService
	logger         *slog.Logger
}

// NewRewriteHandler creates a new rewrite handler.
func NewRewriteHandler(rewriteService service.RewriteService, logger *slog.Logger) *RewriteHandler {
	return &RewriteHandler{
		rewriteService: rewriteService,
		logger:         logger,
	}
}

// HandleRewrite handles POST /api/v1/rewrite. The rewritten body is returned
// to the caller only; nothing is persisted.
func (h *RewriteHandler) HandleRewrite(c echo.Context) error {
	ctx := c.Request().Context()

	var req RewriteRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind rewrite request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.ArticleID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "article_id is required")
	}

	result, err := h.rewriteService.Rewrite(ctx, req.ArticleID, req.Recommendations)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
