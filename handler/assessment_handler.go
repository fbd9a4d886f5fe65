package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kb-assessor/repository"
	"kb-assessor/service"
)

// AssessRequest is the body for POST /api/v1/assess.
type AssessRequest struct {
	ArticleID int64 `json:"article_id"`
}

// ArticleIDsRequest is the shared body for the bulk endpoints.
type ArticleIDsRequest struct {
	ArticleIDs []int64 `json:"article_ids"`
}

// MarkCurrentRequest is the body for POST /api/v1/articles/mark-current.
type MarkCurrentRequest struct {
	ArticleID int64 `json:"article_id"`
}

// AssessmentHandler exposes the assessment pipeline and the bookkeeping
// endpoints around it.
type AssessmentHandler struct {
	assessmentService service.AssessmentService
	articleRepo       repository.ArticleRepository
	assessmentRepo    repository.AssessmentRepository
	logger            *slog.Logger
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(
	assessmentService service.AssessmentService,
	articleRepo repository.ArticleRepository,
	assessmentRepo repository.AssessmentRepository,
	logger *slog.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		articleRepo:       articleRepo,
		assessmentRepo:    assessmentRepo,
		logger:            logger,
	}
}

// HandleAssess handles POST /api/v1/assess. The assessment runs inside the
// request; the response carries the terminal outcome.
func (h *AssessmentHandler) HandleAssess(c echo.Context) error {
	ctx := c.Request().Context()

	var req AssessRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind assess request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.ArticleID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "article_id is required")
	}

	result, err := h.assessmentService.Assess(ctx, req.ArticleID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// HandleDetails handles GET /api/v1/articles/:id/assessment.
func (h *AssessmentHandler) HandleDetails(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article id")
	}

	details, err := h.assessmentRepo.LatestDetails(ctx, id)
	if err != nil {
		return err
	}

	if details == nil {
		return echo.NewHTTPError(http.StatusNotFound, "No assessment found for article")
	}

	return c.JSON(http.StatusOK, details)
}

// HandleProgress handles POST /api/v1/assessments/progress.
func (h *AssessmentHandler) HandleProgress(c echo.Context) error {
	ctx := c.Request().Context()

	var req ArticleIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if len(req.ArticleIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "article_ids must be a non-empty array")
	}

	stats, err := h.assessmentRepo.ProgressCounts(ctx, req.ArticleIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total": stats.Total(),
		"stats": stats,
	})
}

// HandleCancel handles POST /api/v1/assessments/cancel.
func (h *AssessmentHandler) HandleCancel(c echo.Context) error {
	ctx := c.Request().Context()

	var req ArticleIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if len(req.ArticleIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "article_ids must be a non-empty array")
	}

	cancelled, err := h.assessmentRepo.CancelPending(ctx, req.ArticleIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"cancelled": cancelled,
	})
}

// HandleMarkCurrent handles POST /api/v1/articles/mark-current: record an
// operator's judgment as a completed assessment without touching the LLM.
func (h *AssessmentHandler) HandleMarkCurrent(c echo.Context) error {
	ctx := c.Request().Context()

	var req MarkCurrentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.ArticleID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "article_id is required")
	}

	article, err := h.articleRepo.FindByID(ctx, req.ArticleID)
	if err != nil {
		return err
	}

	if article == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Article not found")
	}

	if err := h.assessmentRepo.InsertManual(ctx, req.ArticleID); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "article marked current manually",
		"article_id", req.ArticleID,
		"kb_number", article.KBNumber)

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"article_id": req.ArticleID,
	})
}
