package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"kb-assessor/models"
	"kb-assessor/repository"
)

// ArticleListResponse is the payload for GET /api/v1/articles.
type ArticleListResponse struct {
	Items       []*models.ArticleListItem `json:"items"`
	Total       int                       `json:"total"`
	LastFetchAt *string                   `json:"last_fetch_at"`
}

// ArticleHandler exposes the local article table.
type ArticleHandler struct {
	articleRepo repository.ArticleRepository
	stateRepo   repository.AppStateRepository
	logger      *slog.Logger
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(
	articleRepo repository.ArticleRepository,
	stateRepo repository.AppStateRepository,
	logger *slog.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		articleRepo: articleRepo,
		stateRepo:   stateRepo,
		logger:      logger,
	}
}

// HandleList handles GET /api/v1/articles?q=&limit=&offset=. Limit and
// offset only apply when present; without them the full list is returned.
func (h *ArticleHandler) HandleList(c echo.Context) error {
	ctx := c.Request().Context()

	search := strings.TrimSpace(c.QueryParam("q"))

	var limit, offset *int

	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}

		if n < 1 {
			n = 1
		}

		limit = &n
	}

	if raw := c.QueryParam("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid offset")
		}

		if n < 0 {
			n = 0
		}

		offset = &n
	}

	items, total, err := h.articleRepo.List(ctx, search, limit, offset)
	if err != nil {
		return err
	}

	if items == nil {
		items = []*models.ArticleListItem{}
	}

	resp := ArticleListResponse{
		Items: items,
		Total: total,
	}

	lastFetch, err := h.stateRepo.Get(ctx, "last_fetch_at")
	if err != nil {
		return err
	}

	if lastFetch != "" {
		resp.LastFetchAt = &lastFetch
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleDelete handles POST /api/v1/articles/delete. Assessments go with
// their articles via cascade.
func (h *ArticleHandler) HandleDelete(c echo.Context) error {
	ctx := c.Request().Context()

	var req ArticleIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if len(req.ArticleIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "article_ids must be a non-empty array")
	}

	deleted, err := h.articleRepo.Delete(ctx, req.ArticleIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"deleted": deleted,
	})
}
