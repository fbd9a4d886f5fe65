package repository

import (
	"context"

	"kb-assessor/models"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/repository_mocks.go -package=mocks

// UpsertStats reports what a summary upsert changed.
type UpsertStats struct {
	Inserted int
	Updated  int
}

// ArticleRepository handles article persistence.
type ArticleRepository interface {
	// FindByID returns nil when the article does not exist.
	FindByID(ctx context.Context, id int64) (*models.Article, error)
	// UpdateBody persists a lazily fetched body together with the fresher
	// description and upstream timestamp.
	UpdateBody(ctx context.Context, id int64, body, shortDescription, sysUpdatedOn string) error
	// UpsertSummaries reconciles upstream summary rows in one transaction:
	// unknown numbers are inserted, known ones updated only when the
	// upstream timestamp moved, which also drops the cached body.
	UpsertSummaries(ctx context.Context, rows []models.KBSummary) (*UpsertStats, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, search string, limit, offset *int) ([]*models.ArticleListItem, int, error)
	// Delete removes articles by id; assessments go with them via cascade.
	Delete(ctx context.Context, ids []int64) (int, error)
}

// AssessmentRepository handles assessment attempt persistence.
type AssessmentRepository interface {
	// Create inserts a queued assessment and returns its id.
	Create(ctx context.Context, articleID int64) (int64, error)
	MarkRunning(ctx context.Context, id int64) error
	MarkDone(ctx context.Context, id int64, model string, verdict bool, recommendations []string) error
	MarkError(ctx context.Context, id int64, message string) error
	// LatestDone returns the most recently completed done assessment for an
	// article, or nil.
	LatestDone(ctx context.Context, articleID int64) (*models.Assessment, error)
	// LatestDetails returns the newest assessment (completed first) joined
	// with the article's number, or nil when the article has none.
	LatestDetails(ctx context.Context, articleID int64) (*models.AssessmentDetails, error)
	ProgressCounts(ctx context.Context, articleIDs []int64) (*models.ProgressStats, error)
	// CancelPending force-transitions each article's newest assessment to
	// error if it is still queued or running; returns the count changed.
	CancelPending(ctx context.Context, articleIDs []int64) (int, error)
	// InsertManual records an operator's "mark current" as a synthetic done
	// assessment with verdict true and no recommendations.
	InsertManual(ctx context.Context, articleID int64) error
}

// AppStateRepository is the single-row key/value store backing the sync
// watermark.
type AppStateRepository interface {
	// Get returns "" when the key has never been written.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// KnowledgeAPIRepository is the upstream KB system boundary.
type KnowledgeAPIRepository interface {
	FetchUpdatedArticles(ctx context.Context, since string, full bool) ([]models.KBSummary, error)
	// FetchArticleBody returns nil when no published record matches.
	FetchArticleBody(ctx context.Context, number string) (*models.KBRecord, error)
}

// LLMAPIRepository is the text-generation boundary. The returned map is the
// provider's decoded response as-is.
type LLMAPIRepository interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (map[string]any, error)
}
