package service

import (
	"context"
	"log/slog"
	"time"

	"kb-assessor/models"
	"kb-assessor/repository"
)

// watermarkKey is the app_state row holding the last successful fetch time.
const watermarkKey = "last_fetch_at"

// watermarkLayout matches the upstream query timestamp format, always UTC.
const watermarkLayout = "2006-01-02 15:04:05"

type syncService struct {
	articles  repository.ArticleRepository
	state     repository.AppStateRepository
	knowledge repository.KnowledgeAPIRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewSyncService wires the article synchronization job.
func NewSyncService(
	articles repository.ArticleRepository,
	state repository.AppStateRepository,
	knowledge repository.KnowledgeAPIRepository,
	logger *slog.Logger,
) SyncService {
	return &syncService{
		articles:  articles,
		state:     state,
		knowledge: knowledge,
		logger:    logger,
		now:       time.Now,
	}
}

// Sync pulls updated article summaries and reconciles the local table. With
// no overrides the stored watermark drives an incremental fetch; an empty
// local table forces a full refresh so a fresh deployment bootstraps itself.
// The watermark is advanced to the start-adjacent fetch time on every
// successful run, full or not.
func (s *syncService) Sync(ctx context.Context, opts SyncOptions) (*models.SyncResult, error) {
	since := opts.Since
	full := opts.Full

	if !full && since == "" {
		count, err := s.articles.Count(ctx)
		if err != nil {
			return nil, err
		}

		if count == 0 {
			full = true

			s.logger.InfoContext(ctx, "no local articles, forcing full refresh")
		} else {
			since, err = s.state.Get(ctx, watermarkKey)
			if err != nil {
				return nil, err
			}
		}
	}

	if full {
		since = ""
	}

	fetchedAt := s.now().UTC().Format(watermarkLayout)

	rows, err := s.knowledge.FetchUpdatedArticles(ctx, since, full)
	if err != nil {
		return nil, err
	}

	stats, err := s.articles.UpsertSummaries(ctx, rows)
	if err != nil {
		return nil, err
	}

	if err := s.state.Set(ctx, watermarkKey, fetchedAt); err != nil {
		return nil, err
	}

	result := &models.SyncResult{
		Fetched:  len(rows),
		Inserted: stats.Inserted,
		Updated:  stats.Updated,
		Since:    since,
		Full:     full,
	}

	s.logger.InfoContext(ctx, "sync completed",
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"since", result.Since,
		"full", result.Full)

	return result, nil
}
