package service

import (
	"context"

	"kb-assessor/models"
)

// The service mocks live in their own package so the in-package service tests
// can use the repository mocks without importing this package back.
//go:generate mockgen -source=interfaces.go -destination=../test/servicemocks/service_mocks.go -package=servicemocks

// AssessmentService runs the full assessment pipeline for one article: queue
// a record, fetch the body if it is not cached yet, ask the model for a
// verdict and persist the outcome.
type AssessmentService interface {
	Assess(ctx context.Context, articleID int64) (*models.AssessmentResult, error)
}

// RewriteService produces a rewritten article body implementing a selected
// subset of a prior assessment's recommendations. Nothing is persisted; the
// caller decides what to do with the draft.
type RewriteService interface {
	Rewrite(ctx context.Context, articleID int64, recommendations []string) (*models.RewriteResult, error)
}

// SyncOptions overrides the automatic watermark resolution. An explicit Since
// wins over the stored watermark; Full ignores dates entirely.
type SyncOptions struct {
	Since string
	Full  bool
}

// SyncService reconciles the local article table with the upstream KB.
type SyncService interface {
	Sync(ctx context.Context, opts SyncOptions) (*models.SyncResult, error)
}
