package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"kb-assessor/models"
)

// cancelMessage is recorded as the error of assessments an operator cancels.
const cancelMessage = "Cancelled by user"

type assessmentRepository struct {
	db     DB
	logger *slog.Logger
}

// NewAssessmentRepository creates the pgx-backed assessment repository.
func NewAssessmentRepository(db DB, logger *slog.Logger) AssessmentRepository {
	return &assessmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *assessmentRepository) Create(ctx context.Context, articleID int64) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	var id int64

	err := r.db.QueryRow(ctx,
		`INSERT INTO assessments (article_id, status, requested_at)
		 VALUES ($1, $2, now())
		 RETURNING id`,
		articleID, models.AssessmentStatusQueued,
	).Scan(&id)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to create assessment", "error", err, "article_id", articleID)
		return 0, fmt.Errorf("failed to create assessment: %w", err)
	}

	return id, nil
}

func (r *assessmentRepository) MarkRunning(ctx context.Context, id int64) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	_, err := r.db.Exec(ctx,
		`UPDATE assessments SET status = $1, started_at = now() WHERE id = $2`,
		models.AssessmentStatusRunning, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark assessment running: %w", err)
	}

	return nil
}

func (r *assessmentRepository) MarkDone(ctx context.Context, id int64, model string, verdict bool, recommendations []string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	if recommendations == nil {
		recommendations = []string{}
	}

	recs, err := json.Marshal(recommendations)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`UPDATE assessments
		 SET status = $1, completed_at = now(), llm_model = $2, verdict_current = $3,
		     recommendations = $4, error = NULL
		 WHERE id = $5`,
		models.AssessmentStatusDone, model, verdict, recs, id,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to mark assessment done", "error", err, "assessment_id", id)
		return fmt.Errorf("failed to mark assessment done: %w", err)
	}

	return nil
}

func (r *assessmentRepository) MarkError(ctx context.Context, id int64, message string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	_, err := r.db.Exec(ctx,
		`UPDATE assessments SET status = $1, completed_at = now(), error = $2 WHERE id = $3`,
		models.AssessmentStatusError, message, id,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to mark assessment errored", "error", err, "assessment_id", id)
		return fmt.Errorf("failed to mark assessment errored: %w", err)
	}

	return nil
}

func (r *assessmentRepository) LatestDone(ctx context.Context, articleID int64) (*models.Assessment, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, article_id, status, requested_at, started_at, completed_at,
		       llm_model, verdict_current, recommendations, error
		FROM assessments
		WHERE article_id = $1 AND status = $2
		ORDER BY completed_at DESC
		LIMIT 1
	`

	assessment, err := scanAssessment(r.db.QueryRow(ctx, query, articleID, models.AssessmentStatusDone))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load latest done assessment: %w", err)
	}

	return assessment, nil
}

func (r *assessmentRepository) LatestDetails(ctx context.Context, articleID int64) (*models.AssessmentDetails, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT s.id, s.article_id, s.status, s.requested_at, s.started_at, s.completed_at,
		       s.llm_model, s.verdict_current, s.recommendations, s.error, a.kb_number
		FROM assessments s
		JOIN articles a ON a.id = s.article_id
		WHERE s.article_id = $1
		ORDER BY s.completed_at DESC NULLS LAST, s.id DESC
		LIMIT 1
	`

	var (
		details models.AssessmentDetails
		recs    []byte
	)

	err := r.db.QueryRow(ctx, query, articleID).Scan(
		&details.ID,
		&details.ArticleID,
		&details.Status,
		&details.RequestedAt,
		&details.StartedAt,
		&details.CompletedAt,
		&details.LLMModel,
		&details.VerdictCurrent,
		&recs,
		&details.Error,
		&details.KBNumber,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to load assessment details: %w", err)
	}

	if err := json.Unmarshal(recs, &details.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	return &details, nil
}

// ProgressCounts tallies each article's newest assessment by status. Older
// attempts are ignored so a retried article counts once.
func (r *assessmentRepository) ProgressCounts(ctx context.Context, articleIDs []int64) (*models.ProgressStats, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	stats := &models.ProgressStats{}

	if len(articleIDs) == 0 {
		return stats, nil
	}

	query := `
		SELECT status, COUNT(*)
		FROM assessments
		WHERE id IN (
			SELECT MAX(id) FROM assessments WHERE article_id = ANY($1) GROUP BY article_id
		)
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count assessment progress: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int
		)

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}

		switch models.AssessmentStatus(status) {
		case models.AssessmentStatusQueued:
			stats.Queued = count
		case models.AssessmentStatusRunning:
			stats.Running = count
		case models.AssessmentStatusDone:
			stats.Done = count
		case models.AssessmentStatusError:
			stats.Error = count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read progress rows: %w", err)
	}

	return stats, nil
}

func (r *assessmentRepository) CancelPending(ctx context.Context, articleIDs []int64) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	if len(articleIDs) == 0 {
		return 0, nil
	}

	query := `
		UPDATE assessments
		SET status = $1, completed_at = now(), error = $2
		WHERE id IN (
			SELECT MAX(id) FROM assessments WHERE article_id = ANY($3) GROUP BY article_id
		)
		AND status IN ($4, $5)
	`

	tag, err := r.db.Exec(ctx, query,
		models.AssessmentStatusError, cancelMessage, articleIDs,
		models.AssessmentStatusQueued, models.AssessmentStatusRunning,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to cancel assessments", "error", err)
		return 0, fmt.Errorf("failed to cancel assessments: %w", err)
	}

	cancelled := int(tag.RowsAffected())

	r.logger.InfoContext(ctx, "assessments cancelled", "requested", len(articleIDs), "cancelled", cancelled)

	return cancelled, nil
}

// InsertManual records an operator override as an already-completed
// assessment with a current verdict and no recommendations.
func (r *assessmentRepository) InsertManual(ctx context.Context, articleID int64) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO assessments
		 (article_id, status, requested_at, started_at, completed_at, llm_model, verdict_current, recommendations)
		 VALUES ($1, $2, now(), now(), now(), $3, TRUE, '[]')`,
		articleID, models.AssessmentStatusDone, models.ManualModel,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to insert manual assessment", "error", err, "article_id", articleID)
		return fmt.Errorf("failed to insert manual assessment: %w", err)
	}

	return nil
}

func scanAssessment(row pgx.Row) (*models.Assessment, error) {
	var (
		assessment models.Assessment
		recs       []byte
	)

	err := row.Scan(
		&assessment.ID,
		&assessment.ArticleID,
		&assessment.Status,
		&assessment.RequestedAt,
		&assessment.StartedAt,
		&assessment.CompletedAt,
		&assessment.LLMModel,
		&assessment.VerdictCurrent,
		&recs,
		&assessment.Error,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(recs, &assessment.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	return &assessment, nil
}
