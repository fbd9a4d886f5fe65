package repository

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"kb-assessor/models"
)

type articleRepository struct {
	db     DB
	logger *slog.Logger
}

// NewArticleRepository creates the pgx-backed article repository.
func NewArticleRepository(db DB, logger *slog.Logger) ArticleRepository {
	return &articleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *articleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, kb_number, short_description, body_html, sys_updated_on, created_at, updated_at
		FROM articles
		WHERE id = $1
	`

	var article models.Article

	err := r.db.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.KBNumber,
		&article.ShortDescription,
		&article.BodyHTML,
		&article.SysUpdatedOn,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		r.logger.ErrorContext(ctx, "failed to find article", "error", err, "article_id", id)

		return nil, fmt.Errorf("failed to find article: %w", err)
	}

	return &article, nil
}

func (r *articleRepository) UpdateBody(ctx context.Context, id int64, body, shortDescription, sysUpdatedOn string) error {
	if r.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	query := `
		UPDATE articles
		SET body_html = $1, short_description = $2, sys_updated_on = $3, updated_at = now()
		WHERE id = $4
	`

	if _, err := r.db.Exec(ctx, query, body, shortDescription, sysUpdatedOn, id); err != nil {
		r.logger.ErrorContext(ctx, "failed to update article body", "error", err, "article_id", id)
		return fmt.Errorf("failed to update article body: %w", err)
	}

	r.logger.InfoContext(ctx, "article body cached", "article_id", id, "body_length", len(body))

	return nil
}

// UpsertSummaries runs inside one transaction so a failing row aborts the
// whole sync. An existing row is only touched when the upstream timestamp
// differs; the cached body is dropped then because the summary feed never
// carries body text.
func (r *articleRepository) UpsertSummaries(ctx context.Context, rows []models.KBSummary) (*UpsertStats, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	stats := &UpsertStats{}

	if len(rows) == 0 {
		return stats, nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, row := range rows {
		if row.Number == "" {
			continue
		}

		var (
			existingID      int64
			existingUpdated string
		)

		err := tx.QueryRow(ctx,
			`SELECT id, sys_updated_on FROM articles WHERE kb_number = $1`,
			row.Number,
		).Scan(&existingID, &existingUpdated)

		switch {
		case err == pgx.ErrNoRows:
			_, err := tx.Exec(ctx,
				`INSERT INTO articles (kb_number, short_description, sys_updated_on)
				 VALUES ($1, $2, $3)`,
				row.Number, row.ShortDescription, row.SysUpdatedOn,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to insert article %s: %w", row.Number, err)
			}

			stats.Inserted++
		case err != nil:
			return nil, fmt.Errorf("failed to look up article %s: %w", row.Number, err)
		case existingUpdated != row.SysUpdatedOn:
			_, err := tx.Exec(ctx,
				`UPDATE articles
				 SET short_description = $1, sys_updated_on = $2, body_html = NULL, updated_at = now()
				 WHERE id = $3`,
				row.ShortDescription, row.SysUpdatedOn, existingID,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to update article %s: %w", row.Number, err)
			}

			stats.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit upsert: %w", err)
	}

	r.logger.InfoContext(ctx, "article summaries upserted",
		"fetched", len(rows),
		"inserted", stats.Inserted,
		"updated", stats.Updated)

	return stats, nil
}

func (r *articleRepository) Count(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}

// List returns articles ordered by upstream update time, newest first, each
// decorated with its latest assessment state. The search term matches number
// and description; limit/offset are optional.
func (r *articleRepository) List(ctx context.Context, search string, limit, offset *int) ([]*models.ArticleListItem, int, error) {
	if r.db == nil {
		return nil, 0, fmt.Errorf("database connection is nil")
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countQuery := psql.Select("COUNT(*)").From("articles a")
	listQuery := psql.Select(
		"a.id",
		"a.kb_number",
		"a.short_description",
		"a.sys_updated_on",
		`(SELECT MAX(s.completed_at) FROM assessments s
		  WHERE s.article_id = a.id AND s.status = 'done') AS last_assessed_at`,
		`(SELECT s.status FROM assessments s
		  WHERE s.article_id = a.id ORDER BY s.id DESC LIMIT 1) AS last_status`,
		`(SELECT s.verdict_current FROM assessments s
		  WHERE s.article_id = a.id AND s.status = 'done'
		  ORDER BY s.completed_at DESC LIMIT 1) AS verdict_current`,
	).From("articles a").OrderBy("a.sys_updated_on DESC")

	if search != "" {
		pattern := "%" + search + "%"
		cond := sq.Or{
			sq.ILike{"a.kb_number": pattern},
			sq.ILike{"a.short_description": pattern},
		}
		countQuery = countQuery.Where(cond)
		listQuery = listQuery.Where(cond)
	}

	if limit != nil {
		listQuery = listQuery.Limit(uint64(*limit))

		if offset != nil {
			listQuery = listQuery.Offset(uint64(*offset))
		}
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list articles", "error", err)
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var items []*models.ArticleListItem

	for rows.Next() {
		var item models.ArticleListItem

		err := rows.Scan(
			&item.ID,
			&item.KBNumber,
			&item.ShortDescription,
			&item.SysUpdatedOn,
			&item.LastAssessedAt,
			&item.LastStatus,
			&item.VerdictCurrent,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article row: %w", err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read article rows: %w", err)
	}

	return items, total, nil
}

func (r *articleRepository) Delete(ctx context.Context, ids []int64) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete articles", "error", err)
		return 0, fmt.Errorf("failed to delete articles: %w", err)
	}

	deleted := int(tag.RowsAffected())

	r.logger.InfoContext(ctx, "articles deleted", "requested", len(ids), "deleted", deleted)

	return deleted, nil
}
