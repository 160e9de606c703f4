package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"intelhub/internal/domain"
	"intelhub/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const articleColumns = "id, title, url, source, published_at, department, " +
	"executive_summary, suggested_action, relevance_score, topics, confidence"

// ArticleRepository persists enriched articles keyed by the dedup hash.
type ArticleRepository struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*ArticleRepository)(nil)

// NewArticleRepository wires a sql.DB implementation.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Exists reports whether an article with the given id is already stored.
// The pipeline calls this before any extraction or enrichment work.
func (r *ArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.Select("1").
		From("news_articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query exists: %w", err)
	}
	return true, nil
}

// Upsert inserts the article or merges its analysis fields into the
// existing row. The original published_at (first ingestion time) is kept.
func (r *ArticleRepository) Upsert(ctx context.Context, a domain.NewsArticle) error {
	query, args, err := psql.Insert("news_articles").
		Columns("id", "title", "url", "source", "published_at", "department",
			"executive_summary", "suggested_action", "relevance_score", "topics", "confidence").
		Values(a.ID, a.Title, a.URL, a.Source, a.PublishedAt, string(a.Analysis.Department),
			a.Analysis.ExecutiveSummary, a.Analysis.SuggestedAction, a.Analysis.RelevanceScore,
			pq.Array(a.Analysis.Topics), a.Analysis.Confidence).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			source = EXCLUDED.source,
			department = EXCLUDED.department,
			executive_summary = EXCLUDED.executive_summary,
			suggested_action = EXCLUDED.suggested_action,
			relevance_score = EXCLUDED.relevance_score,
			topics = EXCLUDED.topics,
			confidence = EXCLUDED.confidence`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}
	return nil
}

// List returns articles matching the filter, newest first.
func (r *ArticleRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.NewsArticle, error) {
	builder := psql.Select(articleColumns).
		From("news_articles").
		OrderBy("published_at DESC")

	builder = applyFilter(builder, filter)
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	return r.queryArticles(ctx, query, args)
}

// GetByIDs loads the given articles; missing ids are silently absent from
// the result.
func (r *ArticleRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.NewsArticle, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select(articleColumns).
		From("news_articles").
		Where(sq.Eq{"id": ids}).
		OrderBy("published_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	return r.queryArticles(ctx, query, args)
}

// CountSince counts articles ingested at or after the given time.
func (r *ArticleRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("news_articles").
		Where(sq.GtOrEq{"published_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("query count: %w", err)
	}
	return count, nil
}

// Metrics aggregates article count and mean relevance per department.
func (r *ArticleRepository) Metrics(ctx context.Context, filter ports.ListFilter) ([]ports.DepartmentMetric, error) {
	builder := psql.Select("department", "COUNT(*)", "AVG(relevance_score)").
		From("news_articles").
		GroupBy("department").
		OrderBy("department")

	builder = applyFilter(builder, filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build metrics query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query metrics: %w", err)
	}
	defer rows.Close()

	var metrics []ports.DepartmentMetric
	for rows.Next() {
		var m ports.DepartmentMetric
		var dept string
		if err := rows.Scan(&dept, &m.Count, &m.MeanScore); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		m.Department = domain.Department(dept)
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return metrics, nil
}

func applyFilter(builder sq.SelectBuilder, filter ports.ListFilter) sq.SelectBuilder {
	if len(filter.Departments) > 0 {
		depts := make([]string, 0, len(filter.Departments))
		for _, d := range filter.Departments {
			depts = append(depts, string(d))
		}
		builder = builder.Where(sq.Eq{"department": depts})
	}
	if !filter.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"published_at": filter.Since})
	}
	if !filter.Until.IsZero() {
		builder = builder.Where(sq.Lt{"published_at": filter.Until})
	}
	return builder
}

func (r *ArticleRepository) queryArticles(ctx context.Context, query string, args []interface{}) ([]domain.NewsArticle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.NewsArticle
	for rows.Next() {
		var a domain.NewsArticle
		var dept string
		var topics []string
		if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Source, &a.PublishedAt,
			&dept, &a.Analysis.ExecutiveSummary, &a.Analysis.SuggestedAction,
			&a.Analysis.RelevanceScore, pq.Array(&topics), &a.Analysis.Confidence); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.Analysis.Department = domain.Department(dept)
		a.Analysis.Topics = topics
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}
