package ports

import (
	"context"
	"errors"
	"time"

	"intelhub/internal/domain"
)

// ErrNotFound is returned by stores when the requested record is absent.
var ErrNotFound = errors.New("not found")

// ListFilter narrows article queries. Zero time bounds are unbounded; an
// empty department slice means all departments.
type ListFilter struct {
	Departments []domain.Department
	Since       time.Time
	Until       time.Time
	Limit       int
}

// DepartmentMetric aggregates stored articles per department.
type DepartmentMetric struct {
	Department domain.Department
	Count      int
	MeanScore  float64
}

// ArticleStore persists enriched articles keyed by their dedup key.
type ArticleStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Upsert(ctx context.Context, article domain.NewsArticle) error
	List(ctx context.Context, filter ListFilter) ([]domain.NewsArticle, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.NewsArticle, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	Metrics(ctx context.Context, filter ListFilter) ([]DepartmentMetric, error)
}

// UserStore persists dashboard accounts.
type UserStore interface {
	Get(ctx context.Context, email string) (domain.UserAccount, error)
	Create(ctx context.Context, user domain.UserAccount) error
	UpdateInterests(ctx context.Context, email string, interests []domain.Department) error
}

// Extractor fetches a URL and returns the main article text, or an error
// when nothing extractable is found.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Enricher submits a prompt to the language model and returns its raw,
// untrusted completion text.
type Enricher interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Notifier delivers a digest of stored articles to one recipient.
type Notifier interface {
	SendDigest(ctx context.Context, recipient string, articles []domain.NewsArticle) error
}

// Scheduler controls when background scans execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
