package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"intelhub/internal/ports"
)

// Digest emails a selection of stored articles. It is a pure reader of the
// article store and never touches the ingestion backends.
type Digest struct {
	store    ports.ArticleStore
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewDigest constructs the use case.
func NewDigest(store ports.ArticleStore, notifier ports.Notifier, logger *slog.Logger) *Digest {
	return &Digest{store: store, notifier: notifier, logger: logger}
}

// Send delivers the selected articles to every recipient. Per-recipient
// delivery failures are counted, not propagated; the error return covers
// only an empty selection or a store failure.
func (d *Digest) Send(ctx context.Context, recipients, articleIDs []string) (sent, failed int, err error) {
	if d.notifier == nil {
		return 0, 0, fmt.Errorf("notifier is not configured")
	}
	if len(recipients) == 0 {
		return 0, 0, fmt.Errorf("no recipients")
	}

	articles, err := d.store.GetByIDs(ctx, articleIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("load selection: %w", err)
	}
	if len(articles) == 0 {
		return 0, 0, fmt.Errorf("selection matched no stored articles")
	}

	for _, recipient := range recipients {
		if err := d.notifier.SendDigest(ctx, recipient, articles); err != nil {
			failed++
			if d.logger != nil {
				d.logger.Warn("digest delivery failed", "recipient", recipient, "error", err)
			}
			continue
		}
		sent++
	}

	return sent, failed, nil
}
