package usecase

import (
	"context"
	"errors"
	"testing"

	"intelhub/internal/domain"
)

type fakeNotifier struct {
	failFor map[string]bool
	sent    []string
}

func (f *fakeNotifier) SendDigest(_ context.Context, recipient string, _ []domain.NewsArticle) error {
	if f.failFor[recipient] {
		return errors.New("smtp refused")
	}
	f.sent = append(f.sent, recipient)
	return nil
}

func TestDigestSend(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.articles["id1"] = domain.NewsArticle{ID: "id1", Title: "Stored"}

	notifier := &fakeNotifier{failFor: map[string]bool{"bad@example.com": true}}
	d := NewDigest(store, notifier, nil)

	sent, failed, err := d.Send(context.Background(),
		[]string{"good@example.com", "bad@example.com"}, []string{"id1"})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if sent != 1 || failed != 1 {
		t.Fatalf("expected 1 sent / 1 failed, got %d / %d", sent, failed)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "good@example.com" {
		t.Fatalf("unexpected deliveries: %v", notifier.sent)
	}
}

func TestDigestSendEmptySelection(t *testing.T) {
	t.Parallel()

	d := NewDigest(newFakeStore(), &fakeNotifier{}, nil)
	if _, _, err := d.Send(context.Background(), []string{"a@example.com"}, []string{"missing"}); err == nil {
		t.Fatal("empty selection must be an error")
	}
}

func TestDigestSendNoRecipients(t *testing.T) {
	t.Parallel()

	d := NewDigest(newFakeStore(), &fakeNotifier{}, nil)
	if _, _, err := d.Send(context.Background(), nil, []string{"id1"}); err == nil {
		t.Fatal("missing recipients must be an error")
	}
}
