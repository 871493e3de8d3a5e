package annotate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bkmekonnen/vigil/internal/model"
)

// stubProvider fails a fixed number of times before succeeding
type stubProvider struct {
	failures int
	failWith error
	calls    int
}

func (s *stubProvider) Name() string                          { return "stub" }
func (s *stubProvider) IsAvailable(ctx context.Context) bool  { return true }
func (s *stubProvider) Annotate(ctx context.Context, a model.Article) (*model.ArticleContext, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.failWith
	}
	return &model.ArticleContext{ArticleID: a.ID}, nil
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	origSleep := annotateSleepFunc
	annotateSleepFunc = func(time.Duration) {}
	defer func() { annotateSleepFunc = origSleep }()

	stub := &stubProvider{failures: 2, failWith: fmt.Errorf("%w: connection refused", ErrUnavailable)}
	p := WithRetry(stub, 3)

	got, err := p.Annotate(context.Background(), model.Article{ID: "a1"})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got.ArticleID != "a1" {
		t.Errorf("unexpected result: %+v", got)
	}
	if stub.calls != 3 {
		t.Errorf("expected 3 calls, got %d", stub.calls)
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	origSleep := annotateSleepFunc
	annotateSleepFunc = func(time.Duration) {}
	defer func() { annotateSleepFunc = origSleep }()

	stub := &stubProvider{failures: 10, failWith: fmt.Errorf("%w: down", ErrUnavailable)}
	p := WithRetry(stub, 2)

	_, err := p.Annotate(context.Background(), model.Article{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if stub.calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", stub.calls)
	}
}

func TestRetryFailsFastOnPermanentError(t *testing.T) {
	stub := &stubProvider{failures: 10, failWith: errors.New("malformed response")}
	p := WithRetry(stub, 3)

	_, err := p.Annotate(context.Background(), model.Article{})
	if err == nil {
		t.Fatal("expected error")
	}
	if stub.calls != 1 {
		t.Errorf("permanent errors should not retry, got %d calls", stub.calls)
	}
}
