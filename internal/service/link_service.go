package service

import (
	"context"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/model"
	"github.com/fuzumoe/jobcull-api/internal/runner"
)

// LinkService exposes the classification pipeline to the transport layer.
type LinkService interface {
	// Check classifies one URL. timeout <= 0 falls back to the default.
	Check(ctx context.Context, url string, timeout time.Duration) model.LinkCheckResult
	// CheckBatch classifies urls in input order with a bounded pool.
	CheckBatch(ctx context.Context, urls []string, timeout time.Duration, maxWorkers int) ([]model.LinkCheckResult, model.BatchSummary)
	// Sources breaks a URL list down by base domain.
	Sources(urls []string, examplesPerSource int) model.SourceBreakdown
}

type linkService struct {
	checker        runner.Classifier
	runner         *runner.Runner
	defaultTimeout time.Duration
}

// NewLinkService constructs a LinkService over the checker and batch runner.
func NewLinkService(checker runner.Classifier, r *runner.Runner, defaultTimeout time.Duration) LinkService {
	if defaultTimeout <= 0 {
		defaultTimeout = 60 * time.Second
	}
	return &linkService{checker: checker, runner: r, defaultTimeout: defaultTimeout}
}

func (s *linkService) Check(ctx context.Context, url string, timeout time.Duration) model.LinkCheckResult {
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	return s.checker.ClassifyLink(ctx, url, timeout)
}

func (s *linkService) CheckBatch(ctx context.Context, urls []string, timeout time.Duration, maxWorkers int) ([]model.LinkCheckResult, model.BatchSummary) {
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}
	return s.runner.RunWithWorkers(ctx, urls, timeout, maxWorkers)
}

func (s *linkService) Sources(urls []string, examplesPerSource int) model.SourceBreakdown {
	return runner.GroupBySource(urls, examplesPerSource)
}
