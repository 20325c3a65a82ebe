package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/jobcull-api/internal/model"
	"github.com/fuzumoe/jobcull-api/internal/runner"
	"github.com/fuzumoe/jobcull-api/internal/service"
)

// recordingClassifier captures the timeout each classification ran with.
type recordingClassifier struct {
	lastTimeout time.Duration
}

func (c *recordingClassifier) ClassifyLink(_ context.Context, rawURL string, timeout time.Duration) model.LinkCheckResult {
	c.lastTimeout = timeout
	return model.LinkCheckResult{
		FinalURL:     rawURL,
		Decision:     model.DecisionKeep,
		Reason:       "no closed patterns found",
		DetectorUsed: "request_text",
	}
}

func newService(c runner.Classifier, defaultTimeout time.Duration) service.LinkService {
	return service.NewLinkService(c, runner.New(c, 2), defaultTimeout)
}

func TestLinkService_Check(t *testing.T) {
	t.Run("Explicit Timeout Wins", func(t *testing.T) {
		c := &recordingClassifier{}
		svc := newService(c, 30*time.Second)

		res := svc.Check(context.Background(), "https://jobs.example.com/1", 5*time.Second)
		require.Equal(t, model.DecisionKeep, res.Decision)
		require.Equal(t, 5*time.Second, c.lastTimeout)
	})

	t.Run("Zero Timeout Falls Back To Default", func(t *testing.T) {
		c := &recordingClassifier{}
		svc := newService(c, 30*time.Second)

		svc.Check(context.Background(), "https://jobs.example.com/1", 0)
		require.Equal(t, 30*time.Second, c.lastTimeout)
	})

	t.Run("Unset Default Falls Back To 60s", func(t *testing.T) {
		c := &recordingClassifier{}
		svc := newService(c, 0)

		svc.Check(context.Background(), "https://jobs.example.com/1", 0)
		require.Equal(t, 60*time.Second, c.lastTimeout)
	})
}

func TestLinkService_CheckBatch(t *testing.T) {
	c := &recordingClassifier{}
	svc := newService(c, 30*time.Second)

	urls := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	results, summary := svc.CheckBatch(context.Background(), urls, 0, 0)

	require.Len(t, results, 3)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, urls[2], results[2].FinalURL)
	require.Equal(t, 30*time.Second, c.lastTimeout)
}

func TestLinkService_Sources(t *testing.T) {
	svc := newService(&recordingClassifier{}, time.Minute)

	breakdown := svc.Sources([]string{
		"https://boards.greenhouse.io/acme/jobs/1",
		"https://boards.greenhouse.io/acme/jobs/2",
		"https://careers.ultipro.com/acme/job/3",
	}, 1)

	require.Equal(t, 3, breakdown.Total)
	require.Equal(t, 2, breakdown.Counts["greenhouse.io"])
	require.Equal(t, 1, breakdown.Counts["ultipro.com"])
	require.Len(t, breakdown.Examples["greenhouse.io"], 1)
}
