package runner_test

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/jobcull-api/internal/model"
	"github.com/fuzumoe/jobcull-api/internal/runner"
)

// jitterClassifier deletes URLs containing "expired" and sleeps a random
// few milliseconds so completion order differs from input order.
type jitterClassifier struct {
	mu         sync.Mutex
	concurrent int
	peak       int
}

func (j *jitterClassifier) ClassifyLink(_ context.Context, rawURL string, _ time.Duration) model.LinkCheckResult {
	j.mu.Lock()
	j.concurrent++
	if j.concurrent > j.peak {
		j.peak = j.concurrent
	}
	j.mu.Unlock()

	time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)

	j.mu.Lock()
	j.concurrent--
	j.mu.Unlock()

	if strings.Contains(rawURL, "expired") {
		return model.LinkCheckResult{
			FinalURL:     rawURL,
			Decision:     model.DecisionDelete,
			Reason:       "HTTP 410",
			DetectorUsed: "status_code",
		}
	}
	return model.LinkCheckResult{
		FinalURL:     rawURL,
		Decision:     model.DecisionKeep,
		Reason:       "no closed patterns found",
		DetectorUsed: "request_text",
	}
}

func TestRunner_Run(t *testing.T) {
	const total = 50

	urls := make([]string, total)
	for i := range urls {
		if i%5 == 0 {
			urls[i] = fmt.Sprintf("https://jobs.example.com/expired/%d", i)
		} else {
			urls[i] = fmt.Sprintf("https://jobs.example.com/live/%d", i)
		}
	}

	checker := &jitterClassifier{}
	r := runner.New(checker, 10)

	results, summary := r.Run(context.Background(), urls, 5*time.Second)

	require.Len(t, results, total)

	t.Run("Output Order Matches Input Order", func(t *testing.T) {
		for i, res := range results {
			require.Equal(t, urls[i], res.FinalURL, "index %d", i)
		}
	})

	t.Run("Summary Counts Sum To Total", func(t *testing.T) {
		require.Equal(t, total, summary.Total)

		decisionSum := 0
		for _, n := range summary.Decisions {
			decisionSum += n
		}
		require.Equal(t, total, decisionSum)

		detectorSum := 0
		for _, n := range summary.DetectorsUsed {
			detectorSum += n
		}
		require.Equal(t, total, detectorSum)

		require.Equal(t, 10, summary.Decisions[string(model.DecisionDelete)])
		require.Equal(t, 40, summary.Decisions[string(model.DecisionKeep)])
	})

	t.Run("Run ID Is Valid", func(t *testing.T) {
		_, err := uuid.Parse(summary.RunID)
		require.NoError(t, err)
	})

	t.Run("Pool Bound Respected", func(t *testing.T) {
		require.LessOrEqual(t, checker.peak, 10)
	})

	t.Run("Top Reasons Sorted Descending", func(t *testing.T) {
		require.NotEmpty(t, summary.TopReasons)
		for i := 1; i < len(summary.TopReasons); i++ {
			require.GreaterOrEqual(t, summary.TopReasons[i-1].Count, summary.TopReasons[i].Count)
		}
	})
}

func TestRunner_EmptyBatch(t *testing.T) {
	r := runner.New(&jitterClassifier{}, 4)
	results, summary := r.Run(context.Background(), nil, time.Second)
	require.Empty(t, results)
	require.Zero(t, summary.Total)
}

func TestRunner_RunLinks(t *testing.T) {
	links := []model.CandidateLink{
		{URL: "https://jobs.example.com/live/1", JobID: "j-1"},
		{URL: "https://jobs.example.com/expired/2", JobID: "j-2"},
	}

	r := runner.New(&jitterClassifier{}, 4)
	results, summary := r.RunLinks(context.Background(), links, time.Second)

	require.Len(t, results, 2)
	require.Equal(t, 2, summary.Total)
	require.Equal(t, links[0].URL, results[0].FinalURL)
	require.Equal(t, model.DecisionDelete, results[1].Decision)
}

func TestRunner_WorkerOverride(t *testing.T) {
	urls := []string{
		"https://jobs.example.com/live/1",
		"https://jobs.example.com/expired/2",
		"https://jobs.example.com/live/3",
	}

	r := runner.New(&jitterClassifier{}, 8)
	results, summary := r.RunWithWorkers(context.Background(), urls, time.Second, 2)
	require.Len(t, results, 3)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, model.DecisionDelete, results[1].Decision)
}
