// Package runner fans the classification waterfall out over many URLs with
// a bounded worker pool, preserving input order in the output and keeping
// audit counters as results land.
package runner

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fuzumoe/jobcull-api/internal/model"
)

// Classifier is the single-URL entry point; implemented by pipeline.Checker.
type Classifier interface {
	ClassifyLink(ctx context.Context, rawURL string, timeout time.Duration) model.LinkCheckResult
}

const (
	defaultWorkers = 20
	topReasonsN    = 10
)

// Runner executes batches.
type Runner struct {
	checker Classifier
	workers int
}

// New builds a Runner. workers <= 0 falls back to the default pool size.
func New(checker Classifier, workers int) *Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Runner{checker: checker, workers: workers}
}

// Run classifies every URL in urls and returns results in input order plus
// a summary. results[i] always corresponds to urls[i] no matter which
// worker finished first, and one URL's failure never aborts the batch: the
// dispatcher folds failures into KEEP results.
func (r *Runner) Run(ctx context.Context, urls []string, timeout time.Duration) ([]model.LinkCheckResult, model.BatchSummary) {
	return r.run(ctx, urls, timeout, r.workers)
}

// RunLinks is Run for callers holding candidate records instead of bare
// URLs. Each link yields exactly one result at the same index.
func (r *Runner) RunLinks(ctx context.Context, links []model.CandidateLink, timeout time.Duration) ([]model.LinkCheckResult, model.BatchSummary) {
	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	return r.run(ctx, urls, timeout, r.workers)
}

// RunWithWorkers is Run with a per-call pool size override.
func (r *Runner) RunWithWorkers(ctx context.Context, urls []string, timeout time.Duration, workers int) ([]model.LinkCheckResult, model.BatchSummary) {
	if workers <= 0 {
		workers = r.workers
	}
	return r.run(ctx, urls, timeout, workers)
}

func (r *Runner) run(ctx context.Context, urls []string, timeout time.Duration, workers int) ([]model.LinkCheckResult, model.BatchSummary) {
	total := len(urls)
	start := time.Now()
	runID := uuid.NewString()

	results := make([]model.LinkCheckResult, total)

	// Counters shared by all workers; one lock guards them all.
	var (
		mu        sync.Mutex
		done      int
		decisions = make(map[string]int)
		detectors = make(map[string]int)
		reasons   = make(map[string]int)
	)

	log.Printf("[runner] run=%s starting: %d link(s), timeout=%s, workers=%d", runID, total, timeout, workers)

	tasks := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range tasks {
				res := r.checker.ClassifyLink(ctx, strings.TrimSpace(urls[i]), timeout)
				results[i] = res

				mu.Lock()
				done++
				decisions[string(res.Decision)]++
				detectors[res.DetectorUsed]++
				if res.Reason != "" {
					reasons[res.Reason]++
				}
				progress := done
				mu.Unlock()

				log.Printf("[runner:%d] [%03d/%d] %-6s | used=%-14s | %s", workerID, progress, total, res.Decision, res.DetectorUsed, res.Reason)
			}
		}(w + 1)
	}

	for i := 0; i < total; i++ {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	elapsed := time.Since(start)
	summary := model.BatchSummary{
		RunID:          runID,
		Total:          total,
		Decisions:      decisions,
		DetectorsUsed:  detectors,
		TopReasons:     topReasons(reasons, topReasonsN),
		Elapsed:        elapsed,
		ElapsedSeconds: elapsed.Seconds(),
	}

	log.Printf("[runner] run=%s finished: total=%d keep=%d delete=%d elapsed=%s",
		runID, total, decisions[string(model.DecisionKeep)], decisions[string(model.DecisionDelete)], elapsed.Truncate(time.Millisecond))

	return results, summary
}

// topReasons returns the n most frequent reasons, most frequent first.
// Ties break alphabetically so summaries are stable across runs.
func topReasons(counts map[string]int, n int) []model.ReasonCount {
	out := make([]model.ReasonCount, 0, len(counts))
	for reason, count := range counts {
		out = append(out, model.ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
