// Package detector holds the per-vendor and generic liveness detectors.
// Each detector maps a resolved job-posting URL to a verdict plus a
// human-readable reason; the pipeline package decides what a verdict means.
package detector

import (
	"context"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/model"
)

// Detector is a single liveness strategy for one ATS vendor or tier.
// Check never returns an error: every failure mode is folded into
// VerdictUnknown with the failure described in the reason.
type Detector interface {
	// Name identifies the detector in LinkCheckResult.DetectorUsed.
	Name() string
	// Check classifies one resolved URL within the given per-request timeout.
	Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string)
}

// Renderer drives a headless browser. Implemented by internal/browser and
// consumed here so browser-backed detectors stay testable with fakes.
type Renderer interface {
	// VisibleText loads url, lets scripts run, and returns the rendered
	// body text lower-cased.
	VisibleText(ctx context.Context, url string, timeout time.Duration) (string, error)
	// ConsoleContains loads url and reports whether any console or
	// page-error event contained marker, along with the matching event text.
	ConsoleContains(ctx context.Context, url, marker string, timeout time.Duration) (bool, string, error)
}

// Entry pairs a URL predicate with the detector that owns matching URLs.
type Entry struct {
	Match    func(url string) bool
	Detector Detector
}

// Registry is an ordered list of vendor entries. The first predicate that
// matches wins; there is no scoring across vendors. Adding a vendor means
// appending an Entry, never editing an existing one.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry from entries in priority order.
func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: entries}
}

// Append adds an entry at the lowest priority.
func (r *Registry) Append(e Entry) {
	r.entries = append(r.entries, e)
}

// Lookup returns the first detector whose predicate matches url.
func (r *Registry) Lookup(url string) (Detector, bool) {
	for _, e := range r.entries {
		if e.Match(url) {
			return e.Detector, true
		}
	}
	return nil, false
}

// contains builds a predicate matching any of the given URL fragments.
func contains(fragments ...string) func(string) bool {
	return func(url string) bool {
		for _, f := range fragments {
			if strings.Contains(url, f) {
				return true
			}
		}
		return false
	}
}
