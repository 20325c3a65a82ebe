package detector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// notFoundURLMarkers are path fragments some platforms redirect to while
// still answering 200 for a removed posting.
var notFoundURLMarkers = []string{
	"position-not-available",
	"jobnotfound",
	"job-not-found",
}

// StatusCode is the vendor-agnostic status tier: a hard 404/410 or a
// redirect onto a not-found style URL classifies the posting as gone.
// Anything else is inconclusive rather than active, so later tiers still
// get to look at the page.
type StatusCode struct {
	client *fetch.Client
}

// NewStatusCode constructs the generic status tier.
func NewStatusCode(client *fetch.Client) *StatusCode {
	return &StatusCode{client: client}
}

func (d *StatusCode) Name() string { return "status_code" }

func (d *StatusCode) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("status check failed: %v", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return model.VerdictExpired, fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	finalLower := strings.ToLower(resp.FinalURL)
	for _, marker := range notFoundURLMarkers {
		if strings.Contains(finalLower, marker) {
			return model.VerdictExpired, fmt.Sprintf("URL indicates not found: %s", resp.FinalURL)
		}
	}

	return model.VerdictUnknown, fmt.Sprintf("HTTP %d with no not-found URL marker", resp.StatusCode)
}
