package detector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// ICIMS classifies iCIMS postings. iCIMS is the one major vendor that
// reliably serves a hard 404/410 on removed postings, so the status code
// alone is authoritative.
type ICIMS struct {
	client *fetch.Client
}

// NewICIMS constructs the iCIMS detector.
func NewICIMS(client *fetch.Client) *ICIMS {
	return &ICIMS{client: client}
}

func (d *ICIMS) Name() string { return "icims" }

func (d *ICIMS) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("iCIMS: request failed: %v", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return model.VerdictExpired, fmt.Sprintf("iCIMS: HTTP %d, job is expired", resp.StatusCode)
	}
	return model.VerdictActive, fmt.Sprintf("iCIMS: HTTP %d, job is active", resp.StatusCode)
}
