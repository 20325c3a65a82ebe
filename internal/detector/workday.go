package detector

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// postingAvailableRe matches Workday's availability flag in both its
// quoted-JSON and bare-script forms.
var postingAvailableRe = regexp.MustCompile(`(?i)postingAvailable"\s*:\s*(true|false)|postingAvailable\s*:\s*(true|false)`)

// Workday classifies Workday-hosted postings by the postingAvailable flag
// embedded in the page's inline script JSON.
type Workday struct {
	client *fetch.Client
}

// NewWorkday constructs the Workday detector.
func NewWorkday(client *fetch.Client) *Workday {
	return &Workday{client: client}
}

func (d *Workday) Name() string { return "workday" }

func (d *Workday) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("Workday: request failed: %v", err)
	}
	if resp.Body == "" {
		return model.VerdictUnknown, "Workday: no HTML content"
	}

	m := postingAvailableRe.FindStringSubmatch(resp.Body)
	if m == nil {
		return model.VerdictUnknown, "Workday: postingAvailable flag not found"
	}

	flag := m[1]
	if flag == "" {
		flag = m[2]
	}
	switch strings.ToLower(flag) {
	case "true":
		return model.VerdictActive, "Workday: postingAvailable=true"
	case "false":
		return model.VerdictExpired, "Workday: postingAvailable=false"
	}
	return model.VerdictUnknown, "Workday: postingAvailable flag unrecognized"
}
