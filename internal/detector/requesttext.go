package detector

import (
	"context"
	"fmt"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// requestTextSources are hosts that render their closed state as plain
// server-side HTML, so the shared phrase set works without a browser.
var requestTextSources = []string{
	"smartrecruiters.com",
	"teamworkonline.com",
}

// RequestText fetches a page once, strips script and style content, and
// matches the shared closed-posting phrase set against the visible text.
// It backs both the request-text vendors and the generic request-text tier.
type RequestText struct {
	client *fetch.Client
	name   string
}

// NewRequestText constructs a request-text detector for one named source.
func NewRequestText(client *fetch.Client, source string) *RequestText {
	return &RequestText{client: client, name: source + "_request_text"}
}

// NewGenericRequestText constructs the vendor-agnostic request-text tier.
func NewGenericRequestText(client *fetch.Client) *RequestText {
	return &RequestText{client: client, name: "request_text"}
}

func (d *RequestText) Name() string { return d.name }

func (d *RequestText) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("request text check failed: %v", err)
	}

	visible := VisibleText(resp.Body)
	if pattern, ok := MatchClosedPhrase(visible); ok {
		return model.VerdictExpired, fmt.Sprintf("closed pattern %q found in HTML request text, no browser used", pattern)
	}
	return model.VerdictActive, "no closed patterns found in HTML request text, no browser used"
}
