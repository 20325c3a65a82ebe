package detector

import (
	"context"
	"fmt"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/model"
)

// BrowserText is the last-resort tier: render the page in a headless
// browser so JavaScript-only vendors produce text, then apply the same
// closed-posting phrase set as the request-text tier.
type BrowserText struct {
	renderer Renderer
}

// NewBrowserText constructs the browser-rendering tier.
func NewBrowserText(renderer Renderer) *BrowserText {
	return &BrowserText{renderer: renderer}
}

func (d *BrowserText) Name() string { return "browser" }

func (d *BrowserText) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	text, err := d.renderer.VisibleText(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("browser render failed: %v", err)
	}

	if pattern, ok := MatchClosedPhrase(text); ok {
		return model.VerdictExpired, fmt.Sprintf("browser render: closed pattern %q found", pattern)
	}
	return model.VerdictActive, "browser render: no closed patterns found, job is active"
}
