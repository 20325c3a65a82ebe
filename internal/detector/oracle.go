package detector

import (
	"context"
	"fmt"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/model"
)

// oracleExpiredMarker is the console assertion Oracle Cloud's SPA logs for
// a removed requisition. It never appears in the server-side HTML.
const oracleExpiredMarker = "job-expired"

// Oracle classifies Oracle Cloud recruiting postings. The page is a SPA
// with no server-side signal, so this is the one vendor detector built on
// the browser tier: it renders the page and watches console and page-error
// events for the job-expired assertion.
type Oracle struct {
	renderer Renderer
}

// NewOracle constructs the Oracle detector on top of a browser renderer.
func NewOracle(renderer Renderer) *Oracle {
	return &Oracle{renderer: renderer}
}

func (d *Oracle) Name() string { return "oraclecloud" }

func (d *Oracle) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	found, event, err := d.renderer.ConsoleContains(ctx, url, oracleExpiredMarker, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("Oracle: render failed: %v", err)
	}
	if found {
		return model.VerdictExpired, fmt.Sprintf("Oracle: %s", event)
	}
	return model.VerdictActive, "Oracle: job-expired not seen in console/pageerror events, job is active"
}
