package detector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// Greenhouse classifies Greenhouse postings. Greenhouse redirects expired
// postings back to the board with error=true, so the check is a URL and
// Location-header inspection with redirects deliberately not followed.
type Greenhouse struct {
	client *fetch.Client
}

// NewGreenhouse constructs the Greenhouse detector.
func NewGreenhouse(client *fetch.Client) *Greenhouse {
	return &Greenhouse{client: client}
}

func (d *Greenhouse) Name() string { return "greenhouse" }

func (d *Greenhouse) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	// The wrapper may already carry the error marker; no request needed.
	if strings.Contains(url, "error=true") {
		return model.VerdictExpired, "Greenhouse: link redirected with error=true present"
	}

	resp, err := d.client.GetNoRedirect(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("Greenhouse: request failed: %v", err)
	}

	if loc := resp.Header.Get("Location"); strings.Contains(loc, "error=true") {
		return model.VerdictExpired, "Greenhouse: redirect Location carries error=true"
	}
	return model.VerdictActive, "Greenhouse: no error=true redirect, job is active"
}
