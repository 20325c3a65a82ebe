package detector

import (
	"context"
	"fmt"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// redirectSources are hosts verified to redirect away from a posting's
// canonical URL when it expires, and never otherwise.
var redirectSources = []string{
	"bamboohr.com",
}

// RedirectSource classifies vendors where any redirect at all means the
// posting is gone: the final URL after following redirects is compared
// against the requested one.
type RedirectSource struct {
	client *fetch.Client
	source string
}

// NewRedirectSource constructs a redirect-source detector for one host.
func NewRedirectSource(client *fetch.Client, source string) *RedirectSource {
	return &RedirectSource{client: client, source: source}
}

func (d *RedirectSource) Name() string { return d.source + "_redirect" }

func (d *RedirectSource) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("%s redirect check failed: %v", d.source, err)
	}

	if resp.FinalURL != url {
		return model.VerdictExpired, fmt.Sprintf("%s redirect detected, job is expired; %s always redirects on expired jobs", d.source, d.source)
	}
	return model.VerdictActive, fmt.Sprintf("%s did not redirect, job is active; %s always redirects on expired jobs", d.source, d.source)
}
