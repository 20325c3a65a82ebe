// Package resolver canonicalizes wrapper and redirector URLs before any
// detector sees them. Several acquisition sources hand us a tracking
// wrapper instead of the real ATS posting URL.
package resolver

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
)

var (
	// navigateTo is the Appcast interstitial redirect call.
	navigateToRe = regexp.MustCompile(`(?i)navigateTo\([^,]+,[^,]+,\s*"([^"]+)"\s*\)`)
	// windowLocation catches window.location.replace("..."), window.location.href = '...'
	// and the bare assignment form.
	windowLocationRe = regexp.MustCompile(`(?i)window\.location(?:\.replace|\.href)?\s*=?\s*\(?\s*["']([^"']+)["']\s*\)?`)
	// metaRefresh is the last-ditch <meta http-equiv="refresh"> target.
	metaRefreshRe = regexp.MustCompile(`(?i)<meta\s+http-equiv=["']refresh["']\s+content=["'][^;]+;\s*url=([^"']+)["']`)
)

// Resolver rewrites known wrapper URLs to their true destination. Every
// failure path returns the input unchanged; resolution must never abort
// the pipeline.
type Resolver struct {
	client *fetch.Client
}

// New constructs a Resolver on top of the shared fetch client.
func New(client *fetch.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve returns the destination URL for known wrapper patterns and the
// input URL for everything else.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, timeout time.Duration) string {
	switch {
	case strings.Contains(rawURL, "appcast.io"):
		return r.resolveAppcast(ctx, rawURL, timeout)
	case strings.Contains(rawURL, "grnh.se"):
		return r.resolveFollow(ctx, rawURL, timeout)
	case strings.Contains(rawURL, "recruitics.com"):
		return resolveRecruitics(rawURL)
	}
	return rawURL
}

// resolveRecruitics pulls the destination out of the rx_url query
// parameter. No network involved.
func resolveRecruitics(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if dest := u.Query().Get("rx_url"); dest != "" {
		return dest
	}
	return rawURL
}

// resolveAppcast fetches the wrapper page and extracts the JS or meta
// redirect target embedded in its HTML.
func (r *Resolver) resolveAppcast(ctx context.Context, rawURL string, timeout time.Duration) string {
	resp, err := r.client.Get(ctx, rawURL, timeout)
	if err != nil || resp.Body == "" {
		return rawURL
	}

	body := html.UnescapeString(resp.Body)

	for _, re := range []*regexp.Regexp{navigateToRe, windowLocationRe, metaRefreshRe} {
		if m := re.FindStringSubmatch(body); m != nil {
			if dest := strings.TrimSpace(m[1]); dest != "" {
				return dest
			}
		}
	}
	return rawURL
}

// resolveFollow follows redirects and reports where the chain ends.
func (r *Resolver) resolveFollow(ctx context.Context, rawURL string, timeout time.Duration) string {
	resp, err := r.client.Get(ctx, rawURL, timeout)
	if err != nil || resp.FinalURL == "" {
		return rawURL
	}
	return resp.FinalURL
}
