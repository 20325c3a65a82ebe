package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a response body is read. ATS pages are
// rarely above a few hundred KB; anything larger is not a job posting.
const maxBodyBytes = 4 << 20

// Options configures a Client.
type Options struct {
	// UserAgent is sent on every request. Defaults to a browser-like UA
	// because several ATS vendors serve bot traffic a different page.
	UserAgent string

	// RespectRobots gates every fetch behind the host's robots.txt.
	// Disabled by default: the classifier must see the same page a
	// candidate would.
	RespectRobots bool

	// RequestsPerSecond limits outbound fetches across all workers.
	// Zero means unlimited.
	RequestsPerSecond float64
}

// Response is the portion of an HTTP response the detectors care about.
// Body is fully read and the connection released before Response is returned.
type Response struct {
	StatusCode int
	// FinalURL is the URL after any followed redirects.
	FinalURL string
	Header   http.Header
	Body     string
}

// Client is the shared HTTP fetcher for every non-browser tier. It owns
// redirect policy per call, browser-like headers, an optional robots.txt
// gate, and an optional outbound rate limit shared by all workers.
type Client struct {
	follow   *http.Client
	noFollow *http.Client
	opts     Options
	limiter  *rate.Limiter

	// robots caches parsed robots.txt per host; nil entries mean the
	// host's robots.txt was unreachable and everything is allowed.
	robots sync.Map
}

// ErrRobotsDisallowed reports a fetch blocked by the robots gate.
var ErrRobotsDisallowed = fmt.Errorf("fetch: blocked by robots.txt")

// NewClient builds a Client. Both redirect behaviours share one transport
// so connection reuse works across tiers.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0"
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	c := &Client{
		follow:   &http.Client{Transport: transport},
		noFollow: &http.Client{Transport: transport, CheckRedirect: noRedirects},
		opts:     opts,
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), int(opts.RequestsPerSecond)+1)
	}
	return c
}

// noRedirects stops the client from following any redirect.
func noRedirects(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

// Get fetches rawURL with redirects followed.
func (c *Client) Get(ctx context.Context, rawURL string, timeout time.Duration) (*Response, error) {
	return c.do(ctx, rawURL, timeout, c.follow)
}

// GetNoRedirect fetches rawURL without following redirects, so callers can
// inspect the Location header of the first response.
func (c *Client) GetNoRedirect(ctx context.Context, rawURL string, timeout time.Duration) (*Response, error) {
	return c.do(ctx, rawURL, timeout, c.noFollow)
}

func (c *Client) do(ctx context.Context, rawURL string, timeout time.Duration, hc *http.Client) (*Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if c.opts.RespectRobots {
		u, err := url.Parse(rawURL)
		if err == nil && !c.robotsAllowed(ctx, u) {
			return nil, ErrRobotsDisallowed
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		StatusCode: resp.StatusCode,
		FinalURL:   finalURL,
		Header:     resp.Header,
		Body:       string(body),
	}, nil
}

// robotsAllowed checks the cached robots.txt rules for u's host.
func (c *Client) robotsAllowed(ctx context.Context, u *url.URL) bool {
	if u.Host == "" {
		return true
	}
	if val, ok := c.robots.Load(u.Host); ok {
		if val == nil {
			return true
		}
		return val.(*robotstxt.RobotsData).TestAgent(u.Path, "*")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.Scheme+"://"+u.Host+"/robots.txt", nil)
	if err != nil {
		c.robots.Store(u.Host, nil)
		return true
	}
	resp, err := c.follow.Do(req)
	if err != nil {
		c.robots.Store(u.Host, nil)
		return true
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.robots.Store(u.Host, nil)
		return true
	}
	c.robots.Store(u.Host, data)
	return data.TestAgent(u.Path, "*")
}
