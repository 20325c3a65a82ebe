// Package browser drives a headless Chrome for the rendering tier. A fresh
// browser process is launched per invocation so no cookies or storage leak
// between unrelated postings; startup cost is accepted for that isolation.
package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// herokuChrome is where the chrome-for-testing buildpack installs its
// binary on dynos.
const herokuChrome = "/app/.chrome-for-testing/chrome-linux64/chrome"

// defaultSettle gives page scripts a moment to run and log after
// DOMContentLoaded fires.
const defaultSettle = 1500 * time.Millisecond

// defaultStepTimeout bounds a browser call when the caller passed no usable
// timeout. No call into the browser may ever run unbounded: a wedged
// renderer would otherwise pin a batch worker forever.
const defaultStepTimeout = 30 * time.Second

// Renderer launches headless Chrome on demand. The zero value is not
// usable; construct with New.
type Renderer struct {
	chromeBin string
	settle    time.Duration
}

// Option tweaks a Renderer.
type Option func(*Renderer)

// WithChromeBin points the renderer at a specific Chrome binary. An empty
// or missing path falls back to rod's managed browser.
func WithChromeBin(path string) Option {
	return func(r *Renderer) { r.chromeBin = path }
}

// WithSettle overrides the post-DOMContentLoaded settle delay.
func WithSettle(d time.Duration) Option {
	return func(r *Renderer) { r.settle = d }
}

// New constructs a Renderer. When no Chrome binary is configured it checks
// the Heroku chrome-for-testing path before falling back to rod's own
// download.
func New(opts ...Option) *Renderer {
	r := &Renderer{settle: defaultSettle}
	for _, o := range opts {
		o(r)
	}
	if r.chromeBin == "" {
		if _, err := os.Stat(herokuChrome); err == nil {
			r.chromeBin = herokuChrome
		}
	}
	return r
}

// Available reports whether a Chrome binary is resolvable without
// launching one: either the configured binary exists or a system install
// is on the usual paths. Rod can still download its own browser when this
// is false.
func (r *Renderer) Available() bool {
	if r.chromeBin != "" {
		if _, err := os.Stat(r.chromeBin); err == nil {
			return true
		}
	}
	_, has := launcher.LookPath()
	return has
}

// launch starts a fresh Chrome and connects to it. The returned cleanup
// closes the browser and reaps the process.
func (r *Renderer) launch() (*rod.Browser, func(), error) {
	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-dev-shm-usage")

	if r.chromeBin != "" {
		if _, err := os.Stat(r.chromeBin); err == nil {
			l = l.Bin(r.chromeBin)
		}
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, nil, fmt.Errorf("browser: connect: %w", err)
	}

	cleanup := func() {
		_ = b.Close()
		l.Cleanup()
	}
	return b, cleanup, nil
}

// VisibleText renders url and returns document.body.innerText lower-cased.
// Navigation waits for DOMContentLoaded, never network idle: several SPA
// vendors keep polling forever and would never reach a quiescent network.
func (r *Renderer) VisibleText(ctx context.Context, url string, timeout time.Duration) (string, error) {
	b, cleanup, err := r.launch()
	if err != nil {
		return "", err
	}
	defer cleanup()

	page, err := stealth.Page(b)
	if err != nil {
		return "", fmt.Errorf("browser: open page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := boundedStep(ctx, timeout)
	defer cancel()

	if err := r.navigate(navCtx, page, url); err != nil {
		return "", err
	}

	// Eval gets its own deadline: navigation plus the settle delay may have
	// eaten most of navCtx's budget by now.
	evalCtx, cancelEval := boundedStep(ctx, timeout)
	defer cancelEval()

	res, err := page.Context(evalCtx).Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", fmt.Errorf("browser: read body text: %s", sanitizeErr(err))
	}
	return strings.ToLower(res.Value.Str()), nil
}

// ConsoleContains renders url while watching console and page-error events
// for marker. A navigation timeout is not an error when the marker was
// already observed before the timeout fired.
func (r *Renderer) ConsoleContains(ctx context.Context, url, marker string, timeout time.Duration) (bool, string, error) {
	b, cleanup, err := r.launch()
	if err != nil {
		return false, "", err
	}
	defer cleanup()

	page, err := stealth.Page(b)
	if err != nil {
		return false, "", fmt.Errorf("browser: open page: %w", err)
	}
	defer page.Close()

	var (
		mu    sync.Mutex
		found bool
		event string
	)
	record := func(kind, text string) {
		if !strings.Contains(strings.ToLower(text), strings.ToLower(marker)) {
			return
		}
		mu.Lock()
		if !found {
			found = true
			event = kind + ":" + text
		}
		mu.Unlock()
	}

	wait := page.EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			record("console", consoleText(e))
		},
		func(e *proto.RuntimeExceptionThrown) {
			record("pageerror", exceptionText(e))
		},
	)
	go wait()

	navCtx, cancel := boundedStep(ctx, timeout)
	defer cancel()

	navErr := r.navigate(navCtx, page, url)

	mu.Lock()
	defer mu.Unlock()
	return consoleOutcome(found, event, navErr)
}

// consoleOutcome resolves the race between the watched marker and the
// navigation result. A marker observed before a navigation failure wins:
// the signal the caller asked about already fired, so a timeout on the
// rest of the page load is not a failure.
func consoleOutcome(found bool, event string, navErr error) (bool, string, error) {
	if found {
		return true, event, nil
	}
	if navErr != nil {
		return false, "", navErr
	}
	return false, "", nil
}

// boundedStep caps one browser call at timeout, independent of how much
// budget earlier steps consumed. Falls back to defaultStepTimeout so the
// returned context always carries a deadline.
func boundedStep(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStepTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// navigate drives the page to url, waits for DOMContentLoaded, and sleeps
// the settle delay so late scripts get to run.
func (r *Renderer) navigate(ctx context.Context, page *rod.Page, url string) error {
	p := page.Context(ctx)

	wait := p.WaitEvent(&proto.PageDomContentEventFired{})
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate: %s", sanitizeErr(err))
	}
	wait()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("browser: navigation timed out: %v", err)
	}

	select {
	case <-time.After(r.settle):
	case <-ctx.Done():
	}
	return nil
}

// consoleText flattens a console event's arguments into one string.
func consoleText(e *proto.RuntimeConsoleAPICalled) string {
	parts := make([]string, 0, len(e.Args))
	for _, arg := range e.Args {
		s := arg.Value.String()
		if s == "" || s == "null" {
			s = arg.Description
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// exceptionText summarises a thrown page exception.
func exceptionText(e *proto.RuntimeExceptionThrown) string {
	d := e.ExceptionDetails
	if d == nil {
		return ""
	}
	text := d.Text
	if d.Exception != nil && d.Exception.Description != "" {
		text += " " + d.Exception.Description
	}
	return strings.TrimSpace(text)
}

// sanitizeErr keeps the first line of a driver error; rod appends call
// traces that are noise in an audit reason.
func sanitizeErr(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i != -1 {
		msg = msg[:i]
	}
	const maxLen = 300
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return strings.TrimSpace(msg)
}
