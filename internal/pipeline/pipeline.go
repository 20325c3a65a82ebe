// Package pipeline binds the resolver, vendor registry, generic tiers, and
// browser tier into the waterfall that classifies one job-posting URL.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fuzumoe/jobcull-api/internal/detector"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// Resolver canonicalizes wrapper URLs; implemented by internal/resolver.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string, timeout time.Duration) string
}

// Checker runs the liveness waterfall. Tiers are strictly sequential and
// ordered by cost: vendor knowledge first, plain HTTP checks next, a full
// browser render last. The first confident exit wins.
type Checker struct {
	resolver    Resolver
	registry    *detector.Registry
	status      detector.Detector
	requestText detector.Detector
	browserText detector.Detector
}

// New assembles a Checker from its tiers.
func New(res Resolver, reg *detector.Registry, status, requestText, browserText detector.Detector) *Checker {
	return &Checker{
		resolver:    res,
		registry:    reg,
		status:      status,
		requestText: requestText,
		browserText: browserText,
	}
}

// ClassifyLink classifies one URL. It never panics past its own boundary
// and never returns an error: every failure mode is folded into a
// conservative KEEP with provenance in DetectorUsed.
func (c *Checker) ClassifyLink(ctx context.Context, rawURL string, timeout time.Duration) (result model.LinkCheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.LinkCheckResult{
				FinalURL:     rawURL,
				Decision:     model.DecisionKeep,
				Reason:       fmt.Sprintf("unexpected failure in ClassifyLink: %v", r),
				DetectorUsed: "error_handling",
			}
		}
	}()

	if strings.TrimSpace(rawURL) == "" {
		return model.LinkCheckResult{
			FinalURL:     rawURL,
			Decision:     model.DecisionKeep,
			Reason:       "Missing URL",
			DetectorUsed: "input_validation",
		}
	}

	url := c.resolver.Resolve(ctx, strings.TrimSpace(rawURL), timeout)

	// Vendor tier. A matched vendor is authoritative even when it comes
	// back unknown: running generic phrase checks against a known vendor
	// page risks misreading vendor boilerplate as a closure signal.
	if d, ok := c.registry.Lookup(url); ok {
		verdict, reason := d.Check(ctx, url, timeout)
		return model.LinkCheckResult{
			FinalURL:     url,
			Decision:     model.DecisionFor(verdict),
			Reason:       reason,
			DetectorUsed: d.Name(),
		}
	}

	// Generic status tier: only a confident expired terminates; any other
	// outcome, including a network failure, falls open to the next tier.
	if verdict, reason := c.status.Check(ctx, url, timeout); verdict == model.VerdictExpired {
		return model.LinkCheckResult{
			FinalURL:     url,
			Decision:     model.DecisionDelete,
			Reason:       reason,
			DetectorUsed: c.status.Name(),
		}
	}

	// Generic request-text tier: likewise only expired terminates. An
	// "active" here only means no phrase was visible in server HTML, which
	// says nothing about JavaScript-rendered vendors.
	if verdict, reason := c.requestText.Check(ctx, url, timeout); verdict == model.VerdictExpired {
		return model.LinkCheckResult{
			FinalURL:     url,
			Decision:     model.DecisionDelete,
			Reason:       reason,
			DetectorUsed: c.requestText.Name(),
		}
	}

	// Browser tier: last resort, terminal whatever it says.
	verdict, reason := c.browserText.Check(ctx, url, timeout)
	return model.LinkCheckResult{
		FinalURL:     url,
		Decision:     model.DecisionFor(verdict),
		Reason:       reason,
		DetectorUsed: c.browserText.Name(),
	}
}
