package runner

import (
	"net/url"
	"strings"

	"github.com/fuzumoe/jobcull-api/internal/model"
)

const defaultExamplesPerSource = 3

// ExtractBaseDomain normalizes a URL to its registrable base domain for
// grouping, e.g. bloomenergy.wd1.myworkdayjobs.com -> myworkdayjobs.com.
// Unparseable input maps to "unknown".
func ExtractBaseDomain(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "unknown"
	}
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return "unknown"
	}

	host := strings.ToLower(parsed.Host)
	if i := strings.LastIndex(host, "@"); i != -1 {
		host = host[i+1:]
	}
	if i := strings.Index(host, ":"); i != -1 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, "www.")

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(host, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	if host == "" {
		return "unknown"
	}
	return host
}

// GroupBySource groups URLs by base domain with counts, percentages, and a
// capped number of example URLs per domain. Used to spot which ATS vendor
// deserves the next dedicated detector.
func GroupBySource(urls []string, examplesPerSource int) model.SourceBreakdown {
	if examplesPerSource <= 0 {
		examplesPerSource = defaultExamplesPerSource
	}

	total := len(urls)
	counts := make(map[string]int)
	examples := make(map[string][]string)

	for _, u := range urls {
		domain := ExtractBaseDomain(u)
		counts[domain]++
		if len(examples[domain]) < examplesPerSource {
			examples[domain] = append(examples[domain], u)
		}
	}

	percentages := make(map[string]float64, len(counts))
	for domain, count := range counts {
		if total > 0 {
			percentages[domain] = float64(count) / float64(total) * 100
		} else {
			percentages[domain] = 0
		}
	}

	return model.SourceBreakdown{
		Total:       total,
		Counts:      counts,
		Percentages: percentages,
		Examples:    examples,
	}
}
