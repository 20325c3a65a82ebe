package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

// nextDataRe is the fallback for minified pages where goquery cannot find
// the script element.
var nextDataRe = regexp.MustCompile(`(?s)<script[^>]+id="__NEXT_DATA__"[^>]*>\s*(\{.*?\})\s*</script>`)

// Dayforce classifies Dayforce HCM postings from the Next.js state blob
// embedded in the page: an explicit expiry timestamp wins, otherwise the
// posting-status code decides.
type Dayforce struct {
	client *fetch.Client
	// now is swappable for tests.
	now func() time.Time
}

// NewDayforce constructs the Dayforce detector.
func NewDayforce(client *fetch.Client) *Dayforce {
	return &Dayforce{client: client, now: time.Now}
}

func (d *Dayforce) Name() string { return "dayforce" }

func (d *Dayforce) Check(ctx context.Context, url string, timeout time.Duration) (model.Verdict, string) {
	resp, err := d.client.Get(ctx, url, timeout)
	if err != nil {
		return model.VerdictUnknown, fmt.Sprintf("Dayforce: request failed: %v", err)
	}
	if resp.Body == "" {
		return model.VerdictUnknown, "Dayforce: jobData not found"
	}

	raw := extractNextData(resp.Body)
	if raw == "" {
		return model.VerdictUnknown, "Dayforce: jobData not found"
	}

	var state struct {
		Props struct {
			PageProps struct {
				JobData         map[string]any `json:"jobData"`
				DehydratedState struct {
					Queries []struct {
						State struct {
							Data map[string]any `json:"data"`
						} `json:"state"`
					} `json:"queries"`
				} `json:"dehydratedState"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return model.VerdictUnknown, "Dayforce: jobData not found"
	}

	jobData := state.Props.PageProps.JobData
	if len(jobData) == 0 {
		// Some Next apps park the posting inside dehydratedState; take the
		// first query whose payload looks like a job record.
		for _, q := range state.Props.PageProps.DehydratedState.Queries {
			data := q.State.Data
			if data == nil {
				continue
			}
			if _, ok := data["jobTitle"]; ok {
				jobData = data
				break
			}
			if _, ok := data["jobPostingId"]; ok {
				jobData = data
				break
			}
		}
	}
	if len(jobData) == 0 {
		return model.VerdictUnknown, "Dayforce: jobData not found"
	}

	if expiry, ok := jobData["postingExpiryTimestampUTC"].(string); ok && expiry != "" {
		t, err := parseISOTimestamp(expiry)
		if err != nil {
			return model.VerdictUnknown, fmt.Sprintf("Dayforce: unparseable postingExpiryTimestampUTC %q", expiry)
		}
		if d.now().After(t) {
			return model.VerdictExpired, "Dayforce: postingExpiryTimestampUTC in the past, job is expired"
		}
	} else if status, ok := jobData["postingStatus"].(float64); !ok || status != 1 {
		return model.VerdictExpired, "Dayforce: postingStatus indicates closed, job is expired"
	}

	return model.VerdictActive, "Dayforce: job active based on postingExpiryTimestampUTC and postingStatus"
}

// extractNextData returns the JSON payload of the __NEXT_DATA__ script tag.
func extractNextData(htmlBody string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody)); err == nil {
		if text := strings.TrimSpace(doc.Find(`script#__NEXT_DATA__`).First().Text()); text != "" {
			return text
		}
	}
	if m := nextDataRe.FindStringSubmatch(htmlBody); m != nil {
		return m[1]
	}
	return ""
}

// parseISOTimestamp accepts RFC 3339 and the zone-less ISO form Dayforce
// sometimes emits.
func parseISOTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
