package detector_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/jobcull-api/internal/detector"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

func nextDataPage(payload string) string {
	return fmt.Sprintf(`<html><head><script id="__NEXT_DATA__" type="application/json">%s</script></head><body></body></html>`, payload)
}

func TestDayforce_Check(t *testing.T) {
	future := time.Now().Add(30 * 24 * time.Hour).UTC().Format(time.RFC3339)
	past := time.Now().Add(-30 * 24 * time.Hour).UTC().Format(time.RFC3339)

	pages := map[string]string{
		"/active-expiry": nextDataPage(`{"props":{"pageProps":{"jobData":{"jobTitle":"Intern","postingStatus":1,"postingExpiryTimestampUTC":"` + future + `"}}}}`),
		"/past-expiry":   nextDataPage(`{"props":{"pageProps":{"jobData":{"jobTitle":"Intern","postingStatus":1,"postingExpiryTimestampUTC":"` + past + `"}}}}`),
		"/closed-status": nextDataPage(`{"props":{"pageProps":{"jobData":{"jobTitle":"Intern","postingStatus":3}}}}`),
		"/dehydrated":    nextDataPage(`{"props":{"pageProps":{"dehydratedState":{"queries":[{"state":{"data":{"jobPostingId":"42","postingStatus":1,"postingExpiryTimestampUTC":"` + future + `"}}}]}}}}`),
		"/no-data":       `<html><body>nothing here</body></html>`,
		"/bad-json":      nextDataPage(`{"props": not json`),
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pages[r.URL.Path]))
	}))
	defer ts.Close()

	d := detector.NewDayforce(newTestClient())

	cases := []struct {
		name    string
		path    string
		verdict model.Verdict
	}{
		{"Future Expiry Is Active", "/active-expiry", model.VerdictActive},
		{"Past Expiry Is Expired", "/past-expiry", model.VerdictExpired},
		{"Closed Posting Status Is Expired", "/closed-status", model.VerdictExpired},
		{"Dehydrated State Fallback", "/dehydrated", model.VerdictActive},
		{"Missing Job Data Is Unknown", "/no-data", model.VerdictUnknown},
		{"Malformed JSON Is Unknown", "/bad-json", model.VerdictUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict, reason := d.Check(context.Background(), ts.URL+tc.path, 5*time.Second)
			require.Equal(t, tc.verdict, verdict, "reason: %s", reason)
		})
	}
}
