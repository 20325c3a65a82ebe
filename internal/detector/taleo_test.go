package detector_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/jobcull-api/internal/detector"
	"github.com/fuzumoe/jobcull-api/internal/model"
)

func TestTaleo_Check(t *testing.T) {
	pages := map[string]string{
		"/phrase":      `<html><body><p>The job is no longer available.</p></body></html>`,
		"/unavailable": `<html><script>var _ftl = { iface: "requisitionUnavailableInterface" };</script><body></body></html>`,
		"/ints":        `<html><script>_ints : [ "requisitionUnavailableInterface" ]</script><body></body></html>`,
		"/active":      `<html><script>requisitionDescriptionInterface; descRequisition = [];</script><body>Engineering Intern</body></html>`,
		"/unclear":     `<html><body>some unrelated page</body></html>`,
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pages[r.URL.Path]))
	}))
	defer ts.Close()

	d := detector.NewTaleo(newTestClient())

	cases := []struct {
		name    string
		path    string
		verdict model.Verdict
	}{
		{"Unavailable Phrase", "/phrase", model.VerdictExpired},
		{"Unavailable Interface Marker", "/unavailable", model.VerdictExpired},
		{"Ints List Marker", "/ints", model.VerdictExpired},
		{"Description Interface Present", "/active", model.VerdictActive},
		{"No Signals", "/unclear", model.VerdictUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict, reason := d.Check(context.Background(), ts.URL+tc.path, 5*time.Second)
			require.Equal(t, tc.verdict, verdict, "reason: %s", reason)
		})
	}

	t.Run("Empty Body Is Unknown", func(t *testing.T) {
		verdict, _ := d.Check(context.Background(), ts.URL+"/void", 5*time.Second)
		require.Equal(t, model.VerdictUnknown, verdict)
	})
}
