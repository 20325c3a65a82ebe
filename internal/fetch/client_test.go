package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/jobcull-api/internal/fetch"
)

func TestClient_Get(t *testing.T) {
	var gotUA, gotAccept string
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<html>hello</html>"))
	})
	mux.HandleFunc("/hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusFound)
	})

	c := fetch.NewClient(fetch.Options{UserAgent: "JobCull-Test/1.0"})

	t.Run("Sends Browser Headers", func(t *testing.T) {
		resp, err := c.Get(context.Background(), ts.URL+"/page", 5*time.Second)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "<html>hello</html>", resp.Body)
		require.Equal(t, "JobCull-Test/1.0", gotUA)
		require.Equal(t, "text/html", gotAccept)
	})

	t.Run("Follows Redirects And Reports Final URL", func(t *testing.T) {
		resp, err := c.Get(context.Background(), ts.URL+"/hop", 5*time.Second)
		require.NoError(t, err)
		require.Equal(t, ts.URL+"/page", resp.FinalURL)
	})

	t.Run("GetNoRedirect Surfaces Location", func(t *testing.T) {
		resp, err := c.GetNoRedirect(context.Background(), ts.URL+"/hop", 5*time.Second)
		require.NoError(t, err)
		require.Equal(t, http.StatusFound, resp.StatusCode)
		require.Equal(t, "/page", resp.Header.Get("Location"))
	})

	t.Run("Timeout Is An Error", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer slow.Close()

		_, err := c.Get(context.Background(), slow.URL, 20*time.Millisecond)
		require.Error(t, err)
	})
}

func TestClient_RobotsGate(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	c := fetch.NewClient(fetch.Options{RespectRobots: true})

	resp, err := c.Get(context.Background(), ts.URL+"/public/job", 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = c.Get(context.Background(), ts.URL+"/private/job", 5*time.Second)
	require.ErrorIs(t, err, fetch.ErrRobotsDisallowed)
}
