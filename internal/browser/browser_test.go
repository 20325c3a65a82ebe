package browser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Options(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		r := New()
		require.Equal(t, defaultSettle, r.settle)
	})

	t.Run("Overrides", func(t *testing.T) {
		r := New(WithChromeBin("/opt/chrome/chrome"), WithSettle(250*time.Millisecond))
		require.Equal(t, "/opt/chrome/chrome", r.chromeBin)
		require.Equal(t, 250*time.Millisecond, r.settle)
	})
}

func TestBoundedStep(t *testing.T) {
	t.Run("Caps A Background Context", func(t *testing.T) {
		ctx, cancel := boundedStep(context.Background(), 5*time.Second)
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok, "every browser step must carry a deadline")
		require.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	})

	t.Run("Zero Timeout Still Bounded", func(t *testing.T) {
		ctx, cancel := boundedStep(context.Background(), 0)
		defer cancel()

		_, ok := ctx.Deadline()
		require.True(t, ok)
	})
}

func TestConsoleOutcome(t *testing.T) {
	navErr := errors.New("browser: navigation timed out: context deadline exceeded")

	t.Run("Marker Beats Navigation Failure", func(t *testing.T) {
		found, event, err := consoleOutcome(true, "console:job-expired", navErr)
		require.True(t, found)
		require.Equal(t, "console:job-expired", event)
		require.NoError(t, err)
	})

	t.Run("Navigation Failure Without Marker", func(t *testing.T) {
		found, _, err := consoleOutcome(false, "", navErr)
		require.False(t, found)
		require.Equal(t, navErr, err)
	})

	t.Run("Clean Load Without Marker", func(t *testing.T) {
		found, event, err := consoleOutcome(false, "", nil)
		require.False(t, found)
		require.Empty(t, event)
		require.NoError(t, err)
	})
}

func TestSanitizeErr(t *testing.T) {
	t.Run("Keeps First Line", func(t *testing.T) {
		err := errors.New("navigation failed: net::ERR_NAME_NOT_RESOLVED\ngoroutine trace:\n  rod.(*Page).Navigate")
		require.Equal(t, "navigation failed: net::ERR_NAME_NOT_RESOLVED", sanitizeErr(err))
	})

	t.Run("Caps Length", func(t *testing.T) {
		err := errors.New(strings.Repeat("x", 400))
		require.Len(t, sanitizeErr(err), 300)
	})
}
