package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/chunkmap/pkg/locator"
)

func TestNewLocatorMetrics(t *testing.T) {
	t.Run("NilWhenDisabled", func(t *testing.T) {
		// Registry initialization is process-wide, so this subtest must
		// run before any InitRegistry call in the package tests.
		if IsEnabled() {
			t.Skip("registry already initialized by another test")
		}
		assert.Nil(t, NewLocatorMetrics())
	})

	t.Run("CountsOutcomes", func(t *testing.T) {
		InitRegistry()

		m := NewLocatorMetrics()
		require.NotNil(t, m)

		m.FetchStarted()
		m.FetchSucceeded(25*time.Millisecond, 3)
		m.FetchStarted()
		m.FetchFailed(5*time.Millisecond, locator.ErrProtocol)

		impl := m.(*locatorMetrics)
		assert.Equal(t, float64(0), testutil.ToFloat64(impl.fetchesInFlight))
		assert.Equal(t, float64(1), testutil.ToFloat64(impl.fetches.WithLabelValues("success")))
		assert.Equal(t, float64(1), testutil.ToFloat64(impl.fetches.WithLabelValues("protocol_error")))
		assert.Equal(t, float64(3), testutil.ToFloat64(impl.chunksParsed))
	})
}
