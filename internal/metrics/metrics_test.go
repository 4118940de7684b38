package metrics_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/roadmap-planner/internal/metrics"
)

// gaugeValue scrapes reg and returns the value of the named gauge.
func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func fixedCount(n int) metrics.CountFunc {
	return func(context.Context) (int, error) { return n, nil }
}

// TestStoreGauges_ReadStoreOnEveryScrape verifies that writes made outside
// this process (another replica, manual SQL) show up on the next scrape.
func TestStoreGauges_ReadStoreOnEveryScrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	stored := 6
	initiatives := func(context.Context) (int, error) { return stored, nil }
	require.NoError(t, metrics.RegisterStoreGauges(reg, initiatives, fixedCount(5)))

	assert.Equal(t, 6.0, gaugeValue(t, reg, "roadmap_initiatives"))
	assert.Equal(t, 5.0, gaugeValue(t, reg, "roadmap_teams"))

	stored = 9
	assert.Equal(t, 9.0, gaugeValue(t, reg, "roadmap_initiatives"))
}

func TestStoreGauges_FailedCountIsNaN(t *testing.T) {
	reg := prometheus.NewRegistry()
	failing := func(context.Context) (int, error) { return 0, errors.New("connection refused") }
	require.NoError(t, metrics.RegisterStoreGauges(reg, fixedCount(1), failing))

	assert.True(t, math.IsNaN(gaugeValue(t, reg, "roadmap_teams")))
	assert.Equal(t, 1.0, gaugeValue(t, reg, "roadmap_initiatives"))
}

func TestStoreGauges_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.RegisterStoreGauges(reg, fixedCount(0), fixedCount(0)))

	err := metrics.RegisterStoreGauges(reg, fixedCount(0), fixedCount(0))

	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
