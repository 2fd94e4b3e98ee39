package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/byte4ever/submerge/engine"
	"github.com/byte4ever/submerge/substitution"
)

// setupMetrics returns an engine reporting to a manual reader.
func setupMetrics(
	t *testing.T,
	subs substitution.Map,
) (*engine.Engine, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("shutting down meter provider: %v", err)
		}
	})

	en := newEngine(
		t, "{", "}", subs, engine.WithMeterProvider(provider),
	)

	return en, reader
}

// findSum returns the int64 sum data of the named metric.
func findSum(
	t *testing.T,
	reader *sdkmetric.ManualReader,
	name string,
) metricdata.Sum[int64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, me := range sm.Metrics {
			if me.Name != name {
				continue
			}

			sum, ok := me.Data.(metricdata.Sum[int64])
			require.True(t, ok, "expected Sum[int64] for %s", name)

			return sum
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Sum[int64]{}
}

// valueFor returns the data point value matching mode and
// outcome.
func valueFor(
	sum metricdata.Sum[int64],
	mode string,
	outcome string,
) int64 {
	for _, dp := range sum.DataPoints {
		mo, _ := dp.Attributes.Value(attribute.Key("mode"))
		ou, _ := dp.Attributes.Value(attribute.Key("outcome"))

		if mo.AsString() == mode && ou.AsString() == outcome {
			return dp.Value
		}
	}

	return 0
}

func TestMetrics_replacements_by_mode_and_outcome(t *testing.T) {
	t.Parallel()

	en, reader := setupMetrics(t, substitution.Map{"a": "1"})

	_, err := en.Replace("{a} {b}")
	require.NoError(t, err)

	_, err = en.Replace("{a")
	require.NoError(t, err)

	_, err = en.ReplaceMatches(en.Scan("{a}"), substitution.Map{})
	require.NoError(t, err)

	_, err = en.ReplaceFixed(en.ScanFixed("{a}{b}"), nil)
	require.Error(t, err)

	sum := findSum(t, reader, "submerge.replacements")

	assert.Equal(t, int64(1), valueFor(sum, "oneshot", "ok"))
	assert.Equal(t, int64(1), valueFor(sum, "oneshot", "malformed"))
	assert.Equal(t, int64(1), valueFor(sum, "named", "ok"))
	assert.Equal(t, int64(1), valueFor(sum, "fixed", "error"))
}

func TestMetrics_passthrough_counted(t *testing.T) {
	t.Parallel()

	en, reader := setupMetrics(t, substitution.Map{"a": "1"})

	_, err := en.Replace("{a} {b} {c}")
	require.NoError(t, err)

	sum := findSum(t, reader, "submerge.placeholders.passthrough")
	assert.Equal(t, int64(2), valueFor(sum, "oneshot", "ok"))
}

func TestMetrics_malformed_oneshot_counts_no_passthrough(t *testing.T) {
	t.Parallel()

	en, reader := setupMetrics(t, substitution.Map{"a": "1"})

	got, err := en.Replace("{x} {y} {a")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = en.Replace("{z}")
	require.NoError(t, err)

	sum := findSum(t, reader, "submerge.placeholders.passthrough")
	assert.Equal(t, int64(0), valueFor(sum, "oneshot", "malformed"))
	assert.Equal(t, int64(1), valueFor(sum, "oneshot", "ok"))
}
