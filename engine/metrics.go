package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/byte4ever/submerge/engine"

const (
	modeOneShot = "oneshot"
	modeNamed   = "named"
	modeFixed   = "fixed"

	outcomeOK        = "ok"
	outcomeMalformed = "malformed"
	outcomeError     = "error"
)

// recorder holds the engine's OTel instruments.
type recorder struct {
	replacements metric.Int64Counter
	passthrough  metric.Int64Counter
	outputSize   metric.Int64Histogram
}

func newRecorder(mp metric.MeterProvider) (*recorder, error) {
	meter := mp.Meter(meterName)

	replacements, err := meter.Int64Counter(
		"submerge.replacements",
		metric.WithDescription("Number of replacement calls"),
	)
	if err != nil {
		return nil, err
	}

	passthrough, err := meter.Int64Counter(
		"submerge.placeholders.passthrough",
		metric.WithDescription(
			"Placeholders emitted unchanged for lack of a substitution",
		),
	)
	if err != nil {
		return nil, err
	}

	outputSize, err := meter.Int64Histogram(
		"submerge.output.size_bytes",
		metric.WithDescription("Size of replacement results"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &recorder{
		replacements: replacements,
		passthrough:  passthrough,
		outputSize:   outputSize,
	}, nil
}

// record reports one replacement call.
func (r *recorder) record(
	mode string,
	outcome string,
	passthrough int,
	size int,
) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("outcome", outcome),
	)

	r.replacements.Add(ctx, 1, attrs)

	if passthrough > 0 {
		r.passthrough.Add(ctx, int64(passthrough), attrs)
	}

	if outcome == outcomeOK {
		r.outputSize.Record(ctx, int64(size), attrs)
	}
}
