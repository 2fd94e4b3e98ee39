package engine

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/byte4ever/submerge/buffer"
	"github.com/byte4ever/submerge/config"
	"github.com/byte4ever/submerge/matchset"
	"github.com/byte4ever/submerge/scanner"
	"github.com/byte4ever/submerge/substitution"
)

// DefaultHoleSize is the expected replacement length used to
// size output buffers.
const DefaultHoleSize = 16

// Option configures an Engine.
type Option func(*options)

type options struct {
	pool     *buffer.Pool
	logger   *slog.Logger
	meters   metric.MeterProvider
	holeSize int
}

// WithPool makes the engine draw output buffers from po.
// Engines may share a pool.
func WithPool(po *buffer.Pool) Option {
	return func(o *options) { o.pool = po }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(lo *slog.Logger) Option {
	return func(o *options) { o.logger = lo }
}

// WithMeterProvider enables metrics on mp. Metrics are off by
// default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meters = mp }
}

// WithHoleSize sets the average replacement length used to
// size output buffers.
func WithHoleSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.holeSize = n
		}
	}
}

// Engine scans and replaces templates with a fixed pair of
// delimiters.
type Engine struct {
	delims   scanner.Delimiters
	subs     substitution.Lookup
	pool     *buffer.Pool
	logger   *slog.Logger
	metrics  *recorder
	holeSize int
}

// New returns an Engine reading delimiters and the default
// substitution source from cfg.
func New(cfg config.Provider, opts ...Option) (*Engine, error) {
	const errCtx = "creating engine"

	de, err := scanner.NewDelimiters(
		cfg.StartDelimiter(), cfg.EndDelimiter(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	op := options{holeSize: DefaultHoleSize}
	for _, opt := range opts {
		opt(&op)
	}

	if op.pool == nil {
		op.pool = buffer.NewPool()
	}

	if op.logger == nil {
		op.logger = slog.Default()
	}

	if op.meters == nil {
		op.meters = noop.NewMeterProvider()
	}

	rec, err := newRecorder(op.meters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	subs := cfg.Substitutions()
	if subs == nil {
		subs = substitution.Map{}
	}

	return &Engine{
		delims:   de,
		subs:     subs,
		pool:     op.pool,
		logger:   op.logger,
		metrics:  rec,
		holeSize: op.holeSize,
	}, nil
}

// Delimiters returns the engine's markers.
func (en *Engine) Delimiters() scanner.Delimiters {
	return en.delims
}

// Scan records the placeholders of template for name-keyed
// replay.
func (en *Engine) Scan(template string) *matchset.Named {
	set := matchset.ScanNamed(template, en.delims)
	if set.Malformed() {
		en.logMalformed(template)
	}

	return set
}

// ScanFixed records the placeholders of template for
// positional replay.
func (en *Engine) ScanFixed(template string) *matchset.Fixed {
	set := matchset.ScanFixed(template, en.delims)
	if set.Malformed() {
		en.logMalformed(template)
	}

	return set
}

func (en *Engine) logMalformed(template string) {
	en.logger.Debug(
		"malformed template",
		"length", len(template),
		"start", en.delims.Start(),
		"end", en.delims.End(),
	)
}
