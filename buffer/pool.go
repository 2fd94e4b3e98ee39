package buffer

import (
	"github.com/valyala/bytebufferpool"
)

const (
	// DefaultMinCapacity is the smallest capacity handed out
	// by a Pool.
	DefaultMinCapacity = 256

	// DefaultMaxCapacity is the hard cap a Buffer may grow to.
	DefaultMaxCapacity = 64 << 20
)

// Option configures a Pool.
type Option func(*Pool)

// WithMinCapacity sets the capacity every acquired Buffer
// starts with at least.
func WithMinCapacity(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.minCap = n
		}
	}
}

// WithMaxCapacity sets the hard cap on Buffer growth.
func WithMaxCapacity(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.maxCap = n
		}
	}
}

// Pool hands out Buffers whose storage is recycled. It is safe
// for concurrent use; the Buffers it returns are not.
type Pool struct {
	minCap int
	maxCap int
	bytes  bytebufferpool.Pool
}

// NewPool returns a Pool configured by opts.
func NewPool(opts ...Option) *Pool {
	po := &Pool{
		minCap: DefaultMinCapacity,
		maxCap: DefaultMaxCapacity,
	}

	for _, opt := range opts {
		opt(po)
	}

	if po.minCap > po.maxCap {
		po.minCap = po.maxCap
	}

	return po
}

// MinCapacity returns the starting capacity floor.
func (p *Pool) MinCapacity() int { return p.minCap }

// MaxCapacity returns the growth cap.
func (p *Pool) MaxCapacity() int { return p.maxCap }

// Acquire returns an empty Buffer with room for at least
// sizeHint bytes, clamped to the pool's bounds. The caller owns
// it until Finish or Release.
func (p *Pool) Acquire(sizeHint int) *Buffer {
	want := max(sizeHint, p.minCap)
	want = min(want, p.maxCap)

	return &Buffer{
		pool: p,
		bb:   p.get(want),
	}
}

// get fetches storage with capacity of at least n.
func (p *Pool) get(n int) *bytebufferpool.ByteBuffer {
	bb := p.bytes.Get()
	if cap(bb.B) < n {
		bb.B = make([]byte, 0, n)
	}

	bb.B = bb.B[:0]

	return bb
}

func (p *Pool) put(bb *bytebufferpool.ByteBuffer) {
	p.bytes.Put(bb)
}

// EstimateSize derives an initial capacity from the template
// length and the expected number of holes, each assumed to
// expand to holeSize bytes.
func EstimateSize(templateLen, holes, holeSize int) int {
	return templateLen + holes*holeSize
}
