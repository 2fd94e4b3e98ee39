package buffer

import (
	"errors"
	"fmt"

	"github.com/valyala/bytebufferpool"
)

var (
	// ErrTooLarge is returned when an append would push the
	// buffer past its pool's maximum capacity.
	ErrTooLarge = errors.New("buffer exceeds maximum capacity")

	// ErrReleased is returned when a Buffer is used after
	// Finish or Release.
	ErrReleased = errors.New("buffer already released")
)

// Buffer accumulates literal and replacement spans in order.
// It must not be shared between goroutines.
type Buffer struct {
	pool *Pool
	bb   *bytebufferpool.ByteBuffer
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	if b.bb == nil {
		return 0
	}

	return len(b.bb.B)
}

// Cap returns the current storage capacity.
func (b *Buffer) Cap() int {
	if b.bb == nil {
		return 0
	}

	return cap(b.bb.B)
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	if err := b.reserve(len(s)); err != nil {
		return 0, err
	}

	b.bb.B = append(b.bb.B, s...)

	return len(s), nil
}

// Write appends p. It implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.reserve(len(p)); err != nil {
		return 0, err
	}

	b.bb.B = append(b.bb.B, p...)

	return len(p), nil
}

// Finish returns the accumulated text and releases the
// storage. The Buffer is unusable afterwards.
func (b *Buffer) Finish() (string, error) {
	if b.bb == nil {
		return "", ErrReleased
	}

	s := string(b.bb.B)
	b.Release()

	return s, nil
}

// Release returns the storage to the pool. It is safe to call
// more than once and after Finish.
func (b *Buffer) Release() {
	if b.bb == nil {
		return
	}

	b.pool.put(b.bb)
	b.bb = nil
}

// reserve makes room for n more bytes.
func (b *Buffer) reserve(n int) error {
	if b.bb == nil {
		return ErrReleased
	}

	const errCtx = "reserving buffer space"

	need := len(b.bb.B) + n
	if need > b.pool.maxCap {
		return fmt.Errorf(
			"%s: need %d bytes, max %d: %w",
			errCtx, need, b.pool.maxCap, ErrTooLarge,
		)
	}

	if need <= cap(b.bb.B) {
		return nil
	}

	b.grow(need)

	return nil
}

// grow moves the content to storage of at least double the
// current capacity, or need if larger, capped at the pool max.
func (b *Buffer) grow(need int) {
	size := max(2*cap(b.bb.B), need)
	size = min(size, b.pool.maxCap)

	nb := b.pool.get(size)
	nb.B = append(nb.B, b.bb.B...)

	b.pool.put(b.bb)
	b.bb = nb
}
