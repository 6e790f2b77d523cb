// Core Blob type and lifecycle.
//
// A Blob is either active, owning its buffer, or freed. The state is its
// own tag, not a nil buffer: an active Blob may hold zero bytes after
// Truncate(0). Blob has single-owner semantics and no internal locking:
// callers must not run Write, Truncate or Free concurrently with any other
// call on the same Blob.
package lob

import (
	"bytes"
	"runtime"

	"github.com/cockroachdb/errors"
)

type state uint8

// Blob states.
const (
	stateActive state = iota // buf is owned and readable
	stateFreed               // buf released, only Free succeeds
)

// Blob is an in-memory binary large object addressed by 1-based position.
type Blob struct {
	state state
	buf   []byte
}

// New returns an active Blob holding a copy of b. The caller keeps
// ownership of b.
func New(b []byte) *Blob {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &Blob{state: stateActive, buf: buf}
}

// Free releases the buffer. Calling Free again is a no-op.
func (b *Blob) Free() {
	b.state = stateFreed
	b.buf = nil
}

// Freed reports whether Free has been called.
func (b *Blob) Freed() bool {
	return b.state == stateFreed
}

// Len returns the number of bytes in the buffer.
func (b *Blob) Len() (int64, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	return int64(len(b.buf)), nil
}

// Equal reports whether b and other are both active and hold identical
// bytes. A freed Blob is never equal to anything, itself included.
func (b *Blob) Equal(other *Blob) bool {
	if b == nil || other == nil || b.Freed() || other.Freed() {
		return false
	}
	return bytes.Equal(b.buf, other.buf)
}

// Compare returns the sum of the signed differences b[i]-other[i] over the
// common prefix of the two buffers. Bytes past the shorter length are
// ignored.
//
// This is a weak ordering kept for compatibility with the driver's
// historical comparison. It is not transitive and returns 0 for many
// unequal buffers ({1,3} vs {2,2}, or any buffer vs an empty one). Use
// CompareLex when a total order is needed.
func (b *Blob) Compare(other *Blob) (int, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	if err := other.active(); err != nil {
		return 0, err
	}
	n := min(len(b.buf), len(other.buf))
	sum := 0
	for i := range n {
		sum += int(b.buf[i]) - int(other.buf[i])
	}
	return sum, nil
}

// CompareLex compares the two buffers lexicographically, like
// bytes.Compare.
func (b *Blob) CompareLex(other *Blob) (int, error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	if err := other.active(); err != nil {
		return 0, err
	}
	return bytes.Compare(b.buf, other.buf), nil
}

// active returns ErrFreed unless b is usable. A nil Blob counts as freed.
func (b *Blob) active() error {
	if b == nil || b.state != stateActive {
		return ErrFreed
	}
	return nil
}

// guard turns a runtime index panic that slipped past validation into
// ErrOutOfBounds. Any other panic is re-raised.
func guard(err *error) {
	p := recover()
	if p == nil {
		return
	}
	re, ok := p.(runtime.Error)
	if !ok {
		panic(p)
	}
	*err = errors.Wrap(ErrOutOfBounds, re.Error())
}
