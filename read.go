// Bounded reads over the Blob buffer.
//
// Positions are 1-based, so reading n bytes at pos touches the 0-based
// range [pos-1, pos-1+n). Both Bytes and Stream validate the whole range
// before touching the buffer.
package lob

import "github.com/cockroachdb/errors"

// span validates a read of n bytes at 1-based pos and returns the 0-based
// start offset.
func (b *Blob) span(pos, n int64) (int64, error) {
	size := int64(len(b.buf))
	if pos < 1 || pos > size {
		return 0, errors.Wrapf(ErrInvalidPosition, "position %d outside [1, %d]", pos, size)
	}
	if n < 0 || n > size-(pos-1) {
		return 0, errors.Wrapf(ErrInvalidLength, "length %d at position %d exceeds size %d", n, pos, size)
	}
	return pos - 1, nil
}

// Bytes returns a copy of n bytes starting at 1-based pos.
func (b *Blob) Bytes(pos, n int64) (out []byte, err error) {
	if err := b.active(); err != nil {
		return nil, err
	}
	off, err := b.span(pos, n)
	if err != nil {
		return nil, err
	}
	defer guard(&err)

	out = make([]byte, n)
	copy(out, b.buf[off:off+n])
	return out, nil
}

// Stream returns a single-pass cursor over n bytes starting at 1-based pos.
// Nothing is copied up front; bytes are read from the live buffer as the
// cursor advances.
func (b *Blob) Stream(pos, n int64) (*Stream, error) {
	if err := b.active(); err != nil {
		return nil, err
	}
	off, err := b.span(pos, n)
	if err != nil {
		return nil, err
	}
	return &Stream{blob: b, off: off, end: off + n}, nil
}
