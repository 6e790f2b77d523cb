// In-place mutation of the Blob buffer.
//
// Writes overwrite existing bytes and Truncate only shrinks: the buffer
// never grows past the size the Blob was created with. Every argument is
// validated before the first byte changes, so a failed call leaves the
// buffer exactly as it was.
package lob

import (
	"io"

	"github.com/cockroachdb/errors"
)

// Write copies src[offset:offset+n] over the buffer starting at 1-based
// pos, i.e. into the 0-based range [pos-1, pos-1+n). offset is a 0-based
// index into src. It returns the number of bytes written, which is always
// n on success.
func (b *Blob) Write(pos int64, src []byte, offset, n int) (written int, err error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	size := int64(len(b.buf))
	if pos < 1 || pos > size {
		return 0, errors.Wrapf(ErrInvalidPosition, "position %d outside [1, %d]", pos, size)
	}
	if offset < 0 || offset > len(src) {
		return 0, errors.Wrapf(ErrInvalidOffset, "offset %d outside [0, %d]", offset, len(src))
	}
	if n < 0 || n > len(src)-offset {
		return 0, errors.Wrapf(ErrInvalidLength, "length %d at offset %d exceeds source size %d", n, offset, len(src))
	}
	if int64(n) > size-(pos-1) {
		return 0, errors.Wrapf(ErrInvalidLength, "length %d at position %d exceeds size %d", n, pos, size)
	}
	defer guard(&err)

	return copy(b.buf[pos-1:], src[offset:offset+n]), nil
}

// WriteBytes overwrites the buffer with all of src starting at 1-based pos.
func (b *Blob) WriteBytes(pos int64, src []byte) (int, error) {
	return b.Write(pos, src, 0, len(src))
}

// Truncate shrinks the buffer to its first n bytes. Asking for more bytes
// than the buffer holds fails with ErrInvalidLength; Blobs never grow.
func (b *Blob) Truncate(n int64) error {
	if err := b.active(); err != nil {
		return err
	}
	size := int64(len(b.buf))
	if n < 0 || n > size {
		return errors.Wrapf(ErrInvalidLength, "truncate to %d outside [0, %d]", n, size)
	}
	b.buf = b.buf[:n]
	return nil
}

// OpenWriter would return a writer overwriting the Blob from 1-based pos.
// Streaming writes are not implemented and it always fails with
// ErrUnsupported.
func (b *Blob) OpenWriter(pos int64) (io.Writer, error) {
	if err := b.active(); err != nil {
		return nil, err
	}
	return nil, errors.Wrapf(ErrUnsupported, "streaming write at position %d", pos)
}
