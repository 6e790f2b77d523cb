// Lazy single-pass cursor over a Blob sub-range.
//
// A Stream reads from the owning Blob's live buffer, so a Free or a
// Truncate below the cursor is seen by the next read. Once the cursor has
// passed a byte it cannot go back; there is no Seek or Reset.
package lob

import (
	"io"
	"iter"

	"github.com/cockroachdb/errors"
)

// Stream is returned by Blob.Stream. It implements io.Reader and
// io.ByteReader.
type Stream struct {
	blob *Blob
	off  int64 // next 0-based offset in blob.buf
	end  int64 // exclusive 0-based end of the range
	err  error // sticky terminal error
}

var (
	_ io.Reader     = (*Stream)(nil)
	_ io.ByteReader = (*Stream)(nil)
)

// Remaining returns how many bytes the cursor has not yet produced.
func (s *Stream) Remaining() int64 {
	if s.err != nil {
		return 0
	}
	return s.end - s.off
}

// check reports why the cursor cannot produce another byte, or nil.
func (s *Stream) check() error {
	if s.err != nil {
		return s.err
	}
	if err := s.blob.active(); err != nil {
		s.err = err
		return err
	}
	if s.off >= s.end {
		s.err = io.EOF
		return io.EOF
	}
	if size := int64(len(s.blob.buf)); s.end > size {
		s.err = errors.Wrapf(ErrOutOfBounds, "blob truncated to %d bytes, stream ends at %d", size, s.end)
		return s.err
	}
	return nil
}

// Read copies up to len(p) bytes of the remaining range into p.
func (s *Stream) Read(p []byte) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	n := copy(p, s.blob.buf[s.off:s.end])
	s.off += int64(n)
	return n, nil
}

// ReadByte returns the next byte of the range.
func (s *Stream) ReadByte() (byte, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	c := s.blob.buf[s.off]
	s.off++
	return c, nil
}

// All yields the remaining bytes one at a time. The sequence consumes the
// cursor: ranging over it a second time yields nothing. A read error is
// yielded once as the final element; reaching the end of the range is not
// an error. Break from the range loop to stop early.
func (s *Stream) All() iter.Seq2[byte, error] {
	return func(yield func(byte, error) bool) {
		for {
			c, err := s.ReadByte()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(0, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}
