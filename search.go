// Byte-pattern search over the Blob buffer.
//
// Search is a naive scan: every candidate offset from start-1 is compared
// byte by byte against the pattern, O(len(buf)*len(pattern)) in the worst
// case. The last candidate is len(buf)-len(pattern), so a pattern that ends
// on the final byte of the buffer is found. The driver this package serves
// historically stopped one candidate short and missed such tail matches;
// that behaviour is deliberately not reproduced.
//
// Start is 1-based, the returned offset is 0-based. This asymmetry is part
// of the contract callers already depend on.
package lob

import "github.com/cockroachdb/errors"

// Search returns the 0-based offset of the first occurrence of pattern at
// or after 1-based start, or -1 if there is none.
func (b *Blob) Search(pattern []byte, start int64) (off int64, err error) {
	if err := b.active(); err != nil {
		return 0, err
	}
	size := int64(len(b.buf))
	if start < 1 || start > size {
		return 0, errors.Wrapf(ErrInvalidStart, "start %d outside [1, %d]", start, size)
	}
	if len(pattern) == 0 {
		return 0, ErrMissingPattern
	}
	defer guard(&err)

	return index(b.buf, pattern, start-1), nil
}

// SearchBlob is Search with the pattern taken from another Blob's buffer.
func (b *Blob) SearchBlob(pattern *Blob, start int64) (int64, error) {
	if err := pattern.active(); err != nil {
		return 0, err
	}
	return b.Search(pattern.buf, start)
}

// index is the scan behind Search. from must be a valid 0-based offset.
func index(buf, pattern []byte, from int64) int64 {
	last := int64(len(buf)) - int64(len(pattern))
	for i := from; i <= last; i++ {
		match := true
		for j := range pattern {
			if buf[i+int64(j)] != pattern[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
