// Package lob provides an in-memory binary large object (Blob) and the
// savepoint identifiers a SQL driver hands to its server when it opens a
// rollback point inside a transaction.
//
// A Blob owns a byte buffer that can be read by 1-based position, searched
// for a byte pattern, overwritten in place and truncated. It never grows
// past the size it was created with. Freeing a Blob releases the buffer and
// every later call except Free fails with ErrFreed.
//
// Savepoint identifiers come from an IDAllocator, a shared atomic counter.
// There is no package-level allocator: a connection pool or process owns
// one and passes it to every savepoint constructor.
package lob

import "github.com/cockroachdb/errors"

// Sentinel errors for programmatic handling. Every error returned by this
// package wraps exactly one of these, so callers use errors.Is to pick the
// kind and map it to their own error codes.
var (
	ErrFreed            = errors.New("blob has been freed")
	ErrMalformedHex     = errors.New("malformed hex literal")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidOffset    = errors.New("invalid offset")
	ErrInvalidStart     = errors.New("invalid search start")
	ErrMissingPattern   = errors.New("search pattern is empty")
	ErrOutOfBounds      = errors.New("index out of bounds")
	ErrUnsupported      = errors.New("operation not supported")
	ErrNamedSavepoint   = errors.New("savepoint is named")
	ErrUnnamedSavepoint = errors.New("savepoint is unnamed")
)

// kinds pairs each sentinel with the stable name Kind reports for it.
var kinds = []struct {
	err  error
	name string
}{
	{ErrFreed, "freed"},
	{ErrMalformedHex, "malformed_hex"},
	{ErrInvalidPosition, "invalid_position"},
	{ErrInvalidLength, "invalid_length"},
	{ErrInvalidOffset, "invalid_offset"},
	{ErrInvalidStart, "invalid_start"},
	{ErrMissingPattern, "missing_pattern"},
	{ErrOutOfBounds, "out_of_bounds"},
	{ErrUnsupported, "unsupported"},
	{ErrNamedSavepoint, "named_savepoint"},
	{ErrUnnamedSavepoint, "unnamed_savepoint"},
}

// Kind returns the stable name of the sentinel err wraps, or "" if err is
// nil or did not come from this package.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
