// Savepoint identifiers.
//
// Every savepoint gets a numeric id from an IDAllocator when it is
// created. The id, not the user-supplied name, is what goes over the wire:
// DisplayName is the token the transaction layer sends in SAVEPOINT and
// ROLLBACK TO statements, so two savepoints with the same user name never
// collide on the server.
//
// An IDAllocator is the only concurrently shared state in this package.
// Next is a single atomic add, so ids are unique across any number of
// goroutines without caller-side locking. Ids observed by one goroutine
// increase, but ids handed to different goroutines need not arrive in
// order or differ by exactly one.
package lob

import (
	"strconv"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// SavepointPrefix starts every DisplayName.
const SavepointPrefix = "LOB_SAVEPOINT_"

// IDAllocator hands out strictly increasing savepoint ids starting at 1.
// The zero value is ready to use. It must not be copied after first use.
type IDAllocator struct {
	n atomic.Int64
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next atomically increments the counter and returns the new value.
func (a *IDAllocator) Next() int64 {
	return a.n.Add(1)
}

// Last returns the most recent id handed out, or 0 if none has been.
func (a *IDAllocator) Last() int64 {
	return a.n.Load()
}

// Savepoint is an immutable marker within a transaction. It is either
// named by the caller or unnamed, and always carries an allocated id.
type Savepoint struct {
	id    int64
	name  string
	named bool
}

// NewSavepoint returns an unnamed savepoint with a fresh id from ids.
func NewSavepoint(ids *IDAllocator) *Savepoint {
	return &Savepoint{id: ids.Next()}
}

// NewNamedSavepoint returns a savepoint named name with a fresh id from
// ids. An empty name still counts as named.
func NewNamedSavepoint(ids *IDAllocator, name string) *Savepoint {
	return &Savepoint{id: ids.Next(), name: name, named: true}
}

// Named reports whether the savepoint was given a name.
func (s *Savepoint) Named() bool {
	return s.named
}

// SavepointID returns the id of an unnamed savepoint. Named savepoints are
// addressed by name and fail with ErrNamedSavepoint.
func (s *Savepoint) SavepointID() (int64, error) {
	if s.named {
		return 0, errors.Wrapf(ErrNamedSavepoint, "savepoint %q", s.name)
	}
	return s.id, nil
}

// SavepointName returns the name of a named savepoint. Unnamed savepoints
// fail with ErrUnnamedSavepoint.
func (s *Savepoint) SavepointName() (string, error) {
	if !s.named {
		return "", errors.Wrapf(ErrUnnamedSavepoint, "savepoint %d", s.id)
	}
	return s.name, nil
}

// ID returns the allocated id regardless of naming.
func (s *Savepoint) ID() int64 {
	return s.id
}

// DisplayName returns the wire-level token for the savepoint.
func (s *Savepoint) DisplayName() string {
	return SavepointPrefix + strconv.FormatInt(s.id, 10)
}

// String implements fmt.Stringer.
func (s *Savepoint) String() string {
	if s.named {
		return s.DisplayName() + " (" + strconv.Quote(s.name) + ")"
	}
	return s.DisplayName()
}

type savepointJSON struct {
	ID   int64   `json:"id"`
	Name *string `json:"name,omitempty"`
}

// MarshalJSON encodes the savepoint as {"id":N} or {"id":N,"name":"..."}.
func (s *Savepoint) MarshalJSON() ([]byte, error) {
	v := savepointJSON{ID: s.id}
	if s.named {
		v.Name = &s.name
	}
	return json.Marshal(v)
}
