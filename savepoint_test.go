package lob

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// TestNextSequential verifies that a fresh allocator returns 1 then 2.
func TestNextSequential(t *testing.T) {
	ids := NewIDAllocator()
	require.Zero(t, ids.Last())
	require.EqualValues(t, 1, ids.Next())
	require.EqualValues(t, 2, ids.Next())
	require.EqualValues(t, 2, ids.Last())
}

func TestZeroValueAllocator(t *testing.T) {
	var ids IDAllocator
	require.EqualValues(t, 1, ids.Next())
}

// TestAllocatorsIndependent verifies there is no hidden shared counter:
// two allocators each start from 1.
func TestAllocatorsIndependent(t *testing.T) {
	a, b := NewIDAllocator(), NewIDAllocator()
	a.Next()
	a.Next()
	require.EqualValues(t, 1, b.Next())
	require.EqualValues(t, 3, a.Next())
}

func TestUnnamedSavepoint(t *testing.T) {
	ids := NewIDAllocator()
	sp := NewSavepoint(ids)

	require.False(t, sp.Named())
	id, err := sp.SavepointID()
	require.NoError(t, err)
	require.EqualValues(t, 1, id)
	require.Equal(t, id, sp.ID())

	_, err = sp.SavepointName()
	require.ErrorIs(t, err, ErrUnnamedSavepoint)
}

func TestNamedSavepoint(t *testing.T) {
	ids := NewIDAllocator()
	ids.Next()
	sp := NewNamedSavepoint(ids, "before_import")

	require.True(t, sp.Named())
	name, err := sp.SavepointName()
	require.NoError(t, err)
	require.Equal(t, "before_import", name)
	require.EqualValues(t, 2, sp.ID())

	_, err = sp.SavepointID()
	require.ErrorIs(t, err, ErrNamedSavepoint)
}

// TestEmptyNameIsNamed verifies that naming is tracked separately from the
// name's value. An empty string is a name the caller chose.
func TestEmptyNameIsNamed(t *testing.T) {
	sp := NewNamedSavepoint(NewIDAllocator(), "")
	require.True(t, sp.Named())
	name, err := sp.SavepointName()
	require.NoError(t, err)
	require.Empty(t, name)
}

// TestDisplayNameIgnoresUserName verifies that the wire token depends only
// on the id. Two savepoints with the same user name must still reference
// different server-side savepoints.
func TestDisplayNameIgnoresUserName(t *testing.T) {
	ids := NewIDAllocator()
	a := NewNamedSavepoint(ids, "x")
	b := NewNamedSavepoint(ids, "x")
	c := NewSavepoint(ids)

	require.Equal(t, SavepointPrefix+"1", a.DisplayName())
	require.Equal(t, SavepointPrefix+"2", b.DisplayName())
	require.Equal(t, SavepointPrefix+"3", c.DisplayName())
	require.NotEqual(t, a.DisplayName(), b.DisplayName())
}

func TestSavepointString(t *testing.T) {
	ids := NewIDAllocator()
	require.Equal(t, "LOB_SAVEPOINT_1", NewSavepoint(ids).String())
	require.Equal(t, `LOB_SAVEPOINT_2 ("a b")`, NewNamedSavepoint(ids, "a b").String())
}

func TestSavepointJSON(t *testing.T) {
	ids := NewIDAllocator()

	data, err := json.Marshal(NewSavepoint(ids))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1}`, string(data))

	data, err = json.Marshal(NewNamedSavepoint(ids, "n"))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":2,"name":"n"}`, string(data))

	data, err = json.Marshal(NewNamedSavepoint(ids, ""))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":3,"name":""}`, string(data))
}
