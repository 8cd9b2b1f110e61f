package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryInsertLookupRemove(t *testing.T) {
	d := NewDirectory(0)
	h := Handle{Book: 1, Level: 2, Order: 3}
	d.Insert(42, h)

	got, ok := d.Lookup(42)
	require.True(t, ok)
	assert.Equal(t, h, got)

	d.Remove(42)
	_, ok = d.Lookup(42)
	assert.False(t, ok)
}

func TestDirectoryInsertDuplicatePanics(t *testing.T) {
	d := NewDirectory(0)
	d.Insert(1, Handle{})
	assert.Panics(t, func() {
		d.Insert(1, Handle{})
	})
}

func TestDirectoryMustLookupMissingPanics(t *testing.T) {
	d := NewDirectory(0)
	assert.Panics(t, func() {
		d.MustLookup("delete", 123)
	})
}
