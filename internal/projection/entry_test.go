package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func TestEntryStartsInvalid(t *testing.T) {
	e := NewEntry(newFakeRepo())
	assert.False(t, e.Valid())
}

func TestEntrySaveRefusesInvalidDraft(t *testing.T) {
	repo := newFakeRepo()
	e := NewEntry(repo)
	e.Update(ItemDetails{Title: "only title"})

	id, saved, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Zero(t, id)
	assert.Empty(t, repo.items)
}

func TestEntrySaveSetsDateWhenBlank(t *testing.T) {
	repo := newFakeRepo()
	e := NewEntry(repo)
	e.now = fixedNow
	e.Update(ItemDetails{Title: "t", Description: "d"})

	id, saved, err := e.Save(context.Background())
	require.NoError(t, err)
	require.True(t, saved)
	assert.Equal(t, "29 Aug 2026, 12:00", repo.items[id].Date)
}

func TestEntrySaveReformatsUserDate(t *testing.T) {
	repo := newFakeRepo()
	e := NewEntry(repo)
	e.now = fixedNow
	e.Update(ItemDetails{Title: "t", Description: "d", Date: "2026-02-01 09:30"})

	id, saved, err := e.Save(context.Background())
	require.NoError(t, err)
	require.True(t, saved)
	assert.Equal(t, "01 Feb 2026, 09:30", repo.items[id].Date)
}

func TestEntrySaveFallsBackOnUnparseableDate(t *testing.T) {
	repo := newFakeRepo()
	e := NewEntry(repo)
	e.now = fixedNow
	e.Update(ItemDetails{Title: "t", Description: "d", Date: "next tuesday"})

	id, _, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "29 Aug 2026, 12:00", repo.items[id].Date)
}

func TestEntryAddURIThenSavePersistsInOrder(t *testing.T) {
	repo := newFakeRepo()
	e := NewEntry(repo)
	e.now = fixedNow
	e.Update(ItemDetails{Title: "t", Description: "d"})
	e.AddURI("p1", PhotoContent)
	e.AddURI("p2", PhotoContent)

	id, saved, err := e.Save(context.Background())
	require.NoError(t, err)
	require.True(t, saved)
	assert.Equal(t, []string{"p1", "p2"}, repo.items[id].PhotoURIs)
}

func TestEntryBlankURIBlocksSave(t *testing.T) {
	repo := newFakeRepo()
	e := NewEntry(repo)
	e.Update(ItemDetails{Title: "t", Description: "d"})
	e.AddURI("", AudioContent)

	assert.False(t, e.Valid())
	_, saved, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.False(t, saved)
}
