package reminder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(filepath.Join(t.TempDir(), "alarms.toml"))
}

func TestLedgerPutAndEntries(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Put("Buy milk", 1700000000000))
	require.NoError(t, l.Put("Dentist", 1800000000000))

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"Buy milk": 1700000000000,
		"Dentist":  1800000000000,
	}, entries)
}

func TestLedgerPutOverwritesSameTitle(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Put("Buy milk", 1))
	require.NoError(t, l.Put("Buy milk", 2))

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Buy milk": 2}, entries)
}

func TestLedgerRemove(t *testing.T) {
	l := newTestLedger(t)

	require.NoError(t, l.Put("Buy milk", 1))
	require.NoError(t, l.Remove("Buy milk"))

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Removing an absent title is a no-op.
	assert.NoError(t, l.Remove("never existed"))
}

func TestLedgerMissingFileIsEmpty(t *testing.T) {
	l := newTestLedger(t)
	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedgerSkipsNonTimestampValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarms.toml")
	require.NoError(t, os.WriteFile(path, []byte("\"Buy milk\" = 1700000000000\n\"Broken\" = \"soon\"\n"), 0o644))

	entries, err := NewLedger(path).Entries()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Buy milk": 1700000000000}, entries)
}

func TestLedgerSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarms.toml")
	require.NoError(t, NewLedger(path).Put("Buy milk", 42))

	entries, err := NewLedger(path).Entries()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Buy milk": 42}, entries)
}
