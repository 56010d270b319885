// Package reminder persists pending reminder triggers and registers them
// against an alarm clock so they survive restarts.
package reminder

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Ledger is a flat title -> trigger-time (epoch milliseconds) table stored as
// a TOML file. It has no coupling to the item table: a reminder and its item
// can desynchronize after a title rename.
type Ledger struct {
	path string
	mu   sync.Mutex
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Entries returns every well-formed entry. Values that cannot be interpreted
// as a timestamp are skipped.
func (l *Ledger) Entries() (map[string]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Put records a trigger time for the title, overwriting any prior entry for
// the same title.
func (l *Ledger) Put(title string, triggerAtMs int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.load()
	if err != nil {
		return err
	}
	entries[title] = triggerAtMs
	return l.write(entries)
}

// Remove deletes the entry for the title. Removing an absent title is a
// no-op.
func (l *Ledger) Remove(title string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.load()
	if err != nil {
		return err
	}
	if _, ok := entries[title]; !ok {
		return nil
	}
	delete(entries, title)
	return l.write(entries)
}

func (l *Ledger) load() (map[string]int64, error) {
	entries := map[string]int64{}
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for title, v := range raw {
		ms, ok := asMillis(v)
		if !ok {
			continue
		}
		entries[title] = ms
	}
	return entries, nil
}

func (l *Ledger) write(entries map[string]int64) error {
	data, err := toml.Marshal(entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	return os.WriteFile(l.path, data, 0o644)
}

func asMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
