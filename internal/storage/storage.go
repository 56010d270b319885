package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by GetByID and Update when no row matches the id.
var ErrNotFound = errors.New("item not found")

// Item is a single row of the items table. ID 0 means "not yet persisted";
// Insert assigns the real id. The URI slices keep insertion order and are
// never deduplicated.
type Item struct {
	ID          int
	Title       string
	Description string
	Kind        bool // true = task, false = note
	Finished    bool
	Date        string
	PhotoURIs   []string
	VideoURIs   []string
	AudioURIs   []string
}

type Store struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]chan []Item
	nextSub int
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, subs: map[int]chan []Item{}}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.mu.Unlock()
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	kind INTEGER NOT NULL DEFAULT 1,
	finished INTEGER NOT NULL DEFAULT 0,
	date TEXT NOT NULL DEFAULT '',
	photo_uris TEXT NOT NULL DEFAULT '[]',
	video_uris TEXT NOT NULL DEFAULT '[]',
	audio_uris TEXT NOT NULL DEFAULT '[]'
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureItemColumns()
}

// ensureItemColumns upgrades databases created by the single-URI schema,
// where each item carried at most one photo/video/audio locator.
func (s *Store) ensureItemColumns() error {
	required := map[string]string{
		"photo_uris": "ALTER TABLE items ADD COLUMN photo_uris TEXT NOT NULL DEFAULT '[]';",
		"video_uris": "ALTER TABLE items ADD COLUMN video_uris TEXT NOT NULL DEFAULT '[]';",
		"audio_uris": "ALTER TABLE items ADD COLUMN audio_uris TEXT NOT NULL DEFAULT '[]';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(items);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Insert appends a new row, ignoring any id set on the item, and returns the
// assigned id.
func (s *Store) Insert(ctx context.Context, it Item) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (title, description, kind, finished, date, photo_uris, video_uris, audio_uris)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		it.Title, it.Description, boolToInt(it.Kind), boolToInt(it.Finished), it.Date,
		encodeURIs(it.PhotoURIs), encodeURIs(it.VideoURIs), encodeURIs(it.AudioURIs))
	if err != nil {
		return 0, fmt.Errorf("item insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("item last insert id: %w", err)
	}
	s.notify()
	return int(id), nil
}

// Update replaces the row matching it.ID in full. Returns ErrNotFound if the
// id is absent.
func (s *Store) Update(ctx context.Context, it Item) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, kind = ?, finished = ?, date = ?,
		 photo_uris = ?, video_uris = ?, audio_uris = ? WHERE id = ?;`,
		it.Title, it.Description, boolToInt(it.Kind), boolToInt(it.Finished), it.Date,
		encodeURIs(it.PhotoURIs), encodeURIs(it.VideoURIs), encodeURIs(it.AudioURIs), it.ID)
	if err != nil {
		return fmt.Errorf("item update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("item update rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notify()
	return nil
}

// Delete removes the row with the given id. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("item delete: %w", err)
	}
	s.notify()
	return nil
}

func (s *Store) GetByID(ctx context.Context, id int) (Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, kind, finished, date, photo_uris, video_uris, audio_uris
		 FROM items WHERE id = ?;`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("item get: %w", err)
	}
	return it, nil
}

func (s *Store) FetchItems(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, kind, finished, date, photo_uris, video_uris, audio_uris
		 FROM items ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("item list: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("item list scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item list rows: %w", err)
	}
	return items, nil
}

// Subscribe registers a live view over the items table. The returned channel
// carries a full snapshot after every mutation; a slow reader only ever sees
// the latest one (stale snapshots are replaced, not queued). The cancel func
// must be called when the subscriber goes away.
func (s *Store) Subscribe() (<-chan []Item, func()) {
	ch := make(chan []Item, 1)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// notify pushes a fresh snapshot to every subscriber. Runs synchronously at
// the end of each mutation so an emission always reflects every mutation
// committed before it was produced.
func (s *Store) notify() {
	items, err := s.FetchItems(context.Background())
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- items:
		default:
		}
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (Item, error) {
	var it Item
	var kind, finished int
	var photos, videos, audios string
	if err := row.Scan(&it.ID, &it.Title, &it.Description, &kind, &finished, &it.Date, &photos, &videos, &audios); err != nil {
		return it, err
	}
	it.Kind = kind == 1
	it.Finished = finished == 1
	it.PhotoURIs = decodeURIs(photos)
	it.VideoURIs = decodeURIs(videos)
	it.AudioURIs = decodeURIs(audios)
	return it, nil
}

func encodeURIs(uris []string) string {
	if len(uris) == 0 {
		return "[]"
	}
	b, err := json.Marshal(uris)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeURIs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil
	}
	var uris []string
	if err := json.Unmarshal([]byte(raw), &uris); err != nil {
		// A row written by the single-URI schema holds a bare locator string.
		return []string{raw}
	}
	return uris
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
