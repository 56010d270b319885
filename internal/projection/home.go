package projection

import (
	"context"
	"strings"
	"time"

	"nota/internal/repository"
	"nota/internal/storage"
)

// Home presents the live item list, optionally text-filtered. Apply feeds it
// the latest store snapshot; SetQuery narrows the visible subsequence without
// touching the store.
type Home struct {
	repo  repository.ItemsRepository
	now   func() time.Time
	items []storage.Item
	query string
}

func NewHome(repo repository.ItemsRepository) *Home {
	return &Home{repo: repo, now: time.Now}
}

// Apply replaces the projection's snapshot with the latest one emitted by the
// store.
func (h *Home) Apply(items []storage.Item) {
	h.items = items
}

// SetQuery sets the title filter. Empty means unfiltered.
func (h *Home) SetQuery(q string) {
	h.query = q
}

func (h *Home) Query() string {
	return h.query
}

// Visible returns the items whose title contains the query, case-insensitive.
// A pure view transform over the current snapshot.
func (h *Home) Visible() []storage.Item {
	if h.query == "" {
		return h.items
	}
	q := strings.ToLower(h.query)
	var out []storage.Item
	for _, it := range h.items {
		if strings.Contains(strings.ToLower(it.Title), q) {
			out = append(out, it)
		}
	}
	return out
}

// AddRecording inserts a new unfinished task holding the captured audio file,
// dated now. A convenience shortcut for the recorder flow, not a general
// attachment path.
func (h *Home) AddRecording(ctx context.Context, audioPath string) (int, error) {
	it := storage.Item{
		Title:       "Recording",
		Description: "Audio recording",
		Kind:        true,
		Finished:    false,
		Date:        h.now().Format(DateFormat),
		AudioURIs:   []string{audioPath},
	}
	return h.repo.Insert(ctx, it)
}
