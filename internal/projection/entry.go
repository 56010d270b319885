package projection

import (
	"context"
	"time"

	"nota/internal/repository"
)

// Entry is the draft state machine behind the "new item" screen. It starts
// empty and invalid; every field mutation re-derives validity. Save silently
// refuses while the draft is invalid.
type Entry struct {
	repo    repository.ItemsRepository
	now     func() time.Time
	details ItemDetails
	valid   bool
}

func NewEntry(repo repository.ItemsRepository) *Entry {
	return &Entry{repo: repo, now: time.Now}
}

func (e *Entry) Details() ItemDetails {
	return e.details
}

func (e *Entry) Valid() bool {
	return e.valid
}

// Update replaces the draft fields and recomputes validity.
func (e *Entry) Update(details ItemDetails) {
	e.details = details
	e.valid = details.Valid()
}

// AddURI appends an attachment to the draft. Nothing is persisted until Save.
func (e *Entry) AddURI(uri string, ct ContentType) {
	e.Update(e.details.AddURI(uri, ct))
}

// Save inserts the draft through the repository if it is valid; an invalid
// draft is a silent no-op. A blank date is set to now, a user-entered one is
// reformatted (falling back to now when unparseable). Returns the assigned id
// and whether a save happened.
func (e *Entry) Save(ctx context.Context) (int, bool, error) {
	if !e.valid {
		return 0, false, nil
	}
	e.details.Date = normalizeDate(e.details.Date, e.now())
	id, err := e.repo.Insert(ctx, e.details.ToItem())
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
