package projection

import (
	"context"

	"nota/internal/repository"
)

// Edit is the draft state machine behind the edit and details screens for an
// existing item. Load hydrates the draft once; external changes to the same
// row are not reflected mid-edit.
type Edit struct {
	repo    repository.ItemsRepository
	id      int
	details ItemDetails
	valid   bool
}

func NewEdit(repo repository.ItemsRepository, id int) *Edit {
	return &Edit{repo: repo, id: id}
}

func (e *Edit) Details() ItemDetails {
	return e.details
}

func (e *Edit) Valid() bool {
	return e.valid
}

// Load hydrates the draft from the store. First emission only: call it once
// when the screen opens.
func (e *Edit) Load(ctx context.Context) error {
	it, err := e.repo.GetByID(ctx, e.id)
	if err != nil {
		return err
	}
	e.details = DetailsFromItem(it)
	e.valid = true
	return nil
}

// Update replaces the draft fields and recomputes validity. The id cannot be
// reassigned.
func (e *Edit) Update(details ItemDetails) {
	details.ID = e.id
	e.details = details
	e.valid = details.Valid()
}

// Save writes the draft's full current state through the repository, a
// complete overwrite of the row. Invalid drafts are silently refused.
func (e *Edit) Save(ctx context.Context) (bool, error) {
	if !e.valid {
		return false, nil
	}
	if err := e.repo.Update(ctx, e.details.ToItem()); err != nil {
		return false, err
	}
	return true, nil
}

// AppendAttachment adds a new URI, persists the whole updated draft, then
// re-hydrates from the store so the draft and the durable row converge. The
// write completes before the reload is issued.
func (e *Edit) AppendAttachment(ctx context.Context, uri string, ct ContentType) error {
	updated := e.details.AddURI(uri, ct)
	if !updated.Valid() {
		return nil
	}
	if err := e.repo.Update(ctx, updated.ToItem()); err != nil {
		return err
	}
	return e.Load(ctx)
}

// SetFinished flips the status flag and persists immediately. Status toggles
// are always valid; the validity check is bypassed.
func (e *Edit) SetFinished(ctx context.Context, finished bool) error {
	e.details.Finished = finished
	return e.repo.Update(ctx, e.details.ToItem())
}

// Delete removes the item. The caller navigates away afterwards.
func (e *Edit) Delete(ctx context.Context) error {
	return e.repo.Delete(ctx, e.id)
}
