// Package repository exposes the item store as the single surface the
// view-state projections are allowed to call.
package repository

import (
	"context"

	"nota/internal/storage"
)

// ItemsRepository is a 1:1 wrapper over the store with no business logic.
// Projections depend on this interface only, which keeps them testable
// without a database.
type ItemsRepository interface {
	Insert(ctx context.Context, it storage.Item) (int, error)
	Update(ctx context.Context, it storage.Item) error
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (storage.Item, error)
	FetchItems(ctx context.Context) ([]storage.Item, error)
	Subscribe() (<-chan []storage.Item, func())
}

type Items struct {
	store *storage.Store
}

func New(store *storage.Store) *Items {
	return &Items{store: store}
}

func (r *Items) Insert(ctx context.Context, it storage.Item) (int, error) {
	return r.store.Insert(ctx, it)
}

func (r *Items) Update(ctx context.Context, it storage.Item) error {
	return r.store.Update(ctx, it)
}

func (r *Items) Delete(ctx context.Context, id int) error {
	return r.store.Delete(ctx, id)
}

func (r *Items) GetByID(ctx context.Context, id int) (storage.Item, error) {
	return r.store.GetByID(ctx, id)
}

func (r *Items) FetchItems(ctx context.Context) ([]storage.Item, error) {
	return r.store.FetchItems(ctx)
}

func (r *Items) Subscribe() (<-chan []storage.Item, func()) {
	return r.store.Subscribe()
}
