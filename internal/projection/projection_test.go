package projection

import (
	"context"
	"sort"

	"nota/internal/storage"
)

// fakeRepo is an in-memory ItemsRepository for projection tests.
type fakeRepo struct {
	items   map[int]storage.Item
	nextID  int
	updates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int]storage.Item{}}
}

func (f *fakeRepo) Insert(ctx context.Context, it storage.Item) (int, error) {
	f.nextID++
	it.ID = f.nextID
	f.items[it.ID] = it
	return it.ID, nil
}

func (f *fakeRepo) Update(ctx context.Context, it storage.Item) error {
	if _, ok := f.items[it.ID]; !ok {
		return storage.ErrNotFound
	}
	f.items[it.ID] = it
	f.updates++
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (storage.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return storage.Item{}, storage.ErrNotFound
	}
	return it, nil
}

func (f *fakeRepo) FetchItems(ctx context.Context) ([]storage.Item, error) {
	var out []storage.Item
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) Subscribe() (<-chan []storage.Item, func()) {
	ch := make(chan []storage.Item)
	return ch, func() {}
}
