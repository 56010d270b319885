package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nota/internal/storage"
)

func TestDraftValidity(t *testing.T) {
	tests := []struct {
		name string
		d    ItemDetails
		want bool
	}{
		{"both set", ItemDetails{Title: "t", Description: "d"}, true},
		{"blank title", ItemDetails{Title: "  ", Description: "d"}, false},
		{"blank description", ItemDetails{Title: "t", Description: ""}, false},
		{"blank photo uri", ItemDetails{Title: "t", Description: "d", PhotoURIs: []string{"ok", " "}}, false},
		{"blank audio uri", ItemDetails{Title: "t", Description: "d", AudioURIs: []string{""}}, false},
		{"blank file uri", ItemDetails{Title: "t", Description: "d", FileURIs: []string{"\t"}}, false},
		{"all uris set", ItemDetails{Title: "t", Description: "d", PhotoURIs: []string{"p"}, VideoURIs: []string{"v"}, AudioURIs: []string{"a"}}, true},
		{"blank date still valid", ItemDetails{Title: "t", Description: "d", Date: ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Valid())
		})
	}
}

func TestAddURIPreservesOrderAndDuplicates(t *testing.T) {
	d := ItemDetails{Title: "t", Description: "d"}
	d = d.AddURI("p1", PhotoContent)
	d = d.AddURI("p2", PhotoContent)
	d = d.AddURI("p1", PhotoContent)
	d = d.AddURI("v1", VideoContent)
	d = d.AddURI("f1", FileContent)

	assert.Equal(t, []string{"p1", "p2", "p1"}, d.PhotoURIs)
	assert.Equal(t, []string{"v1"}, d.VideoURIs)
	assert.Equal(t, []string{"f1"}, d.FileURIs)
	assert.Empty(t, d.AudioURIs)
}

func TestAddURIDoesNotAliasSource(t *testing.T) {
	base := ItemDetails{Title: "t", Description: "d", PhotoURIs: []string{"p1"}}
	a := base.AddURI("p2", PhotoContent)
	b := base.AddURI("p3", PhotoContent)

	assert.Equal(t, []string{"p1", "p2"}, a.PhotoURIs)
	assert.Equal(t, []string{"p1", "p3"}, b.PhotoURIs)
	assert.Equal(t, []string{"p1"}, base.PhotoURIs)
}

func TestItemDetailsRoundTrip(t *testing.T) {
	it := storage.Item{
		ID:          7,
		Title:       "title",
		Description: "description",
		Kind:        true,
		Finished:    true,
		Date:        "05 Mar 2026, 18:00",
		PhotoURIs:   []string{"p1", "p2"},
		VideoURIs:   []string{"v1"},
		AudioURIs:   []string{"a1"},
	}
	assert.Equal(t, it, DetailsFromItem(it).ToItem())
}

func TestToItemDropsFileURIs(t *testing.T) {
	d := ItemDetails{Title: "t", Description: "d", FileURIs: []string{"f1"}}
	it := d.ToItem()
	assert.Equal(t, "t", it.Title)
	// No file column exists on the item table.
	assert.Empty(t, DetailsFromItem(it).FileURIs)
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "29 Aug 2026, 12:00", normalizeDate("", now))
	assert.Equal(t, "29 Aug 2026, 12:00", normalizeDate("not a date", now))
	assert.Equal(t, "01 Feb 2026, 09:30", normalizeDate("2026-02-01 09:30", now))
	assert.Equal(t, "01 Feb 2026, 00:00", normalizeDate("2026-02-01", now))
	assert.Equal(t, "01 Feb 2026, 09:30", normalizeDate("01 Feb 2026, 09:30", now))
}
