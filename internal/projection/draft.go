// Package projection holds the per-screen view-state: a transient draft of an
// item's fields plus the commands that validate and write back through the
// repository.
package projection

import (
	"strings"
	"time"

	"nota/internal/storage"
)

// DateFormat is the display format items carry in their date column.
const DateFormat = "02 Jan 2006, 15:04"

// ContentType selects which attachment list an added URI goes to.
type ContentType int

const (
	PhotoContent ContentType = iota
	VideoContent
	AudioContent
	FileContent
)

// ItemDetails is the editable draft of an item. It mirrors storage.Item but
// additionally carries FileURIs, which the item table does not persist.
type ItemDetails struct {
	ID          int
	Title       string
	Description string
	Kind        bool
	Finished    bool
	Date        string
	PhotoURIs   []string
	VideoURIs   []string
	AudioURIs   []string
	FileURIs    []string
}

// Valid reports whether the draft may be saved: title and description must be
// non-blank and every attachment URI must be non-blank.
func (d ItemDetails) Valid() bool {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Description) == "" {
		return false
	}
	for _, uris := range [][]string{d.PhotoURIs, d.VideoURIs, d.AudioURIs, d.FileURIs} {
		for _, uri := range uris {
			if strings.TrimSpace(uri) == "" {
				return false
			}
		}
	}
	return true
}

// AddURI returns a copy of the draft with the uri appended to the list
// matching ct. Order is insertion order; duplicates are kept.
func (d ItemDetails) AddURI(uri string, ct ContentType) ItemDetails {
	switch ct {
	case PhotoContent:
		d.PhotoURIs = append(append([]string(nil), d.PhotoURIs...), uri)
	case VideoContent:
		d.VideoURIs = append(append([]string(nil), d.VideoURIs...), uri)
	case AudioContent:
		d.AudioURIs = append(append([]string(nil), d.AudioURIs...), uri)
	case FileContent:
		d.FileURIs = append(append([]string(nil), d.FileURIs...), uri)
	}
	return d
}

// ToItem converts the draft to a persistable item. FileURIs are dropped: the
// item table has no column for them.
func (d ItemDetails) ToItem() storage.Item {
	return storage.Item{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Kind:        d.Kind,
		Finished:    d.Finished,
		Date:        d.Date,
		PhotoURIs:   d.PhotoURIs,
		VideoURIs:   d.VideoURIs,
		AudioURIs:   d.AudioURIs,
	}
}

// DetailsFromItem hydrates a draft from a persisted item.
func DetailsFromItem(it storage.Item) ItemDetails {
	return ItemDetails{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Kind:        it.Kind,
		Finished:    it.Finished,
		Date:        it.Date,
		PhotoURIs:   it.PhotoURIs,
		VideoURIs:   it.VideoURIs,
		AudioURIs:   it.AudioURIs,
	}
}

var inputDateLayouts = []string{
	DateFormat,
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// normalizeDate re-renders a user-entered date string in DateFormat. Blank or
// unparseable input falls back to now.
func normalizeDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(DateFormat)
	}
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateFormat)
		}
	}
	return now.Format(DateFormat)
}
