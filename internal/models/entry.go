// Package models defines the data records persisted by the Latte'd local
// stores and mirrored to the cloud service.
package models

// MediaKind classifies the single binary blob attached to an entry.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media describes the entry's blob without containing it. The blob itself
// lives in the local blob store under the entry id; Thumbnail is a small
// locally-derived preview that is never sent to the cloud.
type Media struct {
	Type MediaKind `json:"type"`

	// Thumbnail is a small encoded preview image, nil when generation
	// failed or has not happened yet. Local only.
	Thumbnail []byte `json:"thumbnail,omitempty"`

	// CloudURL is the remote download URL for the blob, "" until the first
	// successful upload. Cleared when the media is replaced locally.
	CloudURL string `json:"cloudUrl,omitempty"`
}

// Params are the brewing parameters of one practice session. Canonical
// storage units are metric, except milk temperature which is Fahrenheit;
// unit preferences apply only at the display boundary.
type Params struct {
	MilkType    string  `json:"milkType"`
	PitcherSize string  `json:"pitcherSize"`
	SpoutTip    string  `json:"spoutTip"`
	CupType     string  `json:"cupType"`
	CupVolumeML float64 `json:"cupVolumeMl"`
	EspressoG   float64 `json:"espressoG"`
	MilkTempF   float64 `json:"milkTempF"`

	// Pattern is the attempted latte-art pattern (heart, tulip, rosetta...).
	Pattern string `json:"pattern"`

	AerationSec    float64 `json:"aerationSec"`
	IntegrationSec float64 `json:"integrationSec"`
}

// Beans identifies the coffee used, if recorded.
type Beans struct {
	Brand string `json:"brand"`
	Name  string `json:"name"`
}

// UserSnapshot is a denormalized copy of the author captured at
// creation/sync time. It is not live-joined against the profile.
type UserSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// Location is the structured home location used for feed filtering.
type Location struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
}

// Entry is one logged practice session. Entries are stored newest-first as
// one whole document in the local metadata store.
type Entry struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	// CreatedAt is an epoch-millisecond timestamp, immutable.
	CreatedAt int64 `json:"createdAt"`

	Media  Media  `json:"media"`
	Params Params `json:"params"`
	Beans  *Beans `json:"beans,omitempty"`

	// Rating is in [0,5] in 0.5 steps; 0 means unset.
	Rating float64 `json:"rating"`

	Notes string `json:"notes"`

	// Comments only populates for entries created locally; mock entries
	// keep comments in per-entry side documents.
	Comments []Comment `json:"comments"`

	User UserSnapshot `json:"user"`

	// IsPublic mirrors the entry into the shared community feed.
	IsPublic bool `json:"isPublic"`

	// SyncedAt is the epoch-millisecond timestamp of the last successful
	// cloud sync, 0 when never synced. It is the entire conflict policy:
	// the strictly newer side wins at document granularity.
	SyncedAt int64 `json:"syncedAt"`
}

// FeedEntry is the denormalized subset of a public entry mirrored into the
// shared community feed collection.
type FeedEntry struct {
	ID        string       `json:"id"`
	CreatedAt int64        `json:"createdAt"`
	Params    Params       `json:"params"`
	Beans     *Beans       `json:"beans,omitempty"`
	Rating    float64      `json:"rating"`
	Notes     string       `json:"notes"`
	User      UserSnapshot `json:"user"`
	MediaType MediaKind    `json:"mediaType"`
	MediaURL  string       `json:"mediaUrl,omitempty"`
}

// FeedEntryOf builds the public mirror of e.
func FeedEntryOf(e Entry) FeedEntry {
	return FeedEntry{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Params:    e.Params,
		Beans:     e.Beans,
		Rating:    e.Rating,
		Notes:     e.Notes,
		User:      e.User,
		MediaType: e.Media.Type,
		MediaURL:  e.Media.CloudURL,
	}
}
