package models

// Profile is the single per-installation record that drives the denormalized
// user snapshots on entries and comments. ID is generated once and never
// regenerated, even when cloud fields are merged over local ones.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  Location `json:"location"`
	Picture   []byte   `json:"picture,omitempty"`
	Equipment string   `json:"equipment,omitempty"`

	// SyncedAt mirrors the entry conflict policy at single-document
	// granularity.
	SyncedAt int64 `json:"syncedAt"`
}

// Snapshot captures the denormalized author fields stamped onto entries.
func (p Profile) Snapshot() UserSnapshot {
	return UserSnapshot{ID: p.ID, Name: p.Name, Location: p.Location}
}

// Settings holds the display unit preferences. Storage stays canonical
// (metric, Fahrenheit for milk temperature) regardless of these.
type Settings struct {
	TempUnit   string `json:"tempUnit"`   // "F" or "C"
	VolumeUnit string `json:"volumeUnit"` // "ml" or "oz"
	WeightUnit string `json:"weightUnit"` // "g" or "oz"
}

// DefaultSettings matches canonical storage units.
func DefaultSettings() Settings {
	return Settings{TempUnit: "F", VolumeUnit: "ml", WeightUnit: "g"}
}

// Loadout is a named, reusable preset of brewing parameters with its own
// lifecycle. One loadout may be marked active via a process-wide pointer
// persisted separately.
type Loadout struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Params    Params `json:"params"`
	Beans     *Beans `json:"beans,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotifyComment NotificationType = "comment"
	NotifyFollow  NotificationType = "follow"
	NotifyUpvote  NotificationType = "upvote"
	NotifyMention NotificationType = "mention"
)

// Notification is one item in the capped local notification list.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt int64            `json:"createdAt"`
}

// Draft holds an unfinished entry form so it survives navigation. Whole
// document, last write wins.
type Draft struct {
	Params  Params  `json:"params"`
	Beans   *Beans  `json:"beans,omitempty"`
	Rating  float64 `json:"rating"`
	Notes   string  `json:"notes"`
	SavedAt int64   `json:"savedAt"`
}
