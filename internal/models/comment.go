package models

// Comment belongs to exactly one entry (or one mock entry id). Author name
// is denormalized at creation time.
type Comment struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`

	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt stays 0 until the first edit.
	UpdatedAt int64 `json:"updatedAt,omitempty"`

	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`

	// ParentID is "" for top-level comments, else the id of the parent.
	// The model allows arbitrary chains; rendering caps the depth.
	ParentID string `json:"parentId,omitempty"`
}

// Score is the net vote score used by the "top" sort order.
func (c Comment) Score() int { return c.Upvotes - c.Downvotes }

// Volume is the total vote count used by the "controversial" sort order.
func (c Comment) Volume() int { return c.Upvotes + c.Downvotes }

// Vote values. A missing record means no vote.
const (
	VoteUp   = 1
	VoteDown = -1
)

// CommentSort selects the ordering of top-level comments. Replies always
// stay attached under their parent regardless of the chosen order.
type CommentSort string

const (
	SortNewest        CommentSort = "newest"
	SortOldest        CommentSort = "oldest"
	SortTop           CommentSort = "top"
	SortControversial CommentSort = "controversial"
)
