package social

import (
	"sort"

	"github.com/latted-app/latted/internal/models"
)

// SortComments orders top-level comments by the requested mode and keeps
// every reply attached directly after its parent, oldest reply first,
// regardless of the mode. Replies whose parent no longer exists are dropped
// from the result (they stay stored but unreachable).
func SortComments(cs []models.Comment, mode models.CommentSort) []models.Comment {
	var top []models.Comment
	children := map[string][]models.Comment{}

	for _, c := range cs {
		if c.ParentID == "" {
			top = append(top, c)
		} else {
			children[c.ParentID] = append(children[c.ParentID], c)
		}
	}

	switch mode {
	case models.SortOldest:
		sort.SliceStable(top, func(i, j int) bool { return top[i].CreatedAt < top[j].CreatedAt })
	case models.SortTop:
		sort.SliceStable(top, func(i, j int) bool { return top[i].Score() > top[j].Score() })
	case models.SortControversial:
		sort.SliceStable(top, func(i, j int) bool { return top[i].Volume() > top[j].Volume() })
	default: // newest
		sort.SliceStable(top, func(i, j int) bool { return top[i].CreatedAt > top[j].CreatedAt })
	}

	for _, replies := range children {
		sort.SliceStable(replies, func(i, j int) bool { return replies[i].CreatedAt < replies[j].CreatedAt })
	}

	out := make([]models.Comment, 0, len(cs))
	var attach func(c models.Comment)
	attach = func(c models.Comment) {
		out = append(out, c)
		for _, r := range children[c.ID] {
			attach(r)
		}
	}
	for _, c := range top {
		attach(c)
	}
	return out
}
