package model

import "time"

// Comment represents a single comment fetched from the Graph API.
// Comments are transient: they are re-fetched every poll cycle and never
// persisted; only the reply ledger survives restarts.
type Comment struct {
	ID         string
	Message    string
	AuthorID   string
	AuthorName string
	PostID     string
	Permalink  string
	CreatedAt  time.Time

	// Visibility flags, populated only when a single comment is fetched
	// back after posting (delivery verification).
	IsHidden  bool
	IsPrivate bool
}
