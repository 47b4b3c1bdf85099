package model

// Post is a page post used only to enumerate its comments. Not persisted.
type Post struct {
	ID        string
	Permalink string
}
