package model

import "time"

// ReplyRecord is the persistent ledger entry for an answered comment.
// At most one record exists per comment ID; writing again overwrites it.
// A record is written the moment a reply decision is final, in both live
// and dry-run mode, and is never deleted by the agent.
type ReplyRecord struct {
	CommentID string
	ReplyText string
	PostID    string
	RepliedAt time.Time
}
