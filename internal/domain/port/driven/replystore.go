package driven

import (
	"context"

	"pagepilot/internal/domain/model"
)

// ReplyStore defines the driven port for the durable reply ledger.
// HasReplied and MarkReplied are the dedup contract the reply loop depends
// on; the list/count reads exist for the ops API only.
type ReplyStore interface {
	// HasReplied reports whether a ledger record exists for the comment.
	HasReplied(ctx context.Context, commentID string) (bool, error)
	// MarkReplied upserts the ledger record for a comment. Writing an
	// existing comment ID overwrites the record; it never errors on a
	// duplicate. The write is committed before MarkReplied returns.
	MarkReplied(ctx context.Context, rec model.ReplyRecord) error
	// GetByCommentID returns the record for a comment, or nil, nil if the
	// comment has not been replied to.
	GetByCommentID(ctx context.Context, commentID string) (*model.ReplyRecord, error)
	// ListRecent returns up to limit records, most recent first.
	ListRecent(ctx context.Context, limit int) ([]model.ReplyRecord, error)
	// Count returns the total number of ledger records.
	Count(ctx context.Context) (int64, error)
}
