package driven

import (
	"context"

	"pagepilot/internal/domain/model"
)

// PageWriter defines the driven port for publishing replies and correcting
// their visibility on the social platform.
type PageWriter interface {
	// PostReply publishes a reply under the given comment and returns the
	// platform identifier of the created reply.
	PostReply(ctx context.Context, commentID string, message string) (string, error)
	// FetchComment retrieves the stored copy of a single comment,
	// including its hidden/private visibility flags.
	FetchComment(ctx context.Context, commentID string) (*model.Comment, error)
	// SetHidden hides or unhides a comment.
	SetHidden(ctx context.Context, commentID string, hidden bool) error
}
