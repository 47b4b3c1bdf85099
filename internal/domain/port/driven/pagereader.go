package driven

import (
	"context"

	"pagepilot/internal/domain/model"
)

// PageReader defines the driven port for reading posts and comments from
// the social platform.
type PageReader interface {
	// FetchRecentPosts returns up to limit recent posts for the page,
	// most recent first (platform default ordering).
	FetchRecentPosts(ctx context.Context, pageID string, limit int) ([]model.Post, error)
	// FetchComments returns up to limit comments for a post in
	// chronological order. Comments with empty messages are omitted.
	// When includeNested is false, threaded replies are filtered out.
	FetchComments(ctx context.Context, postID string, limit int, includeNested bool) ([]model.Comment, error)
}
