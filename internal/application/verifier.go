package application

import (
	"context"
	"log/slog"
	"strings"

	"pagepilot/internal/redact"
)

// verifyDelivery inspects the platform's stored copy of a freshly posted
// reply and corrects what it can. Automated moderation sometimes hides new
// replies; those get one unhide attempt. Private replies only warrant a
// warning, there is no corrective call for them. Every failure here is
// non-fatal: the reply was posted, so it will be recorded regardless.
func (s *ReplyService) verifyDelivery(ctx context.Context, replyID, commentID string) {
	stored, err := s.writer.FetchComment(ctx, replyID)
	if err != nil {
		slog.Warn("could not verify posted reply",
			"reply", replyID,
			"comment", commentID,
			"error", redact.Tokens(err.Error()),
		)
		return
	}

	if strings.TrimSpace(stored.Message) == "" {
		slog.Warn("reply stored with empty message",
			"reply", replyID,
			"comment", commentID,
		)
	}

	if stored.IsHidden {
		hidden := true
		if err := s.writer.SetHidden(ctx, replyID, false); err != nil {
			slog.Warn("unhide attempt failed",
				"reply", replyID,
				"error", redact.Tokens(err.Error()),
			)
		} else if again, err := s.writer.FetchComment(ctx, replyID); err == nil {
			hidden = again.IsHidden
		}
		slog.Warn("reply was created hidden, attempted unhide",
			"reply", replyID,
			"comment", commentID,
			"still_hidden", hidden,
		)
	}

	if stored.IsPrivate {
		slog.Warn("reply marked private, normal users may not see it",
			"reply", replyID,
			"comment", commentID,
		)
	}
}
