// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"pagepilot/internal/compose"
	"pagepilot/internal/config"
	"pagepilot/internal/domain/model"
	"pagepilot/internal/domain/port/driven"
	"pagepilot/internal/redact"
)

// minMessageRunes is the shortest trimmed comment worth answering.
const minMessageRunes = 2

// ReplyService orchestrates the reply loop: poll the page feed, filter
// comments, generate and post replies, and record every outcome in the
// ledger. The loop is strictly sequential; the ledger is the only state
// that survives a cycle.
type ReplyService struct {
	reader    driven.PageReader
	writer    driven.PageWriter
	generator driven.Generator
	replies   driven.ReplyStore
	cfg       *config.Config

	refreshCh chan chan error

	mu     sync.Mutex
	status Status
}

// Status is a snapshot of the loop's recent activity for the ops API.
type Status struct {
	Cycles            int64
	LastCycleAt       time.Time
	LastCycleDuration time.Duration
	LastCycleError    string
}

// NewReplyService creates a ReplyService with all required dependencies.
// cfg is the immutable process configuration; the service reads its
// tunables from it and never mutates it.
func NewReplyService(
	reader driven.PageReader,
	writer driven.PageWriter,
	generator driven.Generator,
	replies driven.ReplyStore,
	cfg *config.Config,
) *ReplyService {
	return &ReplyService{
		reader:    reader,
		writer:    writer,
		generator: generator,
		replies:   replies,
		cfg:       cfg,
		refreshCh: make(chan chan error),
	}
}

// Start begins the reply loop. It runs an immediate cycle, then cycles on
// the configured interval, and also listens for manual refresh requests.
// Any cycle error aborts that cycle only; the loop always continues.
// Start blocks until the context is canceled.
func (s *ReplyService) Start(ctx context.Context) {
	s.runCycle(ctx)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reply service stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		case done := <-s.refreshCh:
			done <- s.runCycle(ctx)
		}
	}
}

// RefreshNow triggers a poll cycle immediately, bypassing the interval.
// It blocks until the cycle completes or the context is canceled, and
// returns the cycle's error, if any.
func (s *ReplyService) RefreshNow(ctx context.Context) error {
	done := make(chan error, 1)

	select {
	case s.refreshCh <- done:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current loop status.
func (s *ReplyService) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// runCycle executes one full cycle inside the failure boundary: the error
// is logged with credentials redacted and recorded in the status snapshot,
// never propagated. Ledger writes that happened before the error stand.
func (s *ReplyService) runCycle(ctx context.Context) error {
	start := time.Now()
	err := s.cycle(ctx)
	elapsed := time.Since(start)

	cycleDuration.Observe(elapsed.Seconds())

	s.mu.Lock()
	s.status.Cycles++
	s.status.LastCycleAt = start
	s.status.LastCycleDuration = elapsed
	s.status.LastCycleError = ""
	if err != nil {
		s.status.LastCycleError = redact.Tokens(err.Error())
	}
	s.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		cycleErrors.Inc()
		slog.Error("poll cycle failed", "error", redact.Tokens(err.Error()))
	}

	return err
}

// cycle fetches recent posts and walks their comments one at a time.
func (s *ReplyService) cycle(ctx context.Context) error {
	posts, err := s.reader.FetchRecentPosts(ctx, s.cfg.PageID, s.cfg.LookbackPosts)
	if err != nil {
		return fmt.Errorf("fetch recent posts: %w", err)
	}

	var replied, skipped int
	for _, post := range posts {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		comments, err := s.reader.FetchComments(ctx, post.ID, s.cfg.CommentLimit, true)
		if err != nil {
			return fmt.Errorf("fetch comments for post %s: %w", post.ID, err)
		}

		for _, comment := range comments {
			ok, err := s.processComment(ctx, comment)
			if err != nil {
				return err
			}
			if ok {
				replied++
			} else {
				skipped++
			}
		}
	}

	slog.Info("poll cycle complete",
		"posts", len(posts),
		"replied", replied,
		"skipped", skipped,
	)

	return nil
}

// processComment runs the per-comment pipeline: filter, compose, generate,
// postprocess, deliver or simulate, record. It reports whether a reply was
// recorded. Errors abort the whole cycle; skips do not.
func (s *ReplyService) processComment(ctx context.Context, comment model.Comment) (bool, error) {
	if comment.ID == "" {
		commentsSkipped.WithLabelValues("no_id").Inc()
		return false, nil
	}

	already, err := s.replies.HasReplied(ctx, comment.ID)
	if err != nil {
		return false, fmt.Errorf("check ledger for comment %s: %w", comment.ID, err)
	}
	if already {
		commentsSkipped.WithLabelValues("already_replied").Inc()
		return false, nil
	}

	if reason := skipReason(comment, s.cfg.PageID); reason != "" {
		commentsSkipped.WithLabelValues(reason).Inc()
		return false, nil
	}

	parts := compose.BuildReplyPrompt(s.cfg.BrandName, s.cfg.BrandVoice, comment.Message, comment.AuthorName)

	raw, err := s.generator.Generate(ctx, model.GenerationRequest{
		System:      parts.System,
		Prompt:      parts.Prompt,
		Temperature: s.cfg.Temperature,
		TopP:        s.cfg.TopP,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return false, fmt.Errorf("generate reply for comment %s: %w", comment.ID, err)
	}

	reply := compose.Postprocess(raw, s.cfg.MaxReplyChars)
	if reply == "" {
		// Not an error: the comment stays unmarked and may be retried
		// on a later cycle.
		commentsSkipped.WithLabelValues("empty_reply").Inc()
		slog.Info("model produced empty reply, skipping", "comment", comment.ID)
		return false, nil
	}

	if s.cfg.DryRun {
		slog.Info("dry run, reply not posted",
			"comment", comment.ID,
			"permalink", comment.Permalink,
			"reply", reply,
		)
	} else {
		replyID, err := s.writer.PostReply(ctx, comment.ID, reply)
		if err != nil {
			return false, fmt.Errorf("post reply to comment %s: %w", comment.ID, err)
		}
		s.verifyDelivery(ctx, replyID, comment.ID)
	}

	rec := model.ReplyRecord{
		CommentID: comment.ID,
		ReplyText: reply,
		PostID:    comment.PostID,
		RepliedAt: time.Now().UTC(),
	}
	if err := s.replies.MarkReplied(ctx, rec); err != nil {
		// Loud and distinct: a lost ledger write is the one failure that
		// can cause a duplicate reply on a later cycle.
		slog.Error("ledger write failed, duplicate reply possible",
			"comment", comment.ID,
			"error", redact.Tokens(err.Error()),
		)
		return false, fmt.Errorf("record reply for comment %s: %w", comment.ID, err)
	}

	if s.cfg.DryRun {
		repliesSimulated.Inc()
	} else {
		repliesPosted.Inc()
		slog.Info("replied to comment", "comment", comment.ID, "post", comment.PostID)
	}

	return true, nil
}

// skipReason applies the pure eligibility rules: never answer the page's
// own comments, and skip messages too short to mean anything. Returns an
// empty string when the comment is eligible. The already-replied check
// happens separately because it needs the ledger.
func skipReason(comment model.Comment, pageID string) string {
	if comment.AuthorID != "" && comment.AuthorID == pageID {
		return "own_comment"
	}
	if utf8.RuneCountInString(strings.TrimSpace(comment.Message)) < minMessageRunes {
		return "too_short"
	}
	return ""
}

// Eligible reports whether the comment would pass the pure filter rules
// for the given page identity. Exposed for reuse and tests; the full
// pipeline additionally consults the ledger first.
func Eligible(comment model.Comment, pageID string) bool {
	return comment.ID != "" && skipReason(comment, pageID) == ""
}
