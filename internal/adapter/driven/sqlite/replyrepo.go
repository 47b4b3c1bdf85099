package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pagepilot/internal/domain/model"
	"pagepilot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReplyStore = (*ReplyRepo)(nil)

// ReplyRepo is the SQLite implementation of the ReplyStore port interface.
// It is the agent's dedup ledger: one row per answered comment.
type ReplyRepo struct {
	db *DB
}

// NewReplyRepo creates a new ReplyRepo backed by the given DB.
func NewReplyRepo(db *DB) *ReplyRepo {
	return &ReplyRepo{db: db}
}

// HasReplied reports whether a ledger record exists for the comment.
func (r *ReplyRepo) HasReplied(ctx context.Context, commentID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM replies WHERE comment_id = ?`
	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query, commentID).Scan(&count); err != nil {
		return false, fmt.Errorf("check replied %s: %w", commentID, err)
	}
	return count > 0, nil
}

// MarkReplied inserts or replaces the ledger record for a comment. A second
// write for the same comment ID overwrites the row; it never creates a
// duplicate and never errors on conflict.
func (r *ReplyRepo) MarkReplied(ctx context.Context, rec model.ReplyRecord) error {
	const query = `
		INSERT INTO replies (comment_id, reply_text, post_id, replied_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(comment_id) DO UPDATE SET
			reply_text = excluded.reply_text,
			post_id = excluded.post_id,
			replied_at = excluded.replied_at
	`

	repliedAt := rec.RepliedAt
	if repliedAt.IsZero() {
		repliedAt = time.Now()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.CommentID, rec.ReplyText, rec.PostID, repliedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("mark replied %s: %w", rec.CommentID, err)
	}

	return nil
}

// GetByCommentID retrieves a single ledger record.
// Returns nil, nil if the comment has not been replied to.
func (r *ReplyRepo) GetByCommentID(ctx context.Context, commentID string) (*model.ReplyRecord, error) {
	const query = `
		SELECT comment_id, reply_text, post_id, replied_at
		FROM replies
		WHERE comment_id = ?
	`

	rec, err := scanReply(r.db.Reader.QueryRowContext(ctx, query, commentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reply %s: %w", commentID, err)
	}
	return rec, nil
}

// ListRecent returns up to limit ledger records, most recent first.
func (r *ReplyRepo) ListRecent(ctx context.Context, limit int) ([]model.ReplyRecord, error) {
	const query = `
		SELECT comment_id, reply_text, post_id, replied_at
		FROM replies
		ORDER BY replied_at DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	var result []model.ReplyRecord
	for rows.Next() {
		rec, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate replies: %w", err)
	}
	return result, nil
}

// Count returns the total number of ledger records.
func (r *ReplyRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM replies`
	var count int64
	if err := r.db.Reader.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanReply.
type scanner interface {
	Scan(dest ...any) error
}

func scanReply(s scanner) (*model.ReplyRecord, error) {
	var rec model.ReplyRecord
	var postID sql.NullString
	var repliedAt string

	if err := s.Scan(&rec.CommentID, &rec.ReplyText, &postID, &repliedAt); err != nil {
		return nil, err
	}

	rec.PostID = postID.String

	t, err := parseTime(repliedAt)
	if err != nil {
		return nil, fmt.Errorf("parse replied_at for %s: %w", rec.CommentID, err)
	}
	rec.RepliedAt = t

	return &rec, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
