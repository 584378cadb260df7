package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/swappool/internal/dbx"
	"github.com/dmitrijs2005/swappool/internal/pool"
)

// Repository is the mirror's query surface. Implementations work over a
// dbx.DBTX so callers may run them inside a transaction.
type Repository interface {
	UpsertContent(ctx context.Context, e pool.Entry) error
	MarkRemoved(ctx context.Context, id string, reason pool.RemovalReason, at time.Time) error
	RecordReaction(ctx context.Context, contentID, viewerID string, at time.Time) (bool, error)
	ListLiked(ctx context.Context, viewerID string, limit int) ([]LikedContent, error)
	InsertComment(ctx context.Context, c Comment) error
	IncrementCommentCount(ctx context.Context, contentID string) error
	ListComments(ctx context.Context, contentID string, limit int) ([]Comment, error)
	OwnerStats(ctx context.Context, ownerID string) (OwnerStats, error)
}

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertContent writes the current snapshot of e. Counters only move
// forward so a late, older snapshot cannot roll them back.
func (r *PostgresRepository) UpsertContent(ctx context.Context, e pool.Entry) error {
	query := `
		INSERT INTO contents (id, owner_id, owner_display_name, media_url, media_kind, caption,
			is_nsfw, save_forever, created_at, view_count, reaction_count, comment_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id)
		DO UPDATE SET
			caption = EXCLUDED.caption,
			is_nsfw = EXCLUDED.is_nsfw,
			save_forever = EXCLUDED.save_forever,
			view_count = GREATEST(contents.view_count, EXCLUDED.view_count),
			reaction_count = GREATEST(contents.reaction_count, EXCLUDED.reaction_count),
			comment_count = GREATEST(contents.comment_count, EXCLUDED.comment_count);
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OwnerID, e.OwnerDisplayName, e.MediaURL, string(e.MediaKind), e.Caption,
		e.IsNSFW, e.SaveForever, e.CreatedAt, e.ViewCount, e.ReactionCount, e.CommentCount)
	if err != nil {
		return fmt.Errorf("failed to upsert content %s: %w", e.ID, err)
	}
	return nil
}

// MarkRemoved stamps the removal time and reason. The row is kept so
// reactions and owner statistics survive the content.
func (r *PostgresRepository) MarkRemoved(ctx context.Context, id string, reason pool.RemovalReason, at time.Time) error {
	query := `UPDATE contents SET removed_at = $2, removed_reason = $3 WHERE id = $1 AND removed_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, at, string(reason)); err != nil {
		return fmt.Errorf("failed to mark content %s removed: %w", id, err)
	}
	return nil
}

// RecordReaction stores that viewerID reacted to contentID. It reports
// false when the viewer had already reacted.
func (r *PostgresRepository) RecordReaction(ctx context.Context, contentID, viewerID string, at time.Time) (bool, error) {
	query := `
		INSERT INTO reactions (content_id, viewer_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_id, viewer_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, contentID, viewerID, at)
	if err != nil {
		return false, fmt.Errorf("failed to record reaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

// ListLiked returns what viewerID reacted to, most recent first.
func (r *PostgresRepository) ListLiked(ctx context.Context, viewerID string, limit int) ([]LikedContent, error) {
	query := `
		SELECT r.content_id, c.media_url, c.media_kind, c.caption, r.created_at, c.removed_at IS NOT NULL
		FROM reactions r
		JOIN contents c ON c.id = r.content_id
		WHERE r.viewer_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked content: %w", err)
	}
	defer rows.Close()

	result := make([]LikedContent, 0)
	for rows.Next() {
		var item LikedContent
		if err := rows.Scan(&item.ContentID, &item.MediaURL, &item.MediaKind, &item.Caption, &item.LikedAt, &item.Removed); err != nil {
			return nil, fmt.Errorf("failed to scan liked row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate liked rows: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) InsertComment(ctx context.Context, c Comment) error {
	query := `INSERT INTO comments (id, content_id, author_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.ContentID, c.AuthorID, c.Body, c.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// IncrementCommentCount bumps the mirrored counter. A content row that has
// not been mirrored yet is left alone; the writer's next snapshot carries
// the pool's count.
func (r *PostgresRepository) IncrementCommentCount(ctx context.Context, contentID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contents SET comment_count = comment_count + 1 WHERE id = $1`, contentID)
	if err != nil {
		return fmt.Errorf("failed to bump comment count: %w", err)
	}
	return nil
}

// ListComments returns the comments of contentID, oldest first.
func (r *PostgresRepository) ListComments(ctx context.Context, contentID string, limit int) ([]Comment, error) {
	query := `
		SELECT id, content_id, author_id, body, created_at
		FROM comments
		WHERE content_id = $1
		ORDER BY created_at, id
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, contentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	result := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ContentID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) OwnerStats(ctx context.Context, ownerID string) (OwnerStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(view_count), 0), COALESCE(SUM(reaction_count), 0), COALESCE(SUM(comment_count), 0)
		FROM contents
		WHERE owner_id = $1
	`
	var s OwnerStats
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&s.Uploads, &s.Views, &s.Reactions, &s.Comments)
	if errors.Is(err, sql.ErrNoRows) {
		return OwnerStats{}, nil
	}
	if err != nil {
		return OwnerStats{}, fmt.Errorf("failed to load owner stats: %w", err)
	}
	return s, nil
}
