package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/swappool/internal/dbx"
	"github.com/dmitrijs2005/swappool/internal/server/migrations"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const DefaultListLimit = 100

var (
	openDB        = sql.Open
	runMigrations = migrations.Up
)

// Store owns the database handle and exposes the mirror operations the
// swap flows need.
type Store struct {
	db    *sql.DB
	repo  Repository
	now   func() time.Time
	newID func() string
}

// Open connects to dsn through pgx, checks the connection and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := openDB("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewStore(db), nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repo: NewPostgresRepository(db), now: time.Now, newID: uuid.NewString}
}

func (s *Store) Close() error { return s.db.Close() }

// Repository returns the non-transactional query surface.
func (s *Store) Repository() Repository { return s.repo }

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// RecordReaction reports whether this is viewerID's first reaction to
// contentID.
func (s *Store) RecordReaction(ctx context.Context, contentID, viewerID string) (bool, error) {
	return s.repo.RecordReaction(ctx, contentID, viewerID, s.now())
}

func (s *Store) ListLiked(ctx context.Context, viewerID string) ([]LikedContent, error) {
	return s.repo.ListLiked(ctx, viewerID, DefaultListLimit)
}

// AddComment stores the comment body and bumps the mirrored counter in one
// transaction.
func (s *Store) AddComment(ctx context.Context, contentID, authorID, body string) (Comment, error) {
	c := Comment{
		ID:        s.newID(),
		ContentID: contentID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewPostgresRepository(tx)
		if err := repo.InsertComment(ctx, c); err != nil {
			return err
		}
		return repo.IncrementCommentCount(ctx, contentID)
	})
	if err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Store) ListComments(ctx context.Context, contentID string) ([]Comment, error) {
	return s.repo.ListComments(ctx, contentID, DefaultListLimit)
}

func (s *Store) OwnerStats(ctx context.Context, ownerID string) (OwnerStats, error) {
	return s.repo.OwnerStats(ctx, ownerID)
}
