package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	likessvc "github.com/linkup-app/backend/internal/services/likes"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

func (r *LikeRepo) PostExists(ctx context.Context, postID string) (bool, error) {
	return postExists(ctx, r.pool, postID)
}

// Toggle runs the read-check-write cycle inside one transaction with the row
// locked, so two concurrent toggles by the same user settle on presence or
// absence, never a duplicate.
func (r *LikeRepo) Toggle(ctx context.Context, postID, authorID string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var existingID string
	err = tx.QueryRow(ctx, `
SELECT id
FROM likes
WHERE post_id = $1 AND author_id = $2
FOR UPDATE
`, postID, authorID).Scan(&existingID)

	var liked bool
	switch {
	case err == nil:
		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE id = $1`, existingID); err != nil {
			return false, fmt.Errorf("delete like: %w", err)
		}
		liked = false
	case errors.Is(err, pgx.ErrNoRows):
		if _, err := tx.Exec(ctx, `
INSERT INTO likes (id, post_id, author_id, created_at)
VALUES ($1, $2, $3, NOW())
`, uuid.NewString(), postID, authorID); err != nil {
			return false, fmt.Errorf("insert like: %w", err)
		}
		liked = true
	default:
		return false, fmt.Errorf("lookup like: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}

	return liked, nil
}

func (r *LikeRepo) ListByPost(ctx context.Context, postID string, limit, offset int) ([]likessvc.LikeRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT l.id, l.post_id, l.author_id, l.created_at,
	u.username, a.fullname, a.title, a.image
FROM likes l
JOIN users u ON u.id = l.author_id
JOIN accounts a ON a.user_id = l.author_id
WHERE l.post_id = $1
ORDER BY l.created_at DESC
LIMIT $2 OFFSET $3
`, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	likes := make([]likessvc.LikeRecord, 0, limit)
	for rows.Next() {
		var l likessvc.LikeRecord
		if err := rows.Scan(
			&l.ID, &l.PostID, &l.AuthorID, &l.CreatedAt,
			&l.Author.Username, &l.Author.Fullname, &l.Author.Title, &l.Author.Image,
		); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate likes: %w", err)
	}

	return likes, nil
}

func (r *LikeRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
