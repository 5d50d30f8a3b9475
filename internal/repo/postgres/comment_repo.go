package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	commentssvc "github.com/linkup-app/backend/internal/services/comments"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) PostExists(ctx context.Context, postID string) (bool, error) {
	return postExists(ctx, r.pool, postID)
}

func (r *CommentRepo) Create(ctx context.Context, postID, authorID, text string) (commentssvc.CommentRecord, error) {
	if r.pool == nil {
		return commentssvc.CommentRecord{}, fmt.Errorf("postgres pool is nil")
	}

	id := uuid.NewString()
	if _, err := r.pool.Exec(ctx, `
INSERT INTO comments (id, post_id, author_id, text, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
`, id, postID, authorID, text); err != nil {
		return commentssvc.CommentRecord{}, fmt.Errorf("insert comment: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *CommentRepo) Get(ctx context.Context, id string) (commentssvc.CommentRecord, error) {
	if r.pool == nil {
		return commentssvc.CommentRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var c commentssvc.CommentRecord
	err := r.pool.QueryRow(ctx, `
SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, c.updated_at,
	u.username, a.fullname, a.title, a.image
FROM comments c
JOIN users u ON u.id = c.author_id
JOIN accounts a ON a.user_id = c.author_id
WHERE c.id = $1
`, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.Username, &c.Author.Fullname, &c.Author.Title, &c.Author.Image,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commentssvc.CommentRecord{}, commentssvc.ErrNotFound
		}
		return commentssvc.CommentRecord{}, fmt.Errorf("get comment: %w", err)
	}

	return c, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID string, limit, offset int) ([]commentssvc.CommentRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, c.updated_at,
	u.username, a.fullname, a.title, a.image
FROM comments c
JOIN users u ON u.id = c.author_id
JOIN accounts a ON a.user_id = c.author_id
WHERE c.post_id = $1
ORDER BY c.created_at DESC
LIMIT $2 OFFSET $3
`, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]commentssvc.CommentRecord, 0, limit)
	for rows.Next() {
		var c commentssvc.CommentRecord
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.Username, &c.Author.Fullname, &c.Author.Title, &c.Author.Image,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

func (r *CommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

func (r *CommentRepo) Update(ctx context.Context, id, text string) (commentssvc.CommentRecord, error) {
	if r.pool == nil {
		return commentssvc.CommentRecord{}, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE comments
SET text = $2, updated_at = NOW()
WHERE id = $1
`, id, text)
	if err != nil {
		return commentssvc.CommentRecord{}, fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return commentssvc.CommentRecord{}, commentssvc.ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *CommentRepo) Delete(ctx context.Context, id string) (commentssvc.CommentRecord, error) {
	comment, err := r.Get(ctx, id)
	if err != nil {
		return commentssvc.CommentRecord{}, err
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return commentssvc.CommentRecord{}, fmt.Errorf("delete comment: %w", err)
	}

	return comment, nil
}

func postExists(ctx context.Context, pool *pgxpool.Pool, postID string) (bool, error) {
	if pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var one int
	err := pool.QueryRow(ctx, `SELECT 1 FROM posts WHERE id = $1`, postID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup post: %w", err)
	}
	return true, nil
}
