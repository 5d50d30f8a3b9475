package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postssvc "github.com/linkup-app/backend/internal/services/posts"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, authorID, text string, media []postssvc.MediaInput) (postssvc.PostRecord, error) {
	if r.pool == nil {
		return postssvc.PostRecord{}, fmt.Errorf("postgres pool is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	postID := uuid.NewString()
	if _, err := tx.Exec(ctx, `
INSERT INTO posts (id, author_id, text, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
`, postID, authorID, text); err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("insert post: %w", err)
	}

	if err := insertMedia(ctx, tx, postID, media); err != nil {
		return postssvc.PostRecord{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("commit tx: %w", err)
	}

	return r.Get(ctx, postID)
}

func (r *PostRepo) Get(ctx context.Context, id string) (postssvc.PostRecord, error) {
	if r.pool == nil {
		return postssvc.PostRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var post postssvc.PostRecord
	err := r.pool.QueryRow(ctx, `
SELECT p.id, p.author_id, p.text, p.created_at, p.updated_at,
	u.username, a.fullname, a.title, a.image
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN accounts a ON a.user_id = p.author_id
WHERE p.id = $1
`, id).Scan(
		&post.ID, &post.AuthorID, &post.Text, &post.CreatedAt, &post.UpdatedAt,
		&post.Author.Username, &post.Author.Fullname, &post.Author.Title, &post.Author.Image,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return postssvc.PostRecord{}, postssvc.ErrNotFound
		}
		return postssvc.PostRecord{}, fmt.Errorf("get post: %w", err)
	}

	mediaByPost, err := r.loadMedia(ctx, []string{post.ID})
	if err != nil {
		return postssvc.PostRecord{}, err
	}
	post.Media = mediaByPost[post.ID]

	return post, nil
}

func (r *PostRepo) List(ctx context.Context, viewerID string, limit, offset int) ([]postssvc.FeedItem, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT p.id, p.text, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
	EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.author_id = $1),
	u.username, a.fullname, a.title, a.image
FROM posts p
JOIN users u ON u.id = p.author_id
JOIN accounts a ON a.user_id = p.author_id
ORDER BY p.created_at DESC
LIMIT $2 OFFSET $3
`, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	items := make([]postssvc.FeedItem, 0, limit)
	ids := make([]string, 0, limit)
	for rows.Next() {
		var item postssvc.FeedItem
		if err := rows.Scan(
			&item.ID, &item.Text, &item.CreatedAt, &item.UpdatedAt,
			&item.Comments, &item.Likes, &item.IsLiked,
			&item.Author.Username, &item.Author.Fullname, &item.Author.Title, &item.Author.Image,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	mediaByPost, err := r.loadMedia(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Media = mediaByPost[items[i].ID]
	}

	return items, nil
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Update rewrites the text and, when replaceMedia is set, swaps the whole
// media set inside the same transaction.
func (r *PostRepo) Update(ctx context.Context, id, text string, media []postssvc.MediaInput, replaceMedia bool) (postssvc.PostRecord, error) {
	if r.pool == nil {
		return postssvc.PostRecord{}, fmt.Errorf("postgres pool is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE posts
SET text = $2, updated_at = NOW()
WHERE id = $1
`, id, text)
	if err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return postssvc.PostRecord{}, postssvc.ErrNotFound
	}

	if replaceMedia {
		if _, err := tx.Exec(ctx, `DELETE FROM post_media WHERE post_id = $1`, id); err != nil {
			return postssvc.PostRecord{}, fmt.Errorf("clear post media: %w", err)
		}
		if err := insertMedia(ctx, tx, id, media); err != nil {
			return postssvc.PostRecord{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("commit tx: %w", err)
	}

	return r.Get(ctx, id)
}

// Delete returns the removed record; media rows go with it via cascade.
func (r *PostRepo) Delete(ctx context.Context, id string) (postssvc.PostRecord, error) {
	post, err := r.Get(ctx, id)
	if err != nil {
		return postssvc.PostRecord{}, err
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return postssvc.PostRecord{}, fmt.Errorf("delete post: %w", err)
	}

	return post, nil
}

func (r *PostRepo) loadMedia(ctx context.Context, postIDs []string) (map[string][]postssvc.MediaRecord, error) {
	result := make(map[string][]postssvc.MediaRecord, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, post_id, type, url
FROM post_media
WHERE post_id = ANY($1)
ORDER BY created_at
`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("list post media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m postssvc.MediaRecord
		var postID string
		if err := rows.Scan(&m.ID, &postID, &m.Type, &m.URL); err != nil {
			return nil, fmt.Errorf("scan post media: %w", err)
		}
		result[postID] = append(result[postID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post media: %w", err)
	}

	return result, nil
}

func insertMedia(ctx context.Context, tx pgx.Tx, postID string, media []postssvc.MediaInput) error {
	for _, m := range media {
		if _, err := tx.Exec(ctx, `
INSERT INTO post_media (id, post_id, type, url, created_at)
VALUES ($1, $2, $3, $4, NOW())
`, uuid.NewString(), postID, m.Type, m.URL); err != nil {
			return fmt.Errorf("insert post media: %w", err)
		}
	}
	return nil
}
