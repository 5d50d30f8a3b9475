package likes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrPostNotFound = errors.New("post not found")
)

type AuthorPreview struct {
	Username string
	Fullname string
	Title    string
	Image    string
}

type LikeRecord struct {
	ID        string
	PostID    string
	AuthorID  string
	Author    AuthorPreview
	CreatedAt time.Time
}

type Page struct {
	Items      []LikeRecord
	Page       int
	Limit      int
	TotalPages int
	Count      int
}

type Store interface {
	PostExists(ctx context.Context, postID string) (bool, error)
	// Toggle flips the (postID, authorID) like inside one transaction and
	// reports whether the like now exists.
	Toggle(ctx context.Context, postID, authorID string) (bool, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]LikeRecord, error)
	CountByPost(ctx context.Context, postID string) (int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Toggle is the one deliberately stateful toggle in the system: first call
// likes the post, an immediate second call by the same user unlikes it.
func (s *Service) Toggle(ctx context.Context, postID, authorID string) (bool, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" || strings.TrimSpace(authorID) == "" {
		return false, ErrValidation
	}

	exists, err := s.store.PostExists(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return false, ErrPostNotFound
	}

	liked, err := s.store.Toggle(ctx, postID, authorID)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func (s *Service) ListByPost(ctx context.Context, postID string, page, limit int) (Page, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return Page{}, ErrValidation
	}

	exists, err := s.store.PostExists(ctx, postID)
	if err != nil {
		return Page{}, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return Page{}, ErrPostNotFound
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	items, err := s.store.ListByPost(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return Page{}, fmt.Errorf("list likes: %w", err)
	}
	count, err := s.store.CountByPost(ctx, postID)
	if err != nil {
		return Page{}, fmt.Errorf("count likes: %w", err)
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (count + limit - 1) / limit
	}

	return Page{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Count:      count,
	}, nil
}
