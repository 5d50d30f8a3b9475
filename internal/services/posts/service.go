package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("post not found")
	ErrNotOwner   = errors.New("not the post author")
)

type MediaInput struct {
	Type string
	URL  string
}

type MediaRecord struct {
	ID   string
	Type string
	URL  string
}

type AuthorPreview struct {
	Username string
	Fullname string
	Title    string
	Image    string
}

type PostRecord struct {
	ID        string
	AuthorID  string
	Text      string
	Media     []MediaRecord
	Author    AuthorPreview
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedItem is a post as seen by a particular viewer: counts instead of rows,
// plus whether the viewer has liked it.
type FeedItem struct {
	ID        string
	Text      string
	Media     []MediaRecord
	Comments  int
	Likes     int
	IsLiked   bool
	Author    AuthorPreview
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FeedPage struct {
	Items      []FeedItem
	Page       int
	Limit      int
	TotalPages int
	Count      int
}

type Store interface {
	Create(ctx context.Context, authorID, text string, media []MediaInput) (PostRecord, error)
	List(ctx context.Context, viewerID string, limit, offset int) ([]FeedItem, error)
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (PostRecord, error)
	Update(ctx context.Context, id, text string, media []MediaInput, replaceMedia bool) (PostRecord, error)
	Delete(ctx context.Context, id string) (PostRecord, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, authorID, text string, media []MediaInput) (PostRecord, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return PostRecord{}, ErrValidation
	}
	if strings.TrimSpace(text) == "" && len(media) == 0 {
		return PostRecord{}, ErrValidation
	}

	post, err := s.store.Create(ctx, authorID, strings.TrimSpace(text), media)
	if err != nil {
		return PostRecord{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (s *Service) Feed(ctx context.Context, viewerID string, page, limit int) (FeedPage, error) {
	page, limit = normalizePage(page, limit)

	items, err := s.store.List(ctx, viewerID, limit, (page-1)*limit)
	if err != nil {
		return FeedPage{}, fmt.Errorf("list posts: %w", err)
	}
	count, err := s.store.Count(ctx)
	if err != nil {
		return FeedPage{}, fmt.Errorf("count posts: %w", err)
	}

	return FeedPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(count, limit),
		Count:      count,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (PostRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PostRecord{}, ErrValidation
	}

	post, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PostRecord{}, ErrNotFound
		}
		return PostRecord{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// Update enforces the ownership rule: not-found wins over not-owner, so a
// caller probing foreign ids learns existence before authorship. Both checks
// precede any write.
func (s *Service) Update(ctx context.Context, id, callerID, text string, media []MediaInput) (PostRecord, error) {
	if err := s.checkOwnership(ctx, id, callerID); err != nil {
		return PostRecord{}, err
	}

	updated, err := s.store.Update(ctx, strings.TrimSpace(id), strings.TrimSpace(text), media, len(media) > 0)
	if err != nil {
		return PostRecord{}, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, callerID string) (PostRecord, error) {
	if err := s.checkOwnership(ctx, id, callerID); err != nil {
		return PostRecord{}, err
	}

	deleted, err := s.store.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return PostRecord{}, fmt.Errorf("delete post: %w", err)
	}
	return deleted, nil
}

func (s *Service) checkOwnership(ctx context.Context, id, callerID string) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(callerID) == "" {
		return ErrValidation
	}

	post, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get post: %w", err)
	}
	if post.AuthorID != callerID {
		return ErrNotOwner
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func totalPages(count, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}
