package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("comment not found")
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("not the comment author")
)

type AuthorPreview struct {
	Username string
	Fullname string
	Title    string
	Image    string
}

type CommentRecord struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	Author    AuthorPreview
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Page struct {
	Items      []CommentRecord
	Page       int
	Limit      int
	TotalPages int
	Count      int
}

type Store interface {
	PostExists(ctx context.Context, postID string) (bool, error)
	Create(ctx context.Context, postID, authorID, text string) (CommentRecord, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]CommentRecord, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	Get(ctx context.Context, id string) (CommentRecord, error)
	Update(ctx context.Context, id, text string) (CommentRecord, error)
	Delete(ctx context.Context, id string) (CommentRecord, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, postID, authorID, text string) (CommentRecord, error) {
	postID = strings.TrimSpace(postID)
	text = strings.TrimSpace(text)
	if postID == "" || strings.TrimSpace(authorID) == "" || text == "" {
		return CommentRecord{}, ErrValidation
	}

	exists, err := s.store.PostExists(ctx, postID)
	if err != nil {
		return CommentRecord{}, fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return CommentRecord{}, ErrPostNotFound
	}

	comment, err := s.store.Create(ctx, postID, authorID, text)
	if err != nil {
		return CommentRecord{}, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
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
		return Page{}, fmt.Errorf("list comments: %w", err)
	}
	count, err := s.store.CountByPost(ctx, postID)
	if err != nil {
		return Page{}, fmt.Errorf("count comments: %w", err)
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

func (s *Service) Update(ctx context.Context, id, callerID, text string) (CommentRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return CommentRecord{}, ErrValidation
	}
	if err := s.checkOwnership(ctx, id, callerID); err != nil {
		return CommentRecord{}, err
	}

	updated, err := s.store.Update(ctx, strings.TrimSpace(id), text)
	if err != nil {
		return CommentRecord{}, fmt.Errorf("update comment: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, callerID string) (CommentRecord, error) {
	if err := s.checkOwnership(ctx, id, callerID); err != nil {
		return CommentRecord{}, err
	}

	deleted, err := s.store.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return CommentRecord{}, fmt.Errorf("delete comment: %w", err)
	}
	return deleted, nil
}

func (s *Service) checkOwnership(ctx context.Context, id, callerID string) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(callerID) == "" {
		return ErrValidation
	}

	comment, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get comment: %w", err)
	}
	if comment.AuthorID != callerID {
		return ErrNotOwner
	}
	return nil
}
