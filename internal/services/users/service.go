package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

const (
	ImageFieldAvatar = "image"
	ImageFieldCover  = "cover"
)

// Account is the public profile attached to a user.
type Account struct {
	UserID   string
	Username string
	Email    string
	Fullname string
	Title    string
	Image    string
	Cover    string
}

type AccountView struct {
	Account
	IsMyAccount bool
}

type Page struct {
	Items      []Account
	Page       int
	Limit      int
	TotalPages int
}

type Store interface {
	List(ctx context.Context, limit, offset int) ([]Account, error)
	Count(ctx context.Context) (int, error)
	GetByUserID(ctx context.Context, userID string) (Account, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	UpdateProfile(ctx context.Context, userID, fullname, title string) (Account, error)
	UpdateImage(ctx context.Context, userID, field, url string) (Account, error)
}

type Defaults struct {
	AvatarURL string
	CoverURL  string
}

type Service struct {
	store    Store
	defaults Defaults
}

func NewService(store Store, defaults Defaults) *Service {
	return &Service{store: store, defaults: defaults}
}

func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	items, err := s.store.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return Page{}, fmt.Errorf("list accounts: %w", err)
	}
	count, err := s.store.Count(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("count accounts: %w", err)
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
	}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (Account, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Account{}, ErrValidation
	}

	account, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// ByUsername resolves a public profile and marks whether it belongs to the
// viewer.
func (s *Service) ByUsername(ctx context.Context, username, viewerID string) (AccountView, error) {
	username = strings.TrimSpace(username)
	if !ValidUsername(username) {
		return AccountView{}, ErrValidation
	}

	account, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AccountView{}, ErrNotFound
		}
		return AccountView{}, fmt.Errorf("get account by username: %w", err)
	}

	return AccountView{
		Account:     account,
		IsMyAccount: account.UserID == viewerID,
	}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, fullname, title string) (Account, error) {
	userID = strings.TrimSpace(userID)
	fullname = strings.TrimSpace(fullname)
	title = strings.TrimSpace(title)
	if userID == "" || (fullname == "" && title == "") {
		return Account{}, ErrValidation
	}

	if _, err := s.store.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("get account: %w", err)
	}

	account, err := s.store.UpdateProfile(ctx, userID, fullname, title)
	if err != nil {
		return Account{}, fmt.Errorf("update profile: %w", err)
	}
	return account, nil
}

func (s *Service) SetImage(ctx context.Context, userID, field, url string) (Account, error) {
	if !validImageField(field) || strings.TrimSpace(url) == "" {
		return Account{}, ErrValidation
	}

	account, err := s.store.UpdateImage(ctx, strings.TrimSpace(userID), field, url)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("update account image: %w", err)
	}
	return account, nil
}

// ResetImage puts the configured placeholder back in place of a removed
// avatar or cover.
func (s *Service) ResetImage(ctx context.Context, userID, field string) (Account, error) {
	var url string
	switch field {
	case ImageFieldAvatar:
		url = s.defaults.AvatarURL
	case ImageFieldCover:
		url = s.defaults.CoverURL
	default:
		return Account{}, ErrValidation
	}

	return s.SetImage(ctx, userID, field, url)
}

func validImageField(field string) bool {
	return field == ImageFieldAvatar || field == ImageFieldCover
}
