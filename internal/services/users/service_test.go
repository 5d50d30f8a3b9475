package users

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	accounts map[string]Account
}

func newFakeStore(accounts ...Account) *fakeStore {
	out := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		out[a.UserID] = a
	}
	return &fakeStore{accounts: out}
}

func (f *fakeStore) List(_ context.Context, limit, offset int) ([]Account, error) {
	out := make([]Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) Count(_ context.Context) (int, error) {
	return len(f.accounts), nil
}

func (f *fakeStore) GetByUserID(_ context.Context, userID string) (Account, error) {
	account, ok := f.accounts[userID]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (f *fakeStore) UpdateProfile(_ context.Context, userID, fullname, title string) (Account, error) {
	account, ok := f.accounts[userID]
	if !ok {
		return Account{}, ErrNotFound
	}
	if fullname != "" {
		account.Fullname = fullname
	}
	if title != "" {
		account.Title = title
	}
	f.accounts[userID] = account
	return account, nil
}

func (f *fakeStore) UpdateImage(_ context.Context, userID, field, url string) (Account, error) {
	account, ok := f.accounts[userID]
	if !ok {
		return Account{}, ErrNotFound
	}
	switch field {
	case ImageFieldAvatar:
		account.Image = url
	case ImageFieldCover:
		account.Cover = url
	}
	f.accounts[userID] = account
	return account, nil
}

func testDefaults() Defaults {
	return Defaults{
		AvatarURL: "https://cdn.local/defaults/avatar.jpg",
		CoverURL:  "https://cdn.local/defaults/cover.png",
	}
}

func TestValidUsername(t *testing.T) {
	for _, username := range []string{"alice", "Alice1", "123"} {
		if !ValidUsername(username) {
			t.Fatalf("%q should be a valid username", username)
		}
	}
	for _, username := range []string{"", "a b", "a-b", "a_b", "a!"} {
		if ValidUsername(username) {
			t.Fatalf("%q should be an invalid username", username)
		}
	}
}

func TestByUsernameMarksOwnAccount(t *testing.T) {
	store := newFakeStore(Account{UserID: "user-1", Username: "alice"})
	svc := NewService(store, testDefaults())

	ctx := context.Background()
	view, err := svc.ByUsername(ctx, "alice", "user-1")
	if err != nil {
		t.Fatalf("by username: %v", err)
	}
	if !view.IsMyAccount {
		t.Fatalf("own account should be flagged")
	}

	view, err = svc.ByUsername(ctx, "alice", "user-2")
	if err != nil {
		t.Fatalf("by username: %v", err)
	}
	if view.IsMyAccount {
		t.Fatalf("foreign account must not be flagged")
	}
}

func TestByUsernameRejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeStore(), testDefaults())

	ctx := context.Background()
	if _, err := svc.ByUsername(ctx, "a b!", "user-1"); !errors.Is(err, ErrValidation) {
		t.Fatalf("invalid username should fail with ErrValidation, got err=%v", err)
	}
	if _, err := svc.ByUsername(ctx, "ghost", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown username should fail with ErrNotFound, got err=%v", err)
	}
}

func TestUpdateProfileRequiresOneField(t *testing.T) {
	store := newFakeStore(Account{UserID: "user-1", Username: "alice"})
	svc := NewService(store, testDefaults())

	ctx := context.Background()
	if _, err := svc.UpdateProfile(ctx, "user-1", "  ", "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty update should fail with ErrValidation, got err=%v", err)
	}

	account, err := svc.UpdateProfile(ctx, "user-1", "", "Engineer")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if account.Title != "Engineer" {
		t.Fatalf("unexpected title: %q", account.Title)
	}
}

func TestResetImageUsesDefaults(t *testing.T) {
	store := newFakeStore(Account{
		UserID:   "user-1",
		Username: "alice",
		Image:    "https://cdn.local/custom.jpg",
		Cover:    "https://cdn.local/custom-cover.jpg",
	})
	svc := NewService(store, testDefaults())

	ctx := context.Background()
	account, err := svc.ResetImage(ctx, "user-1", ImageFieldAvatar)
	if err != nil {
		t.Fatalf("reset avatar: %v", err)
	}
	if account.Image != testDefaults().AvatarURL {
		t.Fatalf("avatar should fall back to default, got %q", account.Image)
	}

	account, err = svc.ResetImage(ctx, "user-1", ImageFieldCover)
	if err != nil {
		t.Fatalf("reset cover: %v", err)
	}
	if account.Cover != testDefaults().CoverURL {
		t.Fatalf("cover should fall back to default, got %q", account.Cover)
	}

	if _, err := svc.ResetImage(ctx, "user-1", "banner"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown field should fail with ErrValidation, got err=%v", err)
	}
}

func TestSetImageValidatesField(t *testing.T) {
	store := newFakeStore(Account{UserID: "user-1", Username: "alice"})
	svc := NewService(store, testDefaults())

	ctx := context.Background()
	if _, err := svc.SetImage(ctx, "user-1", ImageFieldAvatar, "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank url should fail with ErrValidation, got err=%v", err)
	}

	account, err := svc.SetImage(ctx, "user-1", ImageFieldCover, "https://cdn.local/new-cover.jpg")
	if err != nil {
		t.Fatalf("set image: %v", err)
	}
	if account.Cover != "https://cdn.local/new-cover.jpg" {
		t.Fatalf("unexpected cover: %q", account.Cover)
	}
}
