package comments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	posts   map[string]bool
	records map[string]CommentRecord
	nextID  int
}

func newFakeStore(postIDs ...string) *fakeStore {
	posts := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		posts[id] = true
	}
	return &fakeStore{posts: posts, records: make(map[string]CommentRecord)}
}

func (f *fakeStore) PostExists(_ context.Context, postID string) (bool, error) {
	return f.posts[postID], nil
}

func (f *fakeStore) Create(_ context.Context, postID, authorID, text string) (CommentRecord, error) {
	f.nextID++
	record := CommentRecord{
		ID:        fmt.Sprintf("comment-%d", f.nextID),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeStore) ListByPost(_ context.Context, postID string, limit, offset int) ([]CommentRecord, error) {
	out := make([]CommentRecord, 0, len(f.records))
	for _, r := range f.records {
		if r.PostID == postID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CountByPost(_ context.Context, postID string) (int, error) {
	count := 0
	for _, r := range f.records {
		if r.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (CommentRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return CommentRecord{}, ErrNotFound
	}
	return record, nil
}

func (f *fakeStore) Update(_ context.Context, id, text string) (CommentRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return CommentRecord{}, ErrNotFound
	}
	record.Text = text
	record.UpdatedAt = time.Now().UTC()
	f.records[id] = record
	return record, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (CommentRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return CommentRecord{}, ErrNotFound
	}
	delete(f.records, id)
	return record, nil
}

func TestCreateChecksPostExists(t *testing.T) {
	svc := NewService(newFakeStore("post-1"))

	ctx := context.Background()
	if _, err := svc.Create(ctx, "missing", "user-1", "hi"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("unknown post should fail with ErrPostNotFound, got err=%v", err)
	}

	comment, err := svc.Create(ctx, "post-1", "user-1", "hi")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if comment.PostID != "post-1" || comment.AuthorID != "user-1" {
		t.Fatalf("comment not linked to post and author: %+v", comment)
	}
}

func TestCreateRequiresText(t *testing.T) {
	svc := NewService(newFakeStore("post-1"))

	if _, err := svc.Create(context.Background(), "post-1", "user-1", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank comment should fail with ErrValidation, got err=%v", err)
	}
}

func TestUpdateOwnership(t *testing.T) {
	svc := NewService(newFakeStore("post-1"))

	ctx := context.Background()
	comment, err := svc.Create(ctx, "post-1", "user-1", "original")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, comment.ID, "user-2", "hijacked"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign update should fail with ErrNotOwner, got err=%v", err)
	}
	if _, err := svc.Update(ctx, "missing", "user-2", "text"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing comment should fail with ErrNotFound, got err=%v", err)
	}

	updated, err := svc.Update(ctx, comment.ID, "user-1", "edited")
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Text != "edited" {
		t.Fatalf("unexpected text after update: %q", updated.Text)
	}
}

func TestDeleteOwnership(t *testing.T) {
	store := newFakeStore("post-1")
	svc := NewService(store)

	ctx := context.Background()
	comment, err := svc.Create(ctx, "post-1", "user-1", "bye")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Delete(ctx, comment.ID, "user-2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign delete should fail with ErrNotOwner, got err=%v", err)
	}

	deleted, err := svc.Delete(ctx, comment.ID, "user-1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != comment.ID {
		t.Fatalf("delete should return the removed record")
	}
}

func TestListByPostPagination(t *testing.T) {
	svc := NewService(newFakeStore("post-1"))

	ctx := context.Background()
	for i := 0; i < 12; i++ {
		if _, err := svc.Create(ctx, "post-1", "user-1", fmt.Sprintf("comment %d", i)); err != nil {
			t.Fatalf("create #%d: %v", i, err)
		}
	}

	page, err := svc.ListByPost(ctx, "post-1", 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("pagination should default to page 1 limit 10, got %d/%d", page.Page, page.Limit)
	}
	if page.Count != 12 || page.TotalPages != 2 {
		t.Fatalf("unexpected count/totalPages: %d/%d", page.Count, page.TotalPages)
	}

	if _, err := svc.ListByPost(ctx, "missing", 1, 10); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("unknown post should fail with ErrPostNotFound, got err=%v", err)
	}
}
