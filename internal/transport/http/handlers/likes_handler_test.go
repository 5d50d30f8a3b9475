package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	likessvc "github.com/linkup-app/backend/internal/services/likes"
)

type fakeLikeStore struct {
	posts map[string]bool
	likes map[string]map[string]bool
}

func newFakeLikeStore(postIDs ...string) *fakeLikeStore {
	posts := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		posts[id] = true
	}
	return &fakeLikeStore{posts: posts, likes: make(map[string]map[string]bool)}
}

func (f *fakeLikeStore) PostExists(_ context.Context, postID string) (bool, error) {
	return f.posts[postID], nil
}

func (f *fakeLikeStore) Toggle(_ context.Context, postID, authorID string) (bool, error) {
	if f.likes[postID] == nil {
		f.likes[postID] = make(map[string]bool)
	}
	if f.likes[postID][authorID] {
		delete(f.likes[postID], authorID)
		return false, nil
	}
	f.likes[postID][authorID] = true
	return true, nil
}

func (f *fakeLikeStore) ListByPost(_ context.Context, postID string, limit, offset int) ([]likessvc.LikeRecord, error) {
	out := make([]likessvc.LikeRecord, 0, len(f.likes[postID]))
	for authorID := range f.likes[postID] {
		out = append(out, likessvc.LikeRecord{PostID: postID, AuthorID: authorID})
	}
	return out, nil
}

func (f *fakeLikeStore) CountByPost(_ context.Context, postID string) (int, error) {
	return len(f.likes[postID]), nil
}

func likeToggleRequest(postID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID+"/likes", nil)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("postId", postID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = authsvc.WithIdentity(ctx, authsvc.Identity{UserID: userID, Token: "token"})

	return req.WithContext(ctx)
}

func TestToggleReportsLikedThenUnliked(t *testing.T) {
	handler := NewLikesHandler(likessvc.NewService(newFakeLikeStore("post-1")))

	rr := httptest.NewRecorder()
	handler.Toggle(rr, likeToggleRequest("post-1", "user-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if body := decodeEnvelope(t, rr); body.Status != "Success" || body.Message != "Liked" {
		t.Fatalf("first toggle should report Liked, got %+v", body)
	}

	rr = httptest.NewRecorder()
	handler.Toggle(rr, likeToggleRequest("post-1", "user-1"))
	if body := decodeEnvelope(t, rr); body.Message != "Unliked" {
		t.Fatalf("second toggle should report Unliked, got %+v", body)
	}
}

func TestToggleUnknownPostReturns404(t *testing.T) {
	handler := NewLikesHandler(likessvc.NewService(newFakeLikeStore("post-1")))

	rr := httptest.NewRecorder()
	handler.Toggle(rr, likeToggleRequest("missing", "user-1"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}
	if body := decodeEnvelope(t, rr); body.Message != "Post not found" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}
