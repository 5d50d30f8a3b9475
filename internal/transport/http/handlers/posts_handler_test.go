package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	mediasvc "github.com/linkup-app/backend/internal/services/media"
	postssvc "github.com/linkup-app/backend/internal/services/posts"
)

type fakePostStore struct {
	failCreate bool
	created    []postssvc.PostRecord
}

func (f *fakePostStore) Create(_ context.Context, authorID, text string, media []postssvc.MediaInput) (postssvc.PostRecord, error) {
	if f.failCreate {
		return postssvc.PostRecord{}, errors.New("insert post")
	}
	post := postssvc.PostRecord{ID: uuid.NewString(), AuthorID: authorID, Text: text}
	for _, m := range media {
		post.Media = append(post.Media, postssvc.MediaRecord{ID: uuid.NewString(), Type: m.Type, URL: m.URL})
	}
	f.created = append(f.created, post)
	return post, nil
}

func (f *fakePostStore) List(_ context.Context, _ string, _, _ int) ([]postssvc.FeedItem, error) {
	return nil, nil
}

func (f *fakePostStore) Count(_ context.Context) (int, error) {
	return len(f.created), nil
}

func (f *fakePostStore) Get(_ context.Context, id string) (postssvc.PostRecord, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return postssvc.PostRecord{}, postssvc.ErrNotFound
}

func (f *fakePostStore) Update(_ context.Context, _, _ string, _ []postssvc.MediaInput, _ bool) (postssvc.PostRecord, error) {
	return postssvc.PostRecord{}, postssvc.ErrNotFound
}

func (f *fakePostStore) Delete(_ context.Context, _ string) (postssvc.PostRecord, error) {
	return postssvc.PostRecord{}, postssvc.ErrNotFound
}

type fakeObjectStorage struct {
	objects map[string]struct{}
	deletes int
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string]struct{})}
}

func (f *fakeObjectStorage) EnsureBucket(_ context.Context) error {
	return nil
}

func (f *fakeObjectStorage) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
	f.objects[key] = struct{}{}
	return nil
}

func (f *fakeObjectStorage) PublicURL(key string) string {
	return "https://cdn.local/" + key
}

func (f *fakeObjectStorage) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deletes++
	return nil
}

func newPostsHandlerForTest(store *fakePostStore, storage *fakeObjectStorage) *PostsHandler {
	return NewPostsHandler(postssvc.NewService(store), mediasvc.NewService(storage, "linkup"))
}

// postCreateRequest builds an authenticated multipart create request carrying
// a text field and one small jpeg.
func postCreateRequest(t *testing.T, userID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", "hello"); err != nil {
		t.Fatalf("write text field: %v", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="media"; filename="photo.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{UserID: userID}))
}

func TestCreatePostKeepsUploadsOnSuccess(t *testing.T) {
	store := &fakePostStore{}
	storage := newFakeObjectStorage()
	handler := newPostsHandlerForTest(store, storage)

	rr := httptest.NewRecorder()
	handler.Create(rr, postCreateRequest(t, "user-1"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusCreated)
	}
	if len(storage.objects) != 1 {
		t.Fatalf("expected exactly one stored object, got %d", len(storage.objects))
	}
	if storage.deletes != 0 {
		t.Fatalf("successful create must not delete uploads, got %d deletes", storage.deletes)
	}
}

func TestCreatePostRemovesUploadsWhenStoreFails(t *testing.T) {
	store := &fakePostStore{failCreate: true}
	storage := newFakeObjectStorage()
	handler := newPostsHandlerForTest(store, storage)

	rr := httptest.NewRecorder()
	handler.Create(rr, postCreateRequest(t, "user-1"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusInternalServerError)
	}
	if len(storage.objects) != 0 {
		t.Fatalf("failed create should leave no objects behind, got %d", len(storage.objects))
	}
	if storage.deletes != 1 {
		t.Fatalf("expected the upload to be deleted once, got %d deletes", storage.deletes)
	}
}
