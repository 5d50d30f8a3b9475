package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	mediasvc "github.com/linkup-app/backend/internal/services/media"
	postssvc "github.com/linkup-app/backend/internal/services/posts"
	"github.com/linkup-app/backend/internal/transport/http/dto"
	"github.com/linkup-app/backend/internal/transport/http/respond"
	"github.com/linkup-app/backend/internal/validation"
)

const maxMultipartMemory = 64 << 20

type PostsHandler struct {
	service *postssvc.Service
	media   *mediasvc.Service
}

func NewPostsHandler(service *postssvc.Service, media *mediasvc.Service) *PostsHandler {
	return &PostsHandler{service: service, media: media}
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	text, media, keys, ok := h.collectMedia(w, r, identity.UserID)
	if !ok {
		return
	}

	payload := validation.PostPayload{Text: text, Media: toValidationMedia(media)}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		h.discardUploads(r.Context(), keys)
		writeBadRequest(w, err.Error())
		return
	}

	post, err := h.service.Create(r.Context(), identity.UserID, payload.Text, media)
	if err != nil {
		h.discardUploads(r.Context(), keys)
		if errors.Is(err, postssvc.ErrValidation) {
			writeBadRequest(w, "text or media is required")
			return
		}
		writeInternal(w)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.CreatedPostResponse{
		Status: respond.StatusSuccess,
		Post:   dto.MapPost(post),
	})
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	page, limit := pageParams(r)
	feed, err := h.service.Feed(r.Context(), identity.UserID, page, limit)
	if err != nil {
		writeInternal(w)
		return
	}

	items := make([]dto.FeedItemResponse, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, dto.MapFeedItem(item))
	}

	respond.JSON(w, http.StatusOK, dto.FeedPageResponse{
		Status:     respond.StatusSuccess,
		Data:       items,
		Page:       feed.Page,
		Limit:      feed.Limit,
		TotalPages: feed.TotalPages,
		Count:      feed.Count,
	})
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	if postID == "" {
		writeBadRequest(w, "Bad Request, Missing postId!")
		return
	}

	post, err := h.service.Get(r.Context(), postID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapPost(post))
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}
	postID := chi.URLParam(r, "postId")
	if postID == "" {
		writeBadRequest(w, "Bad Request, Missing postId!")
		return
	}

	// Ownership is settled before any upload work happens.
	existing, err := h.service.Get(r.Context(), postID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	if existing.AuthorID != identity.UserID {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	text, media, keys, ok := h.collectMedia(w, r, identity.UserID)
	if !ok {
		return
	}

	payload := validation.PostPayload{Text: text, Media: toValidationMedia(media)}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		h.discardUploads(r.Context(), keys)
		writeBadRequest(w, err.Error())
		return
	}

	post, err := h.service.Update(r.Context(), postID, identity.UserID, payload.Text, media)
	if err != nil {
		h.discardUploads(r.Context(), keys)
		h.handleError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, dto.CreatedPostResponse{
		Status: respond.StatusSuccess,
		Post:   dto.MapPost(post),
	})
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}
	postID := chi.URLParam(r, "postId")
	if postID == "" {
		writeBadRequest(w, "Bad Request, Missing postId!")
		return
	}

	post, err := h.service.Delete(r.Context(), postID, identity.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapPost(post))
}

func (h *PostsHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, postssvc.ErrNotFound):
		writeNotFound(w, "Post not found")
	case errors.Is(err, postssvc.ErrNotOwner):
		writeUnauthorized(w, "Unauthorized")
	case errors.Is(err, postssvc.ErrValidation):
		writeBadRequest(w, "Bad Request, Missing postId!")
	default:
		writeInternal(w)
	}
}

// collectMedia pulls the text field and every file part out of the multipart
// body, enforces per-kind size limits and the 4-images-or-1-video rule, and
// uploads what passed to object storage. It also returns the storage keys of
// the uploads so the caller can discard them if the post itself fails to
// persist. On failure it has already written the response and removed any
// objects stored so far.
func (h *PostsHandler) collectMedia(w http.ResponseWriter, r *http.Request, userID string) (string, []postssvc.MediaInput, []string, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeBadRequest(w, "Invalid request")
		return "", nil, nil, false
	}

	text := r.FormValue("text")

	images, videos := 0, 0
	var (
		media []postssvc.MediaInput
		keys  []string
	)
	fail := func(write func()) (string, []postssvc.MediaInput, []string, bool) {
		h.discardUploads(r.Context(), keys)
		write()
		return "", nil, nil, false
	}

	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			contentType := header.Header.Get("Content-Type")
			kind, err := mediasvc.KindForContentType(contentType)
			if err != nil {
				return fail(func() { writeBadRequest(w, "Only image and video files are allowed") })
			}
			if err := mediasvc.CheckSize(kind, header.Size); err != nil {
				if kind == mediasvc.TypeImage {
					return fail(func() { writeBadRequest(w, "Image size should not exceed 5MB") })
				}
				return fail(func() { writeBadRequest(w, "Video size should not exceed 50MB") })
			}

			switch kind {
			case mediasvc.TypeImage:
				images++
			case mediasvc.TypeVideo:
				videos++
			}
			if images > validation.MaxPostImages || videos > validation.MaxPostVideos || (images > 0 && videos > 0) {
				return fail(func() { writeBadRequest(w, "You can upload up to 4 images or 1 video only") })
			}

			file, err := header.Open()
			if err != nil {
				return fail(func() { writeInternal(w) })
			}
			item, err := h.media.Upload(r.Context(), userID, header.Filename, contentType, file, header.Size)
			_ = file.Close()
			if err != nil {
				return fail(func() { writeInternal(w) })
			}
			media = append(media, postssvc.MediaInput{Type: item.Type, URL: item.URL})
			keys = append(keys, item.Key)
		}
	}

	return text, media, keys, true
}

// discardUploads best-effort deletes objects whose post never made it into the
// database.
func (h *PostsHandler) discardUploads(ctx context.Context, keys []string) {
	for _, key := range keys {
		_ = h.media.Remove(ctx, key)
	}
}

func toValidationMedia(media []postssvc.MediaInput) []validation.MediaItem {
	out := make([]validation.MediaItem, 0, len(media))
	for _, m := range media {
		out = append(out, validation.MediaItem{Type: m.Type, URL: m.URL})
	}
	return out
}
