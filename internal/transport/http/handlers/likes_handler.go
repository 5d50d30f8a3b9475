package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	likessvc "github.com/linkup-app/backend/internal/services/likes"
	"github.com/linkup-app/backend/internal/transport/http/dto"
	"github.com/linkup-app/backend/internal/transport/http/respond"
)

type LikesHandler struct {
	service *likessvc.Service
}

func NewLikesHandler(service *likessvc.Service) *LikesHandler {
	return &LikesHandler{service: service}
}

// Toggle likes the post on the first call and unlikes it on the next one.
func (h *LikesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	liked, err := h.service.Toggle(r.Context(), postID, identity.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	message := "Unliked"
	if liked {
		message = "Liked"
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{
		Status:  respond.StatusSuccess,
		Message: message,
	})
}

func (h *LikesHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	if postID == "" {
		writeBadRequest(w, "Bad Request, Missing postId!")
		return
	}

	page, limit := pageParams(r)
	result, err := h.service.ListByPost(r.Context(), postID, page, limit)
	if err != nil {
		h.handleError(w, err)
		return
	}

	items := make([]dto.LikeResponse, 0, len(result.Items))
	for _, l := range result.Items {
		items = append(items, dto.MapLike(l))
	}

	respond.JSON(w, http.StatusOK, dto.LikePageResponse{
		Status:     respond.StatusSuccess,
		Data:       items,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		Count:      result.Count,
	})
}

func (h *LikesHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, likessvc.ErrPostNotFound):
		writeNotFound(w, "Post not found")
	case errors.Is(err, likessvc.ErrValidation):
		writeBadRequest(w, "Bad Request, Missing postId!")
	default:
		writeInternal(w)
	}
}
