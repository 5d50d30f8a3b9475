package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	commentssvc "github.com/linkup-app/backend/internal/services/comments"
	"github.com/linkup-app/backend/internal/transport/http/dto"
	"github.com/linkup-app/backend/internal/transport/http/respond"
	"github.com/linkup-app/backend/internal/validation"
)

type CommentsHandler struct {
	service *commentssvc.Service
}

func NewCommentsHandler(service *commentssvc.Service) *CommentsHandler {
	return &CommentsHandler{service: service}
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var payload validation.CommentPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Comment is required")
		return
	}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	comment, err := h.service.Create(r.Context(), postID, identity.UserID, payload.Text)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusCreated, dto.MapComment(comment))
}

func (h *CommentsHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
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

	items := make([]dto.CommentResponse, 0, len(result.Items))
	for _, c := range result.Items {
		items = append(items, dto.MapComment(c))
	}

	respond.JSON(w, http.StatusOK, dto.CommentPageResponse{
		Status:     respond.StatusSuccess,
		Data:       items,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		Count:      result.Count,
	})
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}
	commentID := chi.URLParam(r, "commentId")
	if commentID == "" {
		writeBadRequest(w, "Bad Request, Missing commentId!")
		return
	}

	var payload validation.CommentPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Comment is required")
		return
	}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	comment, err := h.service.Update(r.Context(), commentID, identity.UserID, payload.Text)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapComment(comment))
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}
	commentID := chi.URLParam(r, "commentId")
	if commentID == "" {
		writeBadRequest(w, "Bad Request, Missing commentId!")
		return
	}

	comment, err := h.service.Delete(r.Context(), commentID, identity.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapComment(comment))
}

func (h *CommentsHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, commentssvc.ErrPostNotFound):
		writeNotFound(w, "Post not found")
	case errors.Is(err, commentssvc.ErrNotFound):
		writeNotFound(w, "Comment not found")
	case errors.Is(err, commentssvc.ErrNotOwner):
		writeUnauthorized(w, "Unauthorized")
	case errors.Is(err, commentssvc.ErrValidation):
		writeBadRequest(w, "Comment is required")
	default:
		writeInternal(w)
	}
}
