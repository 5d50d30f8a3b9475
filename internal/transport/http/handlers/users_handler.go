package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	mediasvc "github.com/linkup-app/backend/internal/services/media"
	userssvc "github.com/linkup-app/backend/internal/services/users"
	"github.com/linkup-app/backend/internal/transport/http/dto"
	"github.com/linkup-app/backend/internal/transport/http/respond"
	"github.com/linkup-app/backend/internal/validation"
)

type UsersHandler struct {
	service *userssvc.Service
	media   *mediasvc.Service
}

func NewUsersHandler(service *userssvc.Service, media *mediasvc.Service) *UsersHandler {
	return &UsersHandler{service: service, media: media}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeInternal(w)
		return
	}

	items := make([]dto.AccountResponse, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, dto.MapAccount(a))
	}

	respond.JSON(w, http.StatusOK, dto.AccountPageResponse{
		Status:     respond.StatusSuccess,
		Data:       items,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	account, err := h.service.Me(r.Context(), identity.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapAccount(account))
}

func (h *UsersHandler) ByUsername(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	username := chi.URLParam(r, "username")
	view, err := h.service.ByUsername(r.Context(), username, identity.UserID)
	if err != nil {
		if errors.Is(err, userssvc.ErrValidation) {
			writeBadRequest(w, "Invalid username")
			return
		}
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapAccountView(view))
}

func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	var payload validation.AccountPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "Invalid request")
		return
	}
	payload.Normalize()
	if err := payload.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	account, err := h.service.UpdateProfile(r.Context(), identity.UserID, payload.Fullname, payload.Title)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapAccount(account))
}

// UpdateImage replaces the avatar or cover with a freshly uploaded image. The
// multipart field name, "image" or "cover", selects which one.
func (h *UsersHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeBadRequest(w, "Invalid request")
		return
	}

	field, header, ok := h.singleImage(w, r)
	if !ok {
		return
	}

	contentType := header.Header.Get("Content-Type")
	file, err := header.Open()
	if err != nil {
		writeInternal(w)
		return
	}
	defer file.Close()

	item, err := h.media.Upload(r.Context(), identity.UserID, header.Filename, contentType, file, header.Size)
	if err != nil {
		writeInternal(w)
		return
	}

	account, err := h.service.SetImage(r.Context(), identity.UserID, field, item.URL)
	if err != nil {
		_ = h.media.Remove(r.Context(), item.Key)
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapAccount(account))
}

// ResetImage restores the default avatar or cover. The body names the field
// to reset: {"image": true} or {"cover": true}.
func (h *UsersHandler) ResetImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	var body struct {
		Image bool `json:"image"`
		Cover bool `json:"cover"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeBadRequest(w, "Invalid request")
		return
	}

	var field string
	switch {
	case body.Image && !body.Cover:
		field = userssvc.ImageFieldAvatar
	case body.Cover && !body.Image:
		field = userssvc.ImageFieldCover
	default:
		writeBadRequest(w, "Invalid request")
		return
	}

	account, err := h.service.ResetImage(r.Context(), identity.UserID, field)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respond.Success(w, http.StatusOK, dto.MapAccount(account))
}

// singleImage picks exactly one image file out of the parsed multipart form
// and reports which profile field it targets. On failure it has already
// written the response.
func (h *UsersHandler) singleImage(w http.ResponseWriter, r *http.Request) (string, *multipart.FileHeader, bool) {
	form := r.MultipartForm
	if form == nil || len(form.File) == 0 {
		writeBadRequest(w, "No image files found")
		return "", nil, false
	}

	var (
		field string
		files []*multipart.FileHeader
	)
	for name, headers := range form.File {
		if name != userssvc.ImageFieldAvatar && name != userssvc.ImageFieldCover {
			writeBadRequest(w, "Invalid request")
			return "", nil, false
		}
		if field != "" {
			writeBadRequest(w, "You can upload up to 1 image only")
			return "", nil, false
		}
		field = name
		files = headers
	}

	if len(files) == 0 {
		writeBadRequest(w, "No image files found")
		return "", nil, false
	}
	if len(files) > 1 {
		writeBadRequest(w, "You can upload up to 1 image only")
		return "", nil, false
	}

	header := files[0]
	kind, err := mediasvc.KindForContentType(header.Header.Get("Content-Type"))
	if err != nil || kind != mediasvc.TypeImage {
		writeBadRequest(w, "Only image files are allowed")
		return "", nil, false
	}
	if err := mediasvc.CheckSize(kind, header.Size); err != nil {
		writeBadRequest(w, "Image size should not exceed 5MB")
		return "", nil, false
	}

	return field, header, true
}

func (h *UsersHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrNotFound):
		writeNotFound(w, "User not found")
	case errors.Is(err, userssvc.ErrValidation):
		writeBadRequest(w, "Invalid request")
	default:
		writeInternal(w)
	}
}
