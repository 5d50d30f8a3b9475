package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/linkup-app/backend/internal/services/auth"
	"github.com/linkup-app/backend/internal/transport/http/dto"
	"github.com/linkup-app/backend/internal/transport/http/respond"
	"github.com/linkup-app/backend/internal/validation"
)

type AuthHandler struct {
	service *authsvc.Service
	cookies *authsvc.CookieManager
}

func NewAuthHandler(service *authsvc.Service, cookies *authsvc.CookieManager) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload validation.RegisterPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "username, email, and password are required")
		return
	}
	payload.Normalize()

	// Field-presence messages come before schema validation.
	switch {
	case payload.Username == "":
		writeBadRequest(w, "username is required")
		return
	case payload.Email == "":
		writeBadRequest(w, "email is required")
		return
	case payload.Password == "":
		writeBadRequest(w, "password is required")
		return
	}

	if err := payload.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Register(r.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrUsernameTaken):
			writeBadRequest(w, "Username already exists")
		case errors.Is(err, authsvc.ErrEmailTaken):
			writeBadRequest(w, "Email already exists")
		default:
			writeInternal(w)
		}
		return
	}

	h.cookies.SetSessionCookie(w, result.RefreshToken)
	respond.JSON(w, http.StatusCreated, dto.AuthTokenResponse{
		Status:      respond.StatusSuccess,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload validation.LoginPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "email and password are required")
		return
	}
	payload.Normalize()

	switch {
	case payload.Email == "":
		writeBadRequest(w, "email is required")
		return
	case payload.Password == "":
		writeBadRequest(w, "password is required")
		return
	}

	if err := payload.Validate(); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			writeBadRequest(w, "Invalid email or password")
			return
		}
		writeInternal(w)
		return
	}

	h.cookies.SetSessionCookie(w, result.RefreshToken)
	respond.JSON(w, http.StatusOK, dto.AuthTokenResponse{
		Status:      respond.StatusSuccess,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSessionCookie(w)
	respond.JSON(w, http.StatusOK, dto.StatusResponse{Status: respond.StatusSuccess})
}

// Refresh exchanges the cookie-borne refresh token for a fresh access token.
// A missing cookie is 401, an invalid or expired token 403.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(authsvc.SessionCookieName)
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w, "No refresh token provided, Please login")
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidToken) {
			respond.Fail(w, http.StatusForbidden, "Invalid refresh token")
			return
		}
		writeInternal(w)
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthTokenResponse{
		Status:      respond.StatusSuccess,
		AccessToken: accessToken,
	})
}
