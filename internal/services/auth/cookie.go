package auth

import (
	"net/http"
	"time"
)

const SessionCookieName = "sessionToken"

// CookieManager persists the refresh token in an HTTP-only, SameSite=Strict
// cookie. The cookie lifetime equals the refresh token TTL so the two cannot
// drift apart. Secure is off only in dev.
type CookieManager struct {
	maxAge time.Duration
	secure bool
}

func NewCookieManager(maxAge time.Duration, secure bool) *CookieManager {
	if maxAge <= 0 {
		maxAge = 30 * 24 * time.Hour
	}
	return &CookieManager{maxAge: maxAge, secure: secure}
}

func (c *CookieManager) SetSessionCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.secure,
		MaxAge:   int(c.maxAge.Seconds()),
	})
}

func (c *CookieManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.secure,
		MaxAge:   -1,
	})
}
