package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSetSessionCookieAttributes(t *testing.T) {
	cm := NewCookieManager(30*24*time.Hour, true)

	rr := httptest.NewRecorder()
	cm.SetSessionCookie(rr, "refresh-token-value")

	cookie := findSessionCookie(t, rr)
	if cookie.Value != "refresh-token-value" {
		t.Fatalf("unexpected cookie value: %q", cookie.Value)
	}
	if cookie.Path != "/" {
		t.Fatalf("unexpected cookie path: %q", cookie.Path)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be http-only")
	}
	if !cookie.Secure {
		t.Fatalf("cookie must be secure")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be SameSite=Strict, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != int((30 * 24 * time.Hour).Seconds()) {
		t.Fatalf("cookie max-age should match refresh ttl, got %d", cookie.MaxAge)
	}
}

func TestClearSessionCookieExpiresImmediately(t *testing.T) {
	cm := NewCookieManager(30*24*time.Hour, false)

	rr := httptest.NewRecorder()
	cm.ClearSessionCookie(rr)

	cookie := findSessionCookie(t, rr)
	if cookie.Value != "" {
		t.Fatalf("cleared cookie should have an empty value, got %q", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("cleared cookie should have a negative max-age, got %d", cookie.MaxAge)
	}
}

func findSessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}
