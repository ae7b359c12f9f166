package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cori-saude/cori-web/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.BaseURL = "http://localhost:8080"
	cfg.Session.Secret = strings.Repeat("k", 32)
	return cfg
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager(testConfig())

	rec := httptest.NewRecorder()
	err := m.Issue(rec, Session{
		Token:            "jwt-abc",
		PractitionerID:   1,
		PractitionerName: "Dra. Ana",
		Email:            "ana@cori.app",
	})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	sess, ok := m.Current(req)
	if !ok {
		t.Fatal("Current() did not find the issued session")
	}
	if sess.Token != "jwt-abc" || sess.PractitionerName != "Dra. Ana" {
		t.Errorf("session = %+v", sess)
	}
}

func TestSessionCookieIsOpaque(t *testing.T) {
	m := NewSessionManager(testConfig())

	rec := httptest.NewRecorder()
	if err := m.Issue(rec, Session{Token: "jwt-secret-token", PractitionerID: 1}); err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if strings.Contains(cookies[0].Value, "jwt-secret-token") {
		t.Error("upstream token leaked into the cookie in cleartext")
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestCurrentRejectsMissingAndTamperedCookies(t *testing.T) {
	m := NewSessionManager(testConfig())

	if _, ok := m.Current(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Error("Current() accepted a request without a cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "cori_session", Value: "tampered"})
	if _, ok := m.Current(req); ok {
		t.Error("Current() accepted a tampered cookie")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewSessionManager(testConfig())
	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" {
		t.Fatalf("Clear() cookies = %+v", cookies)
	}
}
