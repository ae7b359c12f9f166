package auth

import (
	"crypto/sha256"
	"net/http"
	"net/url"
	"time"

	"github.com/cori-saude/cori-web/internal/config"
	"github.com/gorilla/securecookie"
)

// Session is what the encrypted cookie carries: the upstream bearer token and
// enough of the practitioner profile to render the chrome without a lookup.
type Session struct {
	Token            string `json:"token"`
	PractitionerID   int64  `json:"practitioner_id"`
	PractitionerName string `json:"practitioner_name"`
	Email            string `json:"email"`
	Expires          int64  `json:"exp"`
}

// SessionManager manages web UI sessions.
type SessionManager struct {
	cfg        *config.Config
	cookieName string
	codec      *securecookie.SecureCookie
	secure     bool
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	hash := sha256.Sum256([]byte(cfg.Session.Secret))
	hashKey := hash[:]

	// Derive an AES-256 sized block key to avoid invalid key length errors.
	blockKey := hash[:]
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(86400 * 7)
	sc.SetSerializer(securecookie.JSONEncoder{})

	secure := true
	if base, err := url.Parse(cfg.BaseURL); err == nil && base.Scheme != "https" {
		secure = false
	}

	return &SessionManager{
		cfg:        cfg,
		cookieName: "cori_session",
		codec:      sc,
		secure:     secure,
	}
}

// Issue stores the upstream token and practitioner profile in the session
// cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, sess Session) error {
	sess.Expires = time.Now().Add(24 * time.Hour).Unix()

	encoded, err := m.codec.Encode(m.cookieName, sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    m.cookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		Secure:  m.secure,
	})
}

// Current extracts the session from the request cookie if present and
// unexpired.
func (m *SessionManager) Current(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, false
	}

	var sess Session
	if err := m.codec.Decode(m.cookieName, c.Value, &sess); err != nil {
		return nil, false
	}
	if sess.Token == "" || time.Unix(sess.Expires, 0).Before(time.Now()) {
		return nil, false
	}

	return &sess, true
}
