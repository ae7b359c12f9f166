package auth

import (
	"context"
	"net/http"

	"github.com/cori-saude/cori-web/internal/api"
	"github.com/cori-saude/cori-web/internal/config"
)

// Service encapsulates the password login flow against the practice API and
// session enforcement for the web UI.
type Service struct {
	cfg      *config.Config
	api      *api.Client
	sessions *SessionManager
}

func NewService(cfg *config.Config, client *api.Client, sessions *SessionManager) *Service {
	return &Service{cfg: cfg, api: client, sessions: sessions}
}

// Login exchanges credentials upstream and issues the session cookie.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.sessions.Issue(w, Session{
		Token:            resp.AccessToken,
		PractitionerID:   resp.Practitioner.ID,
		PractitionerName: resp.Practitioner.DisplayName,
		Email:            resp.Practitioner.Email,
	})
}

// Logout drops the session cookie. The upstream token is stateless, so there
// is nothing to revoke server-side.
func (s *Service) Logout(w http.ResponseWriter) {
	s.sessions.Clear(w)
}

// APIClient returns a client authenticated as the session's practitioner.
func (s *Service) APIClient(sess *Session) *api.Client {
	return s.api.WithToken(sess.Token)
}

// RequireSession loads the session cookie and puts it on the context, or
// redirects to the login page.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.Current(r)
		if !ok {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// HandleUnauthorized invalidates the local session after the upstream
// rejected its token and sends the user back to login.
func (s *Service) HandleUnauthorized(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, "/auth/login?flash=session_expired", http.StatusSeeOther)
}
