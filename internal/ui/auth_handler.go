package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cori-saude/cori-web/internal/api"
	httperrors "github.com/cori-saude/cori-web/internal/http/errors"
)

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := h.withFlash(r, map[string]any{
		"Title": "Entrar",
	})
	if r.URL.Query().Get("flash") == "session_expired" {
		data["FlashError"] = "Sua sessão expirou. Entre novamente."
	}
	h.render(w, r, "login.html", data)
}

// Login validates credentials against the practice API and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "/auth/login", map[string]string{"error": "formulário inválido"})
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.redirect(w, r, "/auth/login", map[string]string{"error": "informe e-mail e senha"})
		return
	}

	if err := h.authService.Login(r.Context(), w, email, password); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.redirect(w, r, "/auth/login", map[string]string{"error": "e-mail ou senha incorretos"})
			return
		}
		httperrors.InternalError(w, r, err, "login against practice api failed")
		return
	}
	http.Redirect(w, r, "/agenda", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(w)
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}
