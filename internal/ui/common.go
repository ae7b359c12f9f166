package ui

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cori-saude/cori-web/internal/api"
	"github.com/cori-saude/cori-web/internal/http/csrf"
	httperrors "github.com/cori-saude/cori-web/internal/http/errors"
)

// pathID extracts a numeric {param} from the route.
func pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", param, raw)
	}
	return id, nil
}

// withFlash adds flash messages and CSRF token to template data.
func (h *Handler) withFlash(r *http.Request, data map[string]any) map[string]any {
	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		data["FlashMessage"] = status
	}
	if err := q.Get("error"); err != "" {
		data["FlashError"] = err
	}
	if csrfToken := csrf.TokenFromContext(r.Context()); csrfToken != "" {
		data["CSRFToken"] = csrfToken
	}
	return data
}

// redirect redirects to a path with query parameters.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	location := path
	if encoded := q.Encode(); encoded != "" {
		location += "?" + encoded
	}
	http.Redirect(w, r, location, http.StatusFound)
}

// render executes a template and writes the response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.templates[name]
	if !ok {
		httperrors.InternalError(w, r, fmt.Errorf("template not found"), fmt.Sprintf("template %q not found", name))
		return
	}

	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		httperrors.InternalError(w, r, err, fmt.Sprintf("template render error for %q", name))
	}
}

// upstreamError translates practice API failures. A rejected token kills the
// local session; everything else becomes a flash on the given path.
func (h *Handler) upstreamError(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	if errors.Is(err, api.ErrUnauthorized) {
		h.authService.HandleUnauthorized(w, r)
		return
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError && apiErr.Detail != "" {
		httperrors.LogError(r, "upstream request rejected", err)
		h.redirect(w, r, backTo, map[string]string{"error": apiErr.Detail})
		return
	}

	httperrors.InternalError(w, r, err, "upstream request failed")
}
