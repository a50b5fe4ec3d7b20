package http

import (
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// LogoutHandler handles POST /logout. The session token rides in the
// cookie, not the body: no cookie is a 400, a dead or already-revoked
// token is a 401, and on success the cookie is cleared.
type LogoutHandler struct {
	AuthService *service.AuthService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeServiceError(w, r, service.ErrMissingToken)
		return
	}

	if err := h.AuthService.Logout(r.Context(), cookie.Value); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearSessionCookie(w)
	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
