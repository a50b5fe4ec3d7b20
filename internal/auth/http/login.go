package http

import (
	"encoding/json"
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// LoginHandler handles POST /login.
type LoginHandler struct {
	AuthService *service.AuthService
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TwoFactorResponse accompanies a 206: the password checked out but a
// one-time code is still outstanding. The code itself never appears
// here, only the attempt id the client must echo back.
type TwoFactorResponse struct {
	Message        string `json:"message"`
	LoginAttemptID string `json:"loginAttemptId"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w)
		return
	}

	outcome, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if outcome.TwoFactor != nil {
		httpx.WriteJSON(w, http.StatusPartialContent, TwoFactorResponse{
			Message:        "2FA required",
			LoginAttemptID: outcome.TwoFactor.AttemptID.String(),
		})
		return
	}

	setSessionCookie(w, outcome.Token)
	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
