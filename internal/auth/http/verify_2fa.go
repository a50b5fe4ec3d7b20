package http

import (
	"encoding/json"
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// VerifyTwoFAHandler handles POST /verify-2fa.
type VerifyTwoFAHandler struct {
	AuthService *service.AuthService
}

type VerifyTwoFARequest struct {
	Email          string `json:"email"`
	LoginAttemptID string `json:"loginAttemptId"`
	Code           string `json:"2FACode"`
}

func (h *VerifyTwoFAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyTwoFARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w)
		return
	}

	token, err := h.AuthService.VerifyTwoFactor(r.Context(), req.Email, req.LoginAttemptID, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setSessionCookie(w, token)
	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
