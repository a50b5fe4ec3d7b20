package http

import (
	"encoding/json"
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// VerifyTokenHandler handles POST /verify-token, the check other
// services call to vouch for a session token they were handed.
type VerifyTokenHandler struct {
	AuthService *service.AuthService
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

func (h *VerifyTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w)
		return
	}

	if _, err := h.AuthService.VerifyToken(r.Context(), req.Token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
