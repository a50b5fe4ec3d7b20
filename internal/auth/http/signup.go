package http

import (
	"encoding/json"
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// SignupHandler handles POST /signup.
type SignupHandler struct {
	AuthService *service.AuthService
}

type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	RequiresTwoFA bool   `json:"requires2FA"`
}

type SignupResponse struct {
	Message string `json:"message"`
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w)
		return
	}

	if err := h.AuthService.Signup(r.Context(), req.Email, req.Password, req.RequiresTwoFA); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, SignupResponse{
		Message: "User created successfully",
	})
}
