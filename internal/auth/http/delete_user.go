package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lodgepole/gatehouse/internal/auth/service"
	"github.com/lodgepole/gatehouse/pkg/httpx"
)

// DeleteUserHandler handles DELETE /delete-user.
type DeleteUserHandler struct {
	AuthService *service.AuthService
}

type DeleteUserRequest struct {
	Email string `json:"email"`
}

type DeleteUserResponse struct {
	Message string `json:"message"`
}

func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w)
		return
	}

	if err := h.AuthService.DeleteUser(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, DeleteUserResponse{
		Message: fmt.Sprintf("User deleted: %s", req.Email),
	})
}
