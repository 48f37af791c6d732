package handler

import (
	"net/http"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/model"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type verifyResponse struct {
	Valid bool            `json:"valid"`
	User  *model.Identity `json:"user"`
}

// Verify echoes the claims of the already verified bearer token
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, verifyResponse{
		Valid: true,
		User:  ctxkeys.Identity(r.Context()),
	})
}
