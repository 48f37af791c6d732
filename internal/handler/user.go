package handler

import (
	"net/http"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	user, err := h.userService.Profile(r.Context(), identity)
	if err != nil {
		respondError(w, r, err, "User not found", "Failed to fetch user profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	var in model.ProfileUpdate
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), identity.UID, in)
	if err != nil {
		respondError(w, r, err, "User not found", "Failed to update user profile")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	stats, err := h.userService.Stats(r.Context(), identity.UID)
	if err != nil {
		respondError(w, r, err, "User not found", "Failed to fetch user stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
