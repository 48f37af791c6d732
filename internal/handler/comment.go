package handler

import (
	"net/http"

	"github.com/templui/tripjournal/internal/ctxkeys"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List is public
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripId")
	if !ok {
		return
	}

	comments, err := h.commentService.ByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, r, err, "Trip not found", "Failed to fetch comments")
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	tripID, ok := pathID(w, r, "tripId")
	if !ok {
		return
	}

	var in model.CommentInput
	if !decodeJSON(w, r, &in) {
		return
	}

	comment, err := h.commentService.Create(r.Context(), tripID, identity.UID, in)
	if err != nil {
		respondError(w, r, err, "Trip not found", "Failed to add comment")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := ctxkeys.Identity(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := h.commentService.Delete(r.Context(), id, identity.UID)
	if err != nil {
		respondError(w, r, err, "Comment not found or unauthorized", "Failed to delete comment")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Comment deleted successfully"})
}
