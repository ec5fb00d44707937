package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/yjym33/travelLog-Backend/internal/httputil"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleTravelLog handles POST /likes/travel-logs/{id}
func (h *LikeHandler) ToggleTravelLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	travelLogID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid travel log ID")
		return
	}

	result, err := h.likeService.ToggleTravelLogLike(r.Context(), travelLogID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrLikesDisabled):
			httputil.WriteForbidden(w, "Likes are disabled for this travel log")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		default:
			log.Printf("[ERROR] ToggleTravelLog handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ToggleComment handles POST /likes/comments/{id}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	result, err := h.likeService.ToggleCommentLike(r.Context(), commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrCommentAlreadyDeleted):
			httputil.WriteConflict(w, "Comment has been deleted")
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		default:
			log.Printf("[ERROR] ToggleComment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListTravelLogLikes handles GET /likes/travel-logs/{id}
func (h *LikeHandler) ListTravelLogLikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	travelLogID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid travel log ID")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.likeService.ListTravelLogLikes(r.Context(), travelLogID, userID, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		default:
			log.Printf("[ERROR] ListTravelLogLikes handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to list likes")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListMyLikes handles GET /likes/my-likes
func (h *LikeHandler) ListMyLikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.likeService.ListMyLikes(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("[ERROR] ListMyLikes handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list likes")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// CheckLiked handles GET /likes/check/{id}
func (h *LikeHandler) CheckLiked(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	travelLogID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid travel log ID")
		return
	}

	liked, err := h.likeService.CheckLiked(r.Context(), travelLogID, userID)
	if err != nil {
		log.Printf("[ERROR] CheckLiked handler: user=%d log=%d err=%v", userID, travelLogID, err)
		httputil.WriteInternalError(w, "Failed to check like")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.ToggleResult{Liked: liked})
}
