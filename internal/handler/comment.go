package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/yjym33/travelLog-Backend/internal/httputil"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrCommentsDisabled):
			httputil.WriteForbidden(w, "Comments are disabled for this travel log")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		case errors.Is(err, model.ErrParentCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		case errors.Is(err, model.ErrParentMismatch):
			httputil.WriteBadRequest(w, "Parent comment belongs to a different travel log")
		case errors.Is(err, model.ErrParentCommentDeleted):
			httputil.WriteConflict(w, "Parent comment has been deleted")
		case errors.Is(err, model.ErrNestingTooDeep):
			httputil.WriteBadRequest(w, "Replies to replies are not allowed")
		case errors.Is(err, model.ErrContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Comment content too long")
		default:
			log.Printf("[ERROR] Create comment handler: user=%d log=%d err=%v", userID, req.TravelLogID, err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// Update handles PATCH /comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only edit your own comments")
		case errors.Is(err, model.ErrCommentAlreadyDeleted):
			httputil.WriteConflict(w, "Comment has been deleted")
		case errors.Is(err, model.ErrContentRequired):
			httputil.WriteBadRequest(w, "Comment content is required")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Comment content too long")
		default:
			log.Printf("[ERROR] Update comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to update comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "You can only delete your own comments")
		case errors.Is(err, model.ErrCommentAlreadyDeleted):
			httputil.WriteConflict(w, "Comment has already been deleted")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%d comment=%d err=%v", userID, commentID, err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Comment deleted successfully",
	})
}

// ListForTravelLog handles GET /comments/travel-logs/{id}?sort=
func (h *CommentHandler) ListForTravelLog(w http.ResponseWriter, r *http.Request) {
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

	sort := model.CommentSort(r.URL.Query().Get("sort"))
	page, limit := parsePage(r, model.DefaultPageLimit)

	result, err := h.commentService.ListForTravelLog(r.Context(), travelLogID, userID, sort, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		default:
			log.Printf("[ERROR] ListForTravelLog handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to list comments")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListReplies handles GET /comments/{id}/replies
func (h *CommentHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	parentID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	page, limit := parsePage(r, model.DefaultReplyLimit)
	result, err := h.commentService.ListReplies(r.Context(), parentID, userID, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		default:
			log.Printf("[ERROR] ListReplies handler: user=%d parent=%d err=%v", userID, parentID, err)
			httputil.WriteInternalError(w, "Failed to list replies")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListMyComments handles GET /comments/my-comments
func (h *CommentHandler) ListMyComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.commentService.ListMyComments(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("[ERROR] ListMyComments handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
