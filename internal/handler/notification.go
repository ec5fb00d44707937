package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/yjym33/travelLog-Backend/internal/httputil"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /notifications with an optional ?isRead= filter.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var isRead *bool
	switch r.URL.Query().Get("isRead") {
	case "":
	case "true":
		v := true
		isRead = &v
	case "false":
		v := false
		isRead = &v
	default:
		httputil.WriteBadRequest(w, "Invalid isRead filter")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.notificationService.List(r.Context(), userID, isRead, page, limit)
	if err != nil {
		log.Printf("[ERROR] List notifications handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// MarkRead handles PATCH /notifications/read. An empty or absent id list
// marks everything read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.MarkReadRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return
		}
	}

	if err := h.notificationService.MarkRead(r.Context(), userID, req.IDs); err != nil {
		log.Printf("[ERROR] MarkRead handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to mark notifications read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Notifications marked read",
	})
}
