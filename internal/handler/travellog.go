package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yjym33/travelLog-Backend/internal/httputil"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

type TravelLogHandler struct {
	travelLogService *service.TravelLogService
	socialService    *service.SocialTravelService
}

func NewTravelLogHandler(travelLogService *service.TravelLogService, socialService *service.SocialTravelService) *TravelLogHandler {
	return &TravelLogHandler{
		travelLogService: travelLogService,
		socialService:    socialService,
	}
}

// Create handles POST /travel-logs
func (h *TravelLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateTravelLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	logEntry, err := h.travelLogService.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlaceNameRequired):
			httputil.WriteBadRequest(w, "Place name is required")
		case errors.Is(err, model.ErrInvalidCoordinates):
			httputil.WriteBadRequest(w, "Coordinates out of range")
		case errors.Is(err, model.ErrInvalidVisibility):
			httputil.WriteBadRequest(w, "Invalid visibility")
		default:
			log.Printf("[ERROR] Create travel log handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, "Failed to create travel log")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, logEntry)
}

// Get handles GET /travel-logs/{id}
func (h *TravelLogHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	logEntry, err := h.travelLogService.GetByID(r.Context(), travelLogID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		default:
			log.Printf("[ERROR] Get travel log handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to get travel log")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, logEntry)
}

// Delete handles DELETE /travel-logs/{id}
func (h *TravelLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.travelLogService.Delete(r.Context(), travelLogID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrNotTravelLogOwner):
			httputil.WriteForbidden(w, "You can only delete your own travel logs")
		default:
			log.Printf("[ERROR] Delete travel log handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to delete travel log")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Travel log deleted successfully",
	})
}

// ListOwn handles GET /travel-logs with filter query params.
func (h *TravelLogHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	filter := model.TravelLogFilter{
		Emotions:  splitParam(r.URL.Query().Get("emotions")),
		Countries: splitParam(r.URL.Query().Get("countries")),
		Tags:      splitParam(r.URL.Query().Get("tags")),
	}
	var err error
	if filter.StartDate, err = parseDateParam(r.URL.Query().Get("startDate")); err != nil {
		httputil.WriteBadRequest(w, "Invalid startDate")
		return
	}
	if filter.EndDate, err = parseDateParam(r.URL.Query().Get("endDate")); err != nil {
		httputil.WriteBadRequest(w, "Invalid endDate")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.travelLogService.ListOwn(r.Context(), userID, filter, page, limit)
	if err != nil {
		log.Printf("[ERROR] ListOwn handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list travel logs")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Feed handles GET /travel-logs/feed with an optional ?visibility= filter.
func (h *TravelLogHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var visibilities []model.Visibility
	for _, raw := range splitParam(r.URL.Query().Get("visibility")) {
		v := model.Visibility(strings.ToUpper(raw))
		if !v.Valid() || v == model.VisibilityPrivate {
			httputil.WriteBadRequest(w, "Invalid visibility filter")
			return
		}
		visibilities = append(visibilities, v)
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.socialService.GetFeed(r.Context(), userID, visibilities, page, limit)
	if err != nil {
		log.Printf("[ERROR] Feed handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to compose feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListByUser handles GET /travel-logs/user/{userId}
func (h *TravelLogHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	ownerID, err := parseID(r, "userId")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.socialService.GetUserTravelLogs(r.Context(), ownerID, userID, page, limit)
	if err != nil {
		log.Printf("[ERROR] ListByUser handler: user=%d owner=%d err=%v", userID, ownerID, err)
		httputil.WriteInternalError(w, "Failed to list travel logs")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// UpdateVisibility handles PATCH /travel-logs/{id}/visibility
func (h *TravelLogHandler) UpdateVisibility(w http.ResponseWriter, r *http.Request) {
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

	var req model.UpdateVisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	logEntry, err := h.socialService.UpdateVisibility(r.Context(), travelLogID, userID, req.Visibility)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidVisibility):
			httputil.WriteBadRequest(w, "Invalid visibility")
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrNotTravelLogOwner):
			httputil.WriteForbidden(w, "You can only change your own travel logs")
		default:
			log.Printf("[ERROR] UpdateVisibility handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to update visibility")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, logEntry)
}

// Share handles POST /travel-logs/{id}/share
func (h *TravelLogHandler) Share(w http.ResponseWriter, r *http.Request) {
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

	var req model.ShareTravelLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	share, err := h.socialService.Share(r.Context(), travelLogID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidShareType):
			httputil.WriteBadRequest(w, "Invalid share type")
		case errors.Is(err, model.ErrShareMessageTooLong):
			httputil.WriteBadRequest(w, "Share message too long")
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		case errors.Is(err, model.ErrTravelLogForbidden):
			httputil.WriteForbidden(w, "Not allowed to view this travel log")
		case errors.Is(err, model.ErrShareTargetNotFriend):
			httputil.WriteBadRequest(w, "You can only share with friends")
		default:
			log.Printf("[ERROR] Share handler: user=%d log=%d err=%v", userID, travelLogID, err)
			httputil.WriteInternalError(w, "Failed to share travel log")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, share)
}

// SharedWithMe handles GET /travel-logs/shared/received
func (h *TravelLogHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.socialService.GetSharedWithMe(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("[ERROR] SharedWithMe handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list shares")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// IncrementView handles POST /travel-logs/{id}/view. No authentication
// and no visibility gate; every call counts.
func (h *TravelLogHandler) IncrementView(w http.ResponseWriter, r *http.Request) {
	travelLogID, err := parseID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid travel log ID")
		return
	}

	if err := h.socialService.IncrementViewCount(r.Context(), travelLogID); err != nil {
		switch {
		case errors.Is(err, model.ErrTravelLogNotFound):
			httputil.WriteNotFound(w, "Travel log not found")
		default:
			log.Printf("[ERROR] IncrementView handler: log=%d err=%v", travelLogID, err)
			httputil.WriteInternalError(w, "Failed to record view")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "View recorded",
	})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
