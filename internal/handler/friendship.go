package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/yjym33/travelLog-Backend/internal/httputil"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

type FriendshipHandler struct {
	friendshipService *service.FriendshipService
}

func NewFriendshipHandler(friendshipService *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// SendRequest handles POST /friends/requests
func (h *FriendshipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.SendFriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	friendship, err := h.friendshipService.SendRequest(r.Context(), userID, req.AddresseeID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSelfFriendRequest):
			httputil.WriteBadRequest(w, "Cannot send a friend request to yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrFriendRequestsDisabled):
			httputil.WriteForbidden(w, "This user does not accept friend requests")
		case errors.Is(err, model.ErrAlreadyFriends):
			httputil.WriteConflict(w, "Already friends")
		case errors.Is(err, model.ErrFriendRequestPending):
			httputil.WriteConflict(w, "A request is already pending")
		case errors.Is(err, model.ErrUserBlocked):
			httputil.WriteForbidden(w, "Cannot send a request to this user")
		default:
			log.Printf("[ERROR] SendRequest handler: user=%d addressee=%d err=%v", userID, req.AddresseeID, err)
			httputil.WriteInternalError(w, "Failed to send friend request")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, friendship)
}

// Accept handles PATCH /friends/requests/{requestId}/accept
func (h *FriendshipHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

// Reject handles PATCH /friends/requests/{requestId}/reject
func (h *FriendshipHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *FriendshipHandler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	requestID, err := parseID(r, "requestId")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request ID")
		return
	}

	var friendship *model.Friendship
	if accept {
		friendship, err = h.friendshipService.Accept(r.Context(), requestID, userID)
	} else {
		friendship, err = h.friendshipService.Reject(r.Context(), requestID, userID)
	}
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFriendshipNotFound):
			httputil.WriteNotFound(w, "Friend request not found")
		case errors.Is(err, model.ErrNotRequestAddressee):
			httputil.WriteForbidden(w, "Only the addressee can respond to this request")
		case errors.Is(err, model.ErrRequestAlreadyHandled):
			httputil.WriteConflict(w, "Friend request already processed")
		default:
			log.Printf("[ERROR] Respond handler: user=%d request=%d accept=%t err=%v", userID, requestID, accept, err)
			httputil.WriteInternalError(w, "Failed to respond to friend request")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, friendship)
}

// Remove handles DELETE /friends/{friendshipId}
func (h *FriendshipHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	friendshipID, err := parseID(r, "friendshipId")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid friendship ID")
		return
	}

	if err := h.friendshipService.Remove(r.Context(), friendshipID, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrFriendshipNotFound):
			httputil.WriteNotFound(w, "Friendship not found")
		case errors.Is(err, model.ErrNotFriendshipParty):
			httputil.WriteForbidden(w, "You are not a party to this friendship")
		default:
			log.Printf("[ERROR] Remove handler: user=%d friendship=%d err=%v", userID, friendshipID, err)
			httputil.WriteInternalError(w, "Failed to remove friendship")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Friendship removed successfully",
	})
}

// List handles GET /friends with an optional ?status= filter.
func (h *FriendshipHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)

	var status *model.FriendshipStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.FriendshipStatus(strings.ToUpper(raw))
		if !s.Valid() {
			httputil.WriteBadRequest(w, "Invalid status filter")
			return
		}
		status = &s
	}

	result, err := h.friendshipService.ListFriends(r.Context(), userID, status, page, limit)
	if err != nil {
		log.Printf("[ERROR] List friends handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list friends")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListReceived handles GET /friends/requests/received
func (h *FriendshipHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.friendshipService.ListReceivedRequests(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("[ERROR] ListReceived handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list received requests")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// ListSent handles GET /friends/requests/sent
func (h *FriendshipHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.friendshipService.ListSentRequests(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("[ERROR] ListSent handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to list sent requests")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Search handles GET /friends/search?q=
func (h *FriendshipHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteBadRequest(w, "Search query is required")
		return
	}

	page, limit := parsePage(r, model.DefaultPageLimit)
	result, err := h.friendshipService.SearchUsers(r.Context(), userID, query, page, limit)
	if err != nil {
		log.Printf("[ERROR] Search handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to search users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Status handles GET /friends/status/{userId}
func (h *FriendshipHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	otherID, err := parseID(r, "userId")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	info, err := h.friendshipService.Status(r.Context(), userID, otherID)
	if err != nil {
		log.Printf("[ERROR] Status handler: user=%d other=%d err=%v", userID, otherID, err)
		httputil.WriteInternalError(w, "Failed to get friendship status")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, info)
}
