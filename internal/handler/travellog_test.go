package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/yjym33/travelLog-Backend/internal/httputil"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/repository"
	"github.com/yjym33/travelLog-Backend/internal/service"
	"github.com/yjym33/travelLog-Backend/internal/transport/http/middleware"
)

// The stubs embed the repository interfaces and override only the methods
// the exercised path touches; anything else panics, which is the point.

type stubTravelLogRepo struct {
	repository.TravelLogRepository
	log *model.TravelLog
}

func (s *stubTravelLogRepo) GetByID(ctx context.Context, id int64) (*model.TravelLog, error) {
	return s.log, nil
}

type stubFriendshipRepo struct {
	repository.FriendshipRepository
	friends bool
}

func (s *stubFriendshipRepo) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	return s.friends, nil
}

func shareRequest(t *testing.T, userID int64, travelLogID string, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/travel-logs/"+travelLogID+"/share", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", travelLogID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func TestTravelLogHandler_Share_NonFriendTargetIsBadRequest(t *testing.T) {
	logRepo := &stubTravelLogRepo{
		log: &model.TravelLog{ID: 10, UserID: 1, Visibility: model.VisibilityPublic, AllowLikes: true, AllowComments: true},
	}
	socialService := service.NewSocialTravelService(
		logRepo, &stubFriendshipRepo{friends: false}, nil, nil, nil)
	h := NewTravelLogHandler(nil, socialService)

	rec := httptest.NewRecorder()
	h.Share(rec, shareRequest(t, 1, "10", `{"share_type":"DIRECT","shared_with":3}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if resp.Error.Code != httputil.ErrCodeBadRequest {
		t.Errorf("error code = %q, want %q", resp.Error.Code, httputil.ErrCodeBadRequest)
	}
}
