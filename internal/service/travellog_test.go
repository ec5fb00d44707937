package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

func newTravelLogService(logRepo *fakeTravelLogRepo, friendshipRepo *fakeFriendshipRepo, likeRepo *fakeLikeRepo) *TravelLogService {
	return NewTravelLogService(logRepo, friendshipRepo, likeRepo, &fakeUserRepo{})
}

func TestTravelLogService_Create_Defaults(t *testing.T) {
	var created *model.TravelLog
	logRepo := &fakeTravelLogRepo{
		createFn: func(ctx context.Context, logEntry *model.TravelLog) error {
			logEntry.ID = 1
			created = logEntry
			return nil
		},
	}
	svc := newTravelLogService(logRepo, &fakeFriendshipRepo{}, &fakeLikeRepo{})

	logEntry, err := svc.Create(context.Background(), 1, model.CreateTravelLogRequest{
		Lat:       48.8566,
		Lng:       2.3522,
		PlaceName: "Paris",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Visibility != model.VisibilityPrivate {
		t.Errorf("Visibility = %q, want default PRIVATE", created.Visibility)
	}
	if !created.AllowLikes || !created.AllowComments {
		t.Errorf("AllowLikes/AllowComments = %v/%v, want true/true", created.AllowLikes, created.AllowComments)
	}
	if logEntry.Author == nil {
		t.Error("Author not hydrated")
	}
}

func TestTravelLogService_Create_Validation(t *testing.T) {
	svc := newTravelLogService(&fakeTravelLogRepo{}, &fakeFriendshipRepo{}, &fakeLikeRepo{})

	tests := []struct {
		name    string
		req     model.CreateTravelLogRequest
		wantErr error
	}{
		{"blank place name", model.CreateTravelLogRequest{PlaceName: "  "}, model.ErrPlaceNameRequired},
		{"latitude too high", model.CreateTravelLogRequest{PlaceName: "x", Lat: 90.1}, model.ErrInvalidCoordinates},
		{"latitude too low", model.CreateTravelLogRequest{PlaceName: "x", Lat: -90.1}, model.ErrInvalidCoordinates},
		{"longitude too high", model.CreateTravelLogRequest{PlaceName: "x", Lng: 180.1}, model.ErrInvalidCoordinates},
		{"longitude too low", model.CreateTravelLogRequest{PlaceName: "x", Lng: -180.1}, model.ErrInvalidCoordinates},
		{"unknown visibility", model.CreateTravelLogRequest{PlaceName: "x", Visibility: "LOUD"}, model.ErrInvalidVisibility},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTravelLogService_GetByID_Gate(t *testing.T) {
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityFriends)}

	t.Run("stranger forbidden", func(t *testing.T) {
		svc := newTravelLogService(logRepo, &fakeFriendshipRepo{}, &fakeLikeRepo{})

		_, err := svc.GetByID(context.Background(), 10, 1)
		if !errors.Is(err, model.ErrTravelLogForbidden) {
			t.Errorf("GetByID() error = %v, want ErrTravelLogForbidden", err)
		}
	})

	t.Run("friend allowed with like state", func(t *testing.T) {
		friendshipRepo := &fakeFriendshipRepo{
			areFriendsFn: func(ctx context.Context, userA, userB int64) (bool, error) {
				return true, nil
			},
		}
		likeRepo := &fakeLikeRepo{
			logLikeExistsFn: func(ctx context.Context, travelLogID, userID int64) (bool, error) {
				return true, nil
			},
		}
		svc := newTravelLogService(logRepo, friendshipRepo, likeRepo)

		logEntry, err := svc.GetByID(context.Background(), 10, 1)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if !logEntry.IsLikedByMe {
			t.Error("IsLikedByMe = false, want true")
		}
	})

	t.Run("owner always allowed", func(t *testing.T) {
		privateRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 1, model.VisibilityPrivate)}
		svc := newTravelLogService(privateRepo, &fakeFriendshipRepo{}, &fakeLikeRepo{})

		if _, err := svc.GetByID(context.Background(), 10, 1); err != nil {
			t.Errorf("GetByID() error = %v", err)
		}
	})
}

func TestTravelLogService_Delete_OwnerOnly(t *testing.T) {
	deleted := false
	logRepo := &fakeTravelLogRepo{
		getByIDFn: visibleLog(10, 1, model.VisibilityPrivate),
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := newTravelLogService(logRepo, &fakeFriendshipRepo{}, &fakeLikeRepo{})

	if err := svc.Delete(context.Background(), 10, 2); !errors.Is(err, model.ErrNotTravelLogOwner) {
		t.Errorf("non-owner Delete() error = %v, want ErrNotTravelLogOwner", err)
	}
	if deleted {
		t.Fatal("log deleted by non-owner")
	}

	if err := svc.Delete(context.Background(), 10, 1); err != nil {
		t.Fatalf("owner Delete() error = %v", err)
	}
	if !deleted {
		t.Error("log not deleted")
	}
}
