package service

import (
	"context"
	"strings"

	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/repository"
)

type TravelLogService struct {
	travelLogRepo  repository.TravelLogRepository
	friendshipRepo repository.FriendshipRepository
	likeRepo       repository.LikeRepository
	userRepo       repository.UserRepository
}

func NewTravelLogService(
	travelLogRepo repository.TravelLogRepository,
	friendshipRepo repository.FriendshipRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
) *TravelLogService {
	return &TravelLogService{
		travelLogRepo:  travelLogRepo,
		friendshipRepo: friendshipRepo,
		likeRepo:       likeRepo,
		userRepo:       userRepo,
	}
}

// Create stores a new travel log. Visibility defaults to PRIVATE; likes
// and comments default to enabled.
func (s *TravelLogService) Create(ctx context.Context, userID int64, req model.CreateTravelLogRequest) (*model.TravelLog, error) {
	if strings.TrimSpace(req.PlaceName) == "" {
		return nil, model.ErrPlaceNameRequired
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		return nil, model.ErrInvalidCoordinates
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, model.ErrInvalidVisibility
	}

	allowLikes, allowComments := true, true
	if req.AllowLikes != nil {
		allowLikes = *req.AllowLikes
	}
	if req.AllowComments != nil {
		allowComments = *req.AllowComments
	}

	logEntry := &model.TravelLog{
		UserID:        userID,
		Lat:           req.Lat,
		Lng:           req.Lng,
		PlaceName:     req.PlaceName,
		Country:       req.Country,
		Emotion:       req.Emotion,
		Photos:        req.Photos,
		Diary:         req.Diary,
		Tags:          req.Tags,
		Visibility:    visibility,
		AllowLikes:    allowLikes,
		AllowComments: allowComments,
	}
	if err := s.travelLogRepo.Create(ctx, logEntry); err != nil {
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, userID); err == nil {
		logEntry.Author = &model.UserSummary{
			ID:           author.ID,
			Email:        author.Email,
			Nickname:     author.Nickname,
			ProfileImage: author.ProfileImage,
			FriendsCount: author.FriendsCount,
		}
	}
	return logEntry, nil
}

// GetByID fetches a single log gated by visibility: the owner always
// sees it, others get ErrTravelLogForbidden unless the tier admits them.
func (s *TravelLogService) GetByID(ctx context.Context, travelLogID, viewerID int64) (*model.TravelLog, error) {
	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return nil, err
	}

	if viewerID != logEntry.UserID {
		areFriends, err := s.friendshipRepo.AreFriends(ctx, viewerID, logEntry.UserID)
		if err != nil {
			return nil, err
		}
		if !CanView(viewerID, logEntry.UserID, logEntry.Visibility, areFriends) {
			return nil, model.ErrTravelLogForbidden
		}
	}

	if viewerID != 0 {
		liked, err := s.likeRepo.TravelLogLikeExists(ctx, travelLogID, viewerID)
		if err == nil {
			logEntry.IsLikedByMe = liked
		}
	}
	return logEntry, nil
}

// ListOwn returns the owner's logs across all tiers, narrowed by the
// documented filters.
func (s *TravelLogService) ListOwn(ctx context.Context, userID int64, filter model.TravelLogFilter, page, limit int) (*model.Page, error) {
	logs, total, err := s.travelLogRepo.ListOwn(ctx, userID, filter, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(logs, page, limit, total), nil
}

// Delete removes a log. Owner only; likes, comments and shares go with
// it via cascading deletes.
func (s *TravelLogService) Delete(ctx context.Context, travelLogID, userID int64) error {
	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return err
	}
	if logEntry.UserID != userID {
		return model.ErrNotTravelLogOwner
	}
	return s.travelLogRepo.Delete(ctx, travelLogID)
}
