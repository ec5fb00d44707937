package service

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/database"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/repository"
)

// SocialTravelService composes the social surfaces over travel logs: the
// feed, other users' log listings, audience changes, shares, and views.
type SocialTravelService struct {
	travelLogRepo  repository.TravelLogRepository
	friendshipRepo repository.FriendshipRepository
	likeRepo       repository.LikeRepository
	shareRepo      repository.ShareRepository
	tx             database.TxManager
}

func NewSocialTravelService(
	travelLogRepo repository.TravelLogRepository,
	friendshipRepo repository.FriendshipRepository,
	likeRepo repository.LikeRepository,
	shareRepo repository.ShareRepository,
	tx database.TxManager,
) *SocialTravelService {
	return &SocialTravelService{
		travelLogRepo:  travelLogRepo,
		friendshipRepo: friendshipRepo,
		likeRepo:       likeRepo,
		shareRepo:      shareRepo,
		tx:             tx,
	}
}

// GetFeed composes the viewer's feed: all PUBLIC logs plus friends'
// FRIENDS-tier logs, intersected with an optional visibility filter,
// newest first. Each page is annotated with the viewer's like state in
// one batch query.
func (s *SocialTravelService) GetFeed(ctx context.Context, viewerID int64, visibilities []model.Visibility, page, limit int) (*model.Page, error) {
	friendIDs, err := s.friendshipRepo.FriendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if len(visibilities) == 0 {
		visibilities = []model.Visibility{model.VisibilityFriends, model.VisibilityPublic}
	}

	logs, total, err := s.travelLogRepo.Feed(ctx, friendIDs, visibilities, page, limit)
	if err != nil {
		return nil, err
	}

	if err := s.annotateLikes(ctx, viewerID, logs); err != nil {
		log.Printf("[SocialTravelService] Failed to annotate like state: err=%v", err)
	}

	return model.NewPage(logs, page, limit, total), nil
}

// GetUserTravelLogs lists another user's logs filtered to the tiers the
// viewer is entitled to. No Forbidden here; invisible tiers are silently
// absent.
func (s *SocialTravelService) GetUserTravelLogs(ctx context.Context, ownerID, viewerID int64, page, limit int) (*model.Page, error) {
	isOwner := ownerID == viewerID
	areFriends := false
	if !isOwner {
		var err error
		areFriends, err = s.friendshipRepo.AreFriends(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
	}

	logs, total, err := s.travelLogRepo.ListByUser(ctx, ownerID, VisibleTiers(isOwner, areFriends), page, limit)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		if err := s.annotateLikes(ctx, viewerID, logs); err != nil {
			log.Printf("[SocialTravelService] Failed to annotate like state: err=%v", err)
		}
	}

	return model.NewPage(logs, page, limit, total), nil
}

// UpdateVisibility changes a log's audience. Owner only. Widening or
// narrowing takes effect immediately for future reads; counters are
// untouched.
func (s *SocialTravelService) UpdateVisibility(ctx context.Context, travelLogID, userID int64, visibility model.Visibility) (*model.TravelLog, error) {
	if !visibility.Valid() {
		return nil, model.ErrInvalidVisibility
	}

	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return nil, err
	}
	if logEntry.UserID != userID {
		return nil, model.ErrNotTravelLogOwner
	}

	return s.travelLogRepo.UpdateVisibility(ctx, travelLogID, visibility)
}

// Share records a share of a log. The sharer must be able to view the
// source log; naming a sharedWith target requires that target to be a
// friend of the sharer. The share row and the log's share_count commit
// together.
func (s *SocialTravelService) Share(ctx context.Context, travelLogID, userID int64, req model.ShareTravelLogRequest) (*model.TravelLogShare, error) {
	if !req.ShareType.Valid() {
		return nil, model.ErrInvalidShareType
	}
	if req.Message != nil && len(*req.Message) > model.MaxShareMessageLength {
		return nil, model.ErrShareMessageTooLong
	}
	if req.ShareType == model.ShareTypeDirect && req.SharedWith == nil {
		return nil, model.ErrInvalidShareType
	}

	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return nil, err
	}

	if userID != logEntry.UserID {
		areFriends, err := s.friendshipRepo.AreFriends(ctx, userID, logEntry.UserID)
		if err != nil {
			return nil, err
		}
		if !CanView(userID, logEntry.UserID, logEntry.Visibility, areFriends) {
			return nil, model.ErrTravelLogForbidden
		}
	}

	// The friendship requirement keys on the target being named, not on
	// the share type; a FEED share can still carry a sharedWith.
	if req.SharedWith != nil {
		areFriends, err := s.friendshipRepo.AreFriends(ctx, userID, *req.SharedWith)
		if err != nil {
			return nil, err
		}
		if !areFriends {
			return nil, model.ErrShareTargetNotFriend
		}
	}

	share := &model.TravelLogShare{
		TravelLogID: travelLogID,
		UserID:      userID,
		SharedWith:  req.SharedWith,
		ShareType:   req.ShareType,
		Message:     req.Message,
	}
	err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.shareRepo.Create(ctx, tx, share); err != nil {
			return err
		}
		return s.travelLogRepo.IncrementShareCount(ctx, tx, travelLogID, 1)
	})
	if err != nil {
		return nil, err
	}
	return share, nil
}

// GetSharedWithMe lists shares targeted at the user, newest first.
func (s *SocialTravelService) GetSharedWithMe(ctx context.Context, userID int64, page, limit int) (*model.Page, error) {
	shares, total, err := s.shareRepo.ListSharedWith(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(shares, page, limit, total), nil
}

// IncrementViewCount bumps view_count unconditionally: no authentication,
// no visibility gate, no dedup. A single atomic statement, so it needs
// no transaction.
func (s *SocialTravelService) IncrementViewCount(ctx context.Context, travelLogID int64) error {
	return s.travelLogRepo.IncrementViewCount(ctx, travelLogID)
}

func (s *SocialTravelService) annotateLikes(ctx context.Context, viewerID int64, logs []model.TravelLog) error {
	if len(logs) == 0 {
		return nil
	}
	ids := make([]int64, len(logs))
	for i := range logs {
		ids[i] = logs[i].ID
	}
	liked, err := s.likeRepo.CheckTravelLogLikes(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for i := range logs {
		logs[i].IsLikedByMe = liked[logs[i].ID]
	}
	return nil
}
