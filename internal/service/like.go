package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/database"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
	"github.com/yjym33/travelLog-Backend/internal/repository"
)

type LikeService struct {
	likeRepo       repository.LikeRepository
	travelLogRepo  repository.TravelLogRepository
	commentRepo    repository.CommentRepository
	friendshipRepo repository.FriendshipRepository
	publisher      queue.Publisher
	tx             database.TxManager
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	travelLogRepo repository.TravelLogRepository,
	commentRepo repository.CommentRepository,
	friendshipRepo repository.FriendshipRepository,
	publisher queue.Publisher,
	tx database.TxManager,
) *LikeService {
	return &LikeService{
		likeRepo:       likeRepo,
		travelLogRepo:  travelLogRepo,
		commentRepo:    commentRepo,
		friendshipRepo: friendshipRepo,
		publisher:      publisher,
		tx:             tx,
	}
}

// ToggleTravelLogLike flips the viewer's like on a travel log. The like
// row and the counter delta move in one transaction; the unique
// constraint is the only guard against concurrent double-toggles, so an
// insert conflict falls through to the unlike path.
func (s *LikeService) ToggleTravelLogLike(ctx context.Context, travelLogID, userID int64) (*model.ToggleResult, error) {
	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return nil, err
	}
	if !logEntry.AllowLikes {
		return nil, model.ErrLikesDisabled
	}
	if err := s.authorizeEngagement(ctx, userID, logEntry); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.TravelLogLikeExists(ctx, travelLogID, userID)
	if err != nil {
		return nil, err
	}

	if !liked {
		err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
			if err := s.likeRepo.InsertTravelLogLike(ctx, tx, travelLogID, userID); err != nil {
				return err
			}
			return s.travelLogRepo.IncrementLikeCount(ctx, tx, travelLogID, 1)
		})
		if err == nil {
			if logEntry.UserID != userID {
				s.publish(ctx, queue.NewTravelLogLikedEvent(userID, logEntry.UserID, travelLogID))
			}
			return &model.ToggleResult{Liked: true}, nil
		}
		if !errors.Is(err, model.ErrAlreadyLiked) {
			return nil, fmt.Errorf("like travel log: %w", err)
		}
		// Lost the race to a concurrent like; fall through and unlike.
	}

	err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.likeRepo.DeleteTravelLogLike(ctx, tx, travelLogID, userID); err != nil {
			return err
		}
		return s.travelLogRepo.IncrementLikeCount(ctx, tx, travelLogID, -1)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotLiked) {
			// Concurrent unlike already removed the row; treat as unliked.
			return &model.ToggleResult{Liked: false}, nil
		}
		return nil, fmt.Errorf("unlike travel log: %w", err)
	}
	return &model.ToggleResult{Liked: false}, nil
}

// ToggleCommentLike flips the viewer's like on a comment, same discipline
// as the travel-log toggle. No notification event fires for comment likes.
func (s *LikeService) ToggleCommentLike(ctx context.Context, commentID, userID int64) (*model.ToggleResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted {
		return nil, model.ErrCommentAlreadyDeleted
	}

	logEntry, err := s.travelLogRepo.GetByID(ctx, comment.TravelLogID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEngagement(ctx, userID, logEntry); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.CommentLikeExists(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	if !liked {
		err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
			if err := s.likeRepo.InsertCommentLike(ctx, tx, commentID, userID); err != nil {
				return err
			}
			return s.commentRepo.IncrementLikeCount(ctx, tx, commentID, 1)
		})
		if err == nil {
			return &model.ToggleResult{Liked: true}, nil
		}
		if !errors.Is(err, model.ErrAlreadyLiked) {
			return nil, fmt.Errorf("like comment: %w", err)
		}
	}

	err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.likeRepo.DeleteCommentLike(ctx, tx, commentID, userID); err != nil {
			return err
		}
		return s.commentRepo.IncrementLikeCount(ctx, tx, commentID, -1)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotLiked) {
			return &model.ToggleResult{Liked: false}, nil
		}
		return nil, fmt.Errorf("unlike comment: %w", err)
	}
	return &model.ToggleResult{Liked: false}, nil
}

// ListTravelLogLikes returns who liked a log, newest first. The viewer
// must be able to see the log itself.
func (s *LikeService) ListTravelLogLikes(ctx context.Context, travelLogID, viewerID int64, page, limit int) (*model.Page, error) {
	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEngagement(ctx, viewerID, logEntry); err != nil {
		return nil, err
	}

	likes, total, err := s.likeRepo.ListTravelLogLikers(ctx, travelLogID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(likes, page, limit, total), nil
}

// ListMyLikes returns the logs the user has liked, newest like first.
func (s *LikeService) ListMyLikes(ctx context.Context, userID int64, page, limit int) (*model.Page, error) {
	likes, total, err := s.likeRepo.ListLikedByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(likes, page, limit, total), nil
}

// CheckLiked reports whether the user has liked the given log.
func (s *LikeService) CheckLiked(ctx context.Context, travelLogID, userID int64) (bool, error) {
	return s.likeRepo.TravelLogLikeExists(ctx, travelLogID, userID)
}

// authorizeEngagement applies the visibility gate: engaging with a log
// requires being able to view it.
func (s *LikeService) authorizeEngagement(ctx context.Context, userID int64, logEntry *model.TravelLog) error {
	if userID == logEntry.UserID {
		return nil
	}
	areFriends, err := s.friendshipRepo.AreFriends(ctx, userID, logEntry.UserID)
	if err != nil {
		return err
	}
	if !CanView(userID, logEntry.UserID, logEntry.Visibility, areFriends) {
		return model.ErrTravelLogForbidden
	}
	return nil
}

func (s *LikeService) publish(ctx context.Context, event queue.EngagementEvent) {
	msgID, err := s.publisher.Publish(ctx, queue.StreamEngagement, event)
	if err != nil {
		log.Printf("[LikeService] Failed to publish %s: err=%v", event.Type, err)
		return
	}
	log.Printf("[LikeService] Published %s: msgID=%s", event.Type, msgID)
}
