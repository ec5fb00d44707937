package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/database"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
	"github.com/yjym33/travelLog-Backend/internal/repository"
)

type CommentService struct {
	commentRepo    repository.CommentRepository
	travelLogRepo  repository.TravelLogRepository
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	publisher      queue.Publisher
	tx             database.TxManager
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	travelLogRepo repository.TravelLogRepository,
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	publisher queue.Publisher,
	tx database.TxManager,
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		travelLogRepo:  travelLogRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		tx:             tx,
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return model.ErrContentRequired
	}
	if len(content) > model.MaxCommentLength {
		return model.ErrContentTooLong
	}
	return nil
}

// Create adds a comment or a reply. Nesting caps at depth 2: a reply's
// parent must be a top-level comment on the same log and must not be
// deleted. The comment row, the log's comment_count, and (for replies)
// the parent's reply_count commit as one unit.
func (s *CommentService) Create(ctx context.Context, userID int64, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	logEntry, err := s.travelLogRepo.GetByID(ctx, req.TravelLogID)
	if err != nil {
		return nil, err
	}
	if !logEntry.AllowComments {
		return nil, model.ErrCommentsDisabled
	}
	if err := s.authorizeEngagement(ctx, userID, logEntry); err != nil {
		return nil, err
	}

	var parent *model.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if err == model.ErrCommentNotFound {
				return nil, model.ErrParentCommentNotFound
			}
			return nil, err
		}
		if parent.TravelLogID != req.TravelLogID {
			return nil, model.ErrParentMismatch
		}
		if parent.IsDeleted {
			return nil, model.ErrParentCommentDeleted
		}
		if parent.ParentID != nil {
			return nil, model.ErrNestingTooDeep
		}
	}

	var comment *model.Comment
	err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		comment, err = s.commentRepo.Create(ctx, tx, req.TravelLogID, userID, req.Content, req.ParentID)
		if err != nil {
			return err
		}
		if err := s.travelLogRepo.IncrementCommentCount(ctx, tx, req.TravelLogID, 1); err != nil {
			return err
		}
		if parent != nil {
			return s.commentRepo.IncrementReplyCount(ctx, tx, parent.ID, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, userID); err == nil {
		comment.Author = &model.UserSummary{
			ID:           author.ID,
			Email:        author.Email,
			Nickname:     author.Nickname,
			ProfileImage: author.ProfileImage,
			FriendsCount: author.FriendsCount,
		}
	}

	if parent != nil {
		if parent.UserID != userID {
			s.publish(ctx, queue.NewCommentRepliedEvent(userID, parent.UserID, req.TravelLogID, comment.ID))
		}
	} else if logEntry.UserID != userID {
		s.publish(ctx, queue.NewCommentCreatedEvent(userID, logEntry.UserID, req.TravelLogID, comment.ID))
	}

	return comment, nil
}

// Update edits the comment's content and marks it edited. Author only.
func (s *CommentService) Update(ctx context.Context, commentID, userID int64, content string) (*model.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, model.ErrNotCommentOwner
	}
	if comment.IsDeleted {
		return nil, model.ErrCommentAlreadyDeleted
	}

	return s.commentRepo.Update(ctx, commentID, content)
}

// Delete soft-deletes the comment, replacing its content with the
// placeholder so reply threads keep their shape. The log's comment_count
// and the parent's reply_count step down exactly once, in the same
// transaction as the soft delete.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return model.ErrNotCommentOwner
	}
	if comment.IsDeleted {
		return model.ErrCommentAlreadyDeleted
	}

	return s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.commentRepo.SoftDelete(ctx, tx, commentID, time.Now()); err != nil {
			return err
		}
		if err := s.travelLogRepo.IncrementCommentCount(ctx, tx, comment.TravelLogID, -1); err != nil {
			return err
		}
		if comment.ParentID != nil {
			return s.commentRepo.IncrementReplyCount(ctx, tx, *comment.ParentID, -1)
		}
		return nil
	})
}

// ListForTravelLog returns a page of top-level comments with their full
// reply lists attached. Soft-deleted comments appear with placeholder
// content so threads stay coherent.
func (s *CommentService) ListForTravelLog(ctx context.Context, travelLogID, viewerID int64, sort model.CommentSort, page, limit int) (*model.Page, error) {
	logEntry, err := s.travelLogRepo.GetByID(ctx, travelLogID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEngagement(ctx, viewerID, logEntry); err != nil {
		return nil, err
	}
	if !sort.Valid() {
		sort = model.CommentSortCreatedAsc
	}

	comments, total, err := s.commentRepo.ListTopLevel(ctx, travelLogID, sort, page, limit)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]int64, 0, len(comments))
	for i := range comments {
		if comments[i].ReplyCount > 0 {
			parentIDs = append(parentIDs, comments[i].ID)
		}
	}
	replies, err := s.commentRepo.RepliesFor(ctx, parentIDs)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].Replies = replies[comments[i].ID]
	}

	return model.NewPage(comments, page, limit, total), nil
}

// ListReplies returns a page of one comment's replies, oldest first.
func (s *CommentService) ListReplies(ctx context.Context, parentID, viewerID int64, page, limit int) (*model.Page, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	logEntry, err := s.travelLogRepo.GetByID(ctx, parent.TravelLogID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEngagement(ctx, viewerID, logEntry); err != nil {
		return nil, err
	}

	replies, total, err := s.commentRepo.ListReplies(ctx, parentID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(replies, page, limit, total), nil
}

// ListMyComments returns the user's own non-deleted comments, newest
// first, each with its travel log summary.
func (s *CommentService) ListMyComments(ctx context.Context, userID int64, page, limit int) (*model.Page, error) {
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(comments, page, limit, total), nil
}

func (s *CommentService) authorizeEngagement(ctx context.Context, userID int64, logEntry *model.TravelLog) error {
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

func (s *CommentService) publish(ctx context.Context, event queue.EngagementEvent) {
	msgID, err := s.publisher.Publish(ctx, queue.StreamEngagement, event)
	if err != nil {
		log.Printf("[CommentService] Failed to publish %s: err=%v", event.Type, err)
		return
	}
	log.Printf("[CommentService] Published %s: msgID=%s", event.Type, msgID)
}
