package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Search returns public profiles matching the query by nickname or email,
	// ordered by friends_count descending. The searching user is excluded.
	Search(ctx context.Context, query string, excludeID int64, page, limit int) ([]model.SearchedUser, int, error)
	// IncrementFriendsCount applies an atomic delta to friends_count.
	IncrementFriendsCount(ctx context.Context, tx *sqlx.Tx, userID int64, delta int) error
}

type FriendshipRepository interface {
	// Create inserts a PENDING edge from requester to addressee.
	Create(ctx context.Context, requesterID, addresseeID int64) (*model.Friendship, error)
	GetByID(ctx context.Context, id int64) (*model.Friendship, error)
	// FindBetween returns the edge between two users in either direction,
	// or (nil, nil) when no edge exists.
	FindBetween(ctx context.Context, userA, userB int64) (*model.Friendship, error)
	// Accept transitions the edge to ACCEPTED and stamps accepted_at.
	Accept(ctx context.Context, tx *sqlx.Tx, id int64, acceptedAt time.Time) error
	// Reject transitions the edge to REJECTED. Terminal, no counter effect.
	Reject(ctx context.Context, id int64) error
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
	// ListForUser returns edges where the user is either party, newest first,
	// optionally filtered by status. Both endpoint summaries are joined.
	ListForUser(ctx context.Context, userID int64, status *model.FriendshipStatus, page, limit int) ([]model.Friendship, int, error)
	// ListReceived returns PENDING edges addressed to the user, newest first.
	ListReceived(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error)
	// ListSent returns PENDING edges created by the user, newest first.
	ListSent(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error)
	// FriendIDs returns the ids of all users connected to userID by an
	// ACCEPTED edge, regardless of direction.
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
	// AreFriends reports whether an ACCEPTED edge exists in either direction.
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
}

type TravelLogRepository interface {
	Create(ctx context.Context, logEntry *model.TravelLog) error
	GetByID(ctx context.Context, id int64) (*model.TravelLog, error)
	Delete(ctx context.Context, id int64) error
	// ListByUser returns a user's logs restricted to the given visibility
	// tiers; nil visibilities means no restriction (owner view).
	ListByUser(ctx context.Context, userID int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error)
	// ListOwn returns the owner's logs narrowed by the documented filters.
	ListOwn(ctx context.Context, userID int64, filter model.TravelLogFilter, page, limit int) ([]model.TravelLog, int, error)
	// Feed returns candidate logs for a viewer: PUBLIC logs plus friends'
	// FRIENDS/PUBLIC logs, intersected with the visibility filter, newest first.
	Feed(ctx context.Context, friendIDs []int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error)
	UpdateVisibility(ctx context.Context, id int64, visibility model.Visibility) (*model.TravelLog, error)
	IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
	IncrementCommentCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
	IncrementShareCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
	// IncrementViewCount is a single-statement atomic add; it takes no
	// transaction because nothing else moves with it.
	IncrementViewCount(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64, content string, parentID *int64) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	// Update sets new content and marks the comment edited.
	Update(ctx context.Context, id int64, content string) (*model.Comment, error)
	// SoftDelete replaces content with the deletion placeholder and stamps
	// deleted_at; the row stays so reply threads keep their shape.
	SoftDelete(ctx context.Context, tx *sqlx.Tx, id int64, deletedAt time.Time) error
	IncrementReplyCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
	IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error
	// ListTopLevel returns parent_id IS NULL rows for a log with authors joined.
	ListTopLevel(ctx context.Context, travelLogID int64, sort model.CommentSort, page, limit int) ([]model.Comment, int, error)
	ListReplies(ctx context.Context, parentID int64, page, limit int) ([]model.Comment, int, error)
	// RepliesFor materializes the full reply lists for a set of parents,
	// ordered by creation ascending, in one query.
	RepliesFor(ctx context.Context, parentIDs []int64) (map[int64][]model.Comment, error)
	// ListByUser returns the user's non-deleted comments, newest first,
	// with travel log summaries joined.
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Comment, int, error)
}

type LikeRepository interface {
	// InsertTravelLogLike inserts the unique (travel_log_id, user_id) row.
	// Returns model.ErrAlreadyLiked on a uniqueness violation; that
	// constraint is the sole guard against concurrent double-toggles.
	InsertTravelLogLike(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64) error
	// DeleteTravelLogLike removes the row; model.ErrNotLiked when absent.
	DeleteTravelLogLike(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64) error
	TravelLogLikeExists(ctx context.Context, travelLogID, userID int64) (bool, error)
	// CheckTravelLogLikes reports which of the given logs the user has
	// liked, in one query.
	CheckTravelLogLikes(ctx context.Context, userID int64, travelLogIDs []int64) (map[int64]bool, error)
	ListTravelLogLikers(ctx context.Context, travelLogID int64, page, limit int) ([]model.TravelLogLike, int, error)
	ListLikedByUser(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogLike, int, error)

	InsertCommentLike(ctx context.Context, tx *sqlx.Tx, commentID, userID int64) error
	DeleteCommentLike(ctx context.Context, tx *sqlx.Tx, commentID, userID int64) error
	CommentLikeExists(ctx context.Context, commentID, userID int64) (bool, error)
}

type ShareRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, share *model.TravelLogShare) error
	// ListSharedWith returns shares targeted at the user, newest first,
	// with sharer and log summaries joined.
	ListSharedWith(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogShare, int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// ListForUser returns notifications newest first, optionally filtered
	// by read state, with actor summaries joined.
	ListForUser(ctx context.Context, userID int64, isRead *bool, page, limit int) ([]model.Notification, int, error)
	MarkRead(ctx context.Context, userID int64, ids []int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}
