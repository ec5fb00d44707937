package model

import (
	"errors"
	"time"
)

// DeletedCommentPlaceholder replaces the content of soft-deleted comments
// so reply threads stay structurally intact.
const DeletedCommentPlaceholder = "This comment has been deleted."

// MaxCommentLength caps comment bodies.
const MaxCommentLength = 1000

// CommentSort selects the ordering for top-level comment listings.
type CommentSort string

const (
	CommentSortCreatedAsc  CommentSort = "createdAt"
	CommentSortCreatedDesc CommentSort = "-createdAt"
	CommentSortLikesDesc   CommentSort = "-likeCount"
)

// Valid reports whether s is a known sort mode.
func (s CommentSort) Valid() bool {
	switch s {
	case CommentSortCreatedAsc, CommentSortCreatedDesc, CommentSortLikesDesc:
		return true
	}
	return false
}

// Comment belongs to one travel log. A comment with a non-nil ParentID is
// a reply; replies can never be parents themselves (nesting caps at two
// levels). Soft-deleted rows keep their place in the thread.
type Comment struct {
	ID          int64      `db:"id" json:"id"`
	TravelLogID int64      `db:"travel_log_id" json:"travel_log_id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	ParentID    *int64     `db:"parent_id" json:"parent_id,omitempty"`
	Content     string     `db:"content" json:"content"`
	LikeCount   int        `db:"like_count" json:"like_count"`
	ReplyCount  int        `db:"reply_count" json:"reply_count"`
	IsEdited    bool       `db:"is_edited" json:"is_edited"`
	IsDeleted   bool       `db:"is_deleted" json:"is_deleted"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`

	// Joined fields (not in travel_log_comments table)
	Author    *UserSummary      `json:"author,omitempty"`
	TravelLog *TravelLogSummary `json:"travel_log,omitempty"`
	Replies   []Comment         `json:"replies,omitempty"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	TravelLogID int64  `json:"travel_log_id"`
	Content     string `json:"content"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

// UpdateCommentRequest is the request body for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// Comment errors
var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrNotCommentOwner       = errors.New("not the owner of this comment")
	ErrCommentAlreadyDeleted = errors.New("comment already deleted")
	ErrCommentsDisabled      = errors.New("comments are disabled for this travel log")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrParentCommentDeleted  = errors.New("cannot reply to a deleted comment")
	ErrParentMismatch        = errors.New("parent comment belongs to a different travel log")
	ErrNestingTooDeep        = errors.New("cannot reply to a reply")
	ErrContentRequired       = errors.New("comment content is required")
	ErrContentTooLong        = errors.New("comment content too long")
)
