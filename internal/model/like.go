package model

import (
	"errors"
	"time"
)

// TravelLogLike is a unique (travel_log_id, user_id) row. Toggling is the
// only mutation: presence flips to absence and back.
type TravelLogLike struct {
	ID          int64     `db:"id" json:"id"`
	TravelLogID int64     `db:"travel_log_id" json:"travel_log_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined fields
	User      *UserSummary      `json:"user,omitempty"`
	TravelLog *TravelLogSummary `json:"travel_log,omitempty"`
}

// CommentLike is a unique (comment_id, user_id) row.
type CommentLike struct {
	ID        int64     `db:"id" json:"id"`
	CommentID int64     `db:"comment_id" json:"comment_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ToggleResult reports the state after a like toggle.
type ToggleResult struct {
	Liked bool `json:"liked"`
}

// Like errors
var (
	ErrAlreadyLiked  = errors.New("already liked")
	ErrNotLiked      = errors.New("not liked")
	ErrLikesDisabled = errors.New("likes are disabled for this travel log")
)
