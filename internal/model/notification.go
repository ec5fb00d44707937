package model

import "time"

// Notification types
const (
	NotifFriendRequested = "friend_requested"
	NotifFriendAccepted  = "friend_accepted"
	NotifTravelLogLiked  = "travel_log_liked"
	NotifCommentCreated  = "comment_created"
	NotifCommentReplied  = "comment_replied"
)

// Notification is written by the engagement worker, never by request
// handlers directly. Losing one affects the inbox only, never a counter.
type Notification struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	ActorID     int64     `db:"actor_id" json:"actor_id"`
	Type        string    `db:"type" json:"type"`
	TravelLogID *int64    `db:"travel_log_id" json:"travel_log_id,omitempty"`
	CommentID   *int64    `db:"comment_id" json:"comment_id,omitempty"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined field
	Actor *UserSummary `json:"actor,omitempty"`
}

// MarkReadRequest is the request body for marking notifications read.
// Empty IDs means "mark everything read".
type MarkReadRequest struct {
	IDs []int64 `json:"ids"`
}
