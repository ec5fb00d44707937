package model

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// Visibility is the audience tier of a travel log.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityFriends Visibility = "FRIENDS"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Valid reports whether v is one of the known visibility tiers.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityFriends, VisibilityPublic:
		return true
	}
	return false
}

// TravelLog represents a single travel record with its engagement counters.
// The counters are denormalized: they are mutated only in the same
// transaction as the child row they aggregate, never recomputed on read.
type TravelLog struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	Lat           float64        `db:"lat" json:"lat"`
	Lng           float64        `db:"lng" json:"lng"`
	PlaceName     string         `db:"place_name" json:"place_name"`
	Country       string         `db:"country" json:"country"`
	Emotion       string         `db:"emotion" json:"emotion"`
	Photos        pq.StringArray `db:"photos" json:"photos"`
	Diary         string         `db:"diary" json:"diary"`
	Tags          pq.StringArray `db:"tags" json:"tags"`
	Visibility    Visibility     `db:"visibility" json:"visibility"`
	AllowLikes    bool           `db:"allow_likes" json:"allow_likes"`
	AllowComments bool           `db:"allow_comments" json:"allow_comments"`
	LikeCount     int            `db:"like_count" json:"like_count"`
	CommentCount  int            `db:"comment_count" json:"comment_count"`
	ShareCount    int            `db:"share_count" json:"share_count"`
	ViewCount     int            `db:"view_count" json:"view_count"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`

	// Joined fields (not in travel_logs table)
	Author      *UserSummary `json:"author,omitempty"`
	IsLikedByMe bool         `json:"is_liked_by_me"`
}

// TravelLogSummary is a lightweight projection joined onto shares,
// likes and comment listings.
type TravelLogSummary struct {
	ID        int64          `db:"id" json:"id"`
	PlaceName string         `db:"place_name" json:"place_name"`
	Country   string         `db:"country" json:"country"`
	Photos    pq.StringArray `db:"photos" json:"photos"`
}

// TravelLogFilter holds the documented list filters for a user's own logs.
// Zero values mean "no filter".
type TravelLogFilter struct {
	Emotions  []string
	Countries []string
	Tags      []string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateTravelLogRequest is the request body for creating a travel log.
type CreateTravelLogRequest struct {
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	PlaceName     string     `json:"place_name"`
	Country       string     `json:"country"`
	Emotion       string     `json:"emotion"`
	Photos        []string   `json:"photos"`
	Diary         string     `json:"diary"`
	Tags          []string   `json:"tags"`
	Visibility    Visibility `json:"visibility"`
	AllowLikes    *bool      `json:"allow_likes"`
	AllowComments *bool      `json:"allow_comments"`
}

// UpdateVisibilityRequest is the request body for changing a log's audience.
type UpdateVisibilityRequest struct {
	Visibility Visibility `json:"visibility"`
}

// TravelLog errors
var (
	ErrTravelLogNotFound  = errors.New("travel log not found")
	ErrNotTravelLogOwner  = errors.New("not the owner of this travel log")
	ErrTravelLogForbidden = errors.New("not allowed to view this travel log")
	ErrInvalidVisibility  = errors.New("invalid visibility")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrPlaceNameRequired  = errors.New("place name is required")
)
