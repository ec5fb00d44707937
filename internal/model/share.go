package model

import (
	"errors"
	"time"
)

// ShareType distinguishes a reshare into the sharer's feed from a share
// targeted at a single friend.
type ShareType string

const (
	ShareTypeFeed   ShareType = "FEED"
	ShareTypeDirect ShareType = "DIRECT"
)

// Valid reports whether t is a known share type.
func (t ShareType) Valid() bool {
	return t == ShareTypeFeed || t == ShareTypeDirect
}

// TravelLogShare is a share record. SharedWith is set only for DIRECT shares.
type TravelLogShare struct {
	ID          int64     `db:"id" json:"id"`
	TravelLogID int64     `db:"travel_log_id" json:"travel_log_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	SharedWith  *int64    `db:"shared_with" json:"shared_with,omitempty"`
	ShareType   ShareType `db:"share_type" json:"share_type"`
	Message     *string   `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined fields
	User      *UserSummary      `json:"user,omitempty"`
	TravelLog *TravelLogSummary `json:"travel_log,omitempty"`
}

// MaxShareMessageLength caps the optional share message.
const MaxShareMessageLength = 500

// ShareTravelLogRequest is the request body for sharing a travel log.
type ShareTravelLogRequest struct {
	SharedWith *int64    `json:"shared_with,omitempty"`
	ShareType  ShareType `json:"share_type"`
	Message    *string   `json:"message,omitempty"`
}

// Share errors
var (
	ErrInvalidShareType     = errors.New("invalid share type")
	ErrShareTargetNotFriend = errors.New("can only share with friends")
	ErrShareMessageTooLong  = errors.New("share message too long")
)
