package model

import (
	"errors"
	"time"
)

// FriendshipStatus is the lifecycle state of a friendship edge.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
	FriendshipRejected FriendshipStatus = "REJECTED"
	// FriendshipBlocked is set by moderation tooling only; the request
	// lifecycle never produces it, but sendRequest treats it as a hard stop.
	FriendshipBlocked FriendshipStatus = "BLOCKED"
)

// Valid reports whether s is one of the known statuses.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipPending, FriendshipAccepted, FriendshipRejected, FriendshipBlocked:
		return true
	}
	return false
}

// Friendship is a single directed edge between two users. The edge is
// stored once per unordered pair; consumers must treat an ACCEPTED edge
// as undirected.
type Friendship struct {
	ID          int64            `db:"id" json:"id"`
	RequesterID int64            `db:"requester_id" json:"requester_id"`
	AddresseeID int64            `db:"addressee_id" json:"addressee_id"`
	Status      FriendshipStatus `db:"status" json:"status"`
	AcceptedAt  *time.Time       `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`

	// Joined fields (not in friendships table)
	Requester *UserSummary `json:"requester,omitempty"`
	Addressee *UserSummary `json:"addressee,omitempty"`
}

// OtherParty returns the id of the edge's other endpoint as seen from userID.
func (f *Friendship) OtherParty(userID int64) int64 {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

// IsParty reports whether userID is one of the edge's endpoints.
func (f *Friendship) IsParty(userID int64) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// FriendshipStatusInfo describes the relationship between a viewer and
// another user. A nil Status means no edge exists in either direction.
type FriendshipStatusInfo struct {
	Status       *FriendshipStatus `json:"status"`
	FriendshipID *int64            `json:"friendship_id"`
	IsRequester  bool              `json:"is_requester"`
}

// SendFriendRequestRequest is the request body for creating a friend request.
type SendFriendRequestRequest struct {
	AddresseeID int64 `json:"addressee_id"`
}

// Friendship errors
var (
	ErrFriendshipNotFound     = errors.New("friendship not found")
	ErrSelfFriendRequest      = errors.New("cannot send a friend request to yourself")
	ErrFriendRequestsDisabled = errors.New("user does not accept friend requests")
	ErrAlreadyFriends         = errors.New("already friends")
	ErrFriendRequestPending   = errors.New("friend request already pending")
	ErrUserBlocked            = errors.New("user is blocked")
	ErrNotRequestAddressee    = errors.New("only the addressee can respond to this request")
	ErrRequestAlreadyHandled  = errors.New("friend request already processed")
	ErrNotFriendshipParty     = errors.New("not a party to this friendship")
)
