package model

import (
	"errors"
	"time"
)

// User represents a user in the system
type User struct {
	ID             int64   `db:"id" json:"id"`
	Email          string  `db:"email" json:"email"`
	Nickname       string  `db:"nickname" json:"nickname"`
	PasswordHashed string  `db:"password_hashed" json:"-"` // "-" hides from JSON output
	ProfileImage   *string `db:"profile_image" json:"profile_image"`
	Bio            *string `db:"bio" json:"bio"`
	Location       *string `db:"location" json:"location"`
	FriendsCount   int     `db:"friends_count" json:"friends_count"`
	// AllowFriendRequests gates incoming friend requests.
	AllowFriendRequests bool `db:"allow_friend_requests" json:"allow_friend_requests"`
	// IsPublicProfile gates appearance in user search.
	IsPublicProfile bool      `db:"is_public_profile" json:"is_public_profile"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the slim projection joined onto friendships, comments and likes.
type UserSummary struct {
	ID           int64   `db:"id" json:"id"`
	Email        string  `db:"email" json:"email"`
	Nickname     string  `db:"nickname" json:"nickname"`
	ProfileImage *string `db:"profile_image" json:"profile_image"`
	FriendsCount int     `db:"friends_count" json:"friends_count"`
}

// SearchedUser is a search result row annotated with the viewer's
// friendship state, so the client can render the right affordance
// (send request vs cancel vs accept).
type SearchedUser struct {
	UserSummary
	Bio              *string           `db:"bio" json:"bio"`
	Location         *string           `db:"location" json:"location"`
	FriendshipStatus *FriendshipStatus `json:"friendship_status"`
	FriendshipID     *int64            `json:"friendship_id"`
	IsRequester      bool              `json:"is_requester"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to register with a taken email
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
)
