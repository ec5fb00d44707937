package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the engagement stream
const (
	EventFriendRequested = "friend_requested"
	EventFriendAccepted  = "friend_accepted"
	EventTravelLogLiked  = "travel_log_liked"
	EventCommentCreated  = "comment_created"
	EventCommentReplied  = "comment_replied"
)

// Stream name for engagement events
const (
	StreamEngagement = "stream:engagement"
)

// Consumer group name for notification workers
const (
	ConsumerGroupNotifications = "notification_workers"
)

// EngagementEvent is published after an engagement action commits. The
// worker turns it into a notification for RecipientID; ActorID is the
// user who acted.
type EngagementEvent struct {
	Type        string `json:"type"`
	Timestamp   int64  `json:"timestamp"` // Unix seconds when the event occurred
	ActorID     int64  `json:"actor_id"`
	RecipientID int64  `json:"recipient_id"`

	// Engagement target, set per event type
	TravelLogID int64 `json:"travel_log_id,omitempty"`
	CommentID   int64 `json:"comment_id,omitempty"`
}

// NewFriendRequestedEvent fires when a friend request is sent; the
// addressee gets notified.
func NewFriendRequestedEvent(requesterID, addresseeID int64) EngagementEvent {
	return EngagementEvent{
		Type:        EventFriendRequested,
		Timestamp:   time.Now().Unix(),
		ActorID:     requesterID,
		RecipientID: addresseeID,
	}
}

// NewFriendAcceptedEvent fires when a request is accepted; the original
// requester gets notified.
func NewFriendAcceptedEvent(addresseeID, requesterID int64) EngagementEvent {
	return EngagementEvent{
		Type:        EventFriendAccepted,
		Timestamp:   time.Now().Unix(),
		ActorID:     addresseeID,
		RecipientID: requesterID,
	}
}

// NewTravelLogLikedEvent fires when a like lands (not when it is undone);
// the log owner gets notified.
func NewTravelLogLikedEvent(likerID, ownerID, travelLogID int64) EngagementEvent {
	return EngagementEvent{
		Type:        EventTravelLogLiked,
		Timestamp:   time.Now().Unix(),
		ActorID:     likerID,
		RecipientID: ownerID,
		TravelLogID: travelLogID,
	}
}

// NewCommentCreatedEvent fires on a top-level comment; the log owner gets
// notified.
func NewCommentCreatedEvent(commenterID, ownerID, travelLogID, commentID int64) EngagementEvent {
	return EngagementEvent{
		Type:        EventCommentCreated,
		Timestamp:   time.Now().Unix(),
		ActorID:     commenterID,
		RecipientID: ownerID,
		TravelLogID: travelLogID,
		CommentID:   commentID,
	}
}

// NewCommentRepliedEvent fires on a reply; the parent comment's author
// gets notified.
func NewCommentRepliedEvent(replierID, parentAuthorID, travelLogID, commentID int64) EngagementEvent {
	return EngagementEvent{
		Type:        EventCommentReplied,
		Timestamp:   time.Now().Unix(),
		ActorID:     replierID,
		RecipientID: parentAuthorID,
		TravelLogID: travelLogID,
		CommentID:   commentID,
	}
}

// ToMap converts the event to a map for Redis XADD. Streams store
// field-value pairs, so the payload is JSON in a "data" field.
func (e EngagementEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseEngagementEvent parses an EngagementEvent from stream message values.
func ParseEngagementEvent(values map[string]interface{}) (EngagementEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return EngagementEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event EngagementEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return EngagementEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
