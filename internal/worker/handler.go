package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
)

// NotificationCreator writes notification rows. The worker depends on
// this interface rather than the repository so tests can substitute a
// fake.
type NotificationCreator interface {
	CreateNotification(ctx context.Context, userID, actorID int64, notifType string, travelLogID, commentID *int64) error
}

// Handler turns engagement events into notifications.
type Handler struct {
	notifCreator NotificationCreator
}

func NewHandler(notifCreator NotificationCreator) *Handler {
	return &Handler{notifCreator: notifCreator}
}

// HandleEvent routes an event by type. Self-engagement never notifies;
// services already suppress those events, and the worker drops any that
// slip through.
func (h *Handler) HandleEvent(ctx context.Context, event queue.EngagementEvent) error {
	startTime := time.Now()

	if event.ActorID == event.RecipientID {
		return nil
	}

	notifType, ok := notificationType(event.Type)
	if !ok {
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	var travelLogID, commentID *int64
	if event.TravelLogID != 0 {
		id := event.TravelLogID
		travelLogID = &id
	}
	if event.CommentID != 0 {
		id := event.CommentID
		commentID = &id
	}

	err := h.notifCreator.CreateNotification(ctx, event.RecipientID, event.ActorID, notifType, travelLogID, commentID)
	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return fmt.Errorf("create %s notification: %w", notifType, err)
	}

	log.Printf("[Worker] HandleEvent OK: type=%s recipient=%d duration=%v",
		event.Type, event.RecipientID, time.Since(startTime))
	return nil
}

func notificationType(eventType string) (string, bool) {
	switch eventType {
	case queue.EventFriendRequested:
		return model.NotifFriendRequested, true
	case queue.EventFriendAccepted:
		return model.NotifFriendAccepted, true
	case queue.EventTravelLogLiked:
		return model.NotifTravelLogLiked, true
	case queue.EventCommentCreated:
		return model.NotifCommentCreated, true
	case queue.EventCommentReplied:
		return model.NotifCommentReplied, true
	}
	return "", false
}
