package service

import (
	"context"

	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/repository"
)

// NotificationService reads the inbox written by the engagement worker.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications newest first, optionally filtered
// by read state.
func (s *NotificationService) List(ctx context.Context, userID int64, isRead *bool, page, limit int) (*model.Page, error) {
	notifications, total, err := s.notificationRepo.ListForUser(ctx, userID, isRead, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(notifications, page, limit, total), nil
}

// MarkRead marks the given notifications read; with no ids, everything.
func (s *NotificationService) MarkRead(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return s.notificationRepo.MarkAllRead(ctx, userID)
	}
	return s.notificationRepo.MarkRead(ctx, userID, ids)
}
