package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/database"
	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
	"github.com/yjym33/travelLog-Backend/internal/repository"
)

type FriendshipService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
	publisher      queue.Publisher
	tx             database.TxManager
}

func NewFriendshipService(
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	publisher queue.Publisher,
	tx database.TxManager,
) *FriendshipService {
	return &FriendshipService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		tx:             tx,
	}
}

// SendRequest creates a PENDING edge from requester to addressee. A
// REJECTED edge between the pair does not block a new request; the stale
// edge is removed first so the unique pair constraint stays satisfiable.
func (s *FriendshipService) SendRequest(ctx context.Context, requesterID, addresseeID int64) (*model.Friendship, error) {
	if requesterID == addresseeID {
		return nil, model.ErrSelfFriendRequest
	}

	addressee, err := s.userRepo.GetByID(ctx, addresseeID)
	if err != nil {
		return nil, err
	}
	if !addressee.AllowFriendRequests {
		return nil, model.ErrFriendRequestsDisabled
	}

	existing, err := s.friendshipRepo.FindBetween(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, fmt.Errorf("find existing friendship: %w", err)
	}
	if existing != nil {
		switch existing.Status {
		case model.FriendshipAccepted:
			return nil, model.ErrAlreadyFriends
		case model.FriendshipPending:
			return nil, model.ErrFriendRequestPending
		case model.FriendshipBlocked:
			return nil, model.ErrUserBlocked
		case model.FriendshipRejected:
			if err := s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
				return s.friendshipRepo.Delete(ctx, tx, existing.ID)
			}); err != nil {
				return nil, fmt.Errorf("clear rejected friendship: %w", err)
			}
		}
	}

	friendship, err := s.friendshipRepo.Create(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, fmt.Errorf("create friendship: %w", err)
	}

	s.publish(ctx, queue.NewFriendRequestedEvent(requesterID, addresseeID))
	return friendship, nil
}

// Accept transitions a PENDING request to ACCEPTED. Only the addressee
// may accept; the status flip and both friends_count increments happen
// in one transaction.
func (s *FriendshipService) Accept(ctx context.Context, requestID, userID int64) (*model.Friendship, error) {
	friendship, err := s.friendshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if friendship.AddresseeID != userID {
		return nil, model.ErrNotRequestAddressee
	}
	if friendship.Status != model.FriendshipPending {
		return nil, model.ErrRequestAlreadyHandled
	}

	acceptedAt := time.Now()
	err = s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.friendshipRepo.Accept(ctx, tx, friendship.ID, acceptedAt); err != nil {
			return err
		}
		if err := s.userRepo.IncrementFriendsCount(ctx, tx, friendship.RequesterID, 1); err != nil {
			return err
		}
		return s.userRepo.IncrementFriendsCount(ctx, tx, friendship.AddresseeID, 1)
	})
	if err != nil {
		return nil, err
	}

	friendship.Status = model.FriendshipAccepted
	friendship.AcceptedAt = &acceptedAt

	s.publish(ctx, queue.NewFriendAcceptedEvent(friendship.AddresseeID, friendship.RequesterID))
	return friendship, nil
}

// Reject transitions a PENDING request to REJECTED. Terminal state, no
// counter movement, no event.
func (s *FriendshipService) Reject(ctx context.Context, requestID, userID int64) (*model.Friendship, error) {
	friendship, err := s.friendshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if friendship.AddresseeID != userID {
		return nil, model.ErrNotRequestAddressee
	}
	if friendship.Status != model.FriendshipPending {
		return nil, model.ErrRequestAlreadyHandled
	}

	if err := s.friendshipRepo.Reject(ctx, friendship.ID); err != nil {
		return nil, err
	}
	friendship.Status = model.FriendshipRejected
	return friendship, nil
}

// Remove deletes the edge. Either party may remove it; if it was
// ACCEPTED, both friends_count values step back down in the same
// transaction as the delete.
func (s *FriendshipService) Remove(ctx context.Context, friendshipID, userID int64) error {
	friendship, err := s.friendshipRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if !friendship.IsParty(userID) {
		return model.ErrNotFriendshipParty
	}

	return s.tx.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.friendshipRepo.Delete(ctx, tx, friendship.ID); err != nil {
			return err
		}
		if friendship.Status != model.FriendshipAccepted {
			return nil
		}
		if err := s.userRepo.IncrementFriendsCount(ctx, tx, friendship.RequesterID, -1); err != nil {
			return err
		}
		return s.userRepo.IncrementFriendsCount(ctx, tx, friendship.AddresseeID, -1)
	})
}

// AreFriends reports whether an ACCEPTED edge exists between the pair.
func (s *FriendshipService) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	if userA == userB {
		return false, nil
	}
	return s.friendshipRepo.AreFriends(ctx, userA, userB)
}

// Status describes the viewer's relationship with another user: the edge
// status if any, the edge id, and whether the viewer initiated it.
func (s *FriendshipService) Status(ctx context.Context, viewerID, otherID int64) (*model.FriendshipStatusInfo, error) {
	friendship, err := s.friendshipRepo.FindBetween(ctx, viewerID, otherID)
	if err != nil {
		return nil, fmt.Errorf("find friendship: %w", err)
	}
	if friendship == nil {
		return &model.FriendshipStatusInfo{}, nil
	}
	status := friendship.Status
	return &model.FriendshipStatusInfo{
		Status:       &status,
		FriendshipID: &friendship.ID,
		IsRequester:  friendship.RequesterID == viewerID,
	}, nil
}

// ListFriends returns the user's edges, optionally filtered by status.
func (s *FriendshipService) ListFriends(ctx context.Context, userID int64, status *model.FriendshipStatus, page, limit int) (*model.Page, error) {
	friendships, total, err := s.friendshipRepo.ListForUser(ctx, userID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(friendships, page, limit, total), nil
}

// ListReceivedRequests returns PENDING requests addressed to the user.
func (s *FriendshipService) ListReceivedRequests(ctx context.Context, userID int64, page, limit int) (*model.Page, error) {
	requests, total, err := s.friendshipRepo.ListReceived(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(requests, page, limit, total), nil
}

// ListSentRequests returns PENDING requests created by the user.
func (s *FriendshipService) ListSentRequests(ctx context.Context, userID int64, page, limit int) (*model.Page, error) {
	requests, total, err := s.friendshipRepo.ListSent(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return model.NewPage(requests, page, limit, total), nil
}

// SearchUsers finds public profiles matching the query and annotates each
// with the searcher's relationship to them.
func (s *FriendshipService) SearchUsers(ctx context.Context, userID int64, query string, page, limit int) (*model.Page, error) {
	users, total, err := s.userRepo.Search(ctx, query, userID, page, limit)
	if err != nil {
		return nil, err
	}

	for i := range users {
		friendship, err := s.friendshipRepo.FindBetween(ctx, userID, users[i].ID)
		if err != nil {
			return nil, fmt.Errorf("annotate search result: %w", err)
		}
		if friendship == nil {
			continue
		}
		status := friendship.Status
		users[i].FriendshipStatus = &status
		users[i].FriendshipID = &friendship.ID
		users[i].IsRequester = friendship.RequesterID == userID
	}

	return model.NewPage(users, page, limit, total), nil
}

func (s *FriendshipService) publish(ctx context.Context, event queue.EngagementEvent) {
	msgID, err := s.publisher.Publish(ctx, queue.StreamEngagement, event)
	if err != nil {
		// Notification delivery is best-effort; the edge mutation already
		// committed.
		log.Printf("[FriendshipService] Failed to publish %s: err=%v", event.Type, err)
		return
	}
	log.Printf("[FriendshipService] Published %s: msgID=%s", event.Type, msgID)
}
