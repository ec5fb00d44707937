package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
)

func newCommentService(commentRepo *fakeCommentRepo, logRepo *fakeTravelLogRepo, friendshipRepo *fakeFriendshipRepo) (*CommentService, *fakePublisher, *fakeTxManager) {
	pub := &fakePublisher{}
	tx := &fakeTxManager{}
	return NewCommentService(commentRepo, logRepo, friendshipRepo, &fakeUserRepo{}, pub, tx), pub, tx
}

func int64Ptr(v int64) *int64 { return &v }

func TestCommentService_Create_TopLevel(t *testing.T) {
	commentRepo := &fakeCommentRepo{}
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityPublic)}
	svc, pub, tx := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

	comment, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		TravelLogID: 10,
		Content:     "wish I was there",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if comment.TravelLogID != 10 || comment.UserID != 1 {
		t.Errorf("comment = %+v, want log 10 user 1", comment)
	}
	if comment.Author == nil {
		t.Error("Author not hydrated")
	}
	if tx.runs != 1 {
		t.Errorf("RunInTx calls = %d, want 1", tx.runs)
	}
	if len(logRepo.commentCountCalls) != 1 || logRepo.commentCountCalls[0] != (counterCall{ID: 10, Delta: 1}) {
		t.Errorf("commentCountCalls = %v, want [{10 1}]", logRepo.commentCountCalls)
	}
	if len(commentRepo.replyCountCalls) != 0 {
		t.Errorf("reply_count moved for a top-level comment: %v", commentRepo.replyCountCalls)
	}
	if len(pub.events) != 1 || pub.events[0].Type != queue.EventCommentCreated {
		t.Errorf("published events = %v, want one %s", pub.events, queue.EventCommentCreated)
	}
}

func TestCommentService_Create_Reply(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, TravelLogID: 10, UserID: 3}, nil
		},
	}
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityPublic)}
	svc, pub, _ := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

	comment, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
		TravelLogID: 10,
		Content:     "same!",
		ParentID:    int64Ptr(5),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if comment.ParentID == nil || *comment.ParentID != 5 {
		t.Errorf("ParentID = %v, want 5", comment.ParentID)
	}
	if len(logRepo.commentCountCalls) != 1 {
		t.Errorf("commentCountCalls = %v, want one", logRepo.commentCountCalls)
	}
	if len(commentRepo.replyCountCalls) != 1 || commentRepo.replyCountCalls[0] != (counterCall{ID: 5, Delta: 1}) {
		t.Errorf("replyCountCalls = %v, want [{5 1}]", commentRepo.replyCountCalls)
	}
	// A reply notifies the parent's author, not the log owner.
	if len(pub.events) != 1 || pub.events[0].Type != queue.EventCommentReplied {
		t.Fatalf("published events = %v, want one %s", pub.events, queue.EventCommentReplied)
	}
	if pub.events[0].RecipientID != 3 {
		t.Errorf("event recipient = %d, want parent author 3", pub.events[0].RecipientID)
	}
}

func TestCommentService_Create_ParentValidation(t *testing.T) {
	tests := []struct {
		name    string
		parent  *model.Comment
		wantErr error
	}{
		{"parent missing", nil, model.ErrParentCommentNotFound},
		{"parent on another log", &model.Comment{ID: 5, TravelLogID: 99}, model.ErrParentMismatch},
		{"parent deleted", &model.Comment{ID: 5, TravelLogID: 10, IsDeleted: true}, model.ErrParentCommentDeleted},
		{"parent is itself a reply", &model.Comment{ID: 5, TravelLogID: 10, ParentID: int64Ptr(3)}, model.ErrNestingTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := &fakeCommentRepo{
				getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
					if tt.parent == nil {
						return nil, model.ErrCommentNotFound
					}
					return tt.parent, nil
				},
			}
			logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityPublic)}
			svc, _, tx := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

			_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{
				TravelLogID: 10,
				Content:     "nice",
				ParentID:    int64Ptr(5),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if tx.runs != 0 {
				t.Errorf("RunInTx calls = %d, want 0", tx.runs)
			}
		})
	}
}

func TestCommentService_Create_ContentValidation(t *testing.T) {
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityPublic)}
	svc, _, _ := newCommentService(&fakeCommentRepo{}, logRepo, &fakeFriendshipRepo{})

	if _, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{TravelLogID: 10, Content: "   "}); !errors.Is(err, model.ErrContentRequired) {
		t.Errorf("blank content error = %v, want ErrContentRequired", err)
	}

	long := strings.Repeat("a", model.MaxCommentLength+1)
	if _, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{TravelLogID: 10, Content: long}); !errors.Is(err, model.ErrContentTooLong) {
		t.Errorf("oversize content error = %v, want ErrContentTooLong", err)
	}
}

func TestCommentService_Create_CommentsDisabled(t *testing.T) {
	logRepo := &fakeTravelLogRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.TravelLog, error) {
			return &model.TravelLog{ID: id, UserID: 2, Visibility: model.VisibilityPublic, AllowLikes: true, AllowComments: false}, nil
		},
	}
	svc, _, _ := newCommentService(&fakeCommentRepo{}, logRepo, &fakeFriendshipRepo{})

	_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{TravelLogID: 10, Content: "hi"})
	if !errors.Is(err, model.ErrCommentsDisabled) {
		t.Errorf("Create() error = %v, want ErrCommentsDisabled", err)
	}
}

func TestCommentService_Create_VisibilityGate(t *testing.T) {
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityFriends)}
	svc, _, _ := newCommentService(&fakeCommentRepo{}, logRepo, &fakeFriendshipRepo{})

	_, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{TravelLogID: 10, Content: "hi"})
	if !errors.Is(err, model.ErrTravelLogForbidden) {
		t.Errorf("Create() error = %v, want ErrTravelLogForbidden", err)
	}
}

func TestCommentService_Create_OwnLogDoesNotNotify(t *testing.T) {
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 1, model.VisibilityPrivate)}
	svc, pub, _ := newCommentService(&fakeCommentRepo{}, logRepo, &fakeFriendshipRepo{})

	if _, err := svc.Create(context.Background(), 1, model.CreateCommentRequest{TravelLogID: 10, Content: "note to self"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events for self-comment, want 0", len(pub.events))
	}
}

func TestCommentService_Update(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, TravelLogID: 10, UserID: 1, Content: "old"}, nil
		},
	}
	svc, _, _ := newCommentService(commentRepo, &fakeTravelLogRepo{}, &fakeFriendshipRepo{})

	comment, err := svc.Update(context.Background(), 5, 1, "new")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if comment.Content != "new" || !comment.IsEdited {
		t.Errorf("comment = %+v, want edited content %q", comment, "new")
	}

	if _, err := svc.Update(context.Background(), 5, 2, "new"); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("non-owner Update() error = %v, want ErrNotCommentOwner", err)
	}
}

func TestCommentService_Delete_TopLevel(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, TravelLogID: 10, UserID: 1}, nil
		},
	}
	logRepo := &fakeTravelLogRepo{}
	svc, _, tx := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

	if err := svc.Delete(context.Background(), 5, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if tx.runs != 1 {
		t.Errorf("RunInTx calls = %d, want 1", tx.runs)
	}
	if len(commentRepo.softDeleteCalls) != 1 || commentRepo.softDeleteCalls[0] != 5 {
		t.Errorf("softDeleteCalls = %v, want [5]", commentRepo.softDeleteCalls)
	}
	if len(logRepo.commentCountCalls) != 1 || logRepo.commentCountCalls[0] != (counterCall{ID: 10, Delta: -1}) {
		t.Errorf("commentCountCalls = %v, want [{10 -1}]", logRepo.commentCountCalls)
	}
	if len(commentRepo.replyCountCalls) != 0 {
		t.Errorf("reply_count moved for a top-level delete: %v", commentRepo.replyCountCalls)
	}
}

func TestCommentService_Delete_ReplyDecrementsParent(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, TravelLogID: 10, UserID: 1, ParentID: int64Ptr(3)}, nil
		},
	}
	logRepo := &fakeTravelLogRepo{}
	svc, _, _ := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

	if err := svc.Delete(context.Background(), 5, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(commentRepo.replyCountCalls) != 1 || commentRepo.replyCountCalls[0] != (counterCall{ID: 3, Delta: -1}) {
		t.Errorf("replyCountCalls = %v, want [{3 -1}]", commentRepo.replyCountCalls)
	}
}

func TestCommentService_Delete_AlreadyDeleted(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Comment, error) {
			return &model.Comment{ID: id, TravelLogID: 10, UserID: 1, IsDeleted: true}, nil
		},
	}
	logRepo := &fakeTravelLogRepo{}
	svc, _, tx := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

	// A second delete must not decrement the counters again.
	if err := svc.Delete(context.Background(), 5, 1); !errors.Is(err, model.ErrCommentAlreadyDeleted) {
		t.Errorf("Delete() error = %v, want ErrCommentAlreadyDeleted", err)
	}
	if tx.runs != 0 {
		t.Errorf("RunInTx calls = %d, want 0", tx.runs)
	}
	if len(logRepo.commentCountCalls) != 0 {
		t.Errorf("comment_count moved on a repeat delete: %v", logRepo.commentCountCalls)
	}
}

func TestCommentService_ListForTravelLog_AttachesReplies(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		listTopFn: func(ctx context.Context, travelLogID int64, sort model.CommentSort, page, limit int) ([]model.Comment, int, error) {
			return []model.Comment{
				{ID: 1, TravelLogID: travelLogID, ReplyCount: 2},
				{ID: 2, TravelLogID: travelLogID},
			}, 2, nil
		},
		repliesForFn: func(ctx context.Context, parentIDs []int64) (map[int64][]model.Comment, error) {
			if len(parentIDs) != 1 || parentIDs[0] != 1 {
				t.Errorf("RepliesFor parentIDs = %v, want [1] (only parents with replies)", parentIDs)
			}
			return map[int64][]model.Comment{
				1: {{ID: 3, ParentID: int64Ptr(1)}, {ID: 4, ParentID: int64Ptr(1)}},
			}, nil
		},
	}
	logRepo := &fakeTravelLogRepo{getByIDFn: visibleLog(10, 2, model.VisibilityPublic)}
	svc, _, _ := newCommentService(commentRepo, logRepo, &fakeFriendshipRepo{})

	page, err := svc.ListForTravelLog(context.Background(), 10, 1, model.CommentSortCreatedAsc, 1, 20)
	if err != nil {
		t.Fatalf("ListForTravelLog() error = %v", err)
	}
	comments := page.Data.([]model.Comment)
	if len(comments[0].Replies) != 2 {
		t.Errorf("comment 1 replies = %d, want 2", len(comments[0].Replies))
	}
	if len(comments[1].Replies) != 0 {
		t.Errorf("comment 2 replies = %d, want 0", len(comments[1].Replies))
	}
}
