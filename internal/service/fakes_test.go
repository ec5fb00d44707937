package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/model"
	"github.com/yjym33/travelLog-Backend/internal/queue"
)

// The services depend on repository interfaces and the TxManager
// interface, so tests swap in fakes with per-method function fields. The
// fake transaction manager runs the closure with a nil *sqlx.Tx; the fake
// repositories ignore the tx argument, which lets the tests observe that
// the multi-record effects of an operation all happen inside one unit.

type fakeTxManager struct {
	runs int
	err  error
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	m.runs++
	if m.err != nil {
		return m.err
	}
	return fn(nil)
}

type fakePublisher struct {
	events []queue.EngagementEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, stream string, event queue.EngagementEvent) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.events = append(p.events, event)
	return "1-0", nil
}

type fakeUserRepo struct {
	createFn         func(ctx context.Context, user *model.User) error
	getByIDFn        func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn  func(ctx context.Context, email string) (bool, error)
	searchFn         func(ctx context.Context, query string, excludeID int64, page, limit int) ([]model.SearchedUser, int, error)
	friendsCountFn   func(ctx context.Context, userID int64, delta int) error
	friendsCountLogs []friendsCountCall
}

type friendsCountCall struct {
	UserID int64
	Delta  int
}

func (m *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *fakeUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id, AllowFriendRequests: true, IsPublicProfile: true}, nil
}

func (m *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *fakeUserRepo) Search(ctx context.Context, query string, excludeID int64, page, limit int) ([]model.SearchedUser, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, excludeID, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeUserRepo) IncrementFriendsCount(ctx context.Context, tx *sqlx.Tx, userID int64, delta int) error {
	m.friendsCountLogs = append(m.friendsCountLogs, friendsCountCall{UserID: userID, Delta: delta})
	if m.friendsCountFn != nil {
		return m.friendsCountFn(ctx, userID, delta)
	}
	return nil
}

type fakeFriendshipRepo struct {
	createFn       func(ctx context.Context, requesterID, addresseeID int64) (*model.Friendship, error)
	getByIDFn      func(ctx context.Context, id int64) (*model.Friendship, error)
	findBetweenFn  func(ctx context.Context, userA, userB int64) (*model.Friendship, error)
	acceptFn       func(ctx context.Context, id int64, acceptedAt time.Time) error
	rejectFn       func(ctx context.Context, id int64) error
	deleteFn       func(ctx context.Context, id int64) error
	listForUserFn  func(ctx context.Context, userID int64, status *model.FriendshipStatus, page, limit int) ([]model.Friendship, int, error)
	listReceivedFn func(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error)
	listSentFn     func(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error)
	friendIDsFn    func(ctx context.Context, userID int64) ([]int64, error)
	areFriendsFn   func(ctx context.Context, userA, userB int64) (bool, error)

	acceptCalls []int64
	deleteCalls []int64
}

func (m *fakeFriendshipRepo) Create(ctx context.Context, requesterID, addresseeID int64) (*model.Friendship, error) {
	if m.createFn != nil {
		return m.createFn(ctx, requesterID, addresseeID)
	}
	return &model.Friendship{ID: 1, RequesterID: requesterID, AddresseeID: addresseeID, Status: model.FriendshipPending}, nil
}

func (m *fakeFriendshipRepo) GetByID(ctx context.Context, id int64) (*model.Friendship, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrFriendshipNotFound
}

func (m *fakeFriendshipRepo) FindBetween(ctx context.Context, userA, userB int64) (*model.Friendship, error) {
	if m.findBetweenFn != nil {
		return m.findBetweenFn(ctx, userA, userB)
	}
	return nil, nil
}

func (m *fakeFriendshipRepo) Accept(ctx context.Context, tx *sqlx.Tx, id int64, acceptedAt time.Time) error {
	m.acceptCalls = append(m.acceptCalls, id)
	if m.acceptFn != nil {
		return m.acceptFn(ctx, id, acceptedAt)
	}
	return nil
}

func (m *fakeFriendshipRepo) Reject(ctx context.Context, id int64) error {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, id)
	}
	return nil
}

func (m *fakeFriendshipRepo) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *fakeFriendshipRepo) ListForUser(ctx context.Context, userID int64, status *model.FriendshipStatus, page, limit int) ([]model.Friendship, int, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID, status, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeFriendshipRepo) ListReceived(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error) {
	if m.listReceivedFn != nil {
		return m.listReceivedFn(ctx, userID, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeFriendshipRepo) ListSent(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error) {
	if m.listSentFn != nil {
		return m.listSentFn(ctx, userID, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeFriendshipRepo) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	if m.friendIDsFn != nil {
		return m.friendIDsFn(ctx, userID)
	}
	return nil, nil
}

func (m *fakeFriendshipRepo) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	if m.areFriendsFn != nil {
		return m.areFriendsFn(ctx, userA, userB)
	}
	return false, nil
}

type counterCall struct {
	ID    int64
	Delta int
}

type fakeTravelLogRepo struct {
	createFn           func(ctx context.Context, logEntry *model.TravelLog) error
	getByIDFn          func(ctx context.Context, id int64) (*model.TravelLog, error)
	deleteFn           func(ctx context.Context, id int64) error
	listByUserFn       func(ctx context.Context, userID int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error)
	listOwnFn          func(ctx context.Context, userID int64, filter model.TravelLogFilter, page, limit int) ([]model.TravelLog, int, error)
	feedFn             func(ctx context.Context, friendIDs []int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error)
	updateVisibilityFn func(ctx context.Context, id int64, visibility model.Visibility) (*model.TravelLog, error)

	likeCountCalls    []counterCall
	commentCountCalls []counterCall
	shareCountCalls   []counterCall
	viewCountCalls    []int64
}

func (m *fakeTravelLogRepo) Create(ctx context.Context, logEntry *model.TravelLog) error {
	if m.createFn != nil {
		return m.createFn(ctx, logEntry)
	}
	logEntry.ID = 1
	return nil
}

func (m *fakeTravelLogRepo) GetByID(ctx context.Context, id int64) (*model.TravelLog, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrTravelLogNotFound
}

func (m *fakeTravelLogRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *fakeTravelLogRepo) ListByUser(ctx context.Context, userID int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, visibilities, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeTravelLogRepo) ListOwn(ctx context.Context, userID int64, filter model.TravelLogFilter, page, limit int) ([]model.TravelLog, int, error) {
	if m.listOwnFn != nil {
		return m.listOwnFn(ctx, userID, filter, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeTravelLogRepo) Feed(ctx context.Context, friendIDs []int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error) {
	if m.feedFn != nil {
		return m.feedFn(ctx, friendIDs, visibilities, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeTravelLogRepo) UpdateVisibility(ctx context.Context, id int64, visibility model.Visibility) (*model.TravelLog, error) {
	if m.updateVisibilityFn != nil {
		return m.updateVisibilityFn(ctx, id, visibility)
	}
	return &model.TravelLog{ID: id, Visibility: visibility}, nil
}

func (m *fakeTravelLogRepo) IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	m.likeCountCalls = append(m.likeCountCalls, counterCall{ID: id, Delta: delta})
	return nil
}

func (m *fakeTravelLogRepo) IncrementCommentCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	m.commentCountCalls = append(m.commentCountCalls, counterCall{ID: id, Delta: delta})
	return nil
}

func (m *fakeTravelLogRepo) IncrementShareCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	m.shareCountCalls = append(m.shareCountCalls, counterCall{ID: id, Delta: delta})
	return nil
}

func (m *fakeTravelLogRepo) IncrementViewCount(ctx context.Context, id int64) error {
	m.viewCountCalls = append(m.viewCountCalls, id)
	return nil
}

type fakeCommentRepo struct {
	createFn      func(ctx context.Context, travelLogID, userID int64, content string, parentID *int64) (*model.Comment, error)
	getByIDFn     func(ctx context.Context, id int64) (*model.Comment, error)
	updateFn      func(ctx context.Context, id int64, content string) (*model.Comment, error)
	softDeleteFn  func(ctx context.Context, id int64, deletedAt time.Time) error
	listTopFn     func(ctx context.Context, travelLogID int64, sort model.CommentSort, page, limit int) ([]model.Comment, int, error)
	listRepliesFn func(ctx context.Context, parentID int64, page, limit int) ([]model.Comment, int, error)
	repliesForFn  func(ctx context.Context, parentIDs []int64) (map[int64][]model.Comment, error)
	listByUserFn  func(ctx context.Context, userID int64, page, limit int) ([]model.Comment, int, error)

	softDeleteCalls []int64
	replyCountCalls []counterCall
	likeCountCalls  []counterCall
}

func (m *fakeCommentRepo) Create(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64, content string, parentID *int64) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, travelLogID, userID, content, parentID)
	}
	return &model.Comment{ID: 1, TravelLogID: travelLogID, UserID: userID, Content: content, ParentID: parentID}, nil
}

func (m *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrCommentNotFound
}

func (m *fakeCommentRepo) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, content)
	}
	return &model.Comment{ID: id, Content: content, IsEdited: true}, nil
}

func (m *fakeCommentRepo) SoftDelete(ctx context.Context, tx *sqlx.Tx, id int64, deletedAt time.Time) error {
	m.softDeleteCalls = append(m.softDeleteCalls, id)
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id, deletedAt)
	}
	return nil
}

func (m *fakeCommentRepo) IncrementReplyCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	m.replyCountCalls = append(m.replyCountCalls, counterCall{ID: id, Delta: delta})
	return nil
}

func (m *fakeCommentRepo) IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	m.likeCountCalls = append(m.likeCountCalls, counterCall{ID: id, Delta: delta})
	return nil
}

func (m *fakeCommentRepo) ListTopLevel(ctx context.Context, travelLogID int64, sort model.CommentSort, page, limit int) ([]model.Comment, int, error) {
	if m.listTopFn != nil {
		return m.listTopFn(ctx, travelLogID, sort, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeCommentRepo) ListReplies(ctx context.Context, parentID int64, page, limit int) ([]model.Comment, int, error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(ctx, parentID, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeCommentRepo) RepliesFor(ctx context.Context, parentIDs []int64) (map[int64][]model.Comment, error) {
	if m.repliesForFn != nil {
		return m.repliesForFn(ctx, parentIDs)
	}
	return map[int64][]model.Comment{}, nil
}

func (m *fakeCommentRepo) ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Comment, int, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, page, limit)
	}
	return nil, 0, nil
}

type fakeLikeRepo struct {
	insertLogLikeFn  func(ctx context.Context, travelLogID, userID int64) error
	deleteLogLikeFn  func(ctx context.Context, travelLogID, userID int64) error
	logLikeExistsFn  func(ctx context.Context, travelLogID, userID int64) (bool, error)
	checkLogLikesFn  func(ctx context.Context, userID int64, travelLogIDs []int64) (map[int64]bool, error)
	listLikersFn     func(ctx context.Context, travelLogID int64, page, limit int) ([]model.TravelLogLike, int, error)
	listLikedFn      func(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogLike, int, error)
	insertCommLikeFn func(ctx context.Context, commentID, userID int64) error
	deleteCommLikeFn func(ctx context.Context, commentID, userID int64) error
	commLikeExistsFn func(ctx context.Context, commentID, userID int64) (bool, error)

	logInserts  []int64
	logDeletes  []int64
	commInserts []int64
	commDeletes []int64
}

func (m *fakeLikeRepo) InsertTravelLogLike(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64) error {
	m.logInserts = append(m.logInserts, travelLogID)
	if m.insertLogLikeFn != nil {
		return m.insertLogLikeFn(ctx, travelLogID, userID)
	}
	return nil
}

func (m *fakeLikeRepo) DeleteTravelLogLike(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64) error {
	m.logDeletes = append(m.logDeletes, travelLogID)
	if m.deleteLogLikeFn != nil {
		return m.deleteLogLikeFn(ctx, travelLogID, userID)
	}
	return nil
}

func (m *fakeLikeRepo) TravelLogLikeExists(ctx context.Context, travelLogID, userID int64) (bool, error) {
	if m.logLikeExistsFn != nil {
		return m.logLikeExistsFn(ctx, travelLogID, userID)
	}
	return false, nil
}

func (m *fakeLikeRepo) CheckTravelLogLikes(ctx context.Context, userID int64, travelLogIDs []int64) (map[int64]bool, error) {
	if m.checkLogLikesFn != nil {
		return m.checkLogLikesFn(ctx, userID, travelLogIDs)
	}
	return map[int64]bool{}, nil
}

func (m *fakeLikeRepo) ListTravelLogLikers(ctx context.Context, travelLogID int64, page, limit int) ([]model.TravelLogLike, int, error) {
	if m.listLikersFn != nil {
		return m.listLikersFn(ctx, travelLogID, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeLikeRepo) ListLikedByUser(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogLike, int, error) {
	if m.listLikedFn != nil {
		return m.listLikedFn(ctx, userID, page, limit)
	}
	return nil, 0, nil
}

func (m *fakeLikeRepo) InsertCommentLike(ctx context.Context, tx *sqlx.Tx, commentID, userID int64) error {
	m.commInserts = append(m.commInserts, commentID)
	if m.insertCommLikeFn != nil {
		return m.insertCommLikeFn(ctx, commentID, userID)
	}
	return nil
}

func (m *fakeLikeRepo) DeleteCommentLike(ctx context.Context, tx *sqlx.Tx, commentID, userID int64) error {
	m.commDeletes = append(m.commDeletes, commentID)
	if m.deleteCommLikeFn != nil {
		return m.deleteCommLikeFn(ctx, commentID, userID)
	}
	return nil
}

func (m *fakeLikeRepo) CommentLikeExists(ctx context.Context, commentID, userID int64) (bool, error) {
	if m.commLikeExistsFn != nil {
		return m.commLikeExistsFn(ctx, commentID, userID)
	}
	return false, nil
}

type fakeShareRepo struct {
	createFn       func(ctx context.Context, share *model.TravelLogShare) error
	listSharedWith func(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogShare, int, error)

	createCalls int
}

func (m *fakeShareRepo) Create(ctx context.Context, tx *sqlx.Tx, share *model.TravelLogShare) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, share)
	}
	share.ID = 1
	return nil
}

func (m *fakeShareRepo) ListSharedWith(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogShare, int, error) {
	if m.listSharedWith != nil {
		return m.listSharedWith(ctx, userID, page, limit)
	}
	return nil, 0, nil
}
