package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type friendshipRepository struct {
	db *sqlx.DB
}

func NewFriendshipRepository(db *sqlx.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

// Create inserts a new PENDING edge.
func (r *friendshipRepository) Create(ctx context.Context, requesterID, addresseeID int64) (*model.Friendship, error) {
	query := `
		INSERT INTO friendships (requester_id, addressee_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, requester_id, addressee_id, status, accepted_at, created_at, updated_at
	`
	var f model.Friendship
	err := r.db.GetContext(ctx, &f, query, requesterID, addresseeID, model.FriendshipPending)
	if err != nil {
		return nil, fmt.Errorf("insert friendship: %w", err)
	}
	return &f, nil
}

func (r *friendshipRepository) GetByID(ctx context.Context, id int64) (*model.Friendship, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, accepted_at, created_at, updated_at
		FROM friendships
		WHERE id = $1
	`
	var f model.Friendship
	err := r.db.GetContext(ctx, &f, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrFriendshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get friendship: %w", err)
	}
	return &f, nil
}

// FindBetween looks up the edge for an unordered pair by checking both
// directions. Returns (nil, nil) when no edge exists; absence is a normal
// outcome for callers, not an error.
func (r *friendshipRepository) FindBetween(ctx context.Context, userA, userB int64) (*model.Friendship, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, accepted_at, created_at, updated_at
		FROM friendships
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`
	var f model.Friendship
	err := r.db.GetContext(ctx, &f, query, userA, userB)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find friendship between users: %w", err)
	}
	return &f, nil
}

// Accept transitions a PENDING edge to ACCEPTED inside the caller's
// transaction; the caller bumps both friends_count in the same unit.
func (r *friendshipRepository) Accept(ctx context.Context, tx *sqlx.Tx, id int64, acceptedAt time.Time) error {
	query := `
		UPDATE friendships
		SET status = $1, accepted_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	result, err := tx.ExecContext(ctx, query, model.FriendshipAccepted, acceptedAt, id, model.FriendshipPending)
	if err != nil {
		return fmt.Errorf("accept friendship: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrRequestAlreadyHandled
	}
	return nil
}

// Reject is terminal and touches no counters, so it needs no transaction.
func (r *friendshipRepository) Reject(ctx context.Context, id int64) error {
	query := `
		UPDATE friendships
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	result, err := r.db.ExecContext(ctx, query, model.FriendshipRejected, id, model.FriendshipPending)
	if err != nil {
		return fmt.Errorf("reject friendship: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrRequestAlreadyHandled
	}
	return nil
}

func (r *friendshipRepository) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM friendships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete friendship: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrFriendshipNotFound
	}
	return nil
}

// friendshipRow scans an edge with both endpoint summaries joined.
type friendshipRow struct {
	model.Friendship
	ReqEmail        string  `db:"req_email"`
	ReqNickname     string  `db:"req_nickname"`
	ReqProfileImage *string `db:"req_profile_image"`
	ReqFriendsCount int     `db:"req_friends_count"`
	AddEmail        string  `db:"add_email"`
	AddNickname     string  `db:"add_nickname"`
	AddProfileImage *string `db:"add_profile_image"`
	AddFriendsCount int     `db:"add_friends_count"`
}

func (row *friendshipRow) toFriendship() model.Friendship {
	f := row.Friendship
	f.Requester = &model.UserSummary{
		ID:           f.RequesterID,
		Email:        row.ReqEmail,
		Nickname:     row.ReqNickname,
		ProfileImage: row.ReqProfileImage,
		FriendsCount: row.ReqFriendsCount,
	}
	f.Addressee = &model.UserSummary{
		ID:           f.AddresseeID,
		Email:        row.AddEmail,
		Nickname:     row.AddNickname,
		ProfileImage: row.AddProfileImage,
		FriendsCount: row.AddFriendsCount,
	}
	return f
}

const friendshipJoinedColumns = `
	f.id, f.requester_id, f.addressee_id, f.status, f.accepted_at, f.created_at, f.updated_at,
	req.email AS req_email, req.nickname AS req_nickname,
	req.profile_image AS req_profile_image, req.friends_count AS req_friends_count,
	addr.email AS add_email, addr.nickname AS add_nickname,
	addr.profile_image AS add_profile_image, addr.friends_count AS add_friends_count
`

func (r *friendshipRepository) listJoined(ctx context.Context, where string, countWhere string, args []interface{}, page, limit int) ([]model.Friendship, int, error) {
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM friendships f
		JOIN users req ON req.id = f.requester_id
		JOIN users addr ON addr.id = f.addressee_id
		WHERE %s
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT %d OFFSET %d
	`, friendshipJoinedColumns, where, limit, offset)

	var rows []friendshipRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list friendships: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM friendships f WHERE %s`, countWhere)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count friendships: %w", err)
	}

	friendships := make([]model.Friendship, len(rows))
	for i := range rows {
		friendships[i] = rows[i].toFriendship()
	}
	return friendships, total, nil
}

func (r *friendshipRepository) ListForUser(ctx context.Context, userID int64, status *model.FriendshipStatus, page, limit int) ([]model.Friendship, int, error) {
	where := `(f.requester_id = $1 OR f.addressee_id = $1)`
	args := []interface{}{userID}
	if status != nil {
		where += ` AND f.status = $2`
		args = append(args, *status)
	}
	return r.listJoined(ctx, where, where, args, page, limit)
}

func (r *friendshipRepository) ListReceived(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error) {
	where := `f.addressee_id = $1 AND f.status = $2`
	args := []interface{}{userID, model.FriendshipPending}
	return r.listJoined(ctx, where, where, args, page, limit)
}

func (r *friendshipRepository) ListSent(ctx context.Context, userID int64, page, limit int) ([]model.Friendship, int, error) {
	where := `f.requester_id = $1 AND f.status = $2`
	args := []interface{}{userID, model.FriendshipPending}
	return r.listJoined(ctx, where, where, args, page, limit)
}

// FriendIDs resolves the viewer's accepted adjacency in one query,
// picking the opposite endpoint of each edge.
func (r *friendshipRepository) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT CASE WHEN requester_id = $1 THEN addressee_id ELSE requester_id END
		FROM friendships
		WHERE (requester_id = $1 OR addressee_id = $1) AND status = $2
	`
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query, userID, model.FriendshipAccepted)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get friend ids: %w", err)
	}
	return ids, nil
}

func (r *friendshipRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE ((requester_id = $1 AND addressee_id = $2)
			    OR (requester_id = $2 AND addressee_id = $1))
			  AND status = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userA, userB, model.FriendshipAccepted)
	if err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return exists, nil
}
