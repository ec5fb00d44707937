package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type shareRepository struct {
	db *sqlx.DB
}

func NewShareRepository(db *sqlx.DB) ShareRepository {
	return &shareRepository{db: db}
}

// Create inserts the share inside the caller's transaction so the log's
// share_count moves in the same unit.
func (r *shareRepository) Create(ctx context.Context, tx *sqlx.Tx, share *model.TravelLogShare) error {
	query := `
		INSERT INTO travel_log_shares (travel_log_id, user_id, shared_with, share_type, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := tx.QueryRowxContext(ctx, query,
		share.TravelLogID, share.UserID, share.SharedWith, share.ShareType, share.Message,
	).Scan(&share.ID, &share.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert share: %w", err)
	}
	return nil
}

// shareRow scans a share with the sharer and log summaries joined.
type shareRow struct {
	model.TravelLogShare
	SharerEmail        string         `db:"sharer_email"`
	SharerNickname     string         `db:"sharer_nickname"`
	SharerProfileImage *string        `db:"sharer_profile_image"`
	SharerFriendsCount int            `db:"sharer_friends_count"`
	LogPlaceName       string         `db:"log_place_name"`
	LogCountry         string         `db:"log_country"`
	LogPhotos          pq.StringArray `db:"log_photos"`
}

func (row *shareRow) toShare() model.TravelLogShare {
	s := row.TravelLogShare
	s.User = &model.UserSummary{
		ID:           s.UserID,
		Email:        row.SharerEmail,
		Nickname:     row.SharerNickname,
		ProfileImage: row.SharerProfileImage,
		FriendsCount: row.SharerFriendsCount,
	}
	s.TravelLog = &model.TravelLogSummary{
		ID:        s.TravelLogID,
		PlaceName: row.LogPlaceName,
		Country:   row.LogCountry,
		Photos:    row.LogPhotos,
	}
	return s
}

func (r *shareRepository) ListSharedWith(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogShare, int, error) {
	offset := (page - 1) * limit

	listQuery := `
		SELECT s.id, s.travel_log_id, s.user_id, s.shared_with, s.share_type, s.message, s.created_at,
		       u.email AS sharer_email, u.nickname AS sharer_nickname,
		       u.profile_image AS sharer_profile_image, u.friends_count AS sharer_friends_count,
		       t.place_name AS log_place_name, t.country AS log_country, t.photos AS log_photos
		FROM travel_log_shares s
		JOIN users u ON u.id = s.user_id
		JOIN travel_logs t ON t.id = s.travel_log_id
		WHERE s.shared_with = $1
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []shareRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list shares: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM travel_log_shares WHERE shared_with = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count shares: %w", err)
	}

	shares := make([]model.TravelLogShare, len(rows))
	for i := range rows {
		shares[i] = rows[i].toShare()
	}
	return shares, total, nil
}
