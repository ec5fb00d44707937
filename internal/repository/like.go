package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

// InsertTravelLogLike relies on the (travel_log_id, user_id) unique
// constraint as the sole race guard; a violation maps to ErrAlreadyLiked
// so the toggle can fall through to the unlike path.
func (r *likeRepository) InsertTravelLogLike(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64) error {
	query := `INSERT INTO travel_log_likes (travel_log_id, user_id) VALUES ($1, $2)`
	_, err := tx.ExecContext(ctx, query, travelLogID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert travel log like: %w", err)
	}
	return nil
}

func (r *likeRepository) DeleteTravelLogLike(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64) error {
	query := `DELETE FROM travel_log_likes WHERE travel_log_id = $1 AND user_id = $2`
	result, err := tx.ExecContext(ctx, query, travelLogID, userID)
	if err != nil {
		return fmt.Errorf("delete travel log like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *likeRepository) TravelLogLikeExists(ctx context.Context, travelLogID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM travel_log_likes WHERE travel_log_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, travelLogID, userID); err != nil {
		return false, fmt.Errorf("check travel log like: %w", err)
	}
	return exists, nil
}

// CheckTravelLogLikes returns which of the given logs the user has liked,
// one query per page of results.
func (r *likeRepository) CheckTravelLogLikes(ctx context.Context, userID int64, travelLogIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool)
	if len(travelLogIDs) == 0 {
		return liked, nil
	}

	query := `SELECT travel_log_id FROM travel_log_likes WHERE user_id = $1 AND travel_log_id = ANY($2)`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, userID, pq.Array(travelLogIDs)); err != nil {
		return nil, fmt.Errorf("check travel log likes: %w", err)
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// likeRow scans a like with the liker's summary joined.
type likeRow struct {
	model.TravelLogLike
	LikerEmail        string  `db:"liker_email"`
	LikerNickname     string  `db:"liker_nickname"`
	LikerProfileImage *string `db:"liker_profile_image"`
	LikerFriendsCount int     `db:"liker_friends_count"`
}

func (row *likeRow) toLike() model.TravelLogLike {
	l := row.TravelLogLike
	l.User = &model.UserSummary{
		ID:           l.UserID,
		Email:        row.LikerEmail,
		Nickname:     row.LikerNickname,
		ProfileImage: row.LikerProfileImage,
		FriendsCount: row.LikerFriendsCount,
	}
	return l
}

func (r *likeRepository) ListTravelLogLikers(ctx context.Context, travelLogID int64, page, limit int) ([]model.TravelLogLike, int, error) {
	offset := (page - 1) * limit

	listQuery := `
		SELECT l.id, l.travel_log_id, l.user_id, l.created_at,
		       u.email AS liker_email, u.nickname AS liker_nickname,
		       u.profile_image AS liker_profile_image, u.friends_count AS liker_friends_count
		FROM travel_log_likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.travel_log_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []likeRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, travelLogID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list likers: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM travel_log_likes WHERE travel_log_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, travelLogID); err != nil {
		return nil, 0, fmt.Errorf("count likers: %w", err)
	}

	likes := make([]model.TravelLogLike, len(rows))
	for i := range rows {
		likes[i] = rows[i].toLike()
	}
	return likes, total, nil
}

// likeWithLogRow additionally scans the liked log's summary for
// my-likes listings.
type likeWithLogRow struct {
	likeRow
	LogPlaceName string         `db:"log_place_name"`
	LogCountry   string         `db:"log_country"`
	LogPhotos    pq.StringArray `db:"log_photos"`
}

func (r *likeRepository) ListLikedByUser(ctx context.Context, userID int64, page, limit int) ([]model.TravelLogLike, int, error) {
	offset := (page - 1) * limit

	listQuery := `
		SELECT l.id, l.travel_log_id, l.user_id, l.created_at,
		       u.email AS liker_email, u.nickname AS liker_nickname,
		       u.profile_image AS liker_profile_image, u.friends_count AS liker_friends_count,
		       t.place_name AS log_place_name, t.country AS log_country, t.photos AS log_photos
		FROM travel_log_likes l
		JOIN users u ON u.id = l.user_id
		JOIN travel_logs t ON t.id = l.travel_log_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []likeWithLogRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list liked travel logs: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM travel_log_likes WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count liked travel logs: %w", err)
	}

	likes := make([]model.TravelLogLike, len(rows))
	for i := range rows {
		l := rows[i].toLike()
		l.TravelLog = &model.TravelLogSummary{
			ID:        l.TravelLogID,
			PlaceName: rows[i].LogPlaceName,
			Country:   rows[i].LogCountry,
			Photos:    rows[i].LogPhotos,
		}
		likes[i] = l
	}
	return likes, total, nil
}

func (r *likeRepository) InsertCommentLike(ctx context.Context, tx *sqlx.Tx, commentID, userID int64) error {
	query := `INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)`
	_, err := tx.ExecContext(ctx, query, commentID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert comment like: %w", err)
	}
	return nil
}

func (r *likeRepository) DeleteCommentLike(ctx context.Context, tx *sqlx.Tx, commentID, userID int64) error {
	query := `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`
	result, err := tx.ExecContext(ctx, query, commentID, userID)
	if err != nil {
		return fmt.Errorf("delete comment like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *likeRepository) CommentLikeExists(ctx context.Context, commentID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM comment_likes WHERE comment_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, commentID, userID); err != nil {
		return false, fmt.Errorf("check comment like: %w", err)
	}
	return exists, nil
}
