package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type travelLogRepository struct {
	db *sqlx.DB
}

func NewTravelLogRepository(db *sqlx.DB) TravelLogRepository {
	return &travelLogRepository{db: db}
}

const travelLogColumns = `
	id, user_id, lat, lng, place_name, country, emotion, photos, diary, tags,
	visibility, allow_likes, allow_comments,
	like_count, comment_count, share_count, view_count, created_at, updated_at
`

func (r *travelLogRepository) Create(ctx context.Context, logEntry *model.TravelLog) error {
	query := `
		INSERT INTO travel_logs
			(user_id, lat, lng, place_name, country, emotion, photos, diary, tags,
			 visibility, allow_likes, allow_comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + travelLogColumns
	err := r.db.GetContext(ctx, logEntry, query,
		logEntry.UserID,
		logEntry.Lat,
		logEntry.Lng,
		logEntry.PlaceName,
		logEntry.Country,
		logEntry.Emotion,
		logEntry.Photos,
		logEntry.Diary,
		logEntry.Tags,
		logEntry.Visibility,
		logEntry.AllowLikes,
		logEntry.AllowComments,
	)
	if err != nil {
		return fmt.Errorf("insert travel log: %w", err)
	}
	return nil
}

func (r *travelLogRepository) GetByID(ctx context.Context, id int64) (*model.TravelLog, error) {
	query := `SELECT ` + travelLogColumns + ` FROM travel_logs WHERE id = $1`
	var logEntry model.TravelLog
	err := r.db.GetContext(ctx, &logEntry, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTravelLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get travel log: %w", err)
	}
	return &logEntry, nil
}

// Delete removes the log row; child likes/comments/shares go with it via
// ON DELETE CASCADE. Ownership is checked by the service.
func (r *travelLogRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM travel_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete travel log: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrTravelLogNotFound
	}
	return nil
}

// travelLogRow scans a log with its author summary joined.
type travelLogRow struct {
	model.TravelLog
	AuthorEmail        string  `db:"author_email"`
	AuthorNickname     string  `db:"author_nickname"`
	AuthorProfileImage *string `db:"author_profile_image"`
	AuthorFriendsCount int     `db:"author_friends_count"`
}

func (row *travelLogRow) toTravelLog() model.TravelLog {
	t := row.TravelLog
	t.Author = &model.UserSummary{
		ID:           t.UserID,
		Email:        row.AuthorEmail,
		Nickname:     row.AuthorNickname,
		ProfileImage: row.AuthorProfileImage,
		FriendsCount: row.AuthorFriendsCount,
	}
	return t
}

const travelLogJoinedColumns = `
	t.id, t.user_id, t.lat, t.lng, t.place_name, t.country, t.emotion, t.photos, t.diary, t.tags,
	t.visibility, t.allow_likes, t.allow_comments,
	t.like_count, t.comment_count, t.share_count, t.view_count, t.created_at, t.updated_at,
	u.email AS author_email, u.nickname AS author_nickname,
	u.profile_image AS author_profile_image, u.friends_count AS author_friends_count
`

func (r *travelLogRepository) listJoined(ctx context.Context, where string, args []interface{}, page, limit int) ([]model.TravelLog, int, error) {
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM travel_logs t
		JOIN users u ON u.id = t.user_id
		WHERE %s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT %d OFFSET %d
	`, travelLogJoinedColumns, where, limit, offset)

	var rows []travelLogRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list travel logs: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM travel_logs t WHERE %s`, where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count travel logs: %w", err)
	}

	logs := make([]model.TravelLog, len(rows))
	for i := range rows {
		logs[i] = rows[i].toTravelLog()
	}
	return logs, total, nil
}

func visibilityStrings(visibilities []model.Visibility) []string {
	out := make([]string, len(visibilities))
	for i, v := range visibilities {
		out[i] = string(v)
	}
	return out
}

func (r *travelLogRepository) ListByUser(ctx context.Context, userID int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error) {
	where := `t.user_id = $1`
	args := []interface{}{userID}
	if visibilities != nil {
		where += ` AND t.visibility = ANY($2)`
		args = append(args, pq.Array(visibilityStrings(visibilities)))
	}
	return r.listJoined(ctx, where, args, page, limit)
}

func (r *travelLogRepository) ListOwn(ctx context.Context, userID int64, filter model.TravelLogFilter, page, limit int) ([]model.TravelLog, int, error) {
	var conds []string
	args := []interface{}{userID}
	conds = append(conds, "t.user_id = $1")

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.Emotions) > 0 {
		add("t.emotion = ANY($%d)", pq.Array(filter.Emotions))
	}
	if len(filter.Countries) > 0 {
		add("t.country = ANY($%d)", pq.Array(filter.Countries))
	}
	if len(filter.Tags) > 0 {
		add("t.tags && $%d", pq.Array(filter.Tags))
	}
	if filter.StartDate != nil {
		add("t.created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("t.created_at <= $%d", *filter.EndDate)
	}

	return r.listJoined(ctx, strings.Join(conds, " AND "), args, page, limit)
}

// Feed selects the viewer's candidate set: PUBLIC logs from anyone plus
// FRIENDS/PUBLIC logs from the viewer's friends, intersected with the
// requested visibility filter.
func (r *travelLogRepository) Feed(ctx context.Context, friendIDs []int64, visibilities []model.Visibility, page, limit int) ([]model.TravelLog, int, error) {
	where := `
		(t.visibility = 'PUBLIC'
		 OR (t.user_id = ANY($1) AND t.visibility IN ('FRIENDS', 'PUBLIC')))
		AND t.visibility = ANY($2)
	`
	args := []interface{}{pq.Array(friendIDs), pq.Array(visibilityStrings(visibilities))}
	return r.listJoined(ctx, where, args, page, limit)
}

func (r *travelLogRepository) UpdateVisibility(ctx context.Context, id int64, visibility model.Visibility) (*model.TravelLog, error) {
	query := `
		UPDATE travel_logs SET visibility = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + travelLogColumns
	var logEntry model.TravelLog
	err := r.db.GetContext(ctx, &logEntry, query, visibility, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTravelLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update visibility: %w", err)
	}
	return &logEntry, nil
}

func (r *travelLogRepository) incrementCounter(ctx context.Context, tx *sqlx.Tx, column string, id int64, delta int) error {
	query := fmt.Sprintf(
		`UPDATE travel_logs SET %s = %s + $1, updated_at = NOW() WHERE id = $2`,
		column, column,
	)
	result, err := tx.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrTravelLogNotFound
	}
	return nil
}

func (r *travelLogRepository) IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	return r.incrementCounter(ctx, tx, "like_count", id, delta)
}

func (r *travelLogRepository) IncrementCommentCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	return r.incrementCounter(ctx, tx, "comment_count", id, delta)
}

func (r *travelLogRepository) IncrementShareCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	return r.incrementCounter(ctx, tx, "share_count", id, delta)
}

// IncrementViewCount is deliberately unconditional: no auth, no dedup.
func (r *travelLogRepository) IncrementViewCount(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE travel_logs SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update view count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrTravelLogNotFound
	}
	return nil
}
