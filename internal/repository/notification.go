package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, actor_id, type, travel_log_id, comment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		n.UserID, n.ActorID, n.Type, n.TravelLogID, n.CommentID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

type notificationRow struct {
	model.Notification
	ActorEmail        string  `db:"actor_email"`
	ActorNickname     string  `db:"actor_nickname"`
	ActorProfileImage *string `db:"actor_profile_image"`
	ActorFriendsCount int     `db:"actor_friends_count"`
}

func (row *notificationRow) toNotification() model.Notification {
	n := row.Notification
	n.Actor = &model.UserSummary{
		ID:           n.ActorID,
		Email:        row.ActorEmail,
		Nickname:     row.ActorNickname,
		ProfileImage: row.ActorProfileImage,
		FriendsCount: row.ActorFriendsCount,
	}
	return n
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID int64, isRead *bool, page, limit int) ([]model.Notification, int, error) {
	offset := (page - 1) * limit

	where := "n.user_id = $1"
	args := []interface{}{userID}
	if isRead != nil {
		args = append(args, *isRead)
		where += fmt.Sprintf(" AND n.is_read = $%d", len(args))
	}

	listQuery := fmt.Sprintf(`
		SELECT n.id, n.user_id, n.actor_id, n.type, n.travel_log_id, n.comment_id, n.is_read, n.created_at,
		       u.email AS actor_email, u.nickname AS actor_nickname,
		       u.profile_image AS actor_profile_image, u.friends_count AS actor_friends_count
		FROM notifications n
		JOIN users u ON u.id = n.actor_id
		WHERE %s
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT %d OFFSET %d
	`, where, limit, offset)

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM notifications n WHERE %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	notifications := make([]model.Notification, len(rows))
	for i := range rows {
		notifications[i] = rows[i].toNotification()
	}
	return notifications, total, nil
}

// MarkRead flips is_read on the caller's own notifications only; ids
// belonging to other users are ignored.
func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND id = ANY($2)`
	if _, err := r.db.ExecContext(ctx, query, userID, pq.Array(ids)); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
