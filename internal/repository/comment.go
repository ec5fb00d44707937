package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `
	id, travel_log_id, user_id, parent_id, content,
	like_count, reply_count, is_edited, is_deleted, deleted_at, created_at, updated_at
`

// Create inserts a new comment inside the caller's transaction; the caller
// bumps the log's comment_count (and the parent's reply_count) in the same unit.
func (r *commentRepository) Create(ctx context.Context, tx *sqlx.Tx, travelLogID, userID int64, content string, parentID *int64) (*model.Comment, error) {
	query := `
		INSERT INTO travel_log_comments (travel_log_id, user_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	var comment model.Comment
	err := tx.GetContext(ctx, &comment, query, travelLogID, userID, content, parentID)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM travel_log_comments WHERE id = $1`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &comment, nil
}

// Update sets new content and flips is_edited. Ownership and deletion
// state are checked by the service before calling.
func (r *commentRepository) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	query := `
		UPDATE travel_log_comments
		SET content = $1, is_edited = TRUE, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + commentColumns
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, content, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return &comment, nil
}

// SoftDelete keeps the row so reply threads stay intact. The WHERE guard
// on is_deleted makes the decrement happen at most once even if two
// deletes race.
func (r *commentRepository) SoftDelete(ctx context.Context, tx *sqlx.Tx, id int64, deletedAt time.Time) error {
	query := `
		UPDATE travel_log_comments
		SET content = $1, is_deleted = TRUE, deleted_at = $2, updated_at = NOW()
		WHERE id = $3 AND is_deleted = FALSE
	`
	result, err := tx.ExecContext(ctx, query, model.DeletedCommentPlaceholder, deletedAt, id)
	if err != nil {
		return fmt.Errorf("soft delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentAlreadyDeleted
	}
	return nil
}

func (r *commentRepository) incrementCounter(ctx context.Context, tx *sqlx.Tx, column string, id int64, delta int) error {
	query := fmt.Sprintf(
		`UPDATE travel_log_comments SET %s = %s + $1, updated_at = NOW() WHERE id = $2`,
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
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) IncrementReplyCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	return r.incrementCounter(ctx, tx, "reply_count", id, delta)
}

func (r *commentRepository) IncrementLikeCount(ctx context.Context, tx *sqlx.Tx, id int64, delta int) error {
	return r.incrementCounter(ctx, tx, "like_count", id, delta)
}

// commentRow scans a comment with its author summary joined.
type commentRow struct {
	model.Comment
	AuthorEmail        string  `db:"author_email"`
	AuthorNickname     string  `db:"author_nickname"`
	AuthorProfileImage *string `db:"author_profile_image"`
	AuthorFriendsCount int     `db:"author_friends_count"`
}

func (row *commentRow) toComment() model.Comment {
	c := row.Comment
	c.Author = &model.UserSummary{
		ID:           c.UserID,
		Email:        row.AuthorEmail,
		Nickname:     row.AuthorNickname,
		ProfileImage: row.AuthorProfileImage,
		FriendsCount: row.AuthorFriendsCount,
	}
	return c
}

const commentJoinedColumns = `
	c.id, c.travel_log_id, c.user_id, c.parent_id, c.content,
	c.like_count, c.reply_count, c.is_edited, c.is_deleted, c.deleted_at, c.created_at, c.updated_at,
	u.email AS author_email, u.nickname AS author_nickname,
	u.profile_image AS author_profile_image, u.friends_count AS author_friends_count
`

func commentOrderBy(sort model.CommentSort) string {
	switch sort {
	case model.CommentSortCreatedDesc:
		return "c.created_at DESC, c.id DESC"
	case model.CommentSortLikesDesc:
		return "c.like_count DESC, c.id ASC"
	default:
		return "c.created_at ASC, c.id ASC"
	}
}

// ListTopLevel returns parent_id IS NULL rows, soft-deleted ones included
// so threads keep their placeholders.
func (r *commentRepository) ListTopLevel(ctx context.Context, travelLogID int64, sort model.CommentSort, page, limit int) ([]model.Comment, int, error) {
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM travel_log_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.travel_log_id = $1 AND c.parent_id IS NULL
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, commentJoinedColumns, commentOrderBy(sort))

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, travelLogID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM travel_log_comments WHERE travel_log_id = $1 AND parent_id IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, travelLogID); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i := range rows {
		comments[i] = rows[i].toComment()
	}
	return comments, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64, page, limit int) ([]model.Comment, int, error) {
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM travel_log_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3
	`, commentJoinedColumns)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, parentID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM travel_log_comments WHERE parent_id = $1`, parentID); err != nil {
		return nil, 0, fmt.Errorf("count replies: %w", err)
	}

	replies := make([]model.Comment, len(rows))
	for i := range rows {
		replies[i] = rows[i].toComment()
	}
	return replies, total, nil
}

// RepliesFor fetches the complete reply lists for a page of parents in one
// query, ordered by creation ascending.
func (r *commentRepository) RepliesFor(ctx context.Context, parentIDs []int64) (map[int64][]model.Comment, error) {
	result := make(map[int64][]model.Comment)
	if len(parentIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM travel_log_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.parent_id = ANY($1)
		ORDER BY c.created_at ASC, c.id ASC
	`, commentJoinedColumns)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(parentIDs)); err != nil {
		return nil, fmt.Errorf("get replies for parents: %w", err)
	}

	for i := range rows {
		c := rows[i].toComment()
		result[*c.ParentID] = append(result[*c.ParentID], c)
	}
	return result, nil
}

// commentWithLogRow additionally scans the travel log summary for
// my-comments listings.
type commentWithLogRow struct {
	commentRow
	LogPlaceName string         `db:"log_place_name"`
	LogCountry   string         `db:"log_country"`
	LogPhotos    pq.StringArray `db:"log_photos"`
}

func (r *commentRepository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]model.Comment, int, error) {
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s,
		       t.place_name AS log_place_name, t.country AS log_country, t.photos AS log_photos
		FROM travel_log_comments c
		JOIN users u ON u.id = c.user_id
		JOIN travel_logs t ON t.id = c.travel_log_id
		WHERE c.user_id = $1 AND c.is_deleted = FALSE
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`, commentJoinedColumns)

	var rows []commentWithLogRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list user comments: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM travel_log_comments WHERE user_id = $1 AND is_deleted = FALSE`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("count user comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i := range rows {
		c := rows[i].toComment()
		c.TravelLog = &model.TravelLogSummary{
			ID:        c.TravelLogID,
			PlaceName: rows[i].LogPlaceName,
			Country:   rows[i].LogCountry,
			Photos:    rows[i].LogPhotos,
		}
		comments[i] = c
	}
	return comments, total, nil
}
