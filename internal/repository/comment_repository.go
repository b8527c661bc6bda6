package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"pulsegram/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (comment_id, post_id, author_id, text, created_at)
		VALUES (:comment_id, :post_id, :author_id, :text, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

// GetByPostIDs loads comments for a batch of posts, oldest first per post,
// with commenter display fields joined in.
func (r *commentRepository) GetByPostIDs(ctx context.Context, postIDs []string) (map[string][]models.FeedComment, error) {
	comments := make(map[string][]models.FeedComment)

	if len(postIDs) == 0 {
		return comments, nil
	}

	query := `
		SELECT c.comment_id, c.post_id, c.text, c.created_at,
		       u.user_id AS "author.user_id",
		       u.name AS "author.name",
		       u.profile_pic AS "author.profile_pic"
		FROM comments c
		JOIN users u ON u.user_id = c.author_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at, c.comment_id
	`

	var all []models.FeedComment
	err := r.db.SelectContext(ctx, &all, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	for _, comment := range all {
		comments[comment.PostID] = append(comments[comment.PostID], comment)
	}

	return comments, nil
}
