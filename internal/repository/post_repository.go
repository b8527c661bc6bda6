package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"pulsegram/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO posts (post_id, author_id, text, image, created_at)
		VALUES (:post_id, :author_id, :text, :image, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT * FROM posts WHERE post_id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return posts, nil
}

// GetPage returns one page of the feed, newest first, with author display fields joined in.
// Likes and comments are filled in separately by the service.
func (r *postRepository) GetPage(ctx context.Context, limit, offset int) ([]models.FeedPost, error) {
	query := `
		SELECT p.post_id, p.text, p.image, p.created_at,
		       u.user_id AS "author.user_id",
		       u.name AS "author.name",
		       u.profile_pic AS "author.profile_pic"
		FROM posts p
		JOIN users u ON u.user_id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	var posts []models.FeedPost
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}

// ToggleLike flips the user's like on a post and reports the resulting state.
// Both branches are single atomic statements, so concurrent toggles on the
// same post never lose updates; the primary key keeps the likes set free of
// duplicates.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	insertQuery := `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, insertQuery, postID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при добавлении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке вставленных строк: %w", err)
	}

	if rowsAffected > 0 {
		return true, nil
	}

	// already liked, so toggle off
	deleteQuery := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	_, err = r.db.ExecContext(ctx, deleteQuery, postID, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	return false, nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID string) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`

	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте лайков: %w", err)
	}

	return count, nil
}

func (r *postRepository) GetLikesByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error) {
	likes := make(map[string][]string)

	if len(postIDs) == 0 {
		return likes, nil
	}

	query := `
		SELECT post_id, user_id FROM post_likes
		WHERE post_id = ANY($1)
		ORDER BY created_at
	`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайков: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, userID string
		if err := rows.Scan(&postID, &userID); err != nil {
			return nil, fmt.Errorf("ошибка при чтении лайков: %w", err)
		}
		likes[postID] = append(likes[postID], userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при чтении лайков: %w", err)
	}

	return likes, nil
}
