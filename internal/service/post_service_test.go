package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pulsegram/internal/models"
	"pulsegram/internal/repository"
)

// Фейковые репозитории в памяти повторяют семантику хранилища:
// лайки — множество, комментарии — последовательность по времени.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	user.UserID = uuid.New().String()
	user.PasswordHash = "hashed:" + password
	r.users[user.UserID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrUserNotFound, userID)
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrUserNotFound, email)
}

func (r *fakeUserRepo) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash != "hashed:"+password {
		return nil, repository.ErrInvalidPassword
	}
	return user, nil
}

type fakePostRepo struct {
	posts map[string]*models.Post
	likes map[string][]string
	users *fakeUserRepo
	seq   int
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[string]*models.Post),
		likes: make(map[string][]string),
		users: users,
	}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	// строго возрастающее время, чтобы порядок ленты был детерминированным
	r.seq++
	post.CreatedAt = time.Unix(0, 0).Add(time.Duration(r.seq) * time.Second)
	r.posts[post.PostID] = post
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	post, ok := r.posts[postID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrPostNotFound, postID)
	}
	return post, nil
}

func (r *fakePostRepo) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			posts = append(posts, *post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (r *fakePostRepo) GetPage(ctx context.Context, limit, offset int) ([]models.FeedPost, error) {
	var all []*models.Post
	for _, post := range r.posts {
		all = append(all, post)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	var page []models.FeedPost
	for i := offset; i < len(all) && len(page) < limit; i++ {
		author, _ := r.users.GetUserByID(ctx, all[i].AuthorID)
		page = append(page, models.FeedPost{
			PostID:    all[i].PostID,
			Text:      all[i].Text,
			Image:     all[i].Image,
			CreatedAt: all[i].CreatedAt,
			Author: models.Author{
				ID:         author.UserID,
				Name:       author.Name,
				ProfilePic: author.ProfilePic,
			},
		})
	}
	return page, nil
}

func (r *fakePostRepo) Count(ctx context.Context) (int, error) {
	return len(r.posts), nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	for i, liker := range r.likes[postID] {
		if liker == userID {
			r.likes[postID] = append(r.likes[postID][:i], r.likes[postID][i+1:]...)
			return false, nil
		}
	}
	r.likes[postID] = append(r.likes[postID], userID)
	return true, nil
}

func (r *fakePostRepo) CountLikes(ctx context.Context, postID string) (int, error) {
	return len(r.likes[postID]), nil
}

func (r *fakePostRepo) GetLikesByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error) {
	likes := make(map[string][]string)
	for _, postID := range postIDs {
		if len(r.likes[postID]) > 0 {
			likes[postID] = r.likes[postID]
		}
	}
	return likes, nil
}

type fakeCommentRepo struct {
	comments map[string][]models.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string][]models.Comment), users: users}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.CommentID = uuid.New().String()
	comment.CreatedAt = time.Now()
	r.comments[comment.PostID] = append(r.comments[comment.PostID], *comment)
	return nil
}

func (r *fakeCommentRepo) GetByPostIDs(ctx context.Context, postIDs []string) (map[string][]models.FeedComment, error) {
	comments := make(map[string][]models.FeedComment)
	for _, postID := range postIDs {
		for _, c := range r.comments[postID] {
			author, _ := r.users.GetUserByID(ctx, c.AuthorID)
			comments[postID] = append(comments[postID], models.FeedComment{
				CommentID: c.CommentID,
				PostID:    c.PostID,
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
				Author: models.Author{
					ID:         author.UserID,
					Name:       author.Name,
					ProfilePic: author.ProfilePic,
				},
			})
		}
	}
	return comments, nil
}

type postServiceFixture struct {
	service  PostService
	users    *fakeUserRepo
	posts    *fakePostRepo
	comments *fakeCommentRepo
}

func newPostServiceFixture() *postServiceFixture {
	users := newFakeUserRepo()
	posts := newFakePostRepo(users)
	comments := newFakeCommentRepo(users)

	return &postServiceFixture{
		service:  NewPostService(posts, comments, users),
		users:    users,
		posts:    posts,
		comments: comments,
	}
}

func (f *postServiceFixture) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, f.users.CreateUser(context.Background(), user, "password123"))
	return user
}

func TestNewPostContent(t *testing.T) {
	t.Run("Пустой пост отклоняется", func(t *testing.T) {
		_, err := NewPostContent("", "")
		assert.ErrorIs(t, err, ErrEmptyPost)

		_, err = NewPostContent("   \t ", "")
		assert.ErrorIs(t, err, ErrEmptyPost)
	})

	t.Run("Варианты содержимого", func(t *testing.T) {
		content, err := NewPostContent("hello", "")
		require.NoError(t, err)
		assert.Equal(t, TextOnly, content.Kind)

		content, err = NewPostContent("", "uploads/posts/pic.png")
		require.NoError(t, err)
		assert.Equal(t, ImageOnly, content.Kind)

		content, err = NewPostContent("hello", "uploads/posts/pic.png")
		require.NoError(t, err)
		assert.Equal(t, TextAndImage, content.Kind)
	})
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Без текста и изображения", func(t *testing.T) {
		f := newPostServiceFixture()
		user := f.addUser(t, "Alice", "a@x.com")

		_, err := f.service.CreatePost(ctx, CreatePostRequest{AuthorID: user.UserID})

		assert.ErrorIs(t, err, ErrEmptyPost)
	})

	t.Run("Только изображение", func(t *testing.T) {
		f := newPostServiceFixture()
		user := f.addUser(t, "Alice", "a@x.com")

		post, err := f.service.CreatePost(ctx, CreatePostRequest{
			AuthorID: user.UserID,
			Image:    "uploads/posts/pic.png",
		})

		require.NoError(t, err)
		assert.Equal(t, "uploads/posts/pic.png", post.Image)
		assert.NotEmpty(t, post.PostID)
	})

	t.Run("Несуществующий автор", func(t *testing.T) {
		f := newPostServiceFixture()

		_, err := f.service.CreatePost(ctx, CreatePostRequest{
			AuthorID: "missing-user",
			Text:     "hello",
		})

		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("Двойной вызов возвращает исходное состояние", func(t *testing.T) {
		f := newPostServiceFixture()
		author := f.addUser(t, "Alice", "a@x.com")
		liker := f.addUser(t, "Bob", "b@x.com")

		post, err := f.service.CreatePost(ctx, CreatePostRequest{AuthorID: author.UserID, Text: "hello"})
		require.NoError(t, err)

		isLiked, likesCount, err := f.service.ToggleLike(ctx, post.PostID, liker.UserID)
		require.NoError(t, err)
		assert.True(t, isLiked)
		assert.Equal(t, 1, likesCount)

		isLiked, likesCount, err = f.service.ToggleLike(ctx, post.PostID, liker.UserID)
		require.NoError(t, err)
		assert.False(t, isLiked)
		assert.Equal(t, 0, likesCount)
	})

	t.Run("Несуществующий пост", func(t *testing.T) {
		f := newPostServiceFixture()
		liker := f.addUser(t, "Bob", "b@x.com")

		_, _, err := f.service.ToggleLike(ctx, "missing-post", liker.UserID)

		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})
}

func TestPostService_CommentOnPost(t *testing.T) {
	ctx := context.Background()

	t.Run("Пустой комментарий не создаётся", func(t *testing.T) {
		f := newPostServiceFixture()
		author := f.addUser(t, "Alice", "a@x.com")

		post, err := f.service.CreatePost(ctx, CreatePostRequest{AuthorID: author.UserID, Text: "hello"})
		require.NoError(t, err)

		_, err = f.service.CommentOnPost(ctx, post.PostID, author.UserID, "   \t\n ")

		assert.ErrorIs(t, err, ErrEmptyComment)
		assert.Empty(t, f.comments.comments[post.PostID])
	})

	t.Run("Комментарий добавляется к посту", func(t *testing.T) {
		f := newPostServiceFixture()
		author := f.addUser(t, "Alice", "a@x.com")
		commenter := f.addUser(t, "Bob", "b@x.com")

		post, err := f.service.CreatePost(ctx, CreatePostRequest{AuthorID: author.UserID, Text: "hello"})
		require.NoError(t, err)

		comment, err := f.service.CommentOnPost(ctx, post.PostID, commenter.UserID, "  nice post  ")

		require.NoError(t, err)
		assert.Equal(t, "nice post", comment.Text)
		assert.Equal(t, post.PostID, comment.PostID)
		require.Len(t, f.comments.comments[post.PostID], 1)
	})

	t.Run("Несуществующий пост", func(t *testing.T) {
		f := newPostServiceFixture()
		commenter := f.addUser(t, "Bob", "b@x.com")

		_, err := f.service.CommentOnPost(ctx, "missing-post", commenter.UserID, "hello")

		assert.ErrorIs(t, err, repository.ErrPostNotFound)
	})
}

func TestPostService_GetFeed(t *testing.T) {
	ctx := context.Background()

	f := newPostServiceFixture()
	author := f.addUser(t, "Alice", "a@x.com")

	for i := 1; i <= 15; i++ {
		_, err := f.service.CreatePost(ctx, CreatePostRequest{
			AuthorID: author.UserID,
			Text:     fmt.Sprintf("post %d", i),
		})
		require.NoError(t, err)
	}

	t.Run("Первая страница из 15 постов", func(t *testing.T) {
		feed, err := f.service.GetFeed(ctx, 1, 10)

		require.NoError(t, err)
		assert.Len(t, feed.Posts, 10)
		assert.Equal(t, 15, feed.Pagination.TotalPosts)
		assert.Equal(t, 2, feed.Pagination.TotalPages)
		assert.True(t, feed.Pagination.HasNextPage)
		assert.False(t, feed.Pagination.HasPrevPage)

		// newest first
		assert.Equal(t, "post 15", feed.Posts[0].Text)
		assert.Equal(t, "Alice", feed.Posts[0].Author.Name)
	})

	t.Run("Вторая страница", func(t *testing.T) {
		feed, err := f.service.GetFeed(ctx, 2, 10)

		require.NoError(t, err)
		assert.Len(t, feed.Posts, 5)
		assert.False(t, feed.Pagination.HasNextPage)
		assert.True(t, feed.Pagination.HasPrevPage)
	})

	t.Run("Некорректные параметры откатываются к значениям по умолчанию", func(t *testing.T) {
		feed, err := f.service.GetFeed(ctx, 0, -5)

		require.NoError(t, err)
		assert.Equal(t, 1, feed.Pagination.Page)
		assert.Equal(t, 10, feed.Pagination.Limit)
	})

	t.Run("Лайки и комментарии подтягиваются в ленту", func(t *testing.T) {
		liker := f.addUser(t, "Bob", "b@x.com")

		feed, err := f.service.GetFeed(ctx, 1, 1)
		require.NoError(t, err)
		postID := feed.Posts[0].PostID

		_, _, err = f.service.ToggleLike(ctx, postID, liker.UserID)
		require.NoError(t, err)
		_, err = f.service.CommentOnPost(ctx, postID, liker.UserID, "nice")
		require.NoError(t, err)

		feed, err = f.service.GetFeed(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{liker.UserID}, feed.Posts[0].Likes)
		require.Len(t, feed.Posts[0].Comments, 1)
		assert.Equal(t, "nice", feed.Posts[0].Comments[0].Text)
		assert.Equal(t, "Bob", feed.Posts[0].Comments[0].Author.Name)
	})
}

func TestNewPagination(t *testing.T) {
	pagination := NewPagination(1, 10, 15)

	assert.Equal(t, 15, pagination.TotalPosts)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.True(t, pagination.HasNextPage)
	assert.False(t, pagination.HasPrevPage)

	pagination = NewPagination(2, 10, 15)
	assert.False(t, pagination.HasNextPage)
	assert.True(t, pagination.HasPrevPage)

	pagination = NewPagination(1, 10, 0)
	assert.Equal(t, 0, pagination.TotalPages)
	assert.False(t, pagination.HasNextPage)
}

func TestPostService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Профиль с постами", func(t *testing.T) {
		f := newPostServiceFixture()
		user := f.addUser(t, "Alice", "a@x.com")
		f.addUser(t, "Bob", "b@x.com")

		_, err := f.service.CreatePost(ctx, CreatePostRequest{AuthorID: user.UserID, Text: "first"})
		require.NoError(t, err)
		_, err = f.service.CreatePost(ctx, CreatePostRequest{AuthorID: user.UserID, Text: "second"})
		require.NoError(t, err)

		profile, err := f.service.GetProfile(ctx, user.UserID)

		require.NoError(t, err)
		assert.Equal(t, user.UserID, profile.User.ID)
		assert.Equal(t, "Alice", profile.User.Name)
		require.Len(t, profile.Posts, 2)
		assert.Equal(t, "second", profile.Posts[0].Text)
	})

	t.Run("Несуществующий пользователь", func(t *testing.T) {
		f := newPostServiceFixture()

		_, err := f.service.GetProfile(ctx, "missing-user")

		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
