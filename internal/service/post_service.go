package service

import (
	"context"
	"strings"

	"pulsegram/internal/models"
	"pulsegram/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PostContentKind tags which of text/image a new post carries.
type PostContentKind int

const (
	TextOnly PostContentKind = iota
	ImageOnly
	TextAndImage
)

type PostContent struct {
	Text  string
	Image string
	Kind  PostContentKind
}

// NewPostContent validates the "at least one of text/image" rule at the
// boundary, so no empty post ever reaches the store.
func NewPostContent(text, image string) (PostContent, error) {
	text = strings.TrimSpace(text)

	switch {
	case text == "" && image == "":
		return PostContent{}, ErrEmptyPost
	case text == "":
		return PostContent{Image: image, Kind: ImageOnly}, nil
	case image == "":
		return PostContent{Text: text, Kind: TextOnly}, nil
	default:
		return PostContent{Text: text, Image: image, Kind: TextAndImage}, nil
	}
}

type CreatePostRequest struct {
	AuthorID string
	Text     string
	Image    string
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPosts  int  `json:"totalPosts"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type FeedPage struct {
	Posts      []models.FeedPost `json:"posts"`
	Pagination Pagination        `json:"pagination"`
}

type Profile struct {
	User  models.PublicUser `json:"user"`
	Posts []models.Post     `json:"posts"`
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	GetFeed(ctx context.Context, page, limit int) (*FeedPage, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
	CommentOnPost(ctx context.Context, postID, userID, text string) (*models.Comment, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	content, err := NewPostContent(req.Text, req.Image)
	if err != nil {
		return nil, err
	}

	// author must resolve to a stored user
	if _, err := p.userRepo.GetUserByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: req.AuthorID,
		Text:     content.Text,
		Image:    content.Image,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetFeed(ctx context.Context, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	total, err := p.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := p.postRepo.GetPage(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.PostID)
	}

	likes, err := p.postRepo.GetLikesByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Likes = likes[posts[i].PostID]
		if posts[i].Likes == nil {
			posts[i].Likes = []string{}
		}
		posts[i].Comments = comments[posts[i].PostID]
		if posts[i].Comments == nil {
			posts[i].Comments = []models.FeedComment{}
		}
	}

	if posts == nil {
		posts = []models.FeedPost{}
	}

	return &FeedPage{
		Posts:      posts,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit

	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalPosts:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

func (p *postService) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	// 404 before touching the likes table
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return false, 0, err
	}

	isLiked, err := p.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}

	likesCount, err := p.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	return isLiked, likesCount, nil
}

func (p *postService) CommentOnPost(ctx context.Context, postID, userID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     text,
	}

	err := p.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (p *postService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := p.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := p.postRepo.GetByAuthorID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if posts == nil {
		posts = []models.Post{}
	}

	return &Profile{
		User:  user.PublicView(),
		Posts: posts,
	}, nil
}
