package models

import (
	"time"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ProfilePic   string    `json:"profilePic" db:"profile_pic"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PublicView strips everything a client must never see
func (u *User) PublicView() PublicUser {
	return PublicUser{
		ID:         u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
	}
}

type PublicUser struct {
	ID         string `json:"id" db:"user_id"`
	Name       string `json:"name" db:"name"`
	Email      string `json:"email" db:"email"`
	ProfilePic string `json:"profilePic" db:"profile_pic"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	Image     string    `json:"image" db:"image"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Author is the display slice of a user attached to feed posts and comments
type Author struct {
	ID         string `json:"id" db:"user_id"`
	Name       string `json:"name" db:"name"`
	ProfilePic string `json:"profilePic" db:"profile_pic"`
}

type FeedComment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    Author    `json:"author" db:"author"`
}

type FeedPost struct {
	PostID    string        `json:"postId" db:"post_id"`
	Text      string        `json:"text" db:"text"`
	Image     string        `json:"image" db:"image"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	Author    Author        `json:"author" db:"author"`
	Likes     []string      `json:"likes" db:"-"`
	Comments  []FeedComment `json:"comments" db:"-"`
}
