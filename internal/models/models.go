package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Avatar       *string   `json:"avatar,omitempty" db:"avatar"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID      string    `json:"id" db:"post_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Content     string    `json:"content" db:"content"`
	Excerpt     *string   `json:"excerpt,omitempty" db:"excerpt"`
	Thumbnail   *string   `json:"thumbnail,omitempty" db:"thumbnail"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	AuthorID    string    `json:"authorId" db:"author_id"`
	// author_name приходит из JOIN, связи - отдельными запросами
	AuthorName string    `json:"authorName,omitempty" db:"author_name"`
	Categories []string  `json:"categories,omitempty" db:"-"`
	Tags       []string  `json:"tags,omitempty" db:"-"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type Page struct {
	PageID      string    `json:"id" db:"page_id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Content     string    `json:"content" db:"content"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	Thumbnail   *string   `json:"thumbnail,omitempty" db:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Category struct {
	CategoryID  string    `json:"id" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	Thumbnail   *string   `json:"thumbnail,omitempty" db:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Tag struct {
	TagID     string    `json:"id" db:"tag_id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// TagCount - тег с количеством использований в постах
type TagCount struct {
	TagID string `json:"id" db:"tag_id"`
	Name  string `json:"name" db:"name"`
	Slug  string `json:"slug" db:"slug"`
	Count int    `json:"count" db:"count"`
}

type Comment struct {
	CommentID  string    `json:"id" db:"comment_id"`
	Content    string    `json:"content" db:"content"`
	PostID     string    `json:"postId" db:"post_id"`
	AuthorID   string    `json:"authorId" db:"author_id"`
	AuthorName string    `json:"authorName,omitempty" db:"author_name"`
	IsApproved bool      `json:"isApproved" db:"is_approved"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type MenuItem struct {
	ItemID    string      `json:"id" db:"item_id"`
	Title     string      `json:"title" db:"title"`
	URL       string      `json:"url" db:"url"`
	Order     int         `json:"order" db:"item_order"`
	ParentID  *string     `json:"parent,omitempty" db:"parent_id"`
	Children  []*MenuItem `json:"children,omitempty" db:"-"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

type Banner struct {
	BannerID  string    `json:"id" db:"banner_id"`
	Title     string    `json:"title" db:"title"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Link      *string   `json:"link,omitempty" db:"link"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
