package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, userID string, username, email, avatar *string) (*models.User, error)
	UpdateRole(ctx context.Context, userID, role string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, newPassword string) error
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post, categoryIDs, tagIDs []string) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByCategorySlug(ctx context.Context, slug string) ([]models.Post, error)
	GetByTagSlug(ctx context.Context, slug string) ([]models.Post, error)
	Search(ctx context.Context, query string) ([]models.Post, error)
	UpdateOwned(ctx context.Context, post *models.Post, authorID string, categoryIDs, tagIDs []string) error
	DeleteOwned(ctx context.Context, postID, authorID string) error
	TogglePublishOwned(ctx context.Context, postID, authorID string) (bool, error)
}

type PageRepository interface {
	Create(ctx context.Context, page *models.Page) error
	GetByID(ctx context.Context, pageID string) (*models.Page, error)
	GetAll(ctx context.Context, isPublished *bool) ([]models.Page, error)
	Search(ctx context.Context, query string) ([]models.Page, error)
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, pageID string) error
	TogglePublish(ctx context.Context, pageID string) (bool, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	UpdateBySlug(ctx context.Context, slug string, category *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	GetAll(ctx context.Context) ([]models.Tag, error)
	Search(ctx context.Context, query string) ([]models.Tag, error)
	Popular(ctx context.Context, limit int) ([]models.TagCount, error)
	UpdateBySlug(ctx context.Context, slug string, tag *models.Tag) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetAll(ctx context.Context, postID string) ([]models.Comment, error)
	UpdateOwned(ctx context.Context, commentID, authorID, content string) (*models.Comment, error)
	DeleteOwned(ctx context.Context, commentID, authorID string) error
	Approve(ctx context.Context, commentID string) (*models.Comment, error)
}

type ReorderItem struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order"`
}

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, itemID string) (*models.MenuItem, error)
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, itemID string) error
	Reorder(ctx context.Context, items []ReorderItem) error
}

type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, bannerID string) (*models.Banner, error)
	GetAll(ctx context.Context) ([]models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, bannerID string) error
}

type Repository struct {
	User     UserRepository
	Post     PostRepository
	Page     PageRepository
	Category CategoryRepository
	Tag      TagRepository
	Comment  CommentRepository
	Menu     MenuRepository
	Banner   BannerRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Page:     NewPageRepository(db),
		Category: NewCategoryRepository(db),
		Tag:      NewTagRepository(db),
		Comment:  NewCommentRepository(db),
		Menu:     NewMenuRepository(db),
		Banner:   NewBannerRepository(db),
	}
}
