package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudkitchen/backend/internal/models"
	"github.com/cloudkitchen/backend/internal/utils"
	"gorm.io/gorm"
)

const BlogQueryTimeout = 30 * time.Second

type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &BlogService{db: db}
}

func (s *BlogService) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, BlogQueryTimeout)
	defer cancel()

	blogs := make([]models.Blog, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch blogs: %v", ErrDatabaseQuery, err)
	}

	return blogs, nil
}

func (s *BlogService) CreateBlog(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error) {
	if utils.SanitizeString(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, BlogQueryTimeout)
	defer cancel()

	blog := models.Blog{
		Title:   utils.SanitizeString(req.Title),
		Author:  utils.SanitizeString(req.Author),
		Content: req.Content,
		Img:     req.Img,
	}

	if err := s.db.WithContext(ctx).Create(&blog).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to create blog: %v", ErrDatabaseQuery, err)
	}

	return &blog, nil
}
