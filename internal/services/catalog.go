package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudkitchen/backend/internal/models"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CatalogQueryTimeout = 30 * time.Second
	MaxServiceListLimit = 100
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &CatalogService{db: db}
}

// GetServices lists menu offerings, newest first. limit <= 0 returns the
// whole catalog; anything above MaxServiceListLimit is clamped.
func (s *CatalogService) GetServices(ctx context.Context, limit int) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, CatalogQueryTimeout)
	defer cancel()

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		if limit > MaxServiceListLimit {
			limit = MaxServiceListLimit
		}
		query = query.Limit(limit)
	}

	services := make([]models.Service, 0)
	if err := query.Find(&services).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch services: %v", ErrDatabaseQuery, err)
	}

	return services, nil
}

func (s *CatalogService) GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed service id %q", ErrInvalidInput, serviceID)
	}

	ctx, cancel := context.WithTimeout(ctx, CatalogQueryTimeout)
	defer cancel()

	var service models.Service
	if err := s.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", id).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch service: %v", ErrDatabaseQuery, err)
	}

	return &service, nil
}

func (s *CatalogService) CreateService(ctx context.Context, req models.CreateServiceRequest) (*models.Service, error) {
	if utils.SanitizeString(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, CatalogQueryTimeout)
	defer cancel()

	service := models.Service{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		Price:       req.Price,
		Rating:      req.Rating,
		Img:         req.Img,
	}

	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to create service: %v", ErrDatabaseQuery, err)
	}

	return &service, nil
}

// AddServiceImages records uploaded S3 objects against an offering. The
// offering must exist; the upload itself happens in S3Service beforehand.
func (s *CatalogService) AddServiceImages(ctx context.Context, serviceID string, uploads []*UploadResult) ([]models.ServiceImage, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed service id %q", ErrInvalidInput, serviceID)
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no uploads provided", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, CatalogQueryTimeout)
	defer cancel()

	var service models.Service
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: failed to fetch service: %v", ErrDatabaseQuery, err)
	}

	images := make([]models.ServiceImage, 0, len(uploads))
	for _, upload := range uploads {
		images = append(images, models.ServiceImage{
			ServiceID:   id,
			FileName:    upload.FileName,
			S3Key:       upload.Key,
			S3URL:       upload.URL,
			ContentType: upload.ContentType,
			Size:        upload.Size,
		})
	}

	if err := s.db.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to record images: %v", ErrDatabaseQuery, err)
	}

	return images, nil
}
