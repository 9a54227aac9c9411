package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudkitchen/backend/internal/models"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/cloudkitchen/backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ReviewQueryTimeout = 30 * time.Second

type ReviewService struct {
	db    *gorm.DB
	email *EmailService // optional; nil disables notifications
}

func NewReviewService(db *gorm.DB, email *EmailService) *ReviewService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &ReviewService{db: db, email: email}
}

// CreateReview persists a candidate review after enforcing the
// one-review-per-(service, reviewer email) rule. The pre-check gives the
// friendly duplicate message; the unique index on (service_id, email) backs
// it up when two submissions race past the check, with the resulting
// gorm.ErrDuplicatedKey mapped to the same ErrDuplicateReview.
func (s *ReviewService) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed service id %q", ErrInvalidInput, req.ServiceID)
	}
	if req.ServiceName == "" {
		return nil, fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if !utils.IsValidRating(req.Star) {
		return nil, fmt.Errorf("%w: star must be between 1 and 5", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, ReviewQueryTimeout)
	defer cancel()

	var existing models.Review
	err = s.db.WithContext(ctx).
		Where("service_id = ? AND email = ?", serviceID, req.Email).
		Take(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: you already reviewed %s", ErrDuplicateReview, req.ServiceName)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: failed to check existing review: %v", ErrDatabaseQuery, err)
	}

	review := models.Review{
		ServiceID:   serviceID,
		ServiceName: utils.SanitizeString(req.ServiceName),
		Name:        utils.SanitizeString(req.Name),
		Email:       req.Email,
		Img:         req.Img,
		Comment:     utils.SanitizeString(req.CommentText()),
		Star:        req.Star,
		ReviewedAt:  time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you already reviewed %s", ErrDuplicateReview, req.ServiceName)
		}
		return nil, fmt.Errorf("%w: failed to create review: %v", ErrDatabaseQuery, err)
	}

	if s.email != nil {
		go func(r models.Review) {
			if err := s.email.SendReviewNotification(&r); err != nil {
				logger.Warn("Failed to send review notification: ", err)
			}
		}(review)
	}

	return &review, nil
}

// GetServiceReviews lists all reviews for one service, newest first.
func (s *ReviewService) GetServiceReviews(ctx context.Context, serviceID string) ([]models.Review, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed service id %q", ErrInvalidInput, serviceID)
	}

	ctx, cancel := context.WithTimeout(ctx, ReviewQueryTimeout)
	defer cancel()

	reviews := make([]models.Review, 0)
	if err := s.db.WithContext(ctx).
		Where("service_id = ?", id).
		Order("reviewed_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch reviews: %v", ErrDatabaseQuery, err)
	}

	return reviews, nil
}

// GetReviewerReviews returns the reviews matching a name/email filter, but
// only when the filter agrees with the verified token claims. With no filter
// at all the caller gets their own reviews.
func (s *ReviewService) GetReviewerReviews(ctx context.Context, claims *TokenClaims, name, email string) ([]models.Review, error) {
	if claims == nil {
		return nil, ErrInvalidToken
	}
	if name == "" && email == "" {
		name, email = claims.Name, claims.Email
	}
	if name != "" && name != claims.Name {
		return nil, ErrForbidden
	}
	if email != "" && email != claims.Email {
		return nil, ErrForbidden
	}

	ctx, cancel := context.WithTimeout(ctx, ReviewQueryTimeout)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Review{})
	switch {
	case name != "" && email != "":
		query = query.Where("name = ? OR email = ?", name, email)
	case name != "":
		query = query.Where("name = ?", name)
	default:
		query = query.Where("email = ?", email)
	}

	reviews := make([]models.Review, 0)
	if err := query.Order("reviewed_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to fetch reviews: %v", ErrDatabaseQuery, err)
	}

	return reviews, nil
}

// UpdateReview patches comment and/or star on an existing review and reports
// how many records changed. A missing id yields count 0, not an error;
// identity, service reference, reviewer identity and reviewedAt stay frozen.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID string, req models.UpdateReviewRequest) (int64, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed review id %q", ErrInvalidInput, reviewID)
	}

	patch := map[string]interface{}{}
	if req.Comment != nil {
		patch["comment"] = utils.SanitizeString(*req.Comment)
	}
	if req.Star != nil {
		if !utils.IsValidRating(*req.Star) {
			return 0, fmt.Errorf("%w: star must be between 1 and 5", ErrInvalidInput)
		}
		patch["star"] = *req.Star
	}
	if len(patch) == 0 {
		return 0, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, ReviewQueryTimeout)
	defer cancel()

	result := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: failed to update review: %v", ErrDatabaseQuery, result.Error)
	}

	return result.RowsAffected, nil
}

// DeleteReview removes a review by id, reporting the removed count. Deleting
// a missing id is a no-op with count 0.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string) (int64, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed review id %q", ErrInvalidInput, reviewID)
	}

	ctx, cancel := context.WithTimeout(ctx, ReviewQueryTimeout)
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: failed to delete review: %v", ErrDatabaseQuery, result.Error)
	}

	return result.RowsAffected, nil
}
