package handlers

import (
	"errors"
	"net/http"

	"github.com/cloudkitchen/backend/internal/api/middleware"
	"github.com/cloudkitchen/backend/internal/models"
	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateReview):
			utils.SendError(c, http.StatusBadRequest, "Review already exists", err)
		case errors.Is(err, services.ErrInvalidInput):
			utils.SendError(c, http.StatusBadRequest, "Invalid review data", err)
		default:
			utils.SendInternalError(c, "Failed to create review", err)
		}
		return
	}

	utils.SendCreated(c, "Review created successfully", review)
}

// GetReviews serves both listing modes: ?id= lists a service's reviews
// publicly; ?name=/?email= lists a reviewer's own reviews and requires a
// bearer token whose claims match the filter.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	if serviceID := c.Query("id"); serviceID != "" {
		reviews, err := h.reviewService.GetServiceReviews(c.Request.Context(), serviceID)
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				utils.SendError(c, http.StatusBadRequest, "Invalid service ID", err)
				return
			}
			utils.SendInternalError(c, "Failed to fetch reviews", err)
			return
		}
		utils.SendSuccess(c, "Reviews retrieved successfully", reviews)
		return
	}

	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.SendUnauthorized(c, "Authorization header required")
		return
	}

	reviews, err := h.reviewService.GetReviewerReviews(
		c.Request.Context(), claims, c.Query("name"), c.Query("email"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			utils.SendForbidden(c, "You can only view your own reviews")
		case errors.Is(err, services.ErrInvalidToken):
			utils.SendUnauthorized(c, "Invalid token")
		default:
			utils.SendInternalError(c, "Failed to fetch reviews", err)
		}
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	count, err := h.reviewService.UpdateReview(c.Request.Context(), c.Param("reviewId"), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.SendError(c, http.StatusBadRequest, "Invalid update request", err)
			return
		}
		utils.SendInternalError(c, "Failed to update review", err)
		return
	}

	// count 0 means no record matched; still a success by contract
	utils.SendSuccess(c, "Review update processed", gin.H{"modifiedCount": count})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	count, err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("reviewId"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.SendError(c, http.StatusBadRequest, "Invalid review ID", err)
			return
		}
		utils.SendInternalError(c, "Failed to delete review", err)
		return
	}

	utils.SendSuccess(c, "Review delete processed", gin.H{"deletedCount": count})
}
