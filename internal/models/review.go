package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ServiceID   uuid.UUID `json:"serviceId" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_service_reviewer"`
	ServiceName string    `json:"serviceName" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Email       string    `json:"email" gorm:"not null;uniqueIndex:idx_reviews_service_reviewer"`
	Img         string    `json:"img"`
	Comment     string    `json:"comment"`
	Star        int       `json:"star" gorm:"check:star >= 1 AND star <= 5"`
	ReviewedAt  time.Time `json:"reviewedAt" gorm:"not null"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Request structs for API
type CreateReviewRequest struct {
	ServiceID   string `json:"serviceId" binding:"required"`
	ServiceName string `json:"serviceName"`
	Name        string `json:"name"`
	Email       string `json:"email" binding:"required"`
	Img         string `json:"img"`
	Comment     string `json:"comment"`
	Body        string `json:"body"`
	Star        int    `json:"star"`
}

// CommentText falls back to the legacy "body" key still sent by older clients.
func (r CreateReviewRequest) CommentText() string {
	if r.Comment != "" {
		return r.Comment
	}
	return r.Body
}

type UpdateReviewRequest struct {
	Comment *string `json:"comment,omitempty"`
	Star    *int    `json:"star,omitempty"`
}
