// models/service.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Rating      float64        `json:"rating"`
	Img         string         `json:"img"`
	Images      []ServiceImage `json:"images,omitempty" gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ServiceImage struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ServiceID   uuid.UUID `json:"serviceId" gorm:"type:uuid;not null;index"`
	FileName    string    `json:"fileName" gorm:"not null"`
	S3Key       string    `json:"s3Key" gorm:"not null;unique"`
	S3URL       string    `json:"s3Url" gorm:"not null"`
	ContentType string    `json:"contentType" gorm:"not null"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (i *ServiceImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Rating      float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Img         string  `json:"img" binding:"omitempty,url"`
}
