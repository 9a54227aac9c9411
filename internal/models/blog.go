package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Blog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Img       string    `json:"img"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type CreateBlogRequest struct {
	Title   string `json:"title" binding:"required"`
	Author  string `json:"author"`
	Content string `json:"content" binding:"required"`
	Img     string `json:"img" binding:"omitempty,url"`
}
