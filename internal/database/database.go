package database

import (
	"github.com/cloudkitchen/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Unique violations surface as gorm.ErrDuplicatedKey; the review
		// submission flow relies on this to close its check-then-insert race.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate schemas
	err = db.AutoMigrate(
		&models.Service{},
		&models.ServiceImage{},
		&models.Blog{},
		&models.Review{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
