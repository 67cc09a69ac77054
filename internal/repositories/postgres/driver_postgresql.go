package postgres

import (
	"context"

	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type DriverPostgreSQL struct {
	db *gorm.DB
}

func NewDriverPostgreSQL(db *gorm.DB) repositories.DriverRepository {
	return &DriverPostgreSQL{db: db}
}

func (d DriverPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := d.db.WithContext(ctx).First(&driver, id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}
