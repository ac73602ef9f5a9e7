package db

import (
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) ListByUserAndDate(userID uint, day time.Time) ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	if err := repo.database.
		Where("user_id = ? AND log_date = ?", userID, day).
		Order("symptom_type ASC, id ASC").
		Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}
