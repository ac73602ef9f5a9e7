package db

import (
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// FindPredecessor returns the cycle with the greatest start date strictly
// before the given date, whatever order the rows were inserted in.
func (repo *CycleRepository) FindPredecessor(userID uint, before time.Time) (models.Cycle, bool, error) {
	cycle := models.Cycle{}
	result := repo.database.
		Where("user_id = ? AND start_date < ?", userID, before).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&cycle)
	if result.Error != nil {
		return models.Cycle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Cycle{}, false, nil
	}
	return cycle, true, nil
}

func (repo *CycleRepository) ListRecentByUser(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Limit(limit).
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListAllByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_date ASC, id ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, bool, error) {
	cycle := models.Cycle{}
	result := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).Limit(1).Find(&cycle)
	if result.Error != nil {
		return models.Cycle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Cycle{}, false, nil
	}
	return cycle, true, nil
}

func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

// SaveMetricsBatch writes only the derived columns of each cycle, all in one
// transaction.
func (repo *CycleRepository) SaveMetricsBatch(cycles []models.Cycle) error {
	if len(cycles) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for _, cycle := range cycles {
			if err := tx.Model(&models.Cycle{}).
				Where("id = ? AND user_id = ?", cycle.ID, cycle.UserID).
				Updates(map[string]any{
					"cycle_length":  cycle.CycleLength,
					"period_length": cycle.PeriodLength,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
