package db

import (
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) FindByUserAndDate(userID uint, day time.Time) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.
		Where("user_id = ? AND log_date = ?", userID, day).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

// ListByUserDateRange lists logs dated within [from, to], newest first.
func (repo *DailyLogRepository) ListByUserDateRange(userID uint, from time.Time, to time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("user_id = ? AND log_date >= ? AND log_date <= ?", userID, from, to).
		Order("log_date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// SaveWithSymptoms upserts the log and, when replaceSymptoms is set, swaps
// the day's symptom rows for the supplied ones in the same transaction.
func (repo *DailyLogRepository) SaveWithSymptoms(entry *models.DailyLog, symptoms []models.Symptom, replaceSymptoms bool) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if entry.ID == 0 {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		} else if err := tx.Save(entry).Error; err != nil {
			return err
		}

		if !replaceSymptoms {
			return nil
		}

		if err := tx.
			Where("user_id = ? AND log_date = ?", entry.UserID, entry.LogDate).
			Delete(&models.Symptom{}).Error; err != nil {
			return err
		}
		if len(symptoms) == 0 {
			return nil
		}
		return tx.Create(&symptoms).Error
	})
}
