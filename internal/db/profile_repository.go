package db

import (
	"github.com/terraincognita07/cyclekeeper/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository reads the per-user averages. Rows are maintained by
// another process.
type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUser(userID uint) (models.UserCycleProfile, bool, error) {
	profile := models.UserCycleProfile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.UserCycleProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.UserCycleProfile{UserID: userID}, false, nil
	}
	return profile, true, nil
}
