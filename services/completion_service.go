package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
)

// ListCompletions returns every completion belonging to the owner's
// habits, across all habits.
func ListCompletions(ownerID uint) ([]models.HabitCompletion, error) {
	completions := []models.HabitCompletion{}
	err := db.DB.Model(&models.HabitCompletion{}).
		Select("habit_completions.*").
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habits.user_id = ?", ownerID).
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

func GetCompletion(ownerID, id uint) (models.HabitCompletion, error) {
	var completion models.HabitCompletion
	err := db.DB.Model(&models.HabitCompletion{}).
		Select("habit_completions.*").
		Joins("JOIN habits ON habits.id = habit_completions.habit_id").
		Where("habit_completions.id = ? AND habits.user_id = ?", id, ownerID).
		First(&completion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.HabitCompletion{}, ErrNotFound
		}
		return models.HabitCompletion{}, err
	}
	return completion, nil
}

// CreateCompletion is the generic (non-idempotent) create path: a row for
// an already-recorded (habit, date) pair is a hard Conflict, never a
// silent overwrite.
func CreateCompletion(ownerID uint, in models.CompletionInput) (models.HabitCompletion, error) {
	if _, err := getOwnedHabit(ownerID, in.HabitID); err != nil {
		return models.HabitCompletion{}, err
	}

	completed := true
	if in.Completed != nil {
		completed = *in.Completed
	}
	completion := models.HabitCompletion{
		HabitID:   in.HabitID,
		Date:      in.Date,
		Completed: completed,
	}
	if err := db.DB.Create(&completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.HabitCompletion{}, ErrConflict
		}
		return models.HabitCompletion{}, err
	}

	invalidateProgress(ownerID)
	return completion, nil
}

func UpdateCompletion(ownerID, id uint, in models.CompletionUpdateInput) (models.HabitCompletion, error) {
	completion, err := GetCompletion(ownerID, id)
	if err != nil {
		return models.HabitCompletion{}, err
	}

	if in.Date != nil {
		completion.Date = *in.Date
	}
	if in.Completed != nil {
		completion.Completed = *in.Completed
	}

	updates := map[string]interface{}{
		"date":      completion.Date,
		"completed": completion.Completed,
	}
	if err := db.DB.Model(&completion).Updates(updates).Error; err != nil {
		// Moving a completion onto an already-recorded date trips the
		// same uniqueness constraint as a duplicate create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.HabitCompletion{}, ErrConflict
		}
		return models.HabitCompletion{}, err
	}

	invalidateProgress(ownerID)
	return completion, nil
}

func DeleteCompletion(ownerID, id uint) error {
	completion, err := GetCompletion(ownerID, id)
	if err != nil {
		return err
	}
	if err := db.DB.Delete(&completion).Error; err != nil {
		return err
	}
	invalidateProgress(ownerID)
	return nil
}

// GetOrCreateCompletion is the idempotent mark-complete path. It inserts
// optimistically and falls back to the existing row when the (habit, date)
// unique index rejects the insert, so two racing callers end up with the
// same single row. Either way the row leaves here with completed=true.
func GetOrCreateCompletion(habitID uint, date models.Date) (models.HabitCompletion, bool, error) {
	completion := models.HabitCompletion{
		HabitID:   habitID,
		Date:      date,
		Completed: true,
	}
	err := db.DB.Create(&completion).Error
	if err == nil {
		return completion, true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.HabitCompletion{}, false, err
	}

	var existing models.HabitCompletion
	if err := db.DB.Where("habit_id = ? AND date = ?", habitID, date).First(&existing).Error; err != nil {
		return models.HabitCompletion{}, false, err
	}
	if !existing.Completed {
		if err := db.DB.Model(&existing).Update("completed", true).Error; err != nil {
			return models.HabitCompletion{}, false, err
		}
		existing.Completed = true
	}
	return existing, false, nil
}

// CompleteHabit marks one of the owner's habits complete for the given
// date (today, for the HTTP endpoint).
func CompleteHabit(ownerID, habitID uint, date models.Date) (models.HabitCompletion, bool, error) {
	if _, err := getOwnedHabit(ownerID, habitID); err != nil {
		return models.HabitCompletion{}, false, err
	}
	completion, created, err := GetOrCreateCompletion(habitID, date)
	if err != nil {
		return models.HabitCompletion{}, false, err
	}
	invalidateProgress(ownerID)
	return completion, created, nil
}
