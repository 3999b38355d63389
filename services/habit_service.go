package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omarmohsen179/advanced-habit-tracker/cache"
	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

const progressCacheTTL = 5 * time.Minute

// ListHabits returns the owner's habits in creation order. A non-empty
// tagName restricts the result to habits carrying a tag with exactly that
// name; an unknown name just yields an empty list.
func ListHabits(ownerID uint, tagName string) ([]models.Habit, error) {
	q := db.DB.Model(&models.Habit{}).
		Where("habits.user_id = ?", ownerID).
		Preload("Tags").
		Preload("Completions").
		Order("habits.id")

	if tagName != "" {
		q = q.Joins("JOIN habit_tags ON habit_tags.habit_id = habits.id").
			Joins("JOIN tags ON tags.id = habit_tags.tag_id").
			Where("tags.name = ?", tagName)
	}

	habits := []models.Habit{}
	if err := q.Find(&habits).Error; err != nil {
		return nil, err
	}
	for i := range habits {
		normalizeHabit(&habits[i])
	}
	return habits, nil
}

// normalizeHabit keeps empty relation sets as [] in JSON rather than null.
func normalizeHabit(habit *models.Habit) {
	if habit.Tags == nil {
		habit.Tags = []models.Tag{}
	}
	if habit.Completions == nil {
		habit.Completions = []models.HabitCompletion{}
	}
}

// GetHabit loads one of the owner's habits with tags and completions.
// Someone else's habit is indistinguishable from a missing one.
func GetHabit(ownerID, habitID uint) (models.Habit, error) {
	var habit models.Habit
	err := db.DB.Where("id = ? AND user_id = ?", habitID, ownerID).
		Preload("Tags").
		Preload("Completions").
		First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}
	normalizeHabit(&habit)
	return habit, nil
}

func getOwnedHabit(ownerID, habitID uint) (models.Habit, error) {
	var habit models.Habit
	err := db.DB.Where("id = ? AND user_id = ?", habitID, ownerID).First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}
	return habit, nil
}

// CreateHabit creates the habit and assigns its tag set in one
// transaction: both land or neither does.
func CreateHabit(ownerID uint, in models.HabitInput) (models.Habit, error) {
	tags, err := resolveTags(in.TagIDs)
	if err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&habit).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			return tx.Model(&habit).Association("Tags").Replace(tags)
		}
		return nil
	})
	if err != nil {
		return models.Habit{}, err
	}

	invalidateProgress(ownerID)
	utils.Logger.Info("habit_created",
		zap.Uint("user_id", ownerID),
		zap.Uint("habit_id", habit.ID),
	)
	return GetHabit(ownerID, habit.ID)
}

// UpdateHabit applies a partial update. Only name, description and the tag
// set are writable; owner and created_at are never touched.
func UpdateHabit(ownerID, habitID uint, in models.HabitUpdateInput) (models.Habit, error) {
	habit, err := getOwnedHabit(ownerID, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	var tags []models.Tag
	if in.TagIDs != nil {
		if tags, err = resolveTags(*in.TagIDs); err != nil {
			return models.Habit{}, err
		}
	}

	if in.Name != nil {
		habit.Name = *in.Name
	}
	if in.Description != nil {
		habit.Description = *in.Description
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        habit.Name,
			"description": habit.Description,
		}
		if err := tx.Model(&habit).Updates(updates).Error; err != nil {
			return err
		}
		if in.TagIDs != nil {
			if len(tags) == 0 {
				return tx.Model(&habit).Association("Tags").Clear()
			}
			return tx.Model(&habit).Association("Tags").Replace(tags)
		}
		return nil
	})
	if err != nil {
		return models.Habit{}, err
	}

	invalidateProgress(ownerID)
	return GetHabit(ownerID, habitID)
}

// DeleteHabit removes the habit together with its completions and tag
// links. Postgres cascades the completions anyway; deleting them here
// keeps the behavior identical on databases without the FK enforced.
func DeleteHabit(ownerID, habitID uint) error {
	habit, err := getOwnedHabit(ownerID, habitID)
	if err != nil {
		return err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&habit).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&habit).Error
	})
	if err != nil {
		return err
	}

	invalidateProgress(ownerID)
	utils.Logger.Info("habit_deleted",
		zap.Uint("user_id", ownerID),
		zap.Uint("habit_id", habitID),
	)
	return nil
}

// ComputeStreak counts the unbroken run of completed days ending on asOf.
// The walk starts at asOf itself: if asOf has no completed row the streak
// is 0 no matter how long the earlier history is.
func ComputeStreak(ownerID, habitID uint, asOf models.Date) (int, error) {
	if _, err := getOwnedHabit(ownerID, habitID); err != nil {
		return 0, err
	}

	var completions []models.HabitCompletion
	err := db.DB.Where("habit_id = ? AND completed = ?", habitID, true).
		Order("date DESC").
		Find(&completions).Error
	if err != nil {
		return 0, err
	}

	streak := 0
	for i, c := range completions {
		if !c.Date.Equal(asOf.AddDays(-i)) {
			break
		}
		streak++
	}
	return streak, nil
}

// ComputeProgress returns one entry per habit in listing order. Total
// counts every completion row; completed counts only completed=true rows.
// Results are cached per user and invalidated on every habit or
// completion write.
func ComputeProgress(ownerID uint) ([]models.ProgressEntry, error) {
	cacheKey := progressCacheKey(ownerID)
	cached := []models.ProgressEntry{}
	if err := cache.Get(cacheKey, &cached); err == nil {
		utils.Logger.Debug("progress_cache_hit", zap.Uint("user_id", ownerID))
		return cached, nil
	}

	entries := []models.ProgressEntry{}
	err := db.DB.Model(&models.Habit{}).
		Select("habits.name AS habit, " +
			"COUNT(habit_completions.id) AS total, " +
			"COUNT(CASE WHEN habit_completions.completed THEN 1 END) AS completed").
		Joins("LEFT JOIN habit_completions ON habit_completions.habit_id = habits.id").
		Where("habits.user_id = ?", ownerID).
		Group("habits.id, habits.name").
		Order("habits.id").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	if err := cache.Set(cacheKey, entries, progressCacheTTL); err != nil {
		utils.Logger.Warn("progress_cache_set_failed", zap.Error(err))
	}
	return entries, nil
}

func progressCacheKey(ownerID uint) string {
	return fmt.Sprintf("progress:%d", ownerID)
}

func invalidateProgress(ownerID uint) {
	if err := cache.Delete(progressCacheKey(ownerID)); err != nil {
		utils.Logger.Warn("progress_cache_invalidate_failed",
			zap.Uint("user_id", ownerID),
			zap.Error(err),
		)
	}
}
