package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
)

// Tags are global and unowned, so none of these take an owner id.

func ListTags() ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := db.DB.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func GetTag(id uint) (models.Tag, error) {
	var tag models.Tag
	if err := db.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tag{}, ErrNotFound
		}
		return models.Tag{}, err
	}
	return tag, nil
}

func CreateTag(name string) (models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := db.DB.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Tag{}, ErrDuplicate
		}
		return models.Tag{}, err
	}
	return tag, nil
}

func UpdateTag(id uint, name string) (models.Tag, error) {
	tag, err := GetTag(id)
	if err != nil {
		return models.Tag{}, err
	}
	if err := db.DB.Model(&tag).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Tag{}, ErrDuplicate
		}
		return models.Tag{}, err
	}
	tag.Name = name
	return tag, nil
}

func DeleteTag(id uint) error {
	tag, err := GetTag(id)
	if err != nil {
		return err
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM habit_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// resolveTags loads the tags for a tag_ids list, rejecting unknown ids.
func resolveTags(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	var tags []models.Tag
	if err := db.DB.Where("id IN ?", unique).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}
