package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Habits       []Habit   `gorm:"foreignKey:UserID" json:"-"`
}

// Tag is global: tags have no owner and are shared across users.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex" json:"name"`
}

type Habit struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"index" json:"user"`
	Name        string            `gorm:"size:100" json:"name"`
	Description string            `json:"description"`
	Tags        []Tag             `gorm:"many2many:habit_tags" json:"tags"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	Completions []HabitCompletion `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"completions"`
}

// HabitCompletion records one calendar day for one habit. The composite
// unique index enforces the central invariant: at most one row per
// (habit, date) pair.
type HabitCompletion struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	HabitID   uint `gorm:"index:idx_habit_date,unique" json:"habit"`
	Date      Date `gorm:"type:date;index:idx_habit_date,unique" json:"date"`
	Completed bool `json:"completed"`
}
