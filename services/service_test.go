package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
)

// setupTestDB points the package-level connection at a fresh in-memory
// sqlite database. TranslateError stays on so unique-violation handling
// behaves the same as against Postgres.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Habit{},
		&models.HabitCompletion{},
	))

	db.DB = conn
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			sqlDB.Close()
		}
		db.DB = nil
	})
}

func createTestUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createTestHabit(t *testing.T, userID uint, name string) models.Habit {
	t.Helper()
	habit := models.Habit{UserID: userID, Name: name}
	require.NoError(t, db.DB.Create(&habit).Error)
	return habit
}

func addCompletion(t *testing.T, habitID uint, date models.Date, completed bool) models.HabitCompletion {
	t.Helper()
	completion := models.HabitCompletion{HabitID: habitID, Date: date, Completed: completed}
	require.NoError(t, db.DB.Create(&completion).Error)
	return completion
}
