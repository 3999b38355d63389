package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarmohsen179/advanced-habit-tracker/db"
	"github.com/omarmohsen179/advanced-habit-tracker/models"
)

var asOf = models.NewDate(2026, time.August, 31)

func TestComputeStreakNoCompletions(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit := createTestHabit(t, user.ID, "read")

	streak, err := ComputeStreak(user.ID, habit.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestComputeStreakTodayMissing(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit := createTestHabit(t, user.ID, "read")

	// Long unbroken history that stops yesterday still counts as zero:
	// the streak is measured ending on the as-of date.
	for i := 1; i <= 10; i++ {
		addCompletion(t, habit.ID, asOf.AddDays(-i), true)
	}

	streak, err := ComputeStreak(user.ID, habit.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestComputeStreakConsecutiveRun(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit := createTestHabit(t, user.ID, "read")

	addCompletion(t, habit.ID, asOf, true)
	addCompletion(t, habit.ID, asOf.AddDays(-1), true)
	addCompletion(t, habit.ID, asOf.AddDays(-2), true)
	// gap at -3, then an older completion that must not count
	addCompletion(t, habit.ID, asOf.AddDays(-4), true)

	streak, err := ComputeStreak(user.ID, habit.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestComputeStreakIgnoresIncompleteRows(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit := createTestHabit(t, user.ID, "read")

	// A completed=false row is invisible to the streak, so the run breaks
	// at the day it occupies.
	addCompletion(t, habit.ID, asOf, true)
	addCompletion(t, habit.ID, asOf.AddDays(-1), false)
	addCompletion(t, habit.ID, asOf.AddDays(-2), true)

	streak, err := ComputeStreak(user.ID, habit.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestComputeStreakUnownedHabit(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	habit := createTestHabit(t, alice.ID, "read")
	addCompletion(t, habit.ID, asOf, true)

	_, err := ComputeStreak(bob.ID, habit.ID, asOf)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateHabitWithTags(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	health, err := CreateTag("health")
	require.NoError(t, err)
	morning, err := CreateTag("morning")
	require.NoError(t, err)

	// tag_ids order must not matter
	habit, err := CreateHabit(user.ID, models.HabitInput{
		Name:   "run",
		TagIDs: []uint{morning.ID, health.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, habit.UserID)
	names := []string{}
	for _, tag := range habit.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"health", "morning"}, names)
	assert.False(t, habit.CreatedAt.IsZero())
}

func TestCreateHabitUnknownTag(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	_, err := CreateHabit(user.ID, models.HabitInput{Name: "run", TagIDs: []uint{999}})
	assert.ErrorIs(t, err, ErrUnknownTag)

	// the failed create must not leave a habit behind
	habits, err := ListHabits(user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestUpdateHabitTagSemantics(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	tag, err := CreateTag("health")
	require.NoError(t, err)

	habit, err := CreateHabit(user.ID, models.HabitInput{
		Name:   "run",
		TagIDs: []uint{tag.ID},
	})
	require.NoError(t, err)

	// omitting tag_ids leaves the tag set untouched
	newName := "run daily"
	updated, err := UpdateHabit(user.ID, habit.ID, models.HabitUpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "run daily", updated.Name)
	assert.Len(t, updated.Tags, 1)

	// an empty list clears it
	empty := []uint{}
	updated, err = UpdateHabit(user.ID, habit.ID, models.HabitUpdateInput{TagIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
	assert.Equal(t, "run daily", updated.Name)
}

func TestUpdateHabitPreservesCreatedAt(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit, err := CreateHabit(user.ID, models.HabitInput{Name: "run"})
	require.NoError(t, err)

	newName := "sprint"
	updated, err := UpdateHabit(user.ID, habit.ID, models.HabitUpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.True(t, updated.CreatedAt.Equal(habit.CreatedAt))
	assert.Equal(t, habit.UserID, updated.UserID)
}

func TestListHabitsTagFilter(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	other := createTestUser(t, "bob")
	health, err := CreateTag("health")
	require.NoError(t, err)

	_, err = CreateHabit(user.ID, models.HabitInput{Name: "run", TagIDs: []uint{health.ID}})
	require.NoError(t, err)
	_, err = CreateHabit(user.ID, models.HabitInput{Name: "read"})
	require.NoError(t, err)
	_, err = CreateHabit(other.ID, models.HabitInput{Name: "swim", TagIDs: []uint{health.ID}})
	require.NoError(t, err)

	filtered, err := ListHabits(user.ID, "health")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "run", filtered[0].Name)

	all, err := ListHabits(user.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := ListHabits(user.ID, "no-such-tag")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetHabitOwnerScoping(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	habit := createTestHabit(t, alice.ID, "read")

	_, err := GetHabit(bob.ID, habit.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = DeleteHabit(bob.ID, habit.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// still there for the owner
	_, err = GetHabit(alice.ID, habit.ID)
	assert.NoError(t, err)
}

func TestDeleteHabitCascadesCompletions(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit := createTestHabit(t, user.ID, "read")
	keep := createTestHabit(t, user.ID, "run")
	addCompletion(t, habit.ID, asOf, true)
	addCompletion(t, habit.ID, asOf.AddDays(-1), true)
	addCompletion(t, keep.ID, asOf, true)

	require.NoError(t, DeleteHabit(user.ID, habit.ID))

	var count int64
	require.NoError(t, db.DB.Model(&models.HabitCompletion{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestComputeProgress(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	habit := createTestHabit(t, user.ID, "read")

	for i := 0; i < 5; i++ {
		addCompletion(t, habit.ID, asOf.AddDays(-i), i < 3)
	}

	entries, err := ComputeProgress(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "read", entries[0].Habit)
	assert.Equal(t, int64(5), entries[0].Total)
	assert.Equal(t, int64(3), entries[0].Completed)
}

func TestComputeProgressNoHabits(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	entries, err := ComputeProgress(user.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestComputeProgressListingOrder(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	first := createTestHabit(t, user.ID, "first")
	second := createTestHabit(t, user.ID, "second")
	addCompletion(t, second.ID, asOf, true)
	addCompletion(t, first.ID, asOf, true)

	entries, err := ComputeProgress(user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Habit)
	assert.Equal(t, "second", entries[1].Habit)
}
