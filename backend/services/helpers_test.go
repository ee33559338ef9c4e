package services

import (
	"encoding/json"
	"testing"
	"time"

	"learnhub/backend/database"
	"learnhub/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructor *models.User) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:        "Go in Practice",
		Description:  "Channels and contexts",
		Category:     "programming",
		Difficulty:   models.DifficultyBeginner,
		InstructorID: instructor.ID,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createQuiz(t *testing.T, db *gorm.DB, course *models.Course, keys ...any) *models.Quiz {
	t.Helper()
	questions := make([]models.Question, len(keys))
	for i, key := range keys {
		questions[i] = models.Question{Text: "question", CorrectAnswer: key}
	}
	quiz := &models.Quiz{CourseID: course.ID, Title: "Checkpoint"}
	require.NoError(t, quiz.SetQuestions(questions))
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
