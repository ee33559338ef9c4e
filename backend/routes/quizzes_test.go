package routes

import (
	"fmt"
	"testing"

	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createQuiz(t *testing.T, s *testServer, token string, courseID uint, keys ...interface{}) uint {
	t.Helper()
	questions := make([]map[string]interface{}, len(keys))
	for i, key := range keys {
		questions[i] = map[string]interface{}{
			"text":          fmt.Sprintf("Question %d", i+1),
			"options":       []string{"A", "B", "C", "D"},
			"correctAnswer": key,
		}
	}
	resp := s.do(t, "POST", "/api/quizzes", token, map[string]interface{}{
		"title":     "Checkpoint",
		"courseId":  courseID,
		"questions": questions,
	})
	require.Equal(t, fiber.StatusCreated, resp.Status, resp.Body)
	return id(resp.data()["id"])
}

func TestSubmitQuizScoring(t *testing.T) {
	s := setup(t)
	_, instructor := s.user(t, "teach@example.com", models.RoleInstructor)
	_, student := s.user(t, "learn@example.com", models.RoleStudent)
	courseID := s.course(t, instructor)
	quizID := createQuiz(t, s, instructor, courseID, "A", "B", "C", "D")
	path := fmt.Sprintf("/api/quizzes/%d/submit", quizID)

	resp := s.do(t, "POST", path, student, map[string]interface{}{"answers": []string{"A", "X", "C", "D"}})
	require.Equal(t, fiber.StatusOK, resp.Status, resp.Body)
	assert.Equal(t, "Quiz submitted successfully", resp.Body["message"])
	assert.Equal(t, "75.00", resp.data()["score"])
	assert.Equal(t, float64(3), resp.data()["correctCount"])
	assert.Equal(t, float64(4), resp.data()["totalQuestions"])

	resp = s.do(t, "POST", path, student, map[string]interface{}{"answers": []string{"A", "B", "C", "D", "E"}})
	require.Equal(t, fiber.StatusOK, resp.Status)
	assert.Equal(t, "100.00", resp.data()["score"])
	assert.Equal(t, float64(4), resp.data()["totalQuestions"])
	latestID := resp.data()["attempt"].(map[string]interface{})["id"]

	resp = s.do(t, "GET", fmt.Sprintf("/api/quizzes/%d", quizID), student, nil)
	require.Equal(t, fiber.StatusOK, resp.Status)
	latest := resp.data()["latestAttempt"].(map[string]interface{})
	assert.Equal(t, latestID, latest["id"])

	resp = s.do(t, "GET", fmt.Sprintf("/api/quizzes?courseId=%d", courseID), student, nil)
	require.Len(t, resp.list(), 1)
	counts := resp.list()[0].(map[string]interface{})["counts"].(map[string]interface{})
	assert.Equal(t, float64(2), counts["attempts"])
}

func TestSubmitQuizRejections(t *testing.T) {
	s := setup(t)
	_, instructor := s.user(t, "teach@example.com", models.RoleInstructor)
	_, student := s.user(t, "learn@example.com", models.RoleStudent)
	courseID := s.course(t, instructor)
	quizID := createQuiz(t, s, instructor, courseID, "A")
	emptyID := createQuiz(t, s, instructor, courseID)

	resp := s.do(t, "POST", "/api/quizzes/9999/submit", student, map[string]interface{}{"answers": []string{"A"}})
	assert.Equal(t, fiber.StatusNotFound, resp.Status)
	assert.Equal(t, "Quiz not found", resp.Body["message"])

	for _, body := range []string{`{"answers": "A"}`, `{"answers": {"0": "A"}}`, `{}`} {
		resp = s.do(t, "POST", fmt.Sprintf("/api/quizzes/%d/submit", quizID), student, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.Status, body)
		assert.Equal(t, "Answers array is required", resp.Body["message"], body)
	}

	resp = s.do(t, "POST", fmt.Sprintf("/api/quizzes/%d/submit", emptyID), student, map[string]interface{}{"answers": []string{"A"}})
	assert.Equal(t, fiber.StatusBadRequest, resp.Status)

	var attempts int64
	require.NoError(t, s.db.Model(&models.QuizAttempt{}).Count(&attempts).Error)
	assert.Zero(t, attempts)
}

func TestQuizOwnership(t *testing.T) {
	s := setup(t)
	_, owner := s.user(t, "owner@example.com", models.RoleInstructor)
	_, other := s.user(t, "other@example.com", models.RoleInstructor)
	_, admin := s.user(t, "admin@example.com", models.RoleAdmin)
	courseID := s.course(t, owner)
	quizID := createQuiz(t, s, owner, courseID, "A")
	path := fmt.Sprintf("/api/quizzes/%d", quizID)

	resp := s.do(t, "POST", "/api/quizzes", other, map[string]interface{}{
		"title": "Sneaky", "courseId": courseID, "questions": []interface{}{},
	})
	assert.Equal(t, fiber.StatusForbidden, resp.Status)
	assert.Equal(t, "Not authorized to add quizzes to this course", resp.Body["message"])

	resp = s.do(t, "PUT", path, other, map[string]string{"title": "Mine"})
	assert.Equal(t, fiber.StatusForbidden, resp.Status)
	assert.Equal(t, "Not authorized to update this quiz", resp.Body["message"])

	resp = s.do(t, "PUT", path, owner, map[string]interface{}{
		"questions": []map[string]interface{}{{"text": "Q", "correctAnswer": 42}},
	})
	require.Equal(t, fiber.StatusOK, resp.Status, resp.Body)

	resp = s.do(t, "DELETE", path, admin, nil)
	assert.Equal(t, fiber.StatusOK, resp.Status)
	resp = s.do(t, "GET", path, owner, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.Status)
}
