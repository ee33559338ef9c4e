package routes

import (
	"fmt"
	"testing"

	"learnhub/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics(t *testing.T) {
	s := setup(t)
	_, instructor := s.user(t, "teach@example.com", models.RoleInstructor)
	_, student := s.user(t, "learn@example.com", models.RoleStudent)
	courseID := s.course(t, instructor)
	quizID := createQuiz(t, s, instructor, courseID, "A", "B")

	resp := s.do(t, "POST", "/api/enrollments", student, map[string]uint{"courseId": courseID})
	require.Equal(t, fiber.StatusCreated, resp.Status)
	resp = s.do(t, "POST", fmt.Sprintf("/api/quizzes/%d/submit", quizID), student, map[string]interface{}{"answers": []string{"A", "X"}})
	require.Equal(t, fiber.StatusOK, resp.Status)

	resp = s.do(t, "GET", "/api/analytics/progress", student, nil)
	require.Equal(t, fiber.StatusOK, resp.Status)
	stats := resp.data()["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalCourses"])
	assert.Equal(t, "0.00", stats["averageProgress"])
	assert.Equal(t, "50.00", stats["averageQuizScore"])

	resp = s.do(t, "GET", "/api/analytics/instructor", student, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.Status)

	resp = s.do(t, "GET", "/api/analytics/instructor", instructor, nil)
	require.Equal(t, fiber.StatusOK, resp.Status)
	stats = resp.data()["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalEnrollments"])
	assert.Equal(t, "25.00", stats["totalEarnings"])
	assert.Len(t, resp.data()["recentEnrollments"], 1)
}
