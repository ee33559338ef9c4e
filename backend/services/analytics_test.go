package services

import (
	"context"
	"testing"

	"learnhub/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentProgressStatistics(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teach@example.com", models.RoleInstructor)
	student := createUser(t, db, "learn@example.com", models.RoleStudent)
	first := createCourse(t, db, instructor)
	second := createCourse(t, db, instructor)
	ctx := context.Background()

	enrollments := NewEnrollmentService(db)
	e1, err := enrollments.Enroll(ctx, student.ID, first.ID)
	require.NoError(t, err)
	_, err = enrollments.Enroll(ctx, student.ID, second.ID)
	require.NoError(t, err)
	_, err = enrollments.UpdateProgress(ctx, e1.ID, student.ID, ProgressUpdate{Progress: ptr(50.0), Completed: ptr(true)})
	require.NoError(t, err)

	quiz := createQuiz(t, db, first, "A", "B", "C")
	quizzes := NewQuizService(db)
	_, err = quizzes.Submit(ctx, quiz.ID, student.ID, rawJSON(t, []string{"A"}))
	require.NoError(t, err)

	progress, err := NewAnalyticsService(db).StudentProgress(ctx, student.ID, 0)
	require.NoError(t, err)
	assert.Len(t, progress.Enrollments, 2)
	require.Len(t, progress.QuizAttempts, 1)
	assert.Equal(t, first.ID, progress.QuizAttempts[0].Quiz.Course.ID)
	assert.Equal(t, models.StudentStatistics{
		TotalCourses:     2,
		CompletedCourses: 1,
		AverageProgress:  "25.00",
		TotalQuizzes:     1,
		AverageQuizScore: "33.33",
	}, progress.Statistics)

	filtered, err := NewAnalyticsService(db).StudentProgress(ctx, student.ID, second.ID)
	require.NoError(t, err)
	assert.Len(t, filtered.Enrollments, 1)
	assert.Equal(t, "0.00", filtered.Statistics.AverageProgress)
}

func TestInstructorAnalytics(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teach@example.com", models.RoleInstructor)
	cheap := createCourse(t, db, instructor)
	pricey := createCourse(t, db, instructor)
	require.NoError(t, db.Model(cheap).Update("price", 10).Error)
	require.NoError(t, db.Model(pricey).Update("price", 99.5).Error)
	ctx := context.Background()

	enrollments := NewEnrollmentService(db)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		s := createUser(t, db, email, models.RoleStudent)
		_, err := enrollments.Enroll(ctx, s.ID, cheap.ID)
		require.NoError(t, err)
		if email == "a@example.com" {
			_, err = enrollments.Enroll(ctx, s.ID, pricey.ID)
			require.NoError(t, err)
		}
	}
	createQuiz(t, db, pricey, "A")

	got, err := NewAnalyticsService(db).InstructorAnalytics(ctx, instructor.ID, "revenue")
	require.NoError(t, err)
	assert.Equal(t, models.InstructorStatistics{
		TotalCourses:     2,
		TotalEnrollments: 3,
		TotalStudents:    2,
		TotalEarnings:    "119.50",
	}, got.Statistics)
	require.Len(t, got.Courses, 2)
	assert.Equal(t, pricey.ID, got.Courses[0].ID)
	assert.Equal(t, 1, got.Courses[0].Quizzes)
	assert.Len(t, got.RecentEnrollments, 3)
	assert.NotEmpty(t, got.RecentEnrollments[0].Student.Email)

	byCount, err := NewAnalyticsService(db).InstructorAnalytics(ctx, instructor.ID, "enrollments")
	require.NoError(t, err)
	assert.Equal(t, cheap.ID, byCount.Courses[0].ID)

	empty, err := NewAnalyticsService(db).InstructorAnalytics(ctx, 999, "")
	require.NoError(t, err)
	assert.Empty(t, empty.Courses)
	assert.Equal(t, "0.00", empty.Statistics.TotalEarnings)
}

func TestCountBy(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teach@example.com", models.RoleInstructor)
	course := createCourse(t, db, instructor)
	createQuiz(t, db, course, "A")
	createQuiz(t, db, course, "B")

	counts, err := CountBy(db, &models.Quiz{}, "course_id", []uint{course.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[course.ID])
	assert.Zero(t, counts[999])
}
