package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, *models.User, *models.Course) {
	t.Helper()
	db := newTestDB(t)
	instructor := createUser(t, db, "teach@example.com", models.RoleInstructor)
	student := createUser(t, db, "learn@example.com", models.RoleStudent)
	course := createCourse(t, db, instructor)
	svc := NewQuizService(db)
	svc.Now = func() time.Time { return fixedNow }
	return svc, student, course
}

func TestAnswerMatches(t *testing.T) {
	assert.True(t, AnswerMatches("A", "A"))
	assert.False(t, AnswerMatches("A", "a"))
	assert.False(t, AnswerMatches("A", " A"))
	assert.True(t, AnswerMatches(float64(2), float64(2)))
	assert.False(t, AnswerMatches(float64(2), "2"))
	assert.True(t, AnswerMatches(true, true))
	assert.False(t, AnswerMatches(nil, nil))
	assert.False(t, AnswerMatches([]any{"A"}, []any{"A"}))
}

func TestGrade(t *testing.T) {
	questions := []models.Question{
		{CorrectAnswer: "A"}, {CorrectAnswer: "B"}, {CorrectAnswer: "C"},
	}

	correct, total := Grade(questions, []any{"A", "B", "C", "D", "E"})
	assert.Equal(t, 3, correct)
	assert.Equal(t, 3, total)

	correct, total = Grade(questions, []any{"A"})
	assert.Equal(t, 1, correct)
	assert.Equal(t, 3, total)

	correct, _ = Grade(questions, nil)
	assert.Equal(t, 0, correct)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "75.00", FormatScore(Score(3, 4)))
	assert.Equal(t, "33.33", FormatScore(Score(1, 3)))
	assert.Equal(t, "100.00", FormatScore(Score(2, 2)))
}

func TestDecodeAnswers(t *testing.T) {
	answers, err := DecodeAnswers(json.RawMessage(` ["A", 1, true] `))
	require.NoError(t, err)
	assert.Equal(t, []any{"A", float64(1), true}, answers)

	for _, raw := range []string{``, `null`, `"A"`, `{"0":"A"}`, `42`, `[`} {
		_, err := DecodeAnswers(json.RawMessage(raw))
		assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err), raw)
	}
}

func TestSubmitScoresAndRecordsAttempt(t *testing.T) {
	svc, student, course := newQuizService(t)
	quiz := createQuiz(t, svc.DB, course, "A", "B", "C", "D")

	result, err := svc.Submit(context.Background(), quiz.ID, student.ID, rawJSON(t, []string{"A", "X", "C", "D"}))
	require.NoError(t, err)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, "75.00", result.Score)
	assert.Equal(t, 75.0, result.Attempt.Score)
	assert.True(t, result.Attempt.CompletedAt.Equal(fixedNow))
	assert.Equal(t, quiz.Title, result.Attempt.Quiz.Title)
	assert.JSONEq(t, `["A","X","C","D"]`, string(result.Attempt.Answers))
}

func TestSubmitExtraAnswersIgnored(t *testing.T) {
	svc, student, course := newQuizService(t)
	quiz := createQuiz(t, svc.DB, course, "A", "B", "C")

	result, err := svc.Submit(context.Background(), quiz.ID, student.ID, rawJSON(t, []string{"A", "B", "C", "D", "E"}))
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, "100.00", result.Score)
}

func TestSubmitRejections(t *testing.T) {
	svc, student, course := newQuizService(t)
	ctx := context.Background()
	empty := createQuiz(t, svc.DB, course)
	quiz := createQuiz(t, svc.DB, course, "A")

	_, err := svc.Submit(ctx, 999, student.ID, rawJSON(t, []string{"A"}))
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = svc.Submit(ctx, quiz.ID, student.ID, json.RawMessage(`"A"`))
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	_, err = svc.Submit(ctx, empty.ID, student.ID, rawJSON(t, []string{"A"}))
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
	assert.EqualError(t, err, "Quiz has no questions to grade")

	var count int64
	require.NoError(t, svc.DB.Model(&models.QuizAttempt{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAttemptsAreAppendOnlyAndLatestWins(t *testing.T) {
	svc, student, course := newQuizService(t)
	ctx := context.Background()
	quiz := createQuiz(t, svc.DB, course, "A", "B")

	latest, err := svc.LatestAttempt(ctx, quiz.ID, student.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = svc.Submit(ctx, quiz.ID, student.ID, rawJSON(t, []string{"A", "B"}))
	require.NoError(t, err)

	svc.Now = func() time.Time { return fixedNow.Add(time.Hour) }
	second, err := svc.Submit(ctx, quiz.ID, student.ID, rawJSON(t, []string{"X", "B"}))
	require.NoError(t, err)

	var count int64
	require.NoError(t, svc.DB.Model(&models.QuizAttempt{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	latest, err = svc.LatestAttempt(ctx, quiz.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.Attempt.ID, latest.ID)
	assert.Equal(t, 50.0, latest.Score)
}
