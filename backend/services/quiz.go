package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GradeResult is what a submission returns to the caller.
type GradeResult struct {
	Attempt        *models.QuizAttempt `json:"attempt"`
	Score          string              `json:"score"`
	CorrectCount   int                 `json:"correctCount"`
	TotalQuestions int                 `json:"totalQuestions"`
}

type QuizService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{DB: db, Now: time.Now}
}

// AnswerMatches compares a stored key with a submitted answer: same JSON
// scalar type and value. Missing keys and composite values never match.
func AnswerMatches(key, answer any) bool {
	switch k := key.(type) {
	case string:
		a, ok := answer.(string)
		return ok && a == k
	case float64:
		a, ok := answer.(float64)
		return ok && a == k
	case bool:
		a, ok := answer.(bool)
		return ok && a == k
	default:
		return false
	}
}

// Grade counts answers matching the question at the same index. The question
// list is authoritative for the total; extra answers are ignored and missing
// ones count as wrong.
func Grade(questions []models.Question, answers []any) (correct int, total int) {
	total = len(questions)
	for i, answer := range answers {
		if i >= total {
			break
		}
		if AnswerMatches(questions[i].CorrectAnswer, answer) {
			correct++
		}
	}
	return correct, total
}

// Score is correct/total as a percentage. total must be positive.
func Score(correct, total int) float64 {
	return float64(correct) / float64(total) * 100
}

// FormatScore renders a score with two decimals for display.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// DecodeAnswers accepts only a JSON array.
func DecodeAnswers(raw json.RawMessage) ([]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, utils.InvalidInputError("Answers array is required")
	}
	var answers []any
	if err := json.Unmarshal(trimmed, &answers); err != nil {
		return nil, utils.InvalidInputError("Answers array is required")
	}
	return answers, nil
}

// Submit grades answers against the quiz and appends a new attempt.
func (s *QuizService) Submit(ctx context.Context, quizID, userID uint, rawAnswers json.RawMessage) (*GradeResult, error) {
	db := s.DB.WithContext(ctx)

	var quiz models.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundError("Quiz not found")
		}
		return nil, utils.InternalError("Error submitting quiz", err)
	}

	answers, err := DecodeAnswers(rawAnswers)
	if err != nil {
		return nil, err
	}

	questions, err := quiz.QuestionList()
	if err != nil {
		return nil, utils.InternalError("Error submitting quiz", err)
	}
	if len(questions) == 0 {
		return nil, utils.InvalidInputError("Quiz has no questions to grade")
	}

	correct, total := Grade(questions, answers)
	score := Score(correct, total)

	stored, err := json.Marshal(answers)
	if err != nil {
		return nil, utils.InternalError("Error submitting quiz", err)
	}

	attempt := models.QuizAttempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: total,
		Answers:        datatypes.JSON(stored),
		CompletedAt:    s.Now(),
	}
	if err := db.Create(&attempt).Error; err != nil {
		return nil, utils.InternalError("Error submitting quiz", err)
	}
	attempt.Quiz = &models.Quiz{ID: quiz.ID, Title: quiz.Title}

	return &GradeResult{
		Attempt:        &attempt,
		Score:          FormatScore(score),
		CorrectCount:   correct,
		TotalQuestions: total,
	}, nil
}

// LatestAttempt returns the user's most recent attempt at the quiz, or nil.
func (s *QuizService) LatestAttempt(ctx context.Context, quizID, userID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := s.DB.WithContext(ctx).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order(models.LatestAttemptOrder).
		First(&attempt).Error
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, nil
		}
		return nil, utils.InternalError("Error fetching quiz attempts", err)
	}
	return &attempt, nil
}
