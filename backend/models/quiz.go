package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Question is one entry of a quiz's ordered question list. CorrectAnswer
// holds any JSON scalar and is compared to submitted answers by exact equality.
type Question struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer any      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CourseID    uint           `gorm:"index;not null" json:"courseId"`
	Course      *Course        `json:"course,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Questions   datatypes.JSON `json:"questions"`
	Attempts    []QuizAttempt  `gorm:"constraint:OnDelete:CASCADE" json:"attempts,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// QuestionList decodes the stored question sequence.
func (q *Quiz) QuestionList() ([]Question, error) {
	if len(q.Questions) == 0 {
		return nil, nil
	}
	var questions []Question
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil, fmt.Errorf("decode questions of quiz %d: %w", q.ID, err)
	}
	return questions, nil
}

func (q *Quiz) SetQuestions(questions []Question) error {
	if questions == nil {
		questions = []Question{}
	}
	b, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	q.Questions = datatypes.JSON(b)
	return nil
}

// QuizAttempt is append-only: rows are created on submission and never updated.
type QuizAttempt struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"index:idx_quiz_attempts_user_quiz;not null" json:"userId"`
	QuizID         uint           `gorm:"index:idx_quiz_attempts_user_quiz;not null" json:"quizId"`
	Quiz           *Quiz          `json:"quiz,omitempty"`
	Score          float64        `gorm:"not null" json:"score"`
	TotalQuestions int            `gorm:"not null" json:"totalQuestions"`
	Answers        datatypes.JSON `json:"answers"`
	CompletedAt    time.Time      `gorm:"index;not null" json:"completedAt"`
}

// LatestAttemptOrder picks the most recent attempt first.
const LatestAttemptOrder = "completed_at desc, id desc"
