package controllers

import (
	"encoding/json"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizzesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Policy  *services.AuthorizationPolicy
	Quizzes *services.QuizService
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config) *QuizzesController {
	return &QuizzesController{
		DB:      db,
		Cfg:     cfg,
		Policy:  services.NewAuthorizationPolicy(db),
		Quizzes: services.NewQuizService(db),
	}
}

type CreateQuizRequest struct {
	Title       string            `json:"title" validate:"required" example:"Week 1 check"`
	Description string            `json:"description" example:"Covers goroutines"`
	CourseID    uint              `json:"courseId" validate:"required" example:"1"`
	Questions   []models.Question `json:"questions" validate:"required,dive"`
}

type UpdateQuizRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1"`
	Description *string            `json:"description"`
	Questions   *[]models.Question `json:"questions" validate:"omitempty,dive"`
}

// SubmitQuizRequest carries answers aligned by index with the quiz questions.
type SubmitQuizRequest struct {
	Answers json.RawMessage `json:"answers" swaggertype:"array,string"`
}

type QuizListItem struct {
	models.Quiz
	Counts struct {
		Attempts int64 `json:"attempts"`
	} `json:"counts"`
}

// QuizDetail is a quiz together with the caller's most recent attempt.
type QuizDetail struct {
	models.Quiz
	LatestAttempt *models.QuizAttempt `json:"latestAttempt"`
}

// GetQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Param courseId query int false "Course ID"
// @Param search query string false "Matches title or description"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]QuizListItem}
// @Security ApiKeyAuth
// @Router /quizzes [get]
func (qc *QuizzesController) GetQuizzes(c *fiber.Ctx) error {
	courseID, err := queryID(c, "courseId")
	if err != nil {
		return fail(c, err, "Error fetching quizzes")
	}
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Scopes(search(c.Query("search"), "title", "description"))
		if courseID != 0 {
			tx = tx.Where("course_id = ?", courseID)
		}
		return tx
	}
	order := utils.SortOrder(c.Query("sortOrder"), "desc")
	page := utils.ParsePagination(c)
	db := qc.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&models.Quiz{}).Scopes(filter).Count(&total).Error; err != nil {
		return fail(c, utils.InternalError("Error fetching quizzes", err), "Error fetching quizzes")
	}

	var quizzes []models.Quiz
	err = db.Scopes(filter).
		Preload("Course", courseSummary).
		Order("created_at " + order).
		Order("id " + order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&quizzes).Error
	if err != nil {
		return fail(c, utils.InternalError("Error fetching quizzes", err), "Error fetching quizzes")
	}

	ids := make([]uint, len(quizzes))
	for i, quiz := range quizzes {
		ids[i] = quiz.ID
	}
	attempts, err := services.CountBy(db, &models.QuizAttempt{}, "quiz_id", ids)
	if err != nil {
		return fail(c, utils.InternalError("Error fetching quizzes", err), "Error fetching quizzes")
	}

	items := make([]QuizListItem, len(quizzes))
	for i, quiz := range quizzes {
		items[i].Quiz = quiz
		items[i].Counts.Attempts = attempts[quiz.ID]
	}
	return utils.Paginate(c, items, page.WithTotal(total))
}

// GetQuiz godoc
// @Summary Get quiz
// @Description Quiz with the caller's latest attempt, if any
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} utils.SuccessResponse{data=QuizDetail}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/{id} [get]
func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error fetching quiz")
	}

	var quiz models.Quiz
	if err := qc.DB.WithContext(c.UserContext()).Preload("Course", courseSummary).First(&quiz, id).Error; err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.NotFoundError("Quiz not found"), "Error fetching quiz")
		}
		return fail(c, utils.InternalError("Error fetching quiz", err), "Error fetching quiz")
	}

	latest, err := qc.Quizzes.LatestAttempt(c.UserContext(), quiz.ID, middleware.CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, "Error fetching quiz")
	}
	return utils.OK(c, "", QuizDetail{Quiz: quiz, LatestAttempt: latest})
}

// CreateQuiz godoc
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param input body CreateQuizRequest true "Quiz data"
// @Success 201 {object} utils.SuccessResponse{data=models.Quiz}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes [post]
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var input CreateQuizRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error creating quiz")
	}

	course, err := qc.Policy.Course(c.UserContext(), middleware.CurrentUser(c), input.CourseID, "add quizzes to")
	if err != nil {
		return fail(c, err, "Error creating quiz")
	}

	quiz := models.Quiz{CourseID: course.ID, Title: input.Title, Description: input.Description}
	if err := quiz.SetQuestions(input.Questions); err != nil {
		return fail(c, utils.InvalidInputError("Invalid questions"), "Error creating quiz")
	}

	db := qc.DB.WithContext(c.UserContext())
	if err := db.Create(&quiz).Error; err != nil {
		return fail(c, utils.InternalError("Error creating quiz", err), "Error creating quiz")
	}
	if err := db.Preload("Course", courseSummary).First(&quiz, quiz.ID).Error; err != nil {
		return fail(c, utils.InternalError("Error creating quiz", err), "Error creating quiz")
	}
	return utils.Created(c, "Quiz created successfully", &quiz)
}

// UpdateQuiz godoc
// @Summary Update quiz
// @Description Replacing questions does not touch earlier attempts
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param input body UpdateQuizRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=models.Quiz}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/{id} [put]
func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error updating quiz")
	}

	quiz, err := qc.Policy.Quiz(c.UserContext(), middleware.CurrentUser(c), id, "update")
	if err != nil {
		return fail(c, err, "Error updating quiz")
	}

	var input UpdateQuizRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error updating quiz")
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Questions != nil {
		if err := quiz.SetQuestions(*input.Questions); err != nil {
			return fail(c, utils.InvalidInputError("Invalid questions"), "Error updating quiz")
		}
		updates["questions"] = quiz.Questions
	}

	db := qc.DB.WithContext(c.UserContext())
	if len(updates) > 0 {
		if err := db.Model(&models.Quiz{ID: quiz.ID}).Updates(updates).Error; err != nil {
			return fail(c, utils.InternalError("Error updating quiz", err), "Error updating quiz")
		}
	}

	var updated models.Quiz
	if err := db.Preload("Course", courseSummary).First(&updated, id).Error; err != nil {
		return fail(c, utils.InternalError("Error updating quiz", err), "Error updating quiz")
	}
	return utils.OK(c, "Quiz updated successfully", &updated)
}

// DeleteQuiz godoc
// @Summary Delete quiz
// @Description Removes the quiz and its attempts
// @Tags quizzes
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/{id} [delete]
func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error deleting quiz")
	}

	if _, err := qc.Policy.Quiz(c.UserContext(), middleware.CurrentUser(c), id, "delete"); err != nil {
		return fail(c, err, "Error deleting quiz")
	}

	err = qc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&models.QuizAttempt{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, id).Error
	})
	if err != nil {
		return fail(c, utils.InternalError("Error deleting quiz", err), "Error deleting quiz")
	}
	return utils.OK(c, "Quiz deleted successfully", nil)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades answers by index against the stored questions and records a new attempt
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path int true "Quiz ID"
// @Param input body SubmitQuizRequest true "Answers"
// @Success 200 {object} utils.SuccessResponse{data=services.GradeResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/{id}/submit [post]
func (qc *QuizzesController) SubmitQuiz(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error submitting quiz")
	}

	var input SubmitQuizRequest
	if err := c.BodyParser(&input); err != nil {
		return fail(c, utils.InvalidInputError("Answers array is required"), "Error submitting quiz")
	}

	result, err := qc.Quizzes.Submit(c.UserContext(), id, middleware.CurrentUser(c).ID, input.Answers)
	if err != nil {
		return fail(c, err, "Error submitting quiz")
	}
	return utils.OK(c, "Quiz submitted successfully", result)
}
