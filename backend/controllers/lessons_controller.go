package controllers

import (
	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LessonsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Policy *services.AuthorizationPolicy
}

func NewLessonsController(db *gorm.DB, cfg *config.Config) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg, Policy: services.NewAuthorizationPolicy(db)}
}

type CreateLessonRequest struct {
	Title    string `json:"title" validate:"required" example:"Goroutines"`
	Content  string `json:"content" validate:"required" example:"A goroutine is a lightweight thread"`
	CourseID uint   `json:"courseId" validate:"required" example:"1"`
	VideoURL string `json:"videoUrl" validate:"omitempty,url" example:"https://example.com/lesson.mp4"`
	Duration int    `json:"duration" validate:"gte=0" example:"15"`
	Order    int    `json:"order" validate:"gte=0" example:"1"`
}

type UpdateLessonRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	VideoURL *string `json:"videoUrl" validate:"omitempty,url"`
	Duration *int    `json:"duration" validate:"omitempty,gte=0"`
	Order    *int    `json:"order" validate:"omitempty,gte=0"`
}

var lessonSortColumns = map[string]string{
	"order":     "position",
	"createdAt": "created_at",
	"duration":  "duration",
}

// GetLessons godoc
// @Summary List lessons
// @Tags lessons
// @Produce json
// @Param courseId query int false "Course ID"
// @Param search query string false "Matches title or content"
// @Param sortBy query string false "order, createdAt or duration"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Lesson}
// @Security ApiKeyAuth
// @Router /lessons [get]
func (lc *LessonsController) GetLessons(c *fiber.Ctx) error {
	courseID, err := queryID(c, "courseId")
	if err != nil {
		return fail(c, err, "Error fetching lessons")
	}
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Scopes(search(c.Query("search"), "title", "content"))
		if courseID != 0 {
			tx = tx.Where("course_id = ?", courseID)
		}
		return tx
	}

	column, ok := lessonSortColumns[c.Query("sortBy")]
	if !ok {
		column = "position"
	}
	order := utils.SortOrder(c.Query("sortOrder"), "asc")
	page := utils.ParsePagination(c)
	db := lc.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&models.Lesson{}).Scopes(filter).Count(&total).Error; err != nil {
		return fail(c, utils.InternalError("Error fetching lessons", err), "Error fetching lessons")
	}

	lessons := []models.Lesson{}
	err = db.Scopes(filter).
		Preload("Course", courseSummary).
		Order(column + " " + order).
		Order("id asc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&lessons).Error
	if err != nil {
		return fail(c, utils.InternalError("Error fetching lessons", err), "Error fetching lessons")
	}
	return utils.Paginate(c, lessons, page.WithTotal(total))
}

// GetLesson godoc
// @Summary Get lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Lesson}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id} [get]
func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error fetching lesson")
	}
	var lesson models.Lesson
	if err := lc.DB.WithContext(c.UserContext()).Preload("Course", courseSummary).First(&lesson, id).Error; err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.NotFoundError("Lesson not found"), "Error fetching lesson")
		}
		return fail(c, utils.InternalError("Error fetching lesson", err), "Error fetching lesson")
	}
	return utils.OK(c, "", &lesson)
}

// CreateLesson godoc
// @Summary Create lesson
// @Description Only the course instructor or an admin may add lessons
// @Tags lessons
// @Accept json
// @Produce json
// @Param input body CreateLessonRequest true "Lesson data"
// @Success 201 {object} utils.SuccessResponse{data=models.Lesson}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons [post]
func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var input CreateLessonRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error creating lesson")
	}

	course, err := lc.Policy.Course(c.UserContext(), middleware.CurrentUser(c), input.CourseID, "add lessons to")
	if err != nil {
		return fail(c, err, "Error creating lesson")
	}

	lesson := models.Lesson{
		CourseID: course.ID,
		Title:    input.Title,
		Content:  input.Content,
		VideoURL: input.VideoURL,
		Duration: input.Duration,
		Order:    input.Order,
	}
	db := lc.DB.WithContext(c.UserContext())
	if err := db.Create(&lesson).Error; err != nil {
		return fail(c, utils.InternalError("Error creating lesson", err), "Error creating lesson")
	}
	if err := db.Preload("Course", courseSummary).First(&lesson, lesson.ID).Error; err != nil {
		return fail(c, utils.InternalError("Error creating lesson", err), "Error creating lesson")
	}
	return utils.Created(c, "Lesson created successfully", &lesson)
}

// UpdateLesson godoc
// @Summary Update lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param input body UpdateLessonRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=models.Lesson}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id} [put]
func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error updating lesson")
	}

	lesson, err := lc.Policy.Lesson(c.UserContext(), middleware.CurrentUser(c), id, "update")
	if err != nil {
		return fail(c, err, "Error updating lesson")
	}

	var input UpdateLessonRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error updating lesson")
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.VideoURL != nil {
		updates["video_url"] = *input.VideoURL
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Order != nil {
		updates["position"] = *input.Order
	}

	db := lc.DB.WithContext(c.UserContext())
	if len(updates) > 0 {
		if err := db.Model(&models.Lesson{ID: lesson.ID}).Updates(updates).Error; err != nil {
			return fail(c, utils.InternalError("Error updating lesson", err), "Error updating lesson")
		}
	}

	var updated models.Lesson
	if err := db.Preload("Course", courseSummary).First(&updated, id).Error; err != nil {
		return fail(c, utils.InternalError("Error updating lesson", err), "Error updating lesson")
	}
	return utils.OK(c, "Lesson updated successfully", &updated)
}

// DeleteLesson godoc
// @Summary Delete lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id} [delete]
func (lc *LessonsController) DeleteLesson(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error deleting lesson")
	}

	if _, err := lc.Policy.Lesson(c.UserContext(), middleware.CurrentUser(c), id, "delete"); err != nil {
		return fail(c, err, "Error deleting lesson")
	}
	if err := lc.DB.WithContext(c.UserContext()).Delete(&models.Lesson{}, id).Error; err != nil {
		return fail(c, utils.InternalError("Error deleting lesson", err), "Error deleting lesson")
	}
	return utils.OK(c, "Lesson deleted successfully", nil)
}
