package controllers

import (
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Policy *services.AuthorizationPolicy
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Policy: services.NewAuthorizationPolicy(db)}
}

type CreateCourseRequest struct {
	Title       string            `json:"title" validate:"required" example:"Intro to Go"`
	Description string            `json:"description" validate:"required" example:"Types, interfaces and goroutines"`
	Category    string            `json:"category" validate:"required" example:"programming"`
	Difficulty  models.Difficulty `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED" example:"BEGINNER"`
	Price       float64           `json:"price" validate:"gte=0" example:"19.99"`
	Thumbnail   string            `json:"thumbnail" example:"https://example.com/go.png"`
}

type UpdateCourseRequest struct {
	Title       *string            `json:"title" validate:"omitempty,min=1"`
	Description *string            `json:"description"`
	Category    *string            `json:"category" validate:"omitempty,min=1"`
	Difficulty  *models.Difficulty `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Price       *float64           `json:"price" validate:"omitempty,gte=0"`
	Thumbnail   *string            `json:"thumbnail"`
}

// CourseCounts mirrors the per-course child counts shown in listings.
type CourseCounts struct {
	Lessons     int64 `json:"lessons"`
	Enrollments int64 `json:"enrollments"`
}

type CourseListItem struct {
	models.Course
	Counts CourseCounts `json:"counts"`
}

var courseSortColumns = map[string]string{
	"rating":     "rating",
	"popularity": "enrolled_count",
	"newest":     "created_at",
	"title":      "title",
	"createdAt":  "created_at",
}

// GetCourses godoc
// @Summary List courses
// @Description Filter, search, sort and paginate courses
// @Tags courses
// @Produce json
// @Param search query string false "Matches title or description"
// @Param category query string false "Category"
// @Param difficulty query string false "BEGINNER, INTERMEDIATE or ADVANCED"
// @Param instructorId query int false "Instructor ID"
// @Param sortBy query string false "rating, popularity, newest, title or createdAt"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]CourseListItem}
// @Security ApiKeyAuth
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	instructorID, err := queryID(c, "instructorId")
	if err != nil {
		return fail(c, err, "Error fetching courses")
	}
	category := c.Query("category")
	difficulty := strings.ToUpper(c.Query("difficulty"))

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Scopes(search(c.Query("search"), "title", "description"))
		if category != "" {
			tx = tx.Where("category = ?", category)
		}
		if difficulty != "" {
			tx = tx.Where("difficulty = ?", difficulty)
		}
		if instructorID != 0 {
			tx = tx.Where("instructor_id = ?", instructorID)
		}
		return tx
	}

	column, ok := courseSortColumns[c.Query("sortBy")]
	if !ok {
		column = "created_at"
	}
	order := utils.SortOrder(c.Query("sortOrder"), "desc")
	page := utils.ParsePagination(c)
	db := cc.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&models.Course{}).Scopes(filter).Count(&total).Error; err != nil {
		return fail(c, utils.InternalError("Error fetching courses", err), "Error fetching courses")
	}

	var courses []models.Course
	err = db.Scopes(filter).
		Preload("Instructor", userSummary).
		Order(column + " " + order).
		Order("id " + order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&courses).Error
	if err != nil {
		return fail(c, utils.InternalError("Error fetching courses", err), "Error fetching courses")
	}

	ids := make([]uint, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}
	lessons, err := services.CountBy(db, &models.Lesson{}, "course_id", ids)
	if err != nil {
		return fail(c, utils.InternalError("Error fetching courses", err), "Error fetching courses")
	}
	enrollments, err := services.CountBy(db, &models.Enrollment{}, "course_id", ids)
	if err != nil {
		return fail(c, utils.InternalError("Error fetching courses", err), "Error fetching courses")
	}

	items := make([]CourseListItem, len(courses))
	for i, course := range courses {
		items[i] = CourseListItem{
			Course: course,
			Counts: CourseCounts{Lessons: lessons[course.ID], Enrollments: enrollments[course.ID]},
		}
	}
	return utils.Paginate(c, items, page.WithTotal(total))
}

// GetCourse godoc
// @Summary Get course
// @Description Course with instructor, ordered lessons and quizzes
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Course}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error fetching course")
	}

	var course models.Course
	err = cc.DB.WithContext(c.UserContext()).
		Preload("Instructor", userSummary).
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB { return tx.Order(models.LessonOrder) }).
		Preload("Quizzes", func(tx *gorm.DB) *gorm.DB { return tx.Order("id asc") }).
		First(&course, id).Error
	if err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.NotFoundError("Course not found"), "Error fetching course")
		}
		return fail(c, utils.InternalError("Error fetching course", err), "Error fetching course")
	}
	return utils.OK(c, "", &course)
}

// CreateCourse godoc
// @Summary Create course
// @Description The caller becomes the course instructor
// @Tags courses
// @Accept json
// @Produce json
// @Param input body CreateCourseRequest true "Course data"
// @Success 201 {object} utils.SuccessResponse{data=models.Course}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input CreateCourseRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error creating course")
	}
	if input.Difficulty == "" {
		input.Difficulty = models.DifficultyBeginner
	}

	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Difficulty:   input.Difficulty,
		Price:        input.Price,
		Thumbnail:    input.Thumbnail,
		InstructorID: user.ID,
	}
	db := cc.DB.WithContext(c.UserContext())
	if err := db.Create(&course).Error; err != nil {
		return fail(c, utils.InternalError("Error creating course", err), "Error creating course")
	}
	if err := db.Preload("Instructor", userSummary).First(&course, course.ID).Error; err != nil {
		return fail(c, utils.InternalError("Error creating course", err), "Error creating course")
	}
	return utils.Created(c, "Course created successfully", &course)
}

// UpdateCourse godoc
// @Summary Update course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param input body UpdateCourseRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=models.Course}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error updating course")
	}

	course, err := cc.Policy.Course(c.UserContext(), middleware.CurrentUser(c), id, "update")
	if err != nil {
		return fail(c, err, "Error updating course")
	}

	var input UpdateCourseRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error updating course")
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Difficulty != nil {
		updates["difficulty"] = *input.Difficulty
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Thumbnail != nil {
		updates["thumbnail"] = *input.Thumbnail
	}

	db := cc.DB.WithContext(c.UserContext())
	if len(updates) > 0 {
		if err := db.Model(course).Updates(updates).Error; err != nil {
			return fail(c, utils.InternalError("Error updating course", err), "Error updating course")
		}
	}
	if err := db.Preload("Instructor", userSummary).First(course, id).Error; err != nil {
		return fail(c, utils.InternalError("Error updating course", err), "Error updating course")
	}
	return utils.OK(c, "Course updated successfully", course)
}

// DeleteCourse godoc
// @Summary Delete course
// @Description Removes the course with its lessons, quizzes, attempts, enrollments and discussions
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error deleting course")
	}

	if _, err := cc.Policy.Course(c.UserContext(), middleware.CurrentUser(c), id, "delete"); err != nil {
		return fail(c, err, "Error deleting course")
	}

	// Children are removed explicitly; sqlite does not enforce the cascades.
	err = cc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		quizIDs := tx.Model(&models.Quiz{}).Select("id").Where("course_id = ?", id)
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&models.QuizAttempt{}).Error; err != nil {
			return err
		}
		for _, child := range []interface{}{&models.Quiz{}, &models.Lesson{}, &models.Enrollment{}, &models.Discussion{}} {
			if err := tx.Where("course_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Course{}, id).Error
	})
	if err != nil {
		return fail(c, utils.InternalError("Error deleting course", err), "Error deleting course")
	}
	return utils.OK(c, "Course deleted successfully", nil)
}
