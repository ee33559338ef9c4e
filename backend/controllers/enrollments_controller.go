package controllers

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EnrollmentsController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Enrollments *services.EnrollmentService
}

func NewEnrollmentsController(db *gorm.DB, cfg *config.Config) *EnrollmentsController {
	return &EnrollmentsController{DB: db, Cfg: cfg, Enrollments: services.NewEnrollmentService(db)}
}

type EnrollRequest struct {
	CourseID uint `json:"courseId" validate:"required" example:"1"`
}

// UpdateProgressRequest accepts progress as a number or numeric string.
// completed is true only for the JSON literal true.
type UpdateProgressRequest struct {
	Progress  json.RawMessage `json:"progress" swaggertype:"number"`
	Completed json.RawMessage `json:"completed" swaggertype:"boolean"`
}

var enrollmentSortColumns = map[string]string{
	"enrolledAt": "enrolled_at",
	"progress":   "progress",
}

// GetEnrollments godoc
// @Summary List my enrollments
// @Tags enrollments
// @Produce json
// @Param progress query number false "Exact progress"
// @Param completed query bool false "Completion flag"
// @Param sortBy query string false "enrolledAt or progress"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Enrollment}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /enrollments [get]
func (ec *EnrollmentsController) GetEnrollments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var progress *float64
	if raw := c.Query("progress"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fail(c, utils.InvalidInputError("Progress must be a number"), "Error fetching enrollments")
		}
		progress = &p
	}
	completed := c.Query("completed")

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("student_id = ?", user.ID)
		if progress != nil {
			tx = tx.Where("progress = ?", *progress)
		}
		if completed != "" {
			tx = tx.Where("completed = ?", completed == "true")
		}
		return tx
	}

	column, ok := enrollmentSortColumns[c.Query("sortBy")]
	if !ok {
		column = "enrolled_at"
	}
	order := utils.SortOrder(c.Query("sortOrder"), "desc")
	page := utils.ParsePagination(c)
	db := ec.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&models.Enrollment{}).Scopes(filter).Count(&total).Error; err != nil {
		return fail(c, utils.InternalError("Error fetching enrollments", err), "Error fetching enrollments")
	}

	enrollments := []models.Enrollment{}
	err := db.Scopes(filter).
		Preload("Course").
		Preload("Course.Instructor", userSummary).
		Order(column + " " + order).
		Order("id " + order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&enrollments).Error
	if err != nil {
		return fail(c, utils.InternalError("Error fetching enrollments", err), "Error fetching enrollments")
	}
	return utils.Paginate(c, enrollments, page.WithTotal(total))
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Param input body EnrollRequest true "Course to join"
// @Success 201 {object} utils.SuccessResponse{data=models.Enrollment}
// @Failure 400 {object} utils.ErrorResponse "already enrolled"
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /enrollments [post]
func (ec *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	var input EnrollRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error enrolling in course")
	}

	enrollment, err := ec.Enrollments.Enroll(c.UserContext(), middleware.CurrentUser(c).ID, input.CourseID)
	if err != nil {
		return fail(c, err, "Error enrolling in course")
	}
	return utils.Created(c, "Enrolled in course successfully", enrollment)
}

// UpdateProgress godoc
// @Summary Update enrollment progress
// @Description Progress is clamped to [0, 100]; completedAt is stamped once
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param input body UpdateProgressRequest true "Progress and/or completed"
// @Success 200 {object} utils.SuccessResponse{data=models.Enrollment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /enrollments/{id}/progress [put]
func (ec *EnrollmentsController) UpdateProgress(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error updating progress")
	}

	var input UpdateProgressRequest
	if err := c.BodyParser(&input); err != nil {
		return fail(c, utils.InvalidInputError("Cannot parse JSON"), "Error updating progress")
	}
	update, err := input.toProgressUpdate()
	if err != nil {
		return fail(c, err, "Error updating progress")
	}

	enrollment, err := ec.Enrollments.UpdateProgress(c.UserContext(), id, middleware.CurrentUser(c).ID, update)
	if err != nil {
		return fail(c, err, "Error updating progress")
	}
	return utils.OK(c, "Progress updated successfully", enrollment)
}

func (r UpdateProgressRequest) toProgressUpdate() (services.ProgressUpdate, error) {
	var update services.ProgressUpdate
	if present(r.Progress) {
		p, err := parseFlexibleFloat(r.Progress)
		if err != nil {
			return update, err
		}
		update.Progress = &p
	}
	if present(r.Completed) {
		completed := string(bytes.TrimSpace(r.Completed)) == "true"
		update.Completed = &completed
	}
	return update, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func parseFlexibleFloat(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n, nil
		}
	}
	return 0, utils.InvalidInputError("Progress must be a number")
}
