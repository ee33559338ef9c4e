package controllers

import (
	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg, Analytics: services.NewAnalyticsService(db)}
}

// GetStudentProgress godoc
// @Summary Student progress analytics
// @Description Enrollments, quiz attempts and averages for the caller
// @Tags analytics
// @Produce json
// @Param courseId query int false "Restrict enrollments to one course"
// @Success 200 {object} utils.SuccessResponse{data=services.StudentProgress}
// @Security ApiKeyAuth
// @Router /analytics/progress [get]
func (ac *AnalyticsController) GetStudentProgress(c *fiber.Ctx) error {
	courseID, err := queryID(c, "courseId")
	if err != nil {
		return fail(c, err, "Error fetching student progress")
	}

	progress, err := ac.Analytics.StudentProgress(c.UserContext(), middleware.CurrentUser(c).ID, courseID)
	if err != nil {
		return fail(c, err, "Error fetching student progress")
	}
	return utils.OK(c, "", progress)
}

// GetInstructorAnalytics godoc
// @Summary Instructor analytics
// @Description Totals, per-course performance and the latest enrollments
// @Tags analytics
// @Produce json
// @Param sortBy query string false "revenue or enrollments"
// @Success 200 {object} utils.SuccessResponse{data=services.InstructorAnalytics}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /analytics/instructor [get]
func (ac *AnalyticsController) GetInstructorAnalytics(c *fiber.Ctx) error {
	analytics, err := ac.Analytics.InstructorAnalytics(c.UserContext(), middleware.CurrentUser(c).ID, c.Query("sortBy"))
	if err != nil {
		return fail(c, err, "Error fetching instructor analytics")
	}
	return utils.OK(c, "", analytics)
}
