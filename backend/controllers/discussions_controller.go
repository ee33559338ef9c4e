package controllers

import (
	"strings"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiscussionsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Policy *services.AuthorizationPolicy
}

func NewDiscussionsController(db *gorm.DB, cfg *config.Config) *DiscussionsController {
	return &DiscussionsController{DB: db, Cfg: cfg, Policy: services.NewAuthorizationPolicy(db)}
}

type CreateDiscussionRequest struct {
	CourseID uint   `json:"courseId" validate:"required" example:"1"`
	Title    string `json:"title" validate:"required" example:"Question about channels"`
	Content  string `json:"content" validate:"required" example:"When should I close a channel?"`
}

type UpdateDiscussionRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

type AddReplyRequest struct {
	Content string `json:"content" example:"Only the sender closes it."`
}

// GetDiscussions godoc
// @Summary List course discussions
// @Description Newest first
// @Tags discussions
// @Produce json
// @Param courseId query int true "Course ID"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]models.Discussion}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /discussions [get]
func (dc *DiscussionsController) GetDiscussions(c *fiber.Ctx) error {
	courseID, err := queryID(c, "courseId")
	if err != nil {
		return fail(c, err, "Error fetching discussions")
	}
	if courseID == 0 {
		return fail(c, utils.InvalidInputError("Course ID is required"), "Error fetching discussions")
	}

	page := utils.ParsePagination(c)
	db := dc.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&models.Discussion{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return fail(c, utils.InternalError("Error fetching discussions", err), "Error fetching discussions")
	}

	discussions := []models.Discussion{}
	err = db.Where("course_id = ?", courseID).
		Preload("User", userSummary).
		Preload("Course", courseSummary).
		Order("created_at desc").
		Order("id desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&discussions).Error
	if err != nil {
		return fail(c, utils.InternalError("Error fetching discussions", err), "Error fetching discussions")
	}
	return utils.Paginate(c, discussions, page.WithTotal(total))
}

// CreateDiscussion godoc
// @Summary Start a discussion
// @Tags discussions
// @Accept json
// @Produce json
// @Param input body CreateDiscussionRequest true "Discussion"
// @Success 201 {object} utils.SuccessResponse{data=models.Discussion}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /discussions [post]
func (dc *DiscussionsController) CreateDiscussion(c *fiber.Ctx) error {
	var input CreateDiscussionRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error creating discussion")
	}

	db := dc.DB.WithContext(c.UserContext())
	var course models.Course
	if err := db.Select("id").First(&course, input.CourseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.NotFoundError("Course not found"), "Error creating discussion")
		}
		return fail(c, utils.InternalError("Error creating discussion", err), "Error creating discussion")
	}

	discussion := models.Discussion{
		CourseID: course.ID,
		UserID:   middleware.CurrentUser(c).ID,
		Title:    input.Title,
		Content:  input.Content,
		Replies:  []byte("[]"),
	}
	if err := db.Create(&discussion).Error; err != nil {
		return fail(c, utils.InternalError("Error creating discussion", err), "Error creating discussion")
	}
	if err := db.Preload("User", userSummary).First(&discussion, discussion.ID).Error; err != nil {
		return fail(c, utils.InternalError("Error creating discussion", err), "Error creating discussion")
	}
	return utils.Created(c, "Discussion created successfully", &discussion)
}

// AddReply godoc
// @Summary Reply to a discussion
// @Tags discussions
// @Accept json
// @Produce json
// @Param id path int true "Discussion ID"
// @Param input body AddReplyRequest true "Reply"
// @Success 200 {object} utils.SuccessResponse{data=models.Discussion}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /discussions/{id}/reply [post]
func (dc *DiscussionsController) AddReply(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error adding reply")
	}

	var input AddReplyRequest
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.Content) == "" {
		return fail(c, utils.InvalidInputError("Reply content is required"), "Error adding reply")
	}

	user := middleware.CurrentUser(c)
	reply := models.Reply{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	// Lock the row so concurrent replies are appended, not overwritten.
	err = dc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var discussion models.Discussion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&discussion, id).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.NotFoundError("Discussion not found")
			}
			return err
		}
		if err := discussion.AppendReply(reply); err != nil {
			return err
		}
		return tx.Model(&discussion).Update("replies", discussion.Replies).Error
	})
	if err != nil {
		if utils.KindOf(err) == utils.KindNotFound {
			return fail(c, err, "Error adding reply")
		}
		return fail(c, utils.InternalError("Error adding reply", err), "Error adding reply")
	}

	var discussion models.Discussion
	if err := dc.DB.WithContext(c.UserContext()).Preload("User", userSummary).First(&discussion, id).Error; err != nil {
		return fail(c, utils.InternalError("Error adding reply", err), "Error adding reply")
	}
	return utils.OK(c, "Reply added successfully", &discussion)
}

// UpdateDiscussion godoc
// @Summary Update a discussion
// @Description Author or admin only
// @Tags discussions
// @Accept json
// @Produce json
// @Param id path int true "Discussion ID"
// @Param input body UpdateDiscussionRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=models.Discussion}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /discussions/{id} [put]
func (dc *DiscussionsController) UpdateDiscussion(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error updating discussion")
	}

	discussion, err := dc.owned(c, id, "update")
	if err != nil {
		return fail(c, err, "Error updating discussion")
	}

	var input UpdateDiscussionRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error updating discussion")
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}

	db := dc.DB.WithContext(c.UserContext())
	if len(updates) > 0 {
		if err := db.Model(discussion).Updates(updates).Error; err != nil {
			return fail(c, utils.InternalError("Error updating discussion", err), "Error updating discussion")
		}
	}
	if err := db.Preload("User", userSummary).First(discussion, id).Error; err != nil {
		return fail(c, utils.InternalError("Error updating discussion", err), "Error updating discussion")
	}
	return utils.OK(c, "Discussion updated successfully", discussion)
}

// DeleteDiscussion godoc
// @Summary Delete a discussion
// @Description Author or admin only
// @Tags discussions
// @Produce json
// @Param id path int true "Discussion ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /discussions/{id} [delete]
func (dc *DiscussionsController) DeleteDiscussion(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error deleting discussion")
	}

	if _, err := dc.owned(c, id, "delete"); err != nil {
		return fail(c, err, "Error deleting discussion")
	}
	if err := dc.DB.WithContext(c.UserContext()).Delete(&models.Discussion{}, id).Error; err != nil {
		return fail(c, utils.InternalError("Error deleting discussion", err), "Error deleting discussion")
	}
	return utils.OK(c, "Discussion deleted successfully", nil)
}

// owned loads the discussion and checks the caller wrote it or is an admin.
func (dc *DiscussionsController) owned(c *fiber.Ctx, id uint, action string) (*models.Discussion, error) {
	var discussion models.Discussion
	if err := dc.DB.WithContext(c.UserContext()).First(&discussion, id).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundError("Discussion not found")
		}
		return nil, utils.InternalError("Error fetching discussion", err)
	}
	if err := dc.Policy.Owner(middleware.CurrentUser(c), discussion.UserID, action, "discussion"); err != nil {
		return nil, err
	}
	return &discussion, nil
}
