package controllers

import (
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1" example:"Ada Lovelace"`
	Bio      *string `json:"bio" example:"Mathematician"`
	Avatar   *string `json:"avatar" validate:"omitempty,url" example:"https://example.com/ada.png"`
	Password *string `json:"password" validate:"omitempty,min=6" example:"newSecret123"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=models.User}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	return utils.OK(c, "", middleware.CurrentUser(c))
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates name, bio, avatar and optionally the password
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.SuccessResponse{data=models.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input UpdateProfileRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error updating profile")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return fail(c, utils.InternalError("Could not hash password", err), "Error updating profile")
		}
		updates["password_hash"] = string(hashedPassword)
	}

	db := uc.DB.WithContext(c.UserContext())
	if len(updates) > 0 {
		if err := db.Model(user).Updates(updates).Error; err != nil {
			return fail(c, utils.InternalError("Error updating profile", err), "Error updating profile")
		}
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		return fail(c, utils.InternalError("Error updating profile", err), "Error updating profile")
	}
	return utils.OK(c, "Profile updated successfully", &updated)
}
