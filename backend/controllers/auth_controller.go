package controllers

import (
	"log"
	"strings"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 15 * time.Minute

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type SignupRequest struct {
	Name     string      `json:"name" validate:"required" example:"Ada Lovelace"`
	Email    string      `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string      `json:"password" validate:"required,min=6" example:"secret123"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR" example:"STUDENT"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email" example:"ada@example.com"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=6"`
	ResetToken  string `json:"resetToken"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Signup godoc
// @Summary Register a new user
// @Description Creates an account and returns a JWT. Role defaults to STUDENT.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body SignupRequest true "Signup data"
// @Success 201 {object} utils.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var input SignupRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error registering user")
	}
	if input.Role == "" {
		input.Role = models.RoleStudent
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, utils.InternalError("Could not hash password", err), "Error registering user")
	}

	user := models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}

	// The unique index on email decides duplicates
	if err := ac.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return fail(c, utils.ConflictError("User already exists with this email"), "Error registering user")
		}
		return fail(c, utils.InternalError("Error registering user", err), "Error registering user")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg.JWTSecret, ac.Cfg.JWTTTL)
	if err != nil {
		return fail(c, utils.InternalError("Could not generate token", err), "Error registering user")
	}

	return utils.Created(c, "User registered successfully", AuthResponse{User: &user, Token: token})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "Login credentials"
// @Success 200 {object} utils.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error logging in")
	}

	// Find user
	var user models.User
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := ac.DB.WithContext(c.UserContext()).Where("email = ?", email).First(&user).Error; err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.UnauthorizedError("Invalid credentials"), "Error logging in")
		}
		return fail(c, utils.InternalError("Error logging in", err), "Error logging in")
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return fail(c, utils.UnauthorizedError("Invalid credentials"), "Error logging in")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg.JWTSecret, ac.Cfg.JWTTTL)
	if err != nil {
		return fail(c, utils.InternalError("Could not generate token", err), "Error logging in")
	}

	return utils.OK(c, "Login successful", AuthResponse{User: &user, Token: token})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Without a token a reset token is issued (delivery is simulated and only logged).
// @Description With a valid resetToken and newPassword the password is replaced.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body ResetPasswordRequest true "Reset data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/reset-password [post]
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var input ResetPasswordRequest
	if err := utils.BindJSON(c, &input); err != nil {
		return fail(c, err, "Error resetting password")
	}

	db := ac.DB.WithContext(c.UserContext())
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error; err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.NotFoundError("User not found"), "Error resetting password")
		}
		return fail(c, utils.InternalError("Error resetting password", err), "Error resetting password")
	}

	if input.ResetToken == "" || input.NewPassword == "" {
		token, err := ac.IssueResetToken(user.ID)
		if err != nil {
			return fail(c, utils.InternalError("Error resetting password", err), "Error resetting password")
		}
		// No mail transport; the link is only logged.
		log.Printf("password reset requested for user %d, token %s", user.ID, token)
		return utils.OK(c, "Password reset link sent to email (simulated)", nil)
	}

	tokenUserID, err := utils.ParseUserIDFromToken(input.ResetToken, ac.resetSecret())
	if err != nil || tokenUserID != user.ID {
		return fail(c, utils.UnauthorizedError("Invalid or expired reset token"), "Error resetting password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, utils.InternalError("Could not hash password", err), "Error resetting password")
	}
	if err := db.Model(&user).Update("password_hash", string(hashedPassword)).Error; err != nil {
		return fail(c, utils.InternalError("Error resetting password", err), "Error resetting password")
	}

	return utils.OK(c, "Password reset successfully", nil)
}

// Reset tokens use a derived key; session tokens are not accepted.
func (ac *AuthController) resetSecret() string {
	return ac.Cfg.JWTSecret + ":password-reset"
}

// IssueResetToken signs a short-lived password reset token.
func (ac *AuthController) IssueResetToken(userID uint) (string, error) {
	return utils.GenerateJWTToken(userID, ac.resetSecret(), resetTokenTTL)
}
