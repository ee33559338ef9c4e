package controllers

import (
	"context"
	"time"

	"learnhub/backend/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// Check godoc
// @Summary Health check
// @Description Reports whether the database answers SELECT 1
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /health [get]
func (hc *HealthController) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, hc.DB); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthStatus{
			Status:    "ERROR",
			Database:  "disconnected",
			Timestamp: time.Now(),
		})
	}
	return c.JSON(HealthStatus{Status: "OK", Database: "connected", Timestamp: time.Now()})
}
