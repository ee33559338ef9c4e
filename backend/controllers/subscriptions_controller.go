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

type SubscriptionsController struct {
	DB            *gorm.DB
	Cfg           *config.Config
	Policy        *services.AuthorizationPolicy
	Subscriptions *services.SubscriptionService
}

func NewSubscriptionsController(db *gorm.DB, cfg *config.Config) *SubscriptionsController {
	return &SubscriptionsController{
		DB:            db,
		Cfg:           cfg,
		Policy:        services.NewAuthorizationPolicy(db),
		Subscriptions: services.NewSubscriptionService(db),
	}
}

type CreateSubscriptionRequest struct {
	Plan      models.Plan `json:"plan" example:"MONTHLY"`
	PaymentID *string     `json:"paymentId" example:"pay_123"`
}

type SubscriptionStatus struct {
	HasActiveSubscription bool                 `json:"hasActiveSubscription"`
	Subscription          *models.Subscription `json:"subscription"`
}

// GetSubscriptions godoc
// @Summary List my subscriptions
// @Tags subscriptions
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.Subscription}
// @Security ApiKeyAuth
// @Router /subscriptions [get]
func (sc *SubscriptionsController) GetSubscriptions(c *fiber.Ctx) error {
	subscriptions := []models.Subscription{}
	err := sc.DB.WithContext(c.UserContext()).
		Where("user_id = ?", middleware.CurrentUser(c).ID).
		Order("created_at desc, id desc").
		Find(&subscriptions).Error
	if err != nil {
		return fail(c, utils.InternalError("Error fetching subscriptions", err), "Error fetching subscriptions")
	}
	return utils.OK(c, "", subscriptions)
}

// GetStatus godoc
// @Summary Subscription status
// @Description Active subscription whose end date has not passed
// @Tags subscriptions
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=SubscriptionStatus}
// @Security ApiKeyAuth
// @Router /subscriptions/status [get]
func (sc *SubscriptionsController) GetStatus(c *fiber.Ctx) error {
	active, err := sc.Subscriptions.Active(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, "Error checking subscription status")
	}
	return utils.OK(c, "", SubscriptionStatus{HasActiveSubscription: active != nil, Subscription: active})
}

// CreateSubscription godoc
// @Summary Subscribe
// @Description Replaces any active subscription. Payment is not charged; paymentId is stored as given.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param input body CreateSubscriptionRequest true "Plan"
// @Success 201 {object} utils.SuccessResponse{data=models.Subscription}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subscriptions [post]
func (sc *SubscriptionsController) CreateSubscription(c *fiber.Ctx) error {
	var input CreateSubscriptionRequest
	if err := c.BodyParser(&input); err != nil {
		return fail(c, utils.InvalidInputError("Cannot parse JSON"), "Error creating subscription")
	}
	plan := models.Plan(strings.ToUpper(string(input.Plan)))
	if !plan.Valid() {
		return fail(c, utils.InvalidInputError("Valid subscription plan (MONTHLY or YEARLY) is required"), "Error creating subscription")
	}

	sub, err := sc.Subscriptions.Subscribe(c.UserContext(), middleware.CurrentUser(c).ID, plan, input.PaymentID)
	if err != nil {
		return fail(c, err, "Error creating subscription")
	}
	return utils.Created(c, "Subscription created successfully", sub)
}

// CancelSubscription godoc
// @Summary Cancel a subscription
// @Tags subscriptions
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.SuccessResponse{data=models.Subscription}
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /subscriptions/{id}/cancel [put]
func (sc *SubscriptionsController) CancelSubscription(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err, "Error cancelling subscription")
	}

	db := sc.DB.WithContext(c.UserContext())
	var sub models.Subscription
	if err := db.First(&sub, id).Error; err != nil {
		if utils.IsNotFound(err) {
			return fail(c, utils.NotFoundError("Subscription not found"), "Error cancelling subscription")
		}
		return fail(c, utils.InternalError("Error cancelling subscription", err), "Error cancelling subscription")
	}
	if err := sc.Policy.Owner(middleware.CurrentUser(c), sub.UserID, "cancel", "subscription"); err != nil {
		return fail(c, err, "Error cancelling subscription")
	}

	if err := db.Model(&sub).Update("is_active", false).Error; err != nil {
		return fail(c, utils.InternalError("Error cancelling subscription", err), "Error cancelling subscription")
	}
	return utils.OK(c, "Subscription cancelled successfully", &sub)
}
