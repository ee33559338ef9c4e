package services

import (
	"context"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// SubscriptionService keeps billing state. Payment is not processed here;
// the payment id is stored as given.
type SubscriptionService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{DB: db, Now: time.Now}
}

// Subscribe deactivates the user's active subscriptions and starts a new one.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID uint, plan models.Plan, paymentID *string) (*models.Subscription, error) {
	start := s.Now()
	sub := models.Subscription{
		UserID:    userID,
		Plan:      plan,
		StartDate: start,
		EndDate:   plan.EndDate(start),
		IsActive:  true,
		PaymentID: paymentID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		return nil, utils.InternalError("Error creating subscription", err)
	}
	return &sub, nil
}

// Active returns the user's newest active, unexpired subscription, or nil.
func (s *SubscriptionService) Active(ctx context.Context, userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND end_date >= ?", userID, true, s.Now()).
		Order("created_at desc, id desc").
		First(&sub).Error
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, nil
		}
		return nil, utils.InternalError("Error checking subscription status", err)
	}
	return &sub, nil
}

// ExpireDue deactivates active subscriptions whose end date has passed and
// returns how many rows changed.
func (s *SubscriptionService) ExpireDue(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("is_active = ? AND end_date < ?", true, s.Now()).
		Update("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
