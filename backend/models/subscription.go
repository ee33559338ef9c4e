package models

import "time"

type Plan string

const (
	PlanMonthly Plan = "MONTHLY"
	PlanYearly  Plan = "YEARLY"
)

// EndDate returns when a plan started at start runs out.
func (p Plan) EndDate(start time.Time) time.Time {
	if p == PlanYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Plan      Plan      `gorm:"type:varchar(16);not null" json:"plan"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"index;not null" json:"endDate"`
	IsActive  bool      `gorm:"index;not null" json:"isActive"`
	PaymentID *string   `json:"paymentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Plan) Valid() bool {
	return p == PlanMonthly || p == PlanYearly
}
