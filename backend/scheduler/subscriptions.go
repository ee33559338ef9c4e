package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"learnhub/backend/services"

	"github.com/robfig/cron/v3"
)

const expireTimeout = time.Minute

// Expirer is the part of SubscriptionService the scheduler needs.
type Expirer interface {
	ExpireDue(ctx context.Context) (int64, error)
}

var _ Expirer = (*services.SubscriptionService)(nil)

// StartSubscriptionScheduler runs ExpireDue on spec. Stop the returned cron on shutdown.
func StartSubscriptionScheduler(spec string, expirer Expirer, logger *log.Logger) (*cron.Cron, error) {
	logger.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { RunExpiry(expirer, logger) }); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}

	c.Start()
	logger.Printf("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started (%s)", spec)
	return c, nil
}

// RunExpiry deactivates subscriptions past their end date once.
func RunExpiry(expirer Expirer, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), expireTimeout)
	defer cancel()

	n, err := expirer.ExpireDue(ctx)
	if err != nil {
		logger.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", err)
		return
	}
	if n > 0 {
		logger.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d subscriptions", n)
	}
}
