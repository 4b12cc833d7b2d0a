package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"moneytracker/internal/domain/subscription"
	"moneytracker/internal/shared/messages"
)

// SubscriptionStore is the slice of the subscription repository the
// reminder jobs need.
type SubscriptionStore interface {
	ListActive(ctx context.Context) ([]*subscription.Subscription, error)
	SetNextBillingDate(ctx context.Context, userID, id string, next civil.Date) error
}

// Reminders builds one job per subscription owner. Each job advances past
// billing dates and notifies the owner about renewals inside their
// reminder window.
type Reminders struct {
	store    SubscriptionStore
	notifier Notifier
	messages *messages.Messages
	log      zerolog.Logger
	now      func() time.Time
}

func NewReminders(store SubscriptionStore, notifier Notifier, msgs *messages.Messages, log zerolog.Logger) *Reminders {
	return &Reminders{
		store:    store,
		notifier: notifier,
		messages: msgs,
		log:      log.With().Str("component", "reminders").Logger(),
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (r *Reminders) WithClock(now func() time.Time) *Reminders {
	r.now = now
	return r
}

// Jobs is a JobProvider.
func (r *Reminders) Jobs(ctx context.Context) ([]Job, error) {
	subs, err := r.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}

	byOwner := make(map[string][]*subscription.Subscription)
	var owners []string
	for _, s := range subs {
		if _, ok := byOwner[s.UserID]; !ok {
			owners = append(owners, s.UserID)
		}
		byOwner[s.UserID] = append(byOwner[s.UserID], s)
	}

	today := civil.DateOf(r.now())
	jobs := make([]Job, 0, len(owners))
	for _, owner := range owners {
		jobs = append(jobs, &ReminderJob{
			userID:        owner,
			subscriptions: byOwner[owner],
			today:         today,
			reminders:     r,
		})
	}

	r.log.Info().Int("subscriptions", len(subs)).Int("owners", len(owners)).Msg("built reminder jobs")
	return jobs, nil
}

// ReminderJob processes the active subscriptions of one owner.
type ReminderJob struct {
	userID        string
	subscriptions []*subscription.Subscription
	today         civil.Date
	reminders     *Reminders
}

func (j *ReminderJob) UserID() string { return j.userID }

func (j *ReminderJob) Description() string {
	return fmt.Sprintf("subscription reminders (%d)", len(j.subscriptions))
}

// Execute keeps going after a failed subscription and returns the joined
// errors.
func (j *ReminderJob) Execute(ctx context.Context) error {
	var errs []error
	for _, s := range j.subscriptions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.process(ctx, s); err != nil {
			errs = append(errs, fmt.Errorf("subscription %s: %w", s.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (j *ReminderJob) process(ctx context.Context, s *subscription.Subscription) error {
	r := j.reminders

	if s.RollForward(j.today) {
		if err := r.store.SetNextBillingDate(ctx, s.UserID, s.ID, s.NextBillingDate); err != nil {
			return fmt.Errorf("failed to advance billing date: %w", err)
		}
	}

	if !s.ReminderDue(j.today) {
		return nil
	}

	days := s.DaysUntilBilling(j.today)
	tmpl := r.messages.SubscriptionDueSoon
	if days == 0 {
		tmpl = r.messages.SubscriptionDueToday
	}
	title, body := tmpl.Render(map[string]string{
		"name":   s.Name,
		"days":   strconv.Itoa(days),
		"amount": s.Amount.StringFixed(2),
		"date":   s.NextBillingDate.String(),
	})

	data := map[string]string{
		"type":            "subscription_reminder",
		"subscriptionId":  s.ID,
		"nextBillingDate": s.NextBillingDate.String(),
	}
	if err := r.notifier.Notify(ctx, s.UserID, title, body, data); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
