// Package remind runs the recurring reminder schedule and publishes each
// firing to the notification queue.
package remind

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"tripmate/mq/mq"
	st "tripmate/store/store"
)

const (
	waterText   = "💧 Reminder: Stay hydrated! Drink some water."
	foodText    = "🍎 Reminder: Time to grab a bite and refuel!"
	familyText  = "📞 Reminder: Call your parents and share your adventures!"
	quotePrefix = "Morning Spirit! ✨ "

	morningQuoteDateKey = "morning_quote_date"
	dayFormat           = "2006-01-02"
)

// Scheduler fires the fixed reminder intervals and the hourly morning
// quote check. Reminder state does not survive restarts except for the
// daily quote dedupe, which is tracked in the meta store.
type Scheduler struct {
	cron   *cron.Cron
	queue  mq.NotificationMessageQueue
	meta   st.MetaRepo
	quotes []string
	now    func() time.Time
}

func NewScheduler(queue mq.NotificationMessageQueue, meta st.MetaRepo, quotes []string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		queue:  queue,
		meta:   meta,
		quotes: quotes,
		now:    time.Now,
	}
}

// Start registers the schedule and begins firing. The morning quote check
// also runs once immediately so a restart during the day still shows the
// quote at most once.
func (s *Scheduler) Start(ctx context.Context) error {
	entries := []struct {
		spec string
		run  func()
	}{
		{"@every 2h", func() { s.publish(mq.KindWater, waterText) }},
		{"@every 3h30m", func() { s.publish(mq.KindFood, foodText) }},
		{"@every 24h", func() { s.publish(mq.KindFamily, familyText) }},
		{"@every 1h", func() { s.morningQuoteCheck(ctx) }},
	}
	for _, e := range entries {
		if _, err := s.cron.AddFunc(e.spec, e.run); err != nil {
			return fmt.Errorf("register reminder %q: %w", e.spec, err)
		}
	}

	s.morningQuoteCheck(ctx)
	s.cron.Start()
	return nil
}

// Stop halts the schedule; running jobs finish first.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) publish(kind mq.NotificationKind, text string) {
	msg := mq.NotificationMessage{
		ID:     uuid.New(),
		Kind:   kind,
		Text:   text,
		SentAt: s.now().UnixMilli(),
	}
	if err := s.queue.Publish(msg); err != nil {
		slog.Warn("failed to publish reminder", "kind", kind, "err", err)
	}
}

// morningQuoteCheck shows a random motivational quote once per calendar
// date, deduplicated by a marker in the meta store.
func (s *Scheduler) morningQuoteCheck(ctx context.Context) {
	if len(s.quotes) == 0 {
		return
	}
	today := s.now().Format(dayFormat)

	lastShown, _, err := s.meta.GetMeta(ctx, morningQuoteDateKey)
	if err != nil {
		slog.Warn("failed to read morning quote marker", "err", err)
		return
	}
	if lastShown == today {
		return
	}

	quote := s.quotes[rand.Intn(len(s.quotes))]
	s.publish(mq.KindQuote, quotePrefix+quote)

	if err := s.meta.SetMeta(ctx, morningQuoteDateKey, today); err != nil {
		slog.Warn("failed to store morning quote marker", "err", err)
	}
}
