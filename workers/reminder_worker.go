package workers

import (
	"context"
	"log"
	"time"

	"challenge-tracker/services"

	"github.com/go-co-op/gocron/v2"
)

// Notifier delivers one reminder to one participant. Implemented by the chat
// front-end; delivery idempotence is its problem, the query's is guaranteed.
type Notifier interface {
	SendReminder(ctx context.Context, participantID string) error
}

// ReminderWorker runs the overdue query on a fixed daily schedule and hands
// each at-risk participant to the notifier. Registered once at startup.
type ReminderWorker struct {
	reminders *services.ReminderService
	notifier  Notifier
	at        gocron.AtTime
	scheduler gocron.Scheduler
}

func NewReminderWorker(reminders *services.ReminderService, notifier Notifier, hour, minute int) *ReminderWorker {
	return &ReminderWorker{
		reminders: reminders,
		notifier:  notifier,
		at:        gocron.NewAtTime(uint(hour), uint(minute), 0),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.scheduler = sched

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(w.at)),
		gocron.NewTask(func() {
			w.run(ctx)
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Println("⏰ Reminder worker scheduled (daily)")

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("[Reminder] scheduler shutdown: %v", err)
		}
	}()
	return nil
}

func (w *ReminderWorker) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ids, err := w.reminders.Overdue(runCtx, time.Now())
	if err != nil {
		log.Printf("[Reminder] overdue query failed: %v", err)
		return
	}
	if len(ids) == 0 {
		log.Println("[Reminder] nobody at risk today")
		return
	}

	for _, id := range ids {
		if err := w.notifier.SendReminder(runCtx, id); err != nil {
			log.Printf("[Reminder] failed to notify %s: %v", id, err)
		}
	}
	log.Printf("✅ Reminders dispatched to %d participant(s)", len(ids))
}
