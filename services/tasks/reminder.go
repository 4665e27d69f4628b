package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"rently/models"
)

const TypePickupReminder = "reminder:pickup"

// NewPickupReminderTask builds the asynq task for a pickup reminder.
func NewPickupReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePickupReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqScheduler enqueues pickup reminders on the shared Redis queue.
type AsynqScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func (s *AsynqScheduler) SchedulePickupReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewPickupReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return err
	}
	s.Logger.Info("pickup reminder queued",
		zap.String("bookingId", payload.BookingID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
