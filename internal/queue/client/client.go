package client

import (
	"context"
	"fmt"

	"github.com/nira-system/backend/internal/queue/task"
	"github.com/nira-system/backend/internal/service"

	"github.com/hibiken/asynq"
)

// Enqueuer pushes background tasks onto the redis-backed queue. It is the
// service layer's StatusNotifier implementation.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(opt asynq.RedisConnOpt) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(opt),
	}
}

func (e *Enqueuer) NotifyStatusChanged(ctx context.Context, input service.StatusNotification) error {
	t, err := task.NewStatusNotificationTask(input.NIN, input.Email, input.FullName, string(input.Status))
	if err != nil {
		return fmt.Errorf("build status notification task failed: %w", err)
	}

	if _, err := e.client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue status notification task failed: %w", err)
	}

	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}
