package processor

import (
	"context"
	"encoding/json"

	"github.com/nira-system/backend/internal/queue/task"
	"github.com/nira-system/backend/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

type statusNotificationProcessor struct {
	workers *worker.Workers
}

func NewStatusNotificationProcessor(workers *worker.Workers) *statusNotificationProcessor {
	return &statusNotificationProcessor{
		workers: workers,
	}
}

func (p *statusNotificationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.StatusNotification
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return errors.Wrap(err, "process status notification task json unmarshal")
	}

	err := p.workers.NotificationSender.SendStatusEmail(ctx, data.NIN, data.Email, data.FullName, data.Status)
	if err != nil {
		return errors.Wrap(err, "send status notification email")
	}

	return nil
}
