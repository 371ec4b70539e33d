package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	StatusNotificationTaskName  = "statusNotificationTask"
	StatusNotificationQueueName = "statusNotificationQueue"
)

type StatusNotification struct {
	NIN      string `json:"nin"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

func NewStatusNotificationTask(nin, email, fullName, status string) (*asynq.Task, error) {
	data := StatusNotification{
		NIN:      nin,
		Email:    email,
		FullName: fullName,
		Status:   status,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		StatusNotificationTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(StatusNotificationQueueName),
	), nil
}
