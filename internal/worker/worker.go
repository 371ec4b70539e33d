package worker

import (
	"context"

	"github.com/nira-system/backend/internal/config"
	emailProvider "github.com/nira-system/backend/pkg/email"
)

type Workers struct {
	NotificationSender NotificationSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type NotificationSender interface {
	SendStatusEmail(ctx context.Context, nin, email, fullName, status string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		NotificationSender: newNotificationSender(deps.EmailProvider, deps.Config.Email),
	}
}
