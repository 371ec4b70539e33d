package worker

import (
	"context"
	"fmt"

	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/domain"
	emailProvider "github.com/nira-system/backend/pkg/email"
)

type notificationSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newNotificationSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *notificationSender {
	return &notificationSender{
		sender: sender,
		config: config,
	}
}

type statusEmailInput struct {
	FullName string
	NIN      string
	Decision string
}

func (s *notificationSender) SendStatusEmail(ctx context.Context, nin, email, fullName, status string) error {
	if !s.config.Enabled {
		return nil
	}

	subject := "Your NIRA application status"
	if status == string(domain.StatusApproved) {
		subject = "Your NIRA application has been approved"
	}

	templateInput := statusEmailInput{FullName: fullName, NIN: nin, Decision: status}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.StatusNotification, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
