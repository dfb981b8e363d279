package services

import (
	"context"
	"fmt"

	"groupinvites/internal/domain"
)

type inviteNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewInviteNotifier returns an InviteNotifier that uses the given Mailer and
// template renderer.
func NewInviteNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.InviteNotifier {
	return &inviteNotifier{mailer: mailer, renderer: renderer}
}

// SendInviteLink sends the invite-link email using the "invite_link" template.
func (s *inviteNotifier) SendInviteLink(ctx context.Context, data *domain.InviteLinkEmailData) error {
	if data == nil {
		return fmt.Errorf("invite link data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invite_link", data)
	if err != nil {
		return fmt.Errorf("failed to render invite_link template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invite link email: %w", err)
	}
	return nil
}
