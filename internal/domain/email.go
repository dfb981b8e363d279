package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InviteLinkEmailData holds data for the invite-link email.
type InviteLinkEmailData struct {
	Email     string
	GroupName string
	Link      string
}

// InviteNotifier sends domain-level invitation emails.
type InviteNotifier interface {
	SendInviteLink(ctx context.Context, data *InviteLinkEmailData) error
}
