package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupinvites/internal/domain"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return nil
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	f.name = templateName
	return "subject", "<p>html</p>", "text", nil
}

func TestInviteNotifier_SendInviteLink(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	notifier := NewInviteNotifier(mailer, renderer)

	err := notifier.SendInviteLink(context.Background(), &domain.InviteLinkEmailData{
		Email: "a@x.com",
		Link:  "https://invites.example.com/invite/Ab12Cd",
	})
	require.NoError(t, err)
	assert.Equal(t, "invite_link", renderer.name)
	assert.Equal(t, "a@x.com", mailer.to)
	assert.Equal(t, "subject", mailer.subject)
}

func TestInviteNotifier_Errors(t *testing.T) {
	t.Run("nil data", func(t *testing.T) {
		notifier := NewInviteNotifier(&fakeMailer{}, &fakeRenderer{})
		require.Error(t, notifier.SendInviteLink(context.Background(), nil))
	})

	t.Run("render fails", func(t *testing.T) {
		notifier := NewInviteNotifier(&fakeMailer{}, &fakeRenderer{err: errors.New("boom")})
		require.Error(t, notifier.SendInviteLink(context.Background(), &domain.InviteLinkEmailData{Email: "a@x.com"}))
	})

	t.Run("send fails", func(t *testing.T) {
		notifier := NewInviteNotifier(&fakeMailer{err: errors.New("boom")}, &fakeRenderer{})
		require.Error(t, notifier.SendInviteLink(context.Background(), &domain.InviteLinkEmailData{Email: "a@x.com"}))
	})
}
