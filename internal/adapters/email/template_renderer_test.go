package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupinvites/internal/domain"
)

func TestTemplateRenderer_InviteLink(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, html, text, err := renderer.Render("invite_link", &domain.InviteLinkEmailData{
		Email:     "a@x.com",
		GroupName: "Insiders",
		Link:      "https://invites.example.com/invite/Ab12Cd",
	})
	require.NoError(t, err)
	assert.Contains(t, subject, "Insiders")
	assert.Contains(t, html, "https://invites.example.com/invite/Ab12Cd")
	assert.Contains(t, text, "https://invites.example.com/invite/Ab12Cd")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, _, _, err := renderer.Render("nope", nil)
	require.Error(t, err)
}
