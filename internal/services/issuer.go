package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"groupinvites/internal/domain"
)

type inviteIssuer struct {
	directory     domain.DirectoryClient
	notifier      domain.InviteNotifier
	logger        *slog.Logger
	baseURL       string
	defaultRoleID string
}

// NewInviteIssuer creates an InviteIssuer. baseURL is the public URL of this
// service; defaultRoleID is the directory role assigned to invitations it
// creates. notifier may be nil to skip invite-link emails.
func NewInviteIssuer(
	directory domain.DirectoryClient,
	notifier domain.InviteNotifier,
	logger *slog.Logger,
	baseURL string,
	defaultRoleID string,
) domain.InviteIssuer {
	return &inviteIssuer{
		directory:     directory,
		notifier:      notifier,
		logger:        logger,
		baseURL:       strings.TrimRight(baseURL, "/"),
		defaultRoleID: defaultRoleID,
	}
}

func (s *inviteIssuer) IssueForGroup(ctx context.Context, groupID string) (*domain.Invitation, error) {
	if groupID == "" {
		return nil, domain.ErrInvalidInput
	}

	invitations, err := s.invitationsForGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if len(invitations) > 0 {
		return invitations[0], nil
	}

	// Concurrent first-issuance for the same group may race here and both
	// create; de-duplication is the directory's responsibility. Both callers
	// converge on the first invitation in listing order below.
	if err := s.directory.CreateInvitation(ctx, s.defaultRoleID, []string{groupID}); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	// The create call does not return the record, so re-list to observe it.
	invitations, err = s.invitationsForGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list invitations after create: %w", err)
	}
	if len(invitations) == 0 {
		return nil, fmt.Errorf("invitation for group %s not visible after create", groupID)
	}
	return invitations[0], nil
}

func (s *inviteIssuer) IssueForEmail(ctx context.Context, email string) (*domain.Invitation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.directory.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if len(user.Groups) == 0 {
		return nil, domain.ErrNotFound
	}
	return s.IssueForGroup(ctx, user.Groups[0].ID)
}

// AppendInvitees registers recipients against the invitation and, when a
// notifier is configured, emails each one the invite link. Both steps are
// best-effort single attempts; failures are logged and never surfaced.
func (s *inviteIssuer) AppendInvitees(ctx context.Context, inv *domain.Invitation, recipients []string) {
	if inv == nil || len(recipients) == 0 {
		return
	}

	s.logger.Info("registering invitees", "invitation_id", inv.ID, "count", len(recipients))
	err := s.directory.UpdateInvitation(ctx, inv.ID, domain.UpdateInvitationParams{
		ShouldSendEmail: true,
		Emails:          recipients,
	})
	if err != nil {
		s.logger.Error("failed to register invitees", "invitation_id", inv.ID, "err", err)
		return
	}

	if s.notifier == nil {
		return
	}
	var groupName string
	if len(inv.Groups) > 0 {
		groupName = inv.Groups[0].Name
	}
	link := s.InviteLink(inv)
	for _, email := range recipients {
		data := &domain.InviteLinkEmailData{Email: email, GroupName: groupName, Link: link}
		if err := s.notifier.SendInviteLink(ctx, data); err != nil {
			s.logger.Error("failed to email invite link", "email", email, "err", err)
		}
	}
}

func (s *inviteIssuer) InviteLink(inv *domain.Invitation) string {
	return fmt.Sprintf("%s/invite/%s", s.baseURL, inv.Code)
}

func (s *inviteIssuer) invitationsForGroup(ctx context.Context, groupID string) ([]*domain.Invitation, error) {
	invitations, err := s.directory.ListInvitations(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Invitation
	for _, inv := range invitations {
		if inv.InvitesGroup(groupID) {
			matches = append(matches, inv)
		}
	}
	return matches, nil
}
