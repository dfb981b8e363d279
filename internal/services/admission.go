package services

import (
	"context"
	"errors"
	"fmt"

	"groupinvites/internal/domain"
)

type admissionGate struct {
	directory        domain.DirectoryClient
	maxUsersPerGroup int
}

// NewAdmissionGate creates an AdmissionGate backed by the given directory.
// maxUsersPerGroup is the membership count at which redemption is refused.
func NewAdmissionGate(directory domain.DirectoryClient, maxUsersPerGroup int) domain.AdmissionGate {
	return &admissionGate{
		directory:        directory,
		maxUsersPerGroup: maxUsersPerGroup,
	}
}

func (g *admissionGate) Validate(ctx context.Context, code string) (domain.InviteStatus, error) {
	// Malformed codes are rejected before any directory call and answered the
	// same as unknown codes, so the response does not distinguish "badly
	// shaped" from "nonexistent".
	if !domain.ValidInviteCodeFormat(code) {
		return domain.StatusInvitationNotFound, nil
	}

	invitations, err := g.directory.ListInvitations(ctx)
	if err != nil {
		return domain.StatusUnknown, fmt.Errorf("list invitations: %w", err)
	}

	var invitation *domain.Invitation
	for _, inv := range invitations {
		if inv.Code == code {
			invitation = inv
			break
		}
	}
	if invitation == nil {
		return domain.StatusInvitationNotFound, nil
	}

	groupID := invitation.TargetGroupID()
	if groupID == "" {
		return domain.StatusGroupNotFound, nil
	}
	group, err := g.directory.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StatusGroupNotFound, nil
		}
		return domain.StatusUnknown, fmt.Errorf("get group %s: %w", groupID, err)
	}

	if group.MemberCount() >= g.maxUsersPerGroup {
		return domain.StatusGroupIsFull, nil
	}

	return domain.StatusValid, nil
}
