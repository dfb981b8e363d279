package domain

import "context"

// UpdateInvitationParams is the payload for mutating an invitation. The only
// mutation this service performs is appending invitee emails.
type UpdateInvitationParams struct {
	ShouldSendEmail bool     `json:"shouldSendEmail"`
	Emails          []string `json:"emails"`
}

// DirectoryClient is the narrow port onto the membership directory, the
// external system of record for users, groups, and invitations. Every call is
// a remote call and may fail; absence is reported as ErrNotFound and deadline
// expiry as ErrDirectoryTimeout.
type DirectoryClient interface {
	ListInvitations(ctx context.Context) ([]*Invitation, error)
	GetGroup(ctx context.Context, groupID string) (*Group, error)
	// CreateInvitation is fire-and-forget: the directory does not return the
	// created record, so callers must re-list to observe it.
	CreateInvitation(ctx context.Context, roleID string, groupIDs []string) error
	UpdateInvitation(ctx context.Context, invitationID string, params UpdateInvitationParams) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}
