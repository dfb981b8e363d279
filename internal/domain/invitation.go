package domain

import (
	"context"
	"regexp"
)

// inviteCodeRegex matches a well-formed invite code: exactly six alphanumerics.
var inviteCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)

// ValidInviteCodeFormat reports whether code has the shape of an invite code.
// It says nothing about whether such an invitation exists.
func ValidInviteCodeFormat(code string) bool {
	return inviteCodeRegex.MatchString(code)
}

// Invitation is a directory-owned invitation record. The first group is the
// authoritative target for capacity and redirect purposes; additional groups
// are carried but not specially handled.
// swagger:model Invitation
type Invitation struct {
	ID     string     `json:"id"`
	Code   string     `json:"code"`
	Groups []GroupRef `json:"groups"`
}

// TargetGroupID returns the id of the invitation's authoritative group, or ""
// if the directory returned an invitation with no groups.
func (i *Invitation) TargetGroupID() string {
	if len(i.Groups) == 0 {
		return ""
	}
	return i.Groups[0].ID
}

// InvitesGroup reports whether the invitation targets the given group,
// in any position.
func (i *Invitation) InvitesGroup(groupID string) bool {
	for _, g := range i.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// InviteStatus is the outcome of validating an invite code for redemption.
type InviteStatus int

const (
	// StatusUnknown is the zero value; the HTTP layer treats it (and any other
	// unrecognized status) as an internal error.
	StatusUnknown InviteStatus = iota
	StatusValid
	StatusInvitationNotFound
	StatusGroupNotFound
	StatusGroupIsFull
)

func (s InviteStatus) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvitationNotFound:
		return "invitation not found"
	case StatusGroupNotFound:
		return "group not found"
	case StatusGroupIsFull:
		return "group is full"
	default:
		return "unknown"
	}
}

// AdmissionGate decides whether an invite code may be redeemed.
type AdmissionGate interface {
	// Validate runs the admission pipeline for a raw invite code. It has no
	// side effects beyond the directory reads needed to answer. Not-found and
	// capacity conditions are statuses, not errors; a non-nil error means the
	// directory could not be consulted.
	Validate(ctx context.Context, code string) (InviteStatus, error)
}

// InviteIssuer produces the canonical invitation for a group, creating one
// only when none exists.
type InviteIssuer interface {
	IssueForGroup(ctx context.Context, groupID string) (*Invitation, error)
	// IssueForEmail resolves a user's first group by email and issues for it.
	// Returns ErrNotFound when no user matches.
	IssueForEmail(ctx context.Context, email string) (*Invitation, error)
	// AppendInvitees registers recipient emails against an invitation,
	// best-effort: failures are logged, never returned.
	AppendInvitees(ctx context.Context, inv *Invitation, recipients []string)
	// InviteLink renders the public redemption link for an invitation.
	InviteLink(inv *Invitation) string
}
