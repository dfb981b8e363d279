package domain

// GroupRef is a lightweight reference to a group, as embedded in invitations
// and user records.
// swagger:model GroupRef
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group is a directory group with its live membership.
// swagger:model Group
type Group struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Users []UserRef `json:"users"`
}

// MemberCount returns the live membership count used for capacity checks.
func (g *Group) MemberCount() int {
	return len(g.Users)
}

// UserRef is a lightweight reference to a group member.
// swagger:model UserRef
type UserRef struct {
	ID string `json:"id"`
}
