package domain

// User is a directory user, carried only for lookup-by-email issuance.
// swagger:model User
type User struct {
	ID     string     `json:"id"`
	Email  string     `json:"email"`
	Groups []GroupRef `json:"groups"`
}
