package group

import "time"

// MemberRole represents the role of a group member
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleMember MemberRole = "MEMBER"
)

// Group represents a group of people sharing expenses. BaseCurrency is
// fixed at creation; every expense and settlement in the group must use it.
type Group struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"base_currency"`
	CreatedAt    time.Time `json:"created_at"`
}

// GroupMember represents a user's membership in a group
type GroupMember struct {
	ID       int64      `json:"id"`
	GroupID  int64      `json:"group_id"`
	UserID   int64      `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`

	// Populated from JOIN
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
