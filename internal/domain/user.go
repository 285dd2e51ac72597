package domain

import "time"

const (
	RoleParent = "parent"
	RoleChild  = "child"

	StatusUnverified = "UNVERIFIED"
	StatusVerified   = "VERIFIED"
)

type User struct {
	ID                uint      `json:"id"`
	Role              string    `json:"role"`
	Email             string    `json:"email,omitempty"`
	Username          string    `json:"username"`
	FirstName         string    `json:"first_name,omitempty"`
	Password          string    `json:"-"`
	Status            string    `json:"status"`
	VerificationToken string    `json:"-"`
	ParentID          *uint     `json:"parent_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (u User) IsParent() bool {
	return u.Role == RoleParent
}

func (u User) IsVerified() bool {
	return u.Status == StatusVerified
}
