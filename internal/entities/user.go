package entities

import "time"

type User struct {
	ID          int64
	Email       string
	Name        string
	PhotoURL    string
	Role        UserRole
	CreatedAt   time.Time
	LastLoginAt time.Time
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
	RoleRider UserRole = "rider"
)

const DefaultRole = RoleUser

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleRider:
		return true
	}
	return false
}

type UserModify struct {
	ID       *int64
	Email    *string
	Name     *string
	PhotoURL *string
	Role     *UserRole
}
