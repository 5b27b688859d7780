package user

import "time"

type UserDB struct {
	ID          int64
	Email       string
	Name        string
	PhotoURL    string
	Role        string
	CreatedAt   time.Time
	LastLoginAt time.Time
}

type UserModifyDB struct {
	ID       *int64
	Email    *string
	Name     *string
	PhotoURL *string
	Role     *string
}
