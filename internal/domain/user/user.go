package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	RoleCode     RoleCode
	CreatedAt    time.Time
}

// CanOwnBusiness reports whether the user may register a business and sell products.
func (u *User) CanOwnBusiness() bool {
	return u.RoleCode == RoleCodeBusiness
}
