package user

import "strings"

// RoleCode separates festival visitors from vendors.
type RoleCode string

const (
	RoleCodeClient   RoleCode = "CLIENT"
	RoleCodeBusiness RoleCode = "BUSINESS"
)

func (c RoleCode) IsValid() bool {
	switch c {
	case RoleCodeClient, RoleCodeBusiness:
		return true
	default:
		return false
	}
}

// ParseRoleCode converts request or database input into a RoleCode.
func ParseRoleCode(s string) (RoleCode, error) {
	c := RoleCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidRoleCode
	}
	return c, nil
}
