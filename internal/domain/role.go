package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of ways to enter a room.
type Role int

const (
	RoleHost Role = iota + 1
	RoleGuest
	RoleObserver
)

// ParseRole accepts only the lowercase role names.
func ParseRole(s string) (Role, error) {
	switch s {
	case "host":
		return RoleHost, nil
	case "guest":
		return RoleGuest, nil
	case "observer":
		return RoleObserver, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RoleGuest:
		return "guest"
	case RoleObserver:
		return "observer"
	}
	return fmt.Sprintf("role(%d)", int(r))
}
