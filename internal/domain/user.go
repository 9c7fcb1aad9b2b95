package domain

import "fmt"

// Role is the closed set of account variants. Everything that differs between
// buyers and sellers (glyph, dashboard content) is keyed off it.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleBuyer, RoleSeller:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Glyph is the avatar shown next to the username.
func (r Role) Glyph() string {
	if r == RoleBuyer {
		return "🛒"
	}
	return "💼"
}

func (r Role) Label() string {
	if r == RoleBuyer {
		return "Buyer"
	}
	return "Seller"
}

// User is the client-asserted identity held in the session's local storage
// under the "user" key. Company is only present for signup-created sessions.
type User struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Company      string `json:"company,omitempty"`
	Role         Role   `json:"role"`
	LoggedIn     bool   `json:"loggedIn"`
	ProfileImage string `json:"profileImage"`
}

func (u User) IsSeller() bool { return u.Role == RoleSeller }
