package domain

import "strings"

// Role is the account kind. The zero value means no role.
type Role string

const (
	RoleNone     Role = ""
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleEmployer:
		return RoleEmployer, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleNone:
		return RoleNone, true
	}
	return RoleNone, false
}

// CanSelfRegister reports whether an account with role r may be created
// through sign-up. Admins are provisioned out of band.
func (r Role) CanSelfRegister() bool {
	return r == RoleStudent || r == RoleEmployer
}

type User struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Role           Role     `json:"role"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	Title          string   `json:"title,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Location       string   `json:"location,omitempty"`
	Website        string   `json:"website,omitempty"`
	Skills         []string `json:"skills,omitempty"`
}

// ProfilePatch carries a partial profile update; nil fields are left alone.
// Identity fields (id, email, role) are not patchable.
type ProfilePatch struct {
	Name           *string   `json:"name,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Website        *string   `json:"website,omitempty"`
	Skills         *[]string `json:"skills,omitempty"`
}

// Apply returns u with the patch merged in.
func (p ProfilePatch) Apply(u User) User {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.ProfilePicture, p.ProfilePicture)
	set(&u.Title, p.Title)
	set(&u.Bio, p.Bio)
	set(&u.Phone, p.Phone)
	set(&u.Location, p.Location)
	set(&u.Website, p.Website)
	if p.Skills != nil {
		u.Skills = append([]string(nil), (*p.Skills)...)
	}
	return u
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
