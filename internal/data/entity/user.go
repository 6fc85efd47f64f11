package entity

import (
	"strconv"
	"strings"
	"time"
)

type User struct {
	Base
	Username    string     `db:"username"`
	Email       string     `db:"email"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Bio         string     `db:"bio"`
	Role        Role       `db:"role"`
	IsSuperuser bool       `db:"is_superuser"`
	LastLogin   *time.Time `db:"last_login"`
}

// IsAdmin is true for the admin role or the superuser flag, either suffices.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || u.Role.Can(CapAdminister)
}

func (u *User) IsModerator() bool {
	return u.Role.Can(CapModerate)
}

// SecurityState fingerprints every field a confirmation code is bound to.
// Timestamps use microseconds to match what postgres stores.
func (u *User) SecurityState() string {
	var lastLogin int64
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.UnixMicro()
	}

	return strings.Join([]string{
		u.ID.String(),
		u.Username,
		u.Email,
		string(u.Role),
		strconv.FormatBool(u.IsSuperuser),
		strconv.FormatInt(lastLogin, 10),
		strconv.FormatInt(u.UpdatedAt.UnixMicro(), 10),
	}, "|")
}
