package models

import (
	"time"

	"github.com/lib/pq"
)

// Role names as stored in the users.roles array.
const (
	RoleUser          = "user"
	RoleModerator     = "moderator"
	RoleAdministrator = "administrator"
)

// User is a Telegram user known to the bot. Rows are created on first contact,
// refreshed on every contact, and soft-deleted only.
type User struct {
	ID         int64          `db:"id"`
	ChatID     int64          `db:"chat_id"`
	Name       string         `db:"name"`
	Login      string         `db:"login"`
	Roles      pq.StringArray `db:"roles"`
	Notify     bool           `db:"notify"`
	LastSentAt *time.Time     `db:"last_sent_at"`
	CreatedAt  time.Time      `db:"created_at"`
	Deleted    bool           `db:"deleted"`
}

// RoleAllows reports whether the held role set satisfies the required role.
// Roles form an unordered set; administrator implies moderator and user, and
// moderator implies user. The implication lives here so call sites never
// repeat it.
func RoleAllows(held []string, required string) bool {
	if required == "" {
		return true
	}
	for _, r := range held {
		if r == required {
			return true
		}
		switch r {
		case RoleAdministrator:
			return true
		case RoleModerator:
			if required == RoleUser {
				return true
			}
		}
	}
	return false
}

// Allows reports whether the user satisfies the required role.
func (u *User) Allows(required string) bool {
	if u == nil {
		return false
	}
	return RoleAllows(u.Roles, required)
}

// HasRole reports exact membership, without role implication.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Grant adds a role to the set if absent.
func (u *User) Grant(role string) {
	if u.HasRole(role) {
		return
	}
	u.Roles = append(u.Roles, role)
}
