package domain

import (
	"errors"
	"strings"
	"time"
)

// RoleID identifies one of the three fixed roles.
type RoleID int

const (
	RoleAdmin   RoleID = 1
	RoleStudent RoleID = 2
	RoleTutor   RoleID = 3
)

const (
	RoleNameAdmin   = "Admin"
	RoleNameStudent = "Student"
	RoleNameTutor   = "Tutor"
)

var roleNames = map[RoleID]string{
	RoleAdmin:   RoleNameAdmin,
	RoleStudent: RoleNameStudent,
	RoleTutor:   RoleNameTutor,
}

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrMalformedSalt      = errors.New("malformed credential salt")
)

// Valid reports whether r is one of the known roles.
func (r RoleID) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name returns the display name of the role, or "" for an unknown id.
func (r RoleID) Name() string {
	return roleNames[r]
}

// ResolveRole maps a self-service role name to a role id. "tutor" maps to
// Tutor and everything else, "admin" included, is Student. Admin accounts are
// created by role id only.
func ResolveRole(name string) RoleID {
	if strings.EqualFold(strings.TrimSpace(name), "tutor") {
		return RoleTutor
	}
	return RoleStudent
}

// Account is a registered principal. It is never physically removed; DeletedAt
// marks a tombstone.
type Account struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Username         string     `json:"username"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	CredentialSalt   string     `json:"-"`
	CredentialDigest string     `json:"-"`
	RoleID           RoleID     `json:"role_id"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}

// RoleName resolves the account's role id to its display name.
func (a *Account) RoleName() string {
	return a.RoleID.Name()
}

// IsDeleted reports whether the account carries a tombstone.
func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

// FullName joins first and last name with a single space.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
