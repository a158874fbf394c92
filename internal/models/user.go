// Package models defines the user, file-request and artifact types persisted
// by the tracker.
package models

import "errors"

// Role separates clients (submit requests) from administrators (process them).
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// User is identified by email. Password and role are immutable after
// registration; there is no delete operation for users.
type User struct {
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Password  string        `json:"password"`
	Role      Role          `json:"role"`
	Files     []FileRequest `json:"files"`
	Artifacts []Artifact    `json:"artifacts"`
}

// NewUser builds a user record with empty file and artifact lists. Every
// field is filled explicitly; partial records never enter the store.
func NewUser(name, email, password string, role Role) User {
	return User{
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		Files:     []FileRequest{},
		Artifacts: []Artifact{},
	}
}

// Clone returns a deep copy, so snapshots handed to callers cannot alias the
// authoritative collection.
func (u User) Clone() User {
	c := u
	c.Files = make([]FileRequest, len(u.Files))
	copy(c.Files, u.Files)
	c.Artifacts = make([]Artifact, len(u.Artifacts))
	copy(c.Artifacts, u.Artifacts)
	return c
}

// FileByID returns the index of the file request with the given id, or -1.
func (u User) FileByID(id int64) int {
	for i, f := range u.Files {
		if f.ID == id {
			return i
		}
	}
	return -1
}
