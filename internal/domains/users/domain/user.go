package domain

import (
	"errors"
	"strings"
)

// Role distinguishes pet owners from sitters offering care.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleSitter Role = "SITTER"
)

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidRole   = errors.New("role must be OWNER or SITTER")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
)

// User represents a marketplace account, either a pet owner or a sitter.
type User struct {
	ID          int64
	Email       string
	Name        string
	Role        Role
	Password    string
	Rating      float64
	ReviewCount int
}

// NewUser builds a user ensuring required invariants.
func NewUser(id int64, email, name string, role Role) (*User, error) {
	user := &User{ID: id}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// SetEmail trims and validates the email address.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetRole validates the account role. An empty role defaults to OWNER.
func (u *User) SetRole(role Role) error {
	if role == "" {
		role = RoleOwner
	}
	switch role {
	case RoleOwner, RoleSitter:
		u.Role = role
		return nil
	default:
		return ErrInvalidRole
	}
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && u.Password == strings.TrimSpace(password)
}

// RecordReview folds a new review rating into the running average.
func (u *User) RecordReview(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	total := u.Rating*float64(u.ReviewCount) + float64(rating)
	u.ReviewCount++
	u.Rating = total / float64(u.ReviewCount)
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if err := u.Rename(u.Name); err != nil {
		return err
	}
	if err := u.SetRole(u.Role); err != nil {
		return err
	}
	if u.Rating < 0 || u.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
