package domain

import (
	"errors"
	"strings"
	"time"
)

// User is the core identity record. Email and MobileNumber are each globally
// unique; Email is stored lowercase. PasswordHash is always a bcrypt digest,
// never plaintext.
type User struct {
	ID           string
	FullName     string
	Email        string
	MobileNumber string
	Gender       Gender
	DateOfBirth  time.Time
	PasswordHash string
	// ResetTokenDigest and ResetTokenExpiresAt are both set or both nil;
	// they are present only while a password reset is pending.
	ResetTokenDigest    *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch Gender(g) {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if strings.TrimSpace(u.FullName) == "" {
		return errors.New("full name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Email != strings.ToLower(u.Email) {
		return errors.New("email must be stored lowercase")
	}
	if u.MobileNumber == "" {
		return errors.New("mobile number is required")
	}
	if !ValidGender(string(u.Gender)) {
		return errors.New("gender must be Male, Female, or Other")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if (u.ResetTokenDigest == nil) != (u.ResetTokenExpiresAt == nil) {
		return errors.New("reset token digest and expiry must be set together")
	}
	return nil
}

// PendingReset reports whether the user has an outstanding, unexpired reset
// token. Past expiries are treated as if no reset were pending.
func (u *User) PendingReset(now time.Time) bool {
	if u.ResetTokenDigest == nil || u.ResetTokenExpiresAt == nil {
		return false
	}
	return now.Before(*u.ResetTokenExpiresAt)
}
