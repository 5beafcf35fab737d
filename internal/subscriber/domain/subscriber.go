package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
)

const maxNameLength = 256

var forbiddenNameChars = []rune{'/', '(', ')', '"', '<', '>', '\\', '{', '}'}

var validate = validator.New()

// Email is a parse-validated address. The zero value is invalid; only
// ParseEmail produces usable values.
type Email struct {
	value string
}

func ParseEmail(raw string) (Email, error) {
	if err := validate.Var(raw, "required,email"); err != nil {
		return Email{}, fmt.Errorf("%q is not a valid email address", raw)
	}
	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}

// Name is a validated subscriber name: non-blank, at most 256 characters,
// free of characters that could break out of HTML or URL contexts.
type Name struct {
	value string
}

func ParseName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, fmt.Errorf("subscriber name must not be blank")
	}
	if utf8.RuneCountInString(raw) > maxNameLength {
		return Name{}, fmt.Errorf("subscriber name must not exceed %d characters", maxNameLength)
	}
	for _, forbidden := range forbiddenNameChars {
		if strings.ContainsRune(raw, forbidden) {
			return Name{}, fmt.Errorf("subscriber name contains forbidden character %q", forbidden)
		}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string {
	return n.value
}

type Subscriber struct {
	ID           uuid.UUID
	Email        Email
	Name         Name
	Status       Status
	SubscribedAt time.Time
}

// ConfirmedRecipient is one row of the confirmed-subscriber listing. Rows
// whose stored address no longer passes validation carry Err instead of
// Email, so the caller can skip them without aborting the whole listing.
type ConfirmedRecipient struct {
	Email Email
	Err   error
}
