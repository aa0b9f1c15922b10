package kernel

import (
	"net/mail"

	"ordermanagement/internal/pkg/errs"
)

const (
	// EmailMinLength is the minimum accepted customer email length.
	EmailMinLength = 3
	// EmailMaxLength is the maximum accepted customer email length.
	EmailMaxLength = 120
)

// ErrEmailIsNotConstructed is returned when attempting to use an improperly
// initialized Email. Emails must be created via the NewEmail constructor.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail constructor")

// Email is an immutable value object representing a syntactically valid
// customer email address between EmailMinLength and EmailMaxLength
// characters. The zero value of Email is invalid and will fail validation -
// use NewEmail to create instances.
//
// Example:
//
//	email, err := kernel.NewEmail("a@b.com")
//	if err != nil {
//	    // Handle validation error
//	}
type Email struct { //nolint:recvcheck //using for validation
	value string
	guard ConstructorGuard
}

// NewEmail creates a new Email after checking length bounds and address
// syntax. The address must stand alone, without a display name.
func NewEmail(value string) (Email, error) {
	if value == "" {
		return Email{}, errs.NewValueIsRequiredError("customerEmail")
	}
	if len(value) < EmailMinLength || len(value) > EmailMaxLength {
		return Email{}, errs.NewValueIsOutOfRangeError("customerEmail length", len(value), EmailMinLength, EmailMaxLength)
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("customerEmail", err)
	}

	return Email{
		value: value,
		guard: NewConstructorGuard(),
	}, nil
}

// Validate checks if the Email was properly constructed via NewEmail.
func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

// String returns the raw email address.
func (e Email) String() string {
	return e.value
}

// IsEqual compares two emails by exact address.
func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}
