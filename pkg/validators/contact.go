package validators

import (
	"errors"
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
)

const maxNameLength = 50

var (
	ErrFirstNameEmpty   = errors.New("first name can't be empty")
	ErrLastNameEmpty    = errors.New("last name can't be empty")
	ErrNameTooLong      = errors.New("name is too long")
	ErrBirthdayInFuture = errors.New("birthday can't be in the future")
	ErrContactBadEmail  = errors.New("invalid contact email provided")
)

// ContactValidator checks the mutable fields of a contact record. The
// contact email is optional, unlike the account email
func ContactValidator(c *model.Contact) error {
	if c.FirstName == "" {
		return ErrFirstNameEmpty
	}

	if c.LastName == "" {
		return ErrLastNameEmpty
	}

	if len(c.FirstName) > maxNameLength || len(c.LastName) > maxNameLength {
		return ErrNameTooLong
	}

	if c.Email != "" {
		if err := EmailValidator(c.Email); err != nil {
			return ErrContactBadEmail
		}
	}

	if !c.Birthday.IsZero() && c.Birthday.After(time.Now()) {
		return ErrBirthdayInFuture
	}

	return nil
}
