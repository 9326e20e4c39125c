package models

import "strings"

// MinPasswordLength is the shortest password the sign-up form accepts.
const MinPasswordLength = 6

// Credentials is the login form.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks that both fields are filled in.
func (c Credentials) Validate() error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return invalid("password", "is required")
	}
	return nil
}

// Registration is the sign-up form.
type Registration struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate applies the sign-up rules in the order the form reports them.
func (r Registration) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return invalid("password", "passwords do not match")
	}
	if len(r.Password) < MinPasswordLength {
		return invalid("password", "must be at least 6 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return invalid("email", "is not a valid address")
	}
	return nil
}
