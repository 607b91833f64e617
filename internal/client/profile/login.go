// internal/client/profile/login.go
package profile

import (
	"regexp"
	"strings"
)

// FormError is a login form problem. Message is shown to the player as-is.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string { return e.Field + ": " + e.Message }

const (
	MsgFirstNameRequired = "Please enter your first name."
	MsgLastNameRequired  = "Please enter your last name."
	MsgEmailRequired     = "Please enter your Clemson email."
	MsgEmailNotClemson   = "Use a Clemson email that ends with @clemson.edu."
)

var clemsonEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@clemson\.edu$`)

// ValidateLogin trims the form, lower-cases the email and returns the
// profile to store, or a *FormError for the first problem found.
func ValidateLogin(first, last, email string) (Profile, error) {
	p := Profile{
		FirstName: strings.TrimSpace(first),
		LastName:  strings.TrimSpace(last),
		Email:     strings.ToLower(strings.TrimSpace(email)),
	}
	switch {
	case p.FirstName == "":
		return Profile{}, &FormError{Field: "firstName", Message: MsgFirstNameRequired}
	case p.LastName == "":
		return Profile{}, &FormError{Field: "lastName", Message: MsgLastNameRequired}
	case p.Email == "":
		return Profile{}, &FormError{Field: "email", Message: MsgEmailRequired}
	case !clemsonEmail.MatchString(p.Email):
		return Profile{}, &FormError{Field: "email", Message: MsgEmailNotClemson}
	}
	return p, nil
}
