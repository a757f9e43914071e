// Package form validates submitted marketing-site forms before any
// collaborator is called. Validation is pure: it never performs I/O and
// always returns the full field/message mapping for the given input.
package form

import (
	"regexp"
	"strings"
)

const (
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldCompanyName = "companyName"
	FieldDescription = "description"
)

const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Email is invalid"
	MsgCompanyRequired = "Company is required"
	MsgMessageRequired = "Message is required"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidEmail reports whether the address passes the same pattern the form
// rules use.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Input carries the raw string fields shared by every form variant.
type Input struct {
	FullName    string
	Email       string
	CompanyName string
	Description string
}

// Errors maps a failing field name to its message. An empty map means valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Profile lists which optional fields a form variant requires. Name and email
// are required by every variant.
type Profile struct {
	required map[string]bool
}

func NewProfile(requiredFields ...string) Profile {
	required := make(map[string]bool, len(requiredFields))
	for _, field := range requiredFields {
		required[field] = true
	}

	return Profile{required: required}
}

func (p Profile) Requires(field string) bool {
	return p.required[field]
}

var (
	// BookingProfile backs the booking modal: name and email only.
	BookingProfile = NewProfile()

	// ContactProfile backs the contact page: company and message are
	// required on top of name and email.
	ContactProfile = NewProfile(FieldCompanyName, FieldDescription)
)

// Validate checks the input against the profile and returns a message for
// every failing field.
func Validate(in Input, profile Profile) Errors {
	errs := Errors{}

	if strings.TrimSpace(in.FullName) == "" {
		errs[FieldFullName] = MsgNameRequired
	}

	switch {
	case strings.TrimSpace(in.Email) == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(in.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	if profile.Requires(FieldCompanyName) && strings.TrimSpace(in.CompanyName) == "" {
		errs[FieldCompanyName] = MsgCompanyRequired
	}

	if profile.Requires(FieldDescription) && strings.TrimSpace(in.Description) == "" {
		errs[FieldDescription] = MsgMessageRequired
	}

	return errs
}
