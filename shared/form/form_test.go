package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beacon/shared/form"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   form.Input
		profile form.Profile
		want    map[string]string
	}{
		{
			name: "valid booking input",
			input: form.Input{
				FullName: "Jane Doe",
				Email:    "jane@acme.io",
			},
			profile: form.BookingProfile,
			want:    map[string]string{},
		},
		{
			name:    "empty input reports name and email",
			input:   form.Input{},
			profile: form.BookingProfile,
			want: map[string]string{
				form.FieldFullName: "Name is required",
				form.FieldEmail:    "Email is required",
			},
		},
		{
			name: "whitespace only name is empty",
			input: form.Input{
				FullName: "   ",
				Email:    "jane@acme.io",
			},
			profile: form.BookingProfile,
			want: map[string]string{
				form.FieldFullName: "Name is required",
			},
		},
		{
			name: "malformed email",
			input: form.Input{
				FullName: "Jane Doe",
				Email:    "jane-at-acme",
			},
			profile: form.BookingProfile,
			want: map[string]string{
				form.FieldEmail: "Email is invalid",
			},
		},
		{
			name: "email without dot in domain",
			input: form.Input{
				FullName: "Jane Doe",
				Email:    "jane@acme",
			},
			profile: form.BookingProfile,
			want: map[string]string{
				form.FieldEmail: "Email is invalid",
			},
		},
		{
			name: "booking profile ignores company and message",
			input: form.Input{
				FullName: "Jane Doe",
				Email:    "jane@acme.io",
			},
			profile: form.BookingProfile,
			want:    map[string]string{},
		},
		{
			name: "contact profile requires company and message",
			input: form.Input{
				FullName: "Jane Doe",
				Email:    "jane@acme.io",
			},
			profile: form.ContactProfile,
			want: map[string]string{
				form.FieldCompanyName: "Company is required",
				form.FieldDescription: "Message is required",
			},
		},
		{
			name: "valid contact input",
			input: form.Input{
				FullName:    "Jane Doe",
				Email:       "jane@acme.io",
				CompanyName: "Acme",
				Description: "Looking for a demo.",
			},
			profile: form.ContactProfile,
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := form.Validate(tt.input, tt.profile)

			assert.Equal(t, form.Errors(tt.want), got)
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, form.ValidEmail("jane@acme.io"))
	assert.True(t, form.ValidEmail("jane.doe+demo@sub.acme.io"))
	assert.False(t, form.ValidEmail("jane-at-acme"))
	assert.False(t, form.ValidEmail("jane@acme"))
	assert.False(t, form.ValidEmail(""))
}
