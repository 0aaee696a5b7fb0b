package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(" \t "))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"hr@acme.io", true},
		{"first.last+tag@mail.example.org", true},
		{"no-at-sign.example.org", false},
		{"trailing@", false},
		{"dot@nowhere", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), tt.email)
	}
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "v7 from the application", id: "01920c4e-3b7a-7d2e-9f10-2b6c1a4e8d55", want: true},
		{name: "v4 from seed data", id: "5f0c9a3e-1d2b-4c8e-a7f6-3b9e0d1c2a4f", want: true},
		{name: "upper case", id: "5F0C9A3E-1D2B-4C8E-A7F6-3B9E0D1C2A4F", want: true},
		{name: "employee code", id: "EMP-001", want: false},
		{name: "no dashes", id: "5f0c9a3e1d2b4c8ea7f63b9e0d1c2a4f", want: false},
		{name: "urn prefix", id: "urn:uuid:5f0c9a3e-1d2b-4c8e-a7f6-3b9e0d1c2a4f", want: false},
		{name: "bad hex", id: "zf0c9a3e-1d2b-4c8e-a7f6-3b9e0d1c2a4f", want: false},
		{name: "empty", id: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUUID(tt.id))
		})
	}
}

func TestIsValidDateAndTime(t *testing.T) {
	d, ok := IsValidDate("2024-02-29")
	assert.True(t, ok)
	assert.Equal(t, 29, d.Day())

	_, ok = IsValidDate("2023-02-29")
	assert.False(t, ok)
	_, ok = IsValidDate("29/02/2024")
	assert.False(t, ok)

	assert.True(t, IsValidTime("08:30"))
	assert.False(t, IsValidTime("8.30"))
	assert.False(t, IsValidTime("24:00"))
}

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+62 812-3456-7890"))
	assert.True(t, IsValidPhoneNumber("0213456789"))
	assert.False(t, IsValidPhoneNumber("12345"))
	assert.False(t, IsValidPhoneNumber("0812x345678"))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	Required(&errs, "name", "  ")
	Required(&errs, "email", "hr@acme.io")
	errs = append(errs, ValidationError{Field: "phone", Message: "phone is invalid"})

	assert.Error(t, errs.Err())
	assert.Equal(t, "name: name is required; phone: phone is invalid", errs.Error())
	assert.Equal(t, map[string]string{"name": "name is required", "phone": "phone is invalid"}, errs.ToMap())
	assert.True(t, IsInSlice("phone", []string{"name", "phone"}))
}
