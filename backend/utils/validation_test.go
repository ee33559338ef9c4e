package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR"`
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(&signupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"}))

	tests := []struct {
		name    string
		input   signupInput
		message string
		field   string
		tag     string
	}{
		{"missing name", signupInput{Email: "ada@example.com", Password: "secret1"}, "name is required", "name", "required"},
		{"bad email", signupInput{Name: "Ada", Email: "ada", Password: "secret1"}, "Please provide a valid email", "email", "email"},
		{"short password", signupInput{Name: "Ada", Email: "ada@example.com", Password: "abc"}, "password must be at least 6 characters", "password", "min"},
		{"bad role", signupInput{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: "ADMIN"}, "role must be one of: STUDENT INSTRUCTOR", "role", "oneof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.input)
			require.Error(t, err)
			appErr, ok := err.(*AppError)
			require.True(t, ok)
			assert.Equal(t, KindInvalidInput, appErr.Kind)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, tt.tag, appErr.Details[tt.field])
		})
	}
}
