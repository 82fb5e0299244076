package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username    string `json:"username" validate:"required,alphanum,max=150"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Password    string `json:"password" validate:"required,min=8"`
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct(signup{
		Username:    "alice",
		Email:       "alice@example.com",
		PhoneNumber: "+15551234567",
		Password:    "correct-horse",
	})
	assert.NoError(t, err)
}

func TestStructUsesJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(signup{
		Username:    "alice!",
		Email:       "not-an-email",
		PhoneNumber: "5551234567",
		Password:    "short",
	})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"must contain only letters and digits"}, verr.Fields["username"])
	assert.Equal(t, []string{"must be a valid email address"}, verr.Fields["email"])
	assert.Equal(t, []string{"must be a valid E.164 phone number"}, verr.Fields["phone_number"])
	assert.Equal(t, []string{"must be at least 8 characters"}, verr.Fields["password"])
	assert.Contains(t, verr.Error(), "phone_number: must be a valid E.164 phone number")
}

func TestAdd(t *testing.T) {
	var err *Error
	err = Add(err, "author_id", "author does not exist")
	err = Add(err, "author_id", "second")
	assert.Equal(t, []string{"author does not exist", "second"}, err.Fields["author_id"])
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("phone_number", "+15551234567", "required,e164"))

	err := v.Var("phone_number", "", "required,e164")
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"is required"}, verr.Fields["phone_number"])
}
