package validation_test

import (
	"testing"

	"tracker/internal/pkg/errs"
	"tracker/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contact struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type intake struct {
	Type     string  `json:"order_type" validate:"required,oneof=service sales"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Contact  contact `json:"contact"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, validation.Struct(intake{Type: "service"}))

	err := validation.Struct(intake{Quantity: -1, Contact: contact{Email: "nope"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "order_type")
	assert.Contains(t, err.Error(), "quantity")
	assert.Contains(t, err.Error(), "contact.email")
	assert.True(t, errs.IsValidation(err))
}
