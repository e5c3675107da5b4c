package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")
		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")
		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("plate_number")
	assert.Equal(t, "value is required: plate_number", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("phone", errors.New("blank"))
	assert.Equal(t, "value is required: phone (cause: blank)", withCause.Error())
}

func TestLifecycleErrors(t *testing.T) {
	t.Run("invalid transition", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("completed", "in_progress")
		assert.Equal(t, "invalid transition: from completed to in_progress", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("delay reason required", func(t *testing.T) {
		err := errs.NewDelayReasonRequiredError(135)
		assert.Equal(t, "delay reason required: order ran for 135 minutes", err.Error())
		require.ErrorIs(t, err, errs.ErrDelayReasonRequired)
	})

	t.Run("adjustment", func(t *testing.T) {
		err := errs.NewAdjustmentError("Tyre 195/65R15", "Michelin", -4, errors.New("insufficient stock"))
		assert.Equal(t, "stock adjustment failed: Tyre 195/65R15 (Michelin) by -4 (cause: insufficient stock)", err.Error())
		require.ErrorIs(t, err, errs.ErrAdjustment)
	})
}

func TestIsValidation(t *testing.T) {
	testCases := []struct {
		err      error
		expected bool
	}{
		{errs.NewValueIsRequiredError("a"), true},
		{errs.NewValueIsInvalidError("b"), true},
		{errs.NewValueIsOutOfRangeError("c", 1, 2, 3), true},
		{fmt.Errorf("wrapped: %w", errs.NewValueIsInvalidError("d")), true},
		{errs.NewObjectNotFoundError("e", "1"), false},
		{errs.NewInvalidTransitionError("created", "completed"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, errs.IsValidation(tc.err))
		})
	}
}
