package kernel_test

import (
	"strings"
	"testing"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlateNumber(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "already normalised", raw: "ABC123", expected: "ABC123"},
		{name: "lower case", raw: "abc123", expected: "ABC123"},
		{name: "surrounding whitespace", raw: "  t 123 abc\t", expected: "T 123 ABC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plate, err := kernel.NewPlateNumber(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, plate.String())
			require.NoError(t, plate.Validate())
		})
	}
}

func TestNewPlateNumber_Invalid(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		_, err := kernel.NewPlateNumber("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := kernel.NewPlateNumber(strings.Repeat("A", 21))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestPlateNumber_IsEqual(t *testing.T) {
	a, err := kernel.NewPlateNumber("abc123")
	require.NoError(t, err)
	b, err := kernel.NewPlateNumber(" ABC123 ")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))

	var zero kernel.PlateNumber
	require.Error(t, zero.Validate())
}
