package guard_test

import (
	"errors"
	"testing"

	"ordertracking/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type verifyCode struct {
		code  string
		guard guard.ConstructorGuard
	}
	errNotConstructed := errors.New("verifyCode must be created via newVerifyCode")
	newVerifyCode := func(code string) verifyCode {
		return verifyCode{code: code, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructor_built_value_is_valid", func(t *testing.T) {
		cmd := newVerifyCode("0731")

		require.NoError(t, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("literal_value_is_rejected", func(t *testing.T) {
		cmd := verifyCode{code: "0731"}

		require.ErrorIs(t, cmd.guard.Validate(errNotConstructed), errNotConstructed)
	})

	t.Run("copies_keep_the_mark", func(t *testing.T) {
		original := newVerifyCode("0731")
		copied := original

		require.NoError(t, copied.guard.Validate(errNotConstructed))
	})
}
