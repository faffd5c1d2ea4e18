package hpanic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	err := Recover(func() error {
		panic("blah")
	})
	assert.EqualError(t, err, "panic: blah")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "blah", perr.Value)
	assert.Contains(t, string(perr.Stack), "TestRecoverPanic")
}

func TestRecoverOutOfBound(t *testing.T) {
	err := Recover(func() error {
		a := []string{}

		_ = a[1]

		return nil
	})
	assert.ErrorContains(t, err, "runtime error: index out of range [1] with length 0")
}

func TestRecoverError(t *testing.T) {
	sentinel := errors.New("sentinel")

	err := Recover(func() error {
		panic(sentinel)
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestRecoverV(t *testing.T) {
	v, err := RecoverV(func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
