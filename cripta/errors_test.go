package cripta

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCipherErrorClassification(t *testing.T) {
	err := newCipherError(InvalidLength, "ciphertext length %d is not a multiple of %d", 9, BlockSize)
	wrapped := fmt.Errorf("decrypt: %w", err)

	assert.Equal(t, "ciphertext length 9 is not a multiple of 8", err.Error())
	assert.True(t, errors.Is(wrapped, ErrInvalidLength))
	assert.False(t, errors.Is(wrapped, ErrNoInput))
	assert.True(t, HasErrorCode(wrapped, InvalidLength))
	assert.False(t, HasErrorCode(wrapped, InvalidPadding))
	assert.False(t, HasErrorCode(errors.New("plain"), InvalidLength))
	assert.False(t, HasErrorCode(nil, InvalidLength))
}

func TestCipherErrorDetailIncludesCaller(t *testing.T) {
	err := newCipherError(NoInput, "plaintext cannot be nil")

	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
	assert.NotContains(t, fmt.Sprintf("%v", err), "errors_test.go")
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "no input", NoInput.String())
	assert.Equal(t, "invalid length", InvalidLength.String())
	assert.Equal(t, "invalid padding", InvalidPadding.String())
	assert.Equal(t, "error code 99", ErrorCode(99).String())
}
