package cripta

import (
	"fmt"

	"golang.org/x/xerrors"
)

type ErrorCode int

const (
	// NoInput is returned for nil plaintext or ciphertext
	NoInput ErrorCode = iota + 1
	// InvalidLength is returned when ciphertext is not a whole number of blocks
	InvalidLength
	// InvalidPadding is returned when decrypted data does not end in valid padding
	InvalidPadding
)

func (c ErrorCode) String() string {
	switch c {
	case NoInput:
		return "no input"
	case InvalidLength:
		return "invalid length"
	case InvalidPadding:
		return "invalid padding"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

var (
	ErrNoInput        = CipherError{Code: NoInput, Message: NoInput.String()}
	ErrInvalidLength  = CipherError{Code: InvalidLength, Message: InvalidLength.String()}
	ErrInvalidPadding = CipherError{Code: InvalidPadding, Message: InvalidPadding.String()}
)

// CipherError carries a code so callers can tell a rejected input apart
// from a valid empty result.
type CipherError struct {
	Message string
	Code    ErrorCode
	frame   xerrors.Frame
}

func newCipherError(code ErrorCode, format string, args ...interface{}) CipherError {
	return CipherError{
		Message: fmt.Sprintf(format, args...),
		Code:    code,
		frame:   xerrors.Caller(1),
	}
}

// FormatError prints the message, and the caller frame with %+v
func (ce CipherError) FormatError(p xerrors.Printer) error {
	p.Printf("%s", ce.Message)
	ce.frame.Format(p)
	return nil
}

func (ce CipherError) Format(f fmt.State, c rune) {
	xerrors.FormatError(ce, f, c)
}

func (ce CipherError) Error() string {
	return fmt.Sprint(ce)
}

// Is matches any CipherError with the same code, so errors.Is(err, ErrNoInput) works.
func (ce CipherError) Is(target error) bool {
	other, ok := target.(CipherError)
	return ok && other.Code == ce.Code
}

func HasErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	var cipherErr CipherError
	if xerrors.As(err, &cipherErr) {
		return cipherErr.Code == code
	}
	return false
}
