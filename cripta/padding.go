package cripta

type PaddingMode int

const (
	// PaddingModeStrict rejects malformed padding with ErrInvalidPadding
	PaddingModeStrict PaddingMode = iota
	// PaddingModeLenient returns the decrypted bytes untouched when the padding is malformed
	PaddingModeLenient
)

// Pad appends p bytes of value p, 1 <= p <= 8. Block aligned input gets a
// whole block of padding.
func Pad(data []uint8) []uint8 {
	paddingLength := BlockSize - len(data)%BlockSize

	padded := make([]uint8, len(data)+paddingLength)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = uint8(paddingLength)
	}

	return padded
}

// Unpad strips padding added by Pad. Empty data is returned unchanged.
func Unpad(data []uint8) ([]uint8, error) {
	if len(data) == 0 {
		return data, nil
	}

	paddingLength := int(data[len(data)-1])
	if paddingLength < 1 || paddingLength > BlockSize || paddingLength > len(data) {
		return nil, newCipherError(InvalidPadding, "invalid padding length %d", paddingLength)
	}

	for i := len(data) - paddingLength; i < len(data); i++ {
		if data[i] != uint8(paddingLength) {
			return nil, newCipherError(InvalidPadding, "padding byte at offset %d is %#02x, expected %#02x", i, data[i], paddingLength)
		}
	}

	return data[:len(data)-paddingLength], nil
}

// UnpadLenient behaves like Unpad but returns data unchanged instead of failing.
func UnpadLenient(data []uint8) []uint8 {
	unpadded, err := Unpad(data)
	if err != nil {
		return data
	}
	return unpadded
}
