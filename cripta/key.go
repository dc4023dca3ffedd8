package cripta

import (
	"encoding/hex"
	"fmt"
	"strings"
)

type KeyFormat string

const (
	KeyFormatHex  KeyFormat = "hex"
	KeyFormatText KeyFormat = "text"
)

// NormalizeKey zero-extends short keys and truncates long ones to 8 bytes.
// Parity bits are not checked.
func NormalizeKey(key []uint8) [KeySize]uint8 {
	var normalized [KeySize]uint8
	copy(normalized[:], key)
	return normalized
}

// ParseKey decodes a user supplied key. Hex keys may contain spaces.
func ParseKey(value string, format KeyFormat) ([]uint8, error) {
	switch format {
	case KeyFormatHex, "":
		data, err := hex.DecodeString(strings.ReplaceAll(value, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex key: %w", err)
		}
		return data, nil
	case KeyFormatText:
		return []uint8(value), nil
	default:
		return nil, fmt.Errorf("unknown key format: %s", format)
	}
}
