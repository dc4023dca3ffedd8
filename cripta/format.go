package cripta

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexString renders data as lowercase hex, two digits per byte.
func HexString(data []uint8) string {
	return hex.EncodeToString(data)
}

// BinaryString renders every byte as eight bits, bytes separated by a space.
func BinaryString(data []uint8) string {
	var sb strings.Builder
	for i, byteVal := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08b", byteVal)
	}
	return sb.String()
}
