package cripta

// PermuteBits selects bits of value according to rule. The rule is
// 1-indexed and counts from the most significant of the width input bits;
// output bit i (MSB first) is input bit (width - rule[i]) counted from the LSB.
func PermuteBits(value uint64, rule []int, width int) uint64 {
	var result uint64
	for _, pos := range rule {
		result = (result << 1) | ((value >> uint(width-pos)) & 1)
	}
	return result
}
