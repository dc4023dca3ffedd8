package cripta

type DESRoundFunction struct{}

// Apply is the DES f-function: E expansion, key mixing, S-box
// substitution and the P permutation.
func (rf *DESRoundFunction) Apply(half uint32, roundKey uint64) uint32 {
	mixed := PermuteBits(uint64(half), expansion[:], 32) ^ roundKey

	var substituted uint32
	for i := 0; i < len(sBoxes); i++ {
		group := uint8((mixed >> (42 - 6*uint(i))) & 0x3F)
		row := (group&0x20)>>4 | group&0x01
		col := (group >> 1) & 0x0F
		substituted = substituted<<4 | uint32(sBoxes[i][row][col])
	}

	return uint32(PermuteBits(uint64(substituted), roundPermutation[:], 32))
}
