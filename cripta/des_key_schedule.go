package cripta

import (
	"encoding/binary"

	"github.com/samber/lo"
)

const (
	BlockSize = 8
	KeySize   = 8
	Rounds    = 16

	mask28 = uint32(0x0FFFFFFF)
)

// Subkeys holds the 48-bit round keys in round order 1..16.
type Subkeys [Rounds]uint64

// Reverse returns the round keys in decryption order.
func (s Subkeys) Reverse() Subkeys {
	lo.Reverse(s[:])
	return s
}

type DESKeySchedule struct{}

func (dks *DESKeySchedule) leftShift28(value uint32, shifts uint) uint32 {
	value &= mask28
	return ((value << shifts) | (value >> (28 - shifts))) & mask28
}

// GenerateRoundKeys runs PC1, the cumulative C/D rotations and PC2.
func (dks *DESKeySchedule) GenerateRoundKeys(masterKey [KeySize]uint8) Subkeys {
	permutedKey := PermuteBits(binary.BigEndian.Uint64(masterKey[:]), permutedChoice1[:], 64)

	C := uint32(permutedKey>>28) & mask28
	D := uint32(permutedKey) & mask28

	var roundKeys Subkeys
	for round := 0; round < Rounds; round++ {
		C = dks.leftShift28(C, shiftSchedule[round])
		D = dks.leftShift28(D, shiftSchedule[round])

		CD := uint64(C)<<28 | uint64(D)
		roundKeys[round] = PermuteBits(CD, permutedChoice2[:], 56)
	}

	return roundKeys
}
