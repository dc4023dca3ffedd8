package cripta

import (
	"fmt"
)

type FeistelNetwork struct {
	roundFunction IRoundFunction
	roundsCount   int
}

func NewFeistelNetwork(roundFunctionImpl IRoundFunction, roundsCount int) (*FeistelNetwork, error) {
	if roundFunctionImpl == nil {
		return nil, fmt.Errorf("round function implementation cannot be nil")
	}
	if roundsCount < 0 || roundsCount > Rounds {
		return nil, fmt.Errorf("rounds count must be between 0 and %d (0 means %d), got %d", Rounds, Rounds, roundsCount)
	}

	fRoundsCount := roundsCount
	if fRoundsCount == 0 {
		fRoundsCount = Rounds
	}

	return &FeistelNetwork{
		roundFunction: roundFunctionImpl,
		roundsCount:   fRoundsCount,
	}, nil
}

func (fn *FeistelNetwork) GetRoundsCount() int {
	return fn.roundsCount
}

func splitBlock(block uint64) (uint32, uint32) {
	return uint32(block >> 32), uint32(block)
}

func combineBlocks(left uint32, right uint32) uint64 {
	return uint64(left)<<32 | uint64(right)
}

// Process runs the rounds over the halves using roundKeys in the order
// given and returns the block with the final halves swapped back (R || L).
// Decryption is the same walk over the reversed key sequence.
func (fn *FeistelNetwork) Process(block uint64, roundKeys Subkeys) uint64 {
	left, right := splitBlock(block)
	for round := 0; round < fn.roundsCount; round++ {
		left, right = right, left^fn.roundFunction.Apply(right, roundKeys[round])
	}

	return combineBlocks(right, left)
}
