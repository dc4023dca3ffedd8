package cripta

type IKeySchedule interface {
	GenerateRoundKeys(masterKey [KeySize]uint8) Subkeys
}

type IRoundFunction interface {
	Apply(half uint32, roundKey uint64) uint32
}

// ISymmetricCipher transforms single 64-bit blocks with round keys the
// caller derived through RoundKeys.
type ISymmetricCipher interface {
	RoundKeys() Subkeys
	EncryptBlock(block uint64, roundKeys Subkeys) uint64
	DecryptBlock(block uint64, roundKeys Subkeys) uint64
}
