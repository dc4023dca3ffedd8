package cripta

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
)

// DESCipher is bound to one normalised key for its lifetime. The round keys
// are derived once, when the cipher is built.
type DESCipher struct {
	feistel     *FeistelNetwork
	keySchedule IKeySchedule
	key         [KeySize]uint8
	roundKeys   Subkeys
	reverseKeys Subkeys
}

var _ cipher.Block = (*DESCipher)(nil)

func NewDESCipher(key []uint8) (*DESCipher, error) {
	feistel, err := NewFeistelNetwork(&DESRoundFunction{}, Rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create feistel network: %w", err)
	}

	des := &DESCipher{
		feistel:     feistel,
		keySchedule: &DESKeySchedule{},
		key:         NormalizeKey(key),
	}
	des.roundKeys = des.keySchedule.GenerateRoundKeys(des.key)
	des.reverseKeys = des.roundKeys.Reverse()

	return des, nil
}

func (des *DESCipher) Key() [KeySize]uint8 {
	return des.key
}

// RoundKeys returns a copy of the encryption schedule K1..K16.
func (des *DESCipher) RoundKeys() Subkeys {
	return des.roundKeys
}

func (des *DESCipher) EncryptBlock(block uint64, roundKeys Subkeys) uint64 {
	return des.transform(block, roundKeys)
}

func (des *DESCipher) DecryptBlock(block uint64, roundKeys Subkeys) uint64 {
	return des.transform(block, roundKeys.Reverse())
}

func (des *DESCipher) transform(block uint64, roundKeys Subkeys) uint64 {
	permuted := PermuteBits(block, initialPermutation[:], 64)
	feistelOutput := des.feistel.Process(permuted, roundKeys)
	return PermuteBits(feistelOutput, finalPermutation[:], 64)
}

func (des *DESCipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block of src into dst, as crypto/cipher.Block.
// It reuses the schedule computed by NewDESCipher.
func (des *DESCipher) Encrypt(dst, src []byte) {
	checkFullBlocks(dst, src)
	binary.BigEndian.PutUint64(dst, des.transform(binary.BigEndian.Uint64(src), des.roundKeys))
}

// Decrypt decrypts the first block of src into dst, as crypto/cipher.Block.
func (des *DESCipher) Decrypt(dst, src []byte) {
	checkFullBlocks(dst, src)
	binary.BigEndian.PutUint64(dst, des.transform(binary.BigEndian.Uint64(src), des.reverseKeys))
}

func checkFullBlocks(dst, src []byte) {
	if len(src) < BlockSize {
		panic("cripta: input not full block")
	}
	if len(dst) < BlockSize {
		panic("cripta: output not full block")
	}
}
