package cripta

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// CipherContext drives a block cipher over byte strings: padding, then
// every 8-byte block transformed independently (ECB).
type CipherContext struct {
	cipher      ISymmetricCipher
	paddingMode PaddingMode
	parallel    bool
	workers     int
	log         *logrus.Entry
}

// NewCipherContext builds a driver around cipher. When parallel is set the
// blocks are spread over workers goroutines, or runtime.NumCPU() when
// workers <= 0. A nil log discards everything.
func NewCipherContext(
	cipher ISymmetricCipher,
	paddingMode PaddingMode,
	parallel bool,
	workers int,
	log *logrus.Entry,
) (*CipherContext, error) {

	if cipher == nil {
		return nil, fmt.Errorf("cipher implementation cannot be nil")
	}
	if paddingMode != PaddingModeStrict && paddingMode != PaddingModeLenient {
		return nil, fmt.Errorf("unsupported padding mode %d", paddingMode)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if log == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		log = logrus.NewEntry(discard)
	}

	return &CipherContext{
		cipher:      cipher,
		paddingMode: paddingMode,
		parallel:    parallel,
		workers:     workers,
		log:         log,
	}, nil
}

func (ctx *CipherContext) transformSequential(data []uint8, transform func(uint64) uint64) []uint8 {
	output := make([]uint8, len(data))

	for i, block := range lo.Chunk(data, BlockSize) {
		binary.BigEndian.PutUint64(output[i*BlockSize:], transform(binary.BigEndian.Uint64(block)))
	}

	return output
}

func (ctx *CipherContext) transformParallel(data []uint8, transform func(uint64) uint64) []uint8 {
	numBlocks := len(data) / BlockSize
	output := make([]uint8, len(data))

	numThreads := ctx.workers
	if numThreads > numBlocks {
		numThreads = numBlocks
	}

	var wg sync.WaitGroup
	blocksPerThread := (numBlocks + numThreads - 1) / numThreads

	for t := 0; t < numThreads; t++ {
		startBlock := t * blocksPerThread
		endBlock := startBlock + blocksPerThread
		if endBlock > numBlocks {
			endBlock = numBlocks
		}

		if startBlock >= numBlocks {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				offset := i * BlockSize
				block := binary.BigEndian.Uint64(data[offset : offset+BlockSize])
				binary.BigEndian.PutUint64(output[offset:], transform(block))
			}
		}(startBlock, endBlock)
	}

	wg.Wait()

	return output
}

func (ctx *CipherContext) transformBlocks(data []uint8, transform func(uint64) uint64) []uint8 {
	numBlocks := len(data) / BlockSize
	if ctx.parallel && ctx.workers > 1 && numBlocks > 1 {
		ctx.log.WithFields(logrus.Fields{"blocks": numBlocks, "workers": ctx.workers}).Debug("transforming blocks in parallel")
		return ctx.transformParallel(data, transform)
	}

	ctx.log.WithField("blocks", numBlocks).Debug("transforming blocks")
	return ctx.transformSequential(data, transform)
}

// Encrypt pads plaintext and encrypts it block by block. A nil plaintext is
// rejected with ErrNoInput; an empty one encrypts to a single block.
func (ctx *CipherContext) Encrypt(plaintext []uint8) ([]uint8, error) {
	if plaintext == nil {
		return nil, newCipherError(NoInput, "plaintext cannot be nil")
	}

	padded := Pad(plaintext)
	roundKeys := ctx.cipher.RoundKeys()

	return ctx.transformBlocks(padded, func(block uint64) uint64 {
		return ctx.cipher.EncryptBlock(block, roundKeys)
	}), nil
}

// Decrypt decrypts ciphertext block by block and strips the padding.
func (ctx *CipherContext) Decrypt(ciphertext []uint8) ([]uint8, error) {
	if ciphertext == nil {
		return nil, newCipherError(NoInput, "ciphertext cannot be nil")
	}
	if len(ciphertext)%BlockSize != 0 {
		return nil, newCipherError(InvalidLength, "ciphertext length %d is not a multiple of %d", len(ciphertext), BlockSize)
	}

	roundKeys := ctx.cipher.RoundKeys()
	plaintext := ctx.transformBlocks(ciphertext, func(block uint64) uint64 {
		return ctx.cipher.DecryptBlock(block, roundKeys)
	})

	unpadded, err := Unpad(plaintext)
	if err == nil {
		return unpadded, nil
	}
	if ctx.paddingMode != PaddingModeLenient {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	ctx.log.WithError(err).Warn("malformed padding, returning raw plaintext")
	return UnpadLenient(plaintext), nil
}

func (ctx *CipherContext) EncryptFile(inputPath string, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	encrypted, err := ctx.Encrypt(data)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	err = os.WriteFile(outputPath, encrypted, 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func (ctx *CipherContext) DecryptFile(inputPath string, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	decrypted, err := ctx.Decrypt(data)
	if err != nil {
		return fmt.Errorf("decryption failed: %w", err)
	}

	err = os.WriteFile(outputPath, decrypted, 0644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

func (ctx *CipherContext) GetPaddingMode() PaddingMode {
	return ctx.paddingMode
}

func (ctx *CipherContext) IsParallel() bool {
	return ctx.parallel
}
