package config

import (
	"github.com/nPaBwaYT/desecb/cripta"
)

// UserConfig holds all of the user-configurable options. The fields here are
// all in PascalCase but in your actual config.yml they'll be in camelCase.
// You can view the default config with `desecb --config`.
type UserConfig struct {
	// Cipher configures the key and how the block driver runs
	Cipher CipherConfig `yaml:"cipher,omitempty"`

	// Output determines how ciphertext is rendered on the terminal
	Output OutputConfig `yaml:"output,omitempty"`
}

// CipherConfig configures the key and the block driver
type CipherConfig struct {
	// Key is the cipher key. Keys shorter than 8 bytes are zero-extended, longer keys are truncated
	Key string `yaml:"key,omitempty"`

	// KeyFormat is one of "hex" or "text". Text keys are used as their UTF-8 bytes
	KeyFormat cripta.KeyFormat `yaml:"keyFormat,omitempty"`

	// Parallel spreads the block transforms over several goroutines
	Parallel bool `yaml:"parallel,omitempty"`

	// Workers is the number of goroutines used when Parallel is set. 0 means one per CPU
	Workers int `yaml:"workers,omitempty"`

	// LenientPadding returns the raw decrypted bytes instead of failing when the padding is malformed
	LenientPadding bool `yaml:"lenientPadding,omitempty"`
}

// OutputConfig determines how results are printed
type OutputConfig struct {
	// Format is one of "hex", "binary" or "raw"
	Format string `yaml:"format,omitempty"`

	// NoColor disables coloured terminal output
	NoColor bool `yaml:"noColor,omitempty"`
}

const (
	OutputFormatHex    = "hex"
	OutputFormatBinary = "binary"
	OutputFormatRaw    = "raw"
)

// GetDefaultConfig returns the application default configuration
// NOTE (to contributors, not users): do not default a boolean to true, because false is the boolean zero value and this will be ignored when merging environment overrides
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Cipher: CipherConfig{
			KeyFormat:      cripta.KeyFormatHex,
			Parallel:       false,
			Workers:        0,
			LenientPadding: false,
		},
		Output: OutputConfig{
			Format:  OutputFormatHex,
			NoColor: false,
		},
	}
}

// PaddingMode maps LenientPadding onto the driver's padding mode
func (c CipherConfig) PaddingMode() cripta.PaddingMode {
	if c.LenientPadding {
		return cripta.PaddingModeLenient
	}
	return cripta.PaddingModeStrict
}
