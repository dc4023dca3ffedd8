package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/imdario/mergo"
	"github.com/joho/godotenv"
	"github.com/nPaBwaYT/desecb/cripta"
)

const envPrefix = "DESECB_"

// loadDotEnv loads .env from the working directory and from the config dir.
// Missing files are fine, variables already set in the environment win.
func loadDotEnv(configDir string) error {
	candidates := []string{".env", filepath.Join(configDir, ".env")}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return fmt.Errorf("failed to load %s: %w", candidate, err)
		}
	}

	return nil
}

func envBool(name string) (bool, error) {
	value := os.Getenv(envPrefix + name)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s%s: %w", envPrefix, name, err)
	}
	return parsed, nil
}

// envOverrides reads the DESECB_* variables. Unset variables stay zero so
// they don't override anything when merged.
func envOverrides() (UserConfig, error) {
	overrides := UserConfig{
		Cipher: CipherConfig{
			Key:       os.Getenv(envPrefix + "KEY"),
			KeyFormat: cripta.KeyFormat(os.Getenv(envPrefix + "KEY_FORMAT")),
		},
		Output: OutputConfig{
			Format: os.Getenv(envPrefix + "OUTPUT_FORMAT"),
		},
	}

	if workers := os.Getenv(envPrefix + "WORKERS"); workers != "" {
		parsed, err := strconv.Atoi(workers)
		if err != nil {
			return UserConfig{}, fmt.Errorf("%sWORKERS: %w", envPrefix, err)
		}
		overrides.Cipher.Workers = parsed
		overrides.Cipher.Parallel = true
	}

	parallel, err := envBool("PARALLEL")
	if err != nil {
		return UserConfig{}, err
	}
	overrides.Cipher.Parallel = overrides.Cipher.Parallel || parallel

	if overrides.Cipher.LenientPadding, err = envBool("LENIENT_PADDING"); err != nil {
		return UserConfig{}, err
	}
	if overrides.Output.NoColor, err = envBool("NO_COLOR"); err != nil {
		return UserConfig{}, err
	}

	return overrides, nil
}

func applyEnvOverrides(userConfig *UserConfig) error {
	overrides, err := envOverrides()
	if err != nil {
		return err
	}

	return mergo.Merge(userConfig, overrides, mergo.WithOverride)
}
