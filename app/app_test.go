package app

import (
	"bytes"
	stddes "crypto/des"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-errors/errors"
	"github.com/nPaBwaYT/desecb/config"
	"github.com/nPaBwaYT/desecb/cripta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, update func(*config.UserConfig)) (*App, *bytes.Buffer) {
	t.Helper()
	t.Setenv("DEBUG", "")

	userConfig := config.GetDefaultConfig()
	userConfig.Output.NoColor = true
	if update != nil {
		update(&userConfig)
	}

	app, err := NewApp(&config.AppConfig{
		Name:       "desecb",
		Version:    "test",
		UserConfig: &userConfig,
		ConfigDir:  t.TempDir(),
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app.Out = out
	return app, out
}

// ecbReference encrypts with crypto/des, padding the way the driver does
func ecbReference(t *testing.T, key []byte, plaintext []byte) []byte {
	t.Helper()

	block, err := stddes.NewCipher(key)
	require.NoError(t, err)

	p := 8 - len(plaintext)%8
	padded := append(append([]byte{}, plaintext...), bytes.Repeat([]byte{byte(p)}, p)...)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += 8 {
		block.Encrypt(out[i:i+8], padded[i:i+8])
	}
	return out
}

func TestNewAppRejectsUnknownOutputFormat(t *testing.T) {
	t.Setenv("DEBUG", "")
	userConfig := config.GetDefaultConfig()
	userConfig.Output.Format = "base64"

	_, err := NewApp(&config.AppConfig{UserConfig: &userConfig, ConfigDir: t.TempDir()})
	assert.EqualError(t, err, `unknown output format "base64"`)
}

func TestRunDemo(t *testing.T) {
	app, out := newTestApp(t, nil)

	require.NoError(t, app.RunDemo(DefaultDemoMessage))

	key := cripta.NormalizeKey([]byte(DemoKey))
	want := hex.EncodeToString(ecbReference(t, key[:], []byte(DefaultDemoMessage)))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Message: "+DefaultDemoMessage, lines[0])
	assert.Equal(t, "Cipher (hex): "+want, lines[1])
	assert.Equal(t, "Decrypted: "+DefaultDemoMessage, lines[2])
}

func TestRunDemoEmptyMessage(t *testing.T) {
	app, out := newTestApp(t, func(uc *config.UserConfig) {
		uc.Output.Format = config.OutputFormatBinary
	})

	require.NoError(t, app.RunDemo(""))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Cipher (binary): "))
	assert.Len(t, strings.Fields(strings.TrimPrefix(lines[1], "Cipher (binary): ")), 8, "a full padding block")
	assert.Equal(t, "Decrypted:", strings.TrimSpace(lines[2]))
}

func TestRunVectors(t *testing.T) {
	app, out := newTestApp(t, nil)

	require.NoError(t, app.RunVectors())

	output := out.String()
	assert.Equal(t, len(cripta.KnownAnswerVectors), strings.Count(output, " PASS "))
	assert.NotContains(t, output, "FAIL")
	assert.Contains(t, output, "all 7 vectors passed")
}

func TestRender(t *testing.T) {
	type scenario struct {
		format   string
		expected string
	}

	scenarios := []scenario{
		{config.OutputFormatHex, "4869"},
		{config.OutputFormatBinary, "01001000 01101001"},
		{config.OutputFormatRaw, "Hi"},
	}

	for _, s := range scenarios {
		t.Run(s.format, func(t *testing.T) {
			app, _ := newTestApp(t, func(uc *config.UserConfig) {
				uc.Output.Format = s.format
			})
			assert.Equal(t, s.expected, app.Render([]byte("Hi")))
		})
	}
}

func TestEncryptDecryptFile(t *testing.T) {
	type scenario struct {
		name   string
		update func(*config.UserConfig)
	}

	scenarios := []scenario{
		{
			name: "hex key",
			update: func(uc *config.UserConfig) {
				uc.Cipher.Key = "133457799BBCDFF1"
			},
		},
		{
			name: "text key in parallel",
			update: func(uc *config.UserConfig) {
				uc.Cipher.Key = "secret"
				uc.Cipher.KeyFormat = cripta.KeyFormatText
				uc.Cipher.Parallel = true
				uc.Cipher.Workers = 3
			},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			app, _ := newTestApp(t, s.update)

			dir := t.TempDir()
			input := filepath.Join(dir, "plain.txt")
			encrypted := filepath.Join(dir, "plain.enc")
			decrypted := filepath.Join(dir, "plain.out")

			content := bytes.Repeat([]byte("the quick brown fox "), 50)
			require.NoError(t, os.WriteFile(input, content, 0o644))

			require.NoError(t, app.EncryptFile(input, encrypted))
			require.NoError(t, app.DecryptFile(encrypted, decrypted))

			ciphertext, err := os.ReadFile(encrypted)
			require.NoError(t, err)
			assert.Len(t, ciphertext, (len(content)/8+1)*8)

			recovered, err := os.ReadFile(decrypted)
			require.NoError(t, err)
			assert.Equal(t, content, recovered)
		})
	}
}

func TestEncryptFileWithoutKey(t *testing.T) {
	app, _ := newTestApp(t, nil)

	err := app.EncryptFile("in", "out")
	assert.True(t, errors.Is(err, ErrNoKey))

	message, known := app.KnownError(err)
	assert.True(t, known)
	assert.Equal(t, ErrNoKey.Error(), message)
}

func TestCipherContextRejectsMalformedKey(t *testing.T) {
	app, _ := newTestApp(t, func(uc *config.UserConfig) {
		uc.Cipher.Key = "not hex"
	})

	_, err := app.CipherContext()
	assert.Error(t, err)
}

func TestKnownError(t *testing.T) {
	app, _ := newTestApp(t, func(uc *config.UserConfig) {
		uc.Cipher.Key = "0123456789ABCDEF"
	})

	ctx, err := app.CipherContext()
	require.NoError(t, err)

	_, err = ctx.Decrypt([]byte{1, 2, 3})
	message, known := app.KnownError(err)
	assert.True(t, known)
	assert.Contains(t, message, "multiple of 8 bytes")

	_, err = ctx.Encrypt(nil)
	message, known = app.KnownError(err)
	assert.True(t, known)
	assert.Contains(t, message, "no input")

	// all-zero plaintext decrypts to a final byte of 0x00, which is never valid padding
	zeros, err := cripta.NewDESCipher([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF})
	require.NoError(t, err)
	block := make([]byte, 8)
	zeros.Encrypt(block, make([]byte, 8))

	_, err = ctx.Decrypt(block)
	message, known = app.KnownError(err)
	assert.True(t, known)
	assert.Contains(t, message, "malformed padding")

	_, known = app.KnownError(errors.New("something else"))
	assert.False(t, known)
}

func TestSaveSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("DEBUG", "")
	t.Setenv("DESECB_KEY", "")

	appConfig, err := config.NewAppConfig("desecb", "test", "", "", "", false)
	require.NoError(t, err)
	appConfig.UserConfig.Output.NoColor = true

	app, err := NewApp(appConfig)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	app.Out = out

	err = app.SaveSettings(func(uc *config.UserConfig) {
		uc.Cipher.Key = "secret"
		uc.Cipher.KeyFormat = cripta.KeyFormatText
		uc.Output.Format = config.OutputFormatBinary
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Saved settings to "+filepath.Join(dir, "config.yml"))

	reloaded, err := config.NewAppConfig("desecb", "test", "", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "secret", reloaded.UserConfig.Cipher.Key)
	assert.Equal(t, cripta.KeyFormatText, reloaded.UserConfig.Cipher.KeyFormat)
	assert.Equal(t, config.OutputFormatBinary, reloaded.UserConfig.Output.Format)
	assert.False(t, reloaded.UserConfig.Cipher.Parallel)
}
