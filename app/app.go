package app

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-errors/errors"
	"github.com/nPaBwaYT/desecb/config"
	"github.com/nPaBwaYT/desecb/cripta"
	"github.com/nPaBwaYT/desecb/log"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// DemoKey is the key the demo command encrypts with
const DemoKey = "secret"

// DefaultDemoMessage is encrypted by the demo command when no message is given
const DefaultDemoMessage = "Teste de mensagem."

// ErrNoKey is returned when encrypting or decrypting without a configured key
var ErrNoKey = errors.New("no key configured: pass --key or set cipher.key / DESECB_KEY")

// App struct
type App struct {
	Config *config.AppConfig
	Log    *logrus.Entry
	Out    io.Writer

	labelColor   *color.Color
	successColor *color.Color
	failureColor *color.Color
}

// NewApp bootstrap a new application
func NewApp(appConfig *config.AppConfig) (*App, error) {
	app := &App{
		Config:       appConfig,
		Out:          os.Stdout,
		labelColor:   color.New(color.FgCyan, color.Bold),
		successColor: color.New(color.FgGreen),
		failureColor: color.New(color.FgRed, color.Bold),
	}
	logger, err := log.NewLogger(appConfig)
	if err != nil {
		return nil, err
	}
	app.Log = logger

	switch appConfig.UserConfig.Output.Format {
	case config.OutputFormatHex, config.OutputFormatBinary, config.OutputFormatRaw:
	default:
		return app, errors.Errorf("unknown output format %q", appConfig.UserConfig.Output.Format)
	}

	if appConfig.UserConfig.Output.NoColor {
		for _, c := range []*color.Color{app.labelColor, app.successColor, app.failureColor} {
			c.DisableColor()
		}
	}

	return app, nil
}

func (app *App) newCipherContext(key []byte) (*cripta.CipherContext, error) {
	des, err := cripta.NewDESCipher(key)
	if err != nil {
		return nil, err
	}

	cipherConfig := app.Config.UserConfig.Cipher
	return cripta.NewCipherContext(
		des,
		cipherConfig.PaddingMode(),
		cipherConfig.Parallel,
		cipherConfig.Workers,
		log.ForComponent(app.Log, "cipher"),
	)
}

// CipherContext builds the block driver for the configured key
func (app *App) CipherContext() (*cripta.CipherContext, error) {
	cipherConfig := app.Config.UserConfig.Cipher
	if cipherConfig.Key == "" {
		return nil, ErrNoKey
	}

	key, err := cripta.ParseKey(cipherConfig.Key, cipherConfig.KeyFormat)
	if err != nil {
		return nil, err
	}
	if len(key) != cripta.KeySize {
		app.Log.WithField("keyLength", len(key)).Warn("key is not 8 bytes, normalising")
	}

	return app.newCipherContext(key)
}

// EncryptFile encrypts inputPath into outputPath with the configured key
func (app *App) EncryptFile(inputPath, outputPath string) error {
	ctx, err := app.CipherContext()
	if err != nil {
		return err
	}

	app.Log.WithFields(logrus.Fields{"input": inputPath, "output": outputPath}).Info("encrypting file")
	return ctx.EncryptFile(inputPath, outputPath)
}

// DecryptFile decrypts inputPath into outputPath with the configured key
func (app *App) DecryptFile(inputPath, outputPath string) error {
	ctx, err := app.CipherContext()
	if err != nil {
		return err
	}

	app.Log.WithFields(logrus.Fields{"input": inputPath, "output": outputPath}).Info("decrypting file")
	return ctx.DecryptFile(inputPath, outputPath)
}

// SaveSettings applies update to the settings stored in config.yml and writes
// them back. Settings that only came from the environment are not saved.
func (app *App) SaveSettings(update func(*config.UserConfig)) error {
	err := app.Config.WriteToUserConfig(func(userConfig *config.UserConfig) error {
		update(userConfig)
		return nil
	})
	if err != nil {
		return err
	}

	app.Log.WithField("file", app.Config.ConfigFilename()).Info("saved settings")
	fmt.Fprintf(app.Out, "%s %s\n", app.successColor.Sprint("Saved settings to"), app.Config.ConfigFilename())
	return nil
}

// Render formats data for display according to output.format
func (app *App) Render(data []byte) string {
	switch app.Config.UserConfig.Output.Format {
	case config.OutputFormatBinary:
		return cripta.BinaryString(data)
	case config.OutputFormatRaw:
		return string(data)
	default:
		return cripta.HexString(data)
	}
}

// RunDemo encrypts message under the demo key and prints the message, the
// ciphertext and the decrypted text.
func (app *App) RunDemo(message string) error {
	ctx, err := app.newCipherContext([]byte(DemoKey))
	if err != nil {
		return err
	}

	ciphertext, err := ctx.Encrypt([]byte(message))
	if err != nil {
		return err
	}

	plaintext, err := ctx.Decrypt(ciphertext)
	if err != nil {
		return err
	}

	fmt.Fprintf(app.Out, "%s %s\n", app.labelColor.Sprint("Message:"), message)
	fmt.Fprintf(app.Out, "%s %s\n", app.labelColor.Sprintf("Cipher (%s):", app.Config.UserConfig.Output.Format), app.Render(ciphertext))
	fmt.Fprintf(app.Out, "%s %s\n", app.labelColor.Sprint("Decrypted:"), string(plaintext))

	return nil
}

// RunVectors checks every known-answer vector and reports each outcome
func (app *App) RunVectors() error {
	results := make([]cripta.VectorResult, 0, len(cripta.KnownAnswerVectors))
	for _, vector := range cripta.KnownAnswerVectors {
		result, err := vector.Verify()
		if err != nil {
			return err
		}
		results = append(results, result)

		status := app.successColor.Sprint("PASS")
		if !result.Passed {
			status = app.failureColor.Sprint("FAIL")
		}
		fmt.Fprintf(app.Out, "%-12s %s  key=%s plain=%s want=%s got=%s\n",
			vector.Name, status, vector.Key, vector.Plaintext, vector.Ciphertext, result.Got)
	}

	failed := lo.CountBy(results, func(result cripta.VectorResult) bool {
		return !result.Passed
	})
	if failed > 0 {
		return errors.Errorf("%d of %d known-answer vectors failed", failed, len(results))
	}

	fmt.Fprintf(app.Out, "%s\n", app.successColor.Sprintf("all %d vectors passed", len(results)))
	return nil
}

type errorMapping struct {
	code     cripta.ErrorCode
	newError string
}

// KnownError takes an error and tells us whether it's an error that we know about where we can print a nicely formatted version of it rather than panicking with a stack trace
func (app *App) KnownError(err error) (string, bool) {
	if errors.Is(err, ErrNoKey) {
		return ErrNoKey.Error(), true
	}

	mappings := []errorMapping{
		{
			code:     cripta.NoInput,
			newError: "Nothing to process: no input was given",
		},
		{
			code:     cripta.InvalidLength,
			newError: "The input is not DES ciphertext: its length is not a multiple of 8 bytes",
		},
		{
			code:     cripta.InvalidPadding,
			newError: "Decryption produced malformed padding: wrong key or corrupted ciphertext (use --lenient to keep the raw bytes)",
		},
	}

	for _, mapping := range mappings {
		if cripta.HasErrorCode(err, mapping.code) {
			return mapping.newError, true
		}
	}

	return "", false
}
