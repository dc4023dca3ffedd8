package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/yaml"
	"github.com/nPaBwaYT/desecb/app"
	"github.com/nPaBwaYT/desecb/config"
	"github.com/nPaBwaYT/desecb/cripta"
)

/*
Encrypt a file with a hex key
desecb -k 133457799BBCDFF1 encrypt input.txt output.enc

Decrypt it again, spreading the blocks over 4 goroutines
desecb -k 133457799BBCDFF1 --parallel --workers 4 decrypt output.enc input.txt

Use a text key (shorter keys are zero-extended, longer ones truncated)
desecb --key-format text -k secret encrypt input.txt output.enc

Remember a key and output format in config.yml
desecb --key-format text -k secret --format binary --save

Run the demo and the known-answer vectors
desecb demo -m "Teste de mensagem."
desecb vectors
*/

var (
	commit      string
	version     = "unversioned"
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
	keyFlag       string
	keyFormatFlag string
	formatFlag    string
	parallelFlag  = false
	workersFlag   = 0
	lenientFlag   = false
	noColorFlag   = false
	saveFlag      = false

	inputPath   string
	outputPath  string
	demoMessage = app.DefaultDemoMessage
)

func main() {
	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("desecb")
	flaggy.SetDescription("DES block cipher over arbitrary byte strings (ECB, byte-value padding)")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/nPaBwaYT/desecb"

	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "Write a debug log to development.log in the config directory")
	flaggy.String(&keyFlag, "k", "key", "Cipher key, overrides cipher.key")
	flaggy.String(&keyFormatFlag, "", "key-format", "Key format: hex or text")
	flaggy.String(&formatFlag, "", "format", "Output format for the demo: hex, binary or raw")
	flaggy.Bool(&parallelFlag, "", "parallel", "Transform blocks on several goroutines")
	flaggy.Int(&workersFlag, "", "workers", "Number of goroutines for --parallel (0 = one per CPU)")
	flaggy.Bool(&lenientFlag, "", "lenient", "Return raw decrypted bytes when the padding is malformed")
	flaggy.Bool(&noColorFlag, "", "no-color", "Disable coloured output")
	flaggy.Bool(&saveFlag, "", "save", "Save the settings given as flags to config.yml")

	encryptCmd := flaggy.NewSubcommand("encrypt")
	encryptCmd.Description = "Encrypt a file"
	encryptCmd.AddPositionalValue(&inputPath, "input", 1, true, "File to encrypt")
	encryptCmd.AddPositionalValue(&outputPath, "output", 2, true, "Where to write the ciphertext")

	decryptCmd := flaggy.NewSubcommand("decrypt")
	decryptCmd.Description = "Decrypt a file"
	decryptCmd.AddPositionalValue(&inputPath, "input", 1, true, "File to decrypt")
	decryptCmd.AddPositionalValue(&outputPath, "output", 2, true, "Where to write the plaintext")

	demoCmd := flaggy.NewSubcommand("demo")
	demoCmd.Description = "Encrypt and decrypt a message with the demo key"
	demoCmd.String(&demoMessage, "m", "message", "Message to encrypt")

	vectorsCmd := flaggy.NewSubcommand("vectors")
	vectorsCmd.Description = "Check the DES known-answer vectors"

	flaggy.AttachSubcommand(encryptCmd, 1)
	flaggy.AttachSubcommand(decryptCmd, 1)
	flaggy.AttachSubcommand(demoCmd, 1)
	flaggy.AttachSubcommand(vectorsCmd, 1)

	flaggy.SetVersion(info)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		err := encoder.Encode(config.GetDefaultConfig())
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("desecb", version, commit, date, buildSource, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}
	applyFlags(appConfig.UserConfig)

	app, err := app.NewApp(appConfig)
	if err == nil && saveFlag {
		err = app.SaveSettings(applyFlags)
	}
	if err == nil {
		switch {
		case encryptCmd.Used:
			err = app.EncryptFile(inputPath, outputPath)
		case decryptCmd.Used:
			err = app.DecryptFile(inputPath, outputPath)
		case demoCmd.Used:
			err = app.RunDemo(demoMessage)
		case vectorsCmd.Used:
			err = app.RunVectors()
		case saveFlag:
		default:
			flaggy.ShowHelpAndExit("a subcommand is required")
		}
	}

	if err != nil {
		if app == nil {
			log.Fatal(err.Error())
		}
		if errMessage, known := app.KnownError(err); known {
			log.Fatal(errMessage)
		}

		newErr := errors.Wrap(err, 0)
		stackTrace := newErr.ErrorStack()
		app.Log.Error(stackTrace)

		log.Fatal(fmt.Sprintf("an error occurred\n\n%s", stackTrace))
	}
}

func applyFlags(userConfig *config.UserConfig) {
	if keyFlag != "" {
		userConfig.Cipher.Key = keyFlag
	}
	if keyFormatFlag != "" {
		userConfig.Cipher.KeyFormat = cripta.KeyFormat(keyFormatFlag)
	}
	if formatFlag != "" {
		userConfig.Output.Format = formatFlag
	}
	if parallelFlag {
		userConfig.Cipher.Parallel = true
	}
	if workersFlag > 0 {
		userConfig.Cipher.Workers = workersFlag
	}
	if lenientFlag {
		userConfig.Cipher.LenientPadding = true
	}
	if noColorFlag {
		userConfig.Output.NoColor = true
	}
}
