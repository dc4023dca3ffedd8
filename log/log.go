package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nPaBwaYT/desecb/config"
	"github.com/sirupsen/logrus"
)

// DevelopmentLogFile is written to the config dir in debug mode
const DevelopmentLogFile = "development.log"

// NewLogger returns a new logger. In debug mode (--debug or DEBUG=TRUE) it
// appends JSON lines to development.log in the config dir, otherwise only
// errors are kept and they are discarded. Every entry carries the build
// info and the cipher settings of the run, but never the key.
func NewLogger(appConfig *config.AppConfig) (*logrus.Entry, error) {
	var log *logrus.Logger
	if appConfig.Debug || os.Getenv("DEBUG") == "TRUE" {
		var err error
		if log, err = newDevelopmentLogger(appConfig.ConfigDir); err != nil {
			return nil, err
		}
	} else {
		log = newProductionLogger()
	}

	log.Formatter = &logrus.JSONFormatter{}

	fields := logrus.Fields{
		"debug":     appConfig.Debug,
		"version":   appConfig.Version,
		"commit":    appConfig.Commit,
		"buildDate": appConfig.BuildDate,
	}
	if appConfig.UserConfig != nil {
		cipherConfig := appConfig.UserConfig.Cipher
		fields["keyFormat"] = cipherConfig.KeyFormat
		fields["parallel"] = cipherConfig.Parallel
		fields["workers"] = cipherConfig.Workers
		fields["lenientPadding"] = cipherConfig.LenientPadding
		fields["outputFormat"] = appConfig.UserConfig.Output.Format
	}

	return log.WithFields(fields), nil
}

// ForComponent tags entries with the part of the program that logged them
func ForComponent(entry *logrus.Entry, component string) *logrus.Entry {
	return entry.WithField("component", component)
}

func getLogLevel() logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")
	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func newDevelopmentLogger(configDir string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetLevel(getLogLevel())
	file, err := os.OpenFile(filepath.Join(configDir, DevelopmentLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("unable to log to file: %w", err)
	}
	log.SetOutput(file)
	return log, nil
}

func newProductionLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	log.SetLevel(logrus.ErrorLevel)
	return log
}
