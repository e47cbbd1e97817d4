// Package log provides structured, file-backed logging for the player.
// When logging is disabled every call is a no-op, so callers never guard.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fastvideo-cli/fastvideo/filesystem"
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var enabled bool

// Setup opens today's log file and configures formatting and level from the global configuration.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// Fields is an alias so callers do not need to import logrus directly.
type Fields = logrus.Fields

// Entry is a gated logrus entry carrying structured fields.
type Entry struct {
	fields Fields
}

// With returns an entry that attaches fields to every message it emits.
func With(fields Fields) Entry {
	return Entry{fields: fields}
}

func (e Entry) entry() *logrus.Entry {
	return logrus.WithFields(e.fields)
}

func (e Entry) Debugf(format string, args ...any) {
	if enabled {
		e.entry().Debugf(format, args...)
	}
}

func (e Entry) Infof(format string, args ...any) {
	if enabled {
		e.entry().Infof(format, args...)
	}
}

func (e Entry) Warnf(format string, args ...any) {
	if enabled {
		e.entry().Warnf(format, args...)
	}
}

func (e Entry) Errorf(format string, args ...any) {
	if enabled {
		e.entry().Errorf(format, args...)
	}
}

// Severity-specific emissions on the standard logger.

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
