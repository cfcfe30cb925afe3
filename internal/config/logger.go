package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// LoggerConfig configures one logging destination.
type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"` // none, normal or debug
	Destination string `yaml:"destination,omitempty" mapstructure:"destination"`
	Mode        string `yaml:"mode,omitempty" mapstructure:"mode"` // append or overwrite
}

func (c LoggerConfig) enabled() bool {
	return c.Level == "normal" || c.Level == "debug"
}

func (c LoggerConfig) level() zapcore.Level {
	if c.Level == "debug" {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// LoggingConfig holds the console and file loggers.
type LoggingConfig struct {
	Console LoggerConfig `yaml:"console" mapstructure:"console"`
	File    LoggerConfig `yaml:"file" mapstructure:"file"`
}

// Prepare returns the program logger. Console output goes to stderr so
// tables written to stdout stay clean. The returned cleanup closes the log
// file, if any.
func (conf *LoggingConfig) Prepare() (*zap.Logger, func() error, error) {
	cleanup := func() error { return nil }

	consoleCore := zapcore.NewNopCore()
	if conf.Console.enabled() {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		if term.IsTerminal(int(os.Stderr.Fd())) {
			ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
			ec.TimeKey = zapcore.OmitKey
		} else {
			ec.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		consoleCore = zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), conf.Console.level())
	}

	fileCore := zapcore.NewNopCore()
	if conf.File.enabled() {
		flags := os.O_CREATE | os.O_WRONLY
		if conf.File.Mode == "overwrite" {
			flags |= os.O_TRUNC
		} else {
			flags |= os.O_APPEND
		}
		f, err := os.OpenFile(conf.File.Destination, flags, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.File.Destination, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), conf.File.level())
		cleanup = f.Close
	}

	logger := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller())
	return logger.Named("traprange"), cleanup, nil
}
