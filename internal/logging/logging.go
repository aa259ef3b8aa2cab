package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

type Options struct {
	Development bool
	// File, if set, receives a JSON copy of every entry. The file is rotated
	// by size and old copies are pruned.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func New(out io.Writer, opts Options) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	logLevel := logrus.InfoLevel
	if opts.Development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:   opts.Development,
		FullTimestamp: true,
	})

	if opts.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 5),
			MaxBackups: orDefault(opts.MaxBackups, 7),
			MaxAge:     orDefault(opts.MaxAgeDays, 7),
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", opts.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
