package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tztail/tztail-go/internal/config"
	"github.com/tztail/tztail-go/pkg/tztail"
	"github.com/tztail/tztail-go/pkg/tztail/formatfile"
)

// settings is the merged result of the config file and the flags.
type settings struct {
	Timezone    string
	Format      string
	FormatsFile string
	Color       string
	Follow      bool
	Lines       int
	Verbose     bool

	// Path is the input file or directory. Empty or "-" means stdin.
	Path string
}

// loadSettings reads the config file and overlays every flag the user set.
func loadSettings(changed func(name string) bool) (settings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return settings{}, err
	}
	s := mergeFlags(fromConfig(cfg), changed)
	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func fromConfig(cfg config.Config) settings {
	return settings{
		Timezone:    cfg.Timezone,
		Format:      cfg.Format,
		FormatsFile: cfg.FormatsFile,
		Color:       cfg.Color,
		Lines:       -1,
	}
}

func mergeFlags(s settings, changed func(name string) bool) settings {
	if changed("timezone") {
		s.Timezone = timezone
	}
	// A format flag replaces whatever format source the config named.
	if changed("format") {
		s.Format, s.FormatsFile = format, ""
	}
	if changed("formats-file") {
		s.Format, s.FormatsFile = "", formatsFile
	}
	if changed("color") {
		s.Color = colorMode
	}
	s.Follow = followFlag
	s.Lines = lines
	s.Verbose = verbose
	return s
}

func (s settings) validate() error {
	if s.Format != "" && s.FormatsFile != "" {
		return errors.New("--format and --formats-file are mutually exclusive")
	}
	if s.Lines < -1 {
		return fmt.Errorf("--lines must be -1 or greater, got %d", s.Lines)
	}
	if _, err := config.ParseColor(s.Color); err != nil {
		return fmt.Errorf("--color: %w", err)
	}
	return nil
}

func (s settings) stdin() bool {
	return s.Path == "" || s.Path == "-"
}

// newLogger returns a text logger for diagnostics. Debug output is shown
// only with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildConverter creates the converter described by s.
func buildConverter(s settings, logger *slog.Logger) (*tztail.Converter, error) {
	opts := []tztail.Option{tztail.WithLogger(logger)}
	if s.Timezone != "" {
		opts = append(opts, tztail.WithTimezone(s.Timezone))
	}

	switch {
	case s.Format != "":
		opts = append(opts, tztail.WithFormat(s.Format))
	case s.FormatsFile != "":
		reg, err := formatfile.NewRegistryFromFile(s.FormatsFile)
		if err != nil {
			// Errors from formatfile never contain the path.
			return nil, fmt.Errorf("formats file: %w", err)
		}
		opts = append(opts, tztail.WithRegistry(reg))
	}

	return tztail.New(opts...)
}
