package common

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is looked up in the user's home directory when no
// --config flag is given.
const DefaultConfigName = ".ecmtools.yaml"

// LogConfig controls the optional rotating log file.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

// Config holds defaults for the command line flags.
type Config struct {
	Verbose  bool      `yaml:"verbose"`
	Progress bool      `yaml:"progress"`
	Force    bool      `yaml:"force"`
	Logs     LogConfig `yaml:"logs"`
}

// DefaultConfigPath returns $HOME/.ecmtools.yaml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigName)
}

// LoadConfig reads a YAML configuration file. A missing file at the default
// location is not an error; a missing file that was asked for explicitly is.
func LoadConfig(path string, explicit bool) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			LogDebug(WarnConfigNotFound, path)
			return cfg.withDefaults(filepath.Dir(path)), nil
		}
		return cfg, FormatError(ErrFailedToLoadConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s %s: %w", ErrFailedToLoadConfig, path, err)
	}
	LogDebug(InfoConfigLoaded, path)
	return cfg.withDefaults(filepath.Dir(path)), nil
}

func (cfg Config) withDefaults(baseDir string) Config {
	if p := strings.TrimSpace(cfg.Logs.File); p != "" && !filepath.IsAbs(p) {
		cfg.Logs.File = filepath.Clean(filepath.Join(baseDir, p))
	}
	if cfg.Logs.MaxSizeMB <= 0 {
		cfg.Logs.MaxSizeMB = 25
	}
	if cfg.Logs.MaxAgeDays <= 0 {
		cfg.Logs.MaxAgeDays = 7
	}
	if cfg.Logs.MaxBackups <= 0 {
		cfg.Logs.MaxBackups = 5
	}
	return cfg
}

// SetupLogging sends log output to stderr and, when a log file is configured,
// to a size-rotated copy of it. The returned closer releases the log file.
func SetupLogging(cfg Config) (io.Closer, error) {
	if cfg.Logs.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Logs.File), 0o755); err != nil {
		return nil, FormatError(ErrFailedToOpenLogFile, err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.Logs.File,
		MaxSize:    cfg.Logs.MaxSizeMB,
		MaxAge:     cfg.Logs.MaxAgeDays,
		MaxBackups: cfg.Logs.MaxBackups,
		Compress:   cfg.Logs.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	LogDebug(DebugLogFile, cfg.Logs.File)
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
