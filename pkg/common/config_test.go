package common

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecmtools.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
verbose: true
progress: true
logs:
  file: logs/ecmtools.log
  maxSizeMB: 10
  compress: true
`)

	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	want := Config{
		Verbose:  true,
		Progress: true,
		Logs: LogConfig{
			File:       filepath.Join(filepath.Dir(path), "logs", "ecmtools.log"),
			MaxSizeMB:  10,
			MaxAgeDays: 7,
			MaxBackups: 5,
			Compress:   true,
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""), true)
	if err != nil {
		t.Fatalf("LoadConfig() failed on empty file: %v", err)
	}
	want := Config{Logs: LogConfig{MaxSizeMB: 25, MaxAgeDays: 7, MaxBackups: 5}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := LoadConfig(path, true); err == nil {
		t.Error("LoadConfig() should fail for a missing explicit config")
	}

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig() should ignore a missing default config: %v", err)
	}
	if cfg.Verbose || cfg.Force || cfg.Logs.File != "" {
		t.Errorf("LoadConfig() on missing default = %+v, want zero flags", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"unknown field", "verbos: true\n"},
		{"wrong type", "force: sometimes\n"},
		{"not yaml", "verbose: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content), true)
			if err == nil {
				t.Fatal("LoadConfig() should fail")
			}
			if !strings.Contains(err.Error(), ErrFailedToLoadConfig) {
				t.Errorf("error %q should contain %q", err.Error(), ErrFailedToLoadConfig)
			}
		})
	}
}

func TestSetupLogging_File(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	logFile := filepath.Join(t.TempDir(), "nested", "ecmtools.log")
	cfg := Config{Logs: LogConfig{File: logFile, MaxSizeMB: 1, MaxAgeDays: 1, MaxBackups: 1}}

	closer, err := SetupLogging(cfg)
	if err != nil {
		t.Fatalf("SetupLogging() failed: %v", err)
	}
	LogInfo("written to the rotating file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !bytes.Contains(data, []byte("[INFO] written to the rotating file")) {
		t.Errorf("log file should contain the message, got %q", data)
	}
}

func TestSetupLogging_NoFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	closer, err := SetupLogging(Config{})
	if err != nil {
		t.Fatalf("SetupLogging() failed: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
