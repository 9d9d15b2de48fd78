package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/dooform/pdf-template-editor/internal/config"
)

const (
	testVersion = "1.2.3"
	devVersion  = "dev"
)

func TestPrintVersion(t *testing.T) {
	// Save original stdout
	originalStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	// Redirect stdout to the pipe
	os.Stdout = w

	// Set version variables for testing
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = testVersion
	buildTime = "2023-12-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		// Restore original values
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
		os.Stdout = originalStdout
	}()

	// Call printVersion in a goroutine
	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	// Read the output
	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()

	// Verify output contains expected information
	expectedStrings := []string{
		"PDF Template Editor",
		"Version: " + testVersion,
		"Build Time: 2023-12-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestPrintVersionWithDefaults(t *testing.T) {
	// Save original stdout
	originalStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	// Redirect stdout to the pipe
	os.Stdout = w

	// Use default version variables
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = devVersion
	buildTime = "unknown"
	gitCommit = "unknown"

	defer func() {
		// Restore original values
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
		os.Stdout = originalStdout
	}()

	// Call printVersion in a goroutine
	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	// Read the output
	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()

	// Verify output contains default values
	expectedStrings := []string{
		"PDF Template Editor",
		"Version: dev",
		"Build Time: unknown",
		"Git Commit: unknown",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestSetupLogging_StdioMode(t *testing.T) {
	// Save original log settings
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	tests := []struct {
		name     string
		wantType string
		config   *config.Config
		isDebug  bool
	}{
		{
			name: "stdio mode - debug enabled",
			config: &config.Config{
				Mode:     "stdio",
				LogLevel: "debug",
			},
			isDebug:  true,
			wantType: "stderr",
		},
		{
			name: "stdio mode - debug disabled",
			config: &config.Config{
				Mode:     "stdio",
				LogLevel: "info",
			},
			isDebug:  false,
			wantType: "devnull",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogging(tt.config)

			// Check that output was set appropriately
			currentOutput := log.Writer()

			switch tt.wantType {
			case "stderr":
				if currentOutput != os.Stderr {
					t.Errorf("setupLogging() for stdio debug mode should set output to stderr")
				}
			case "devnull":
				// For non-debug stdio mode, output should be set to devnull
				// We can't easily test this directly, but we can verify it's not stderr
				if currentOutput == os.Stderr {
					t.Errorf("setupLogging() for stdio non-debug mode should not use stderr")
				}
			}
		})
	}
}

func TestSetupLogging_ServerMode(t *testing.T) {
	// Save original log settings
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	cfg := &config.Config{
		Mode:     "server",
		LogLevel: "info",
	}

	setupLogging(cfg)

	// In server mode, flags should include LstdFlags and Lshortfile
	currentFlags := log.Flags()
	expectedFlags := log.LstdFlags | log.Lshortfile

	if currentFlags != expectedFlags {
		t.Errorf("setupLogging() for server mode: flags = %v, want %v", currentFlags, expectedFlags)
	}
}

func TestNewStateStore(t *testing.T) {
	t.Run("usable directory", func(t *testing.T) {
		cfg := &config.Config{
			Mode:           "stdio",
			LogLevel:       "info",
			StateDirectory: t.TempDir(),
		}

		store := newStateStore(cfg)
		if store == nil {
			t.Fatal("newStateStore() should return a store for a usable directory")
		}
	})

	t.Run("nested directory is created", func(t *testing.T) {
		cfg := &config.Config{
			Mode:           "stdio",
			LogLevel:       "info",
			StateDirectory: t.TempDir() + "/nested/state",
		}

		store := newStateStore(cfg)
		if store == nil {
			t.Fatal("newStateStore() should create nested state directories")
		}

		if _, err := os.Stat(cfg.StateDirectory); err != nil {
			t.Errorf("state directory was not created: %v", err)
		}
	})
}

func TestVersionFlagDetection(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		hasVersion bool
	}{
		{
			name:       "no version flag",
			args:       []string{"program"},
			hasVersion: false,
		},
		{
			name:       "-version flag",
			args:       []string{"program", "-version"},
			hasVersion: true,
		},
		{
			name:       "--version flag",
			args:       []string{"program", "--version"},
			hasVersion: true,
		},
		{
			name:       "-v flag",
			args:       []string{"program", "-v"},
			hasVersion: true,
		},
		{
			name:       "version flag with other args",
			args:       []string{"program", "-mode=server", "-version", "-port=8080"},
			hasVersion: true,
		},
		{
			name:       "similar but not version flag",
			args:       []string{"program", "-verbose", "-versions"},
			hasVersion: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, arg := range tt.args[1:] { // Skip program name
				if arg == "-version" || arg == "--version" || arg == "-v" {
					found = true
					break
				}
			}

			if found != tt.hasVersion {
				t.Errorf("Version flag detection for %v: got %v, want %v", tt.args, found, tt.hasVersion)
			}
		})
	}
}

func TestMainFunctionLogic(t *testing.T) {
	// Test the core logic that would be in main function
	// We can't test main() directly due to os.Exit calls, but we can test the logic

	t.Run("version setting logic", func(t *testing.T) {
		cfg := config.DefaultConfig()

		// Simulate version being set during build
		buildVersion := "1.2.3"

		if buildVersion != devVersion {
			cfg.Version = buildVersion
		}

		if cfg.Version != testVersion {
			t.Errorf("Version setting logic: got %s, want %s", cfg.Version, testVersion)
		}
	})

	t.Run("version not set logic", func(t *testing.T) {
		cfg := config.DefaultConfig()
		originalVersion := cfg.Version

		// Simulate version not being set during build (remains "dev")
		buildVersion := devVersion

		if buildVersion != devVersion {
			cfg.Version = buildVersion
		}

		if cfg.Version != originalVersion {
			t.Errorf("Version not set logic: version should remain unchanged, got %s, want %s",
				cfg.Version, originalVersion)
		}
	})
}
