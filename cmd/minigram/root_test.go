// ABOUTME: Tests for the root command lifecycle.
// ABOUTME: Verifies logging and the metrics endpoint are released when a command fails.
package main

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestShutdownReleasesResourcesAfterFailedCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("MINIGRAM_LOG_FILE", filepath.Join(dir, "minigram.log"))
	t.Cleanup(func() {
		metricsAddr = ""
		rootCmd.SetArgs(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--metrics-addr", "127.0.0.1:0", "post", "show", "not-a-number"})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for invalid post id")
	}
	if globalLogCloser == nil || globalMetricsServer == nil {
		t.Fatal("expected log file and metrics server to be open after the failed command")
	}

	shutdown()
	if globalLogCloser != nil {
		t.Error("expected log closer released")
	}
	if globalMetricsServer != nil {
		t.Error("expected metrics server stopped")
	}

	// A second call is harmless.
	shutdown()
}
