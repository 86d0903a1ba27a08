package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("SOUNDCORK_CONFIG")
	defer os.Setenv("SOUNDCORK_CONFIG", originalEnv)

	os.Setenv("SOUNDCORK_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_InvalidConfigContent verifies run fails when the config does not validate.
func TestRun_InvalidConfigContent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
store:
  data_dir: ""
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	originalEnv := os.Getenv("SOUNDCORK_CONFIG")
	defer os.Setenv("SOUNDCORK_CONFIG", originalEnv)
	os.Setenv("SOUNDCORK_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail when validation rejects the config")
	}
}

// TestRun_CleanShutdown verifies run starts and shuts down cleanly on cancellation.
func TestRun_CleanShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
store:
  data_dir: ` + filepath.Join(tmpDir, "data") + `
api:
  host: 127.0.0.1
  port: 18973
logging:
  level: error
  format: text
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	originalEnv := os.Getenv("SOUNDCORK_CONFIG")
	defer os.Setenv("SOUNDCORK_CONFIG", originalEnv)
	os.Setenv("SOUNDCORK_CONFIG", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v, want clean shutdown", err)
	}

	// The data tree was created on startup.
	if _, err := os.Stat(filepath.Join(tmpDir, "data")); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}
