package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nbshadow.toml")
	if err := os.WriteFile(path, []byte(`log_level = "info"`), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(path, []byte(`log_level = "debug"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.LogLevel != "debug" {
			t.Errorf("reloaded LogLevel = %q, want debug", cfg.LogLevel)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatch_InvalidFileReportsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nbshadow.toml")
	if err := os.WriteFile(path, []byte(`log_level = "info"`), 0o644); err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 1)
	w, err := Watch(path,
		func(Config) { t.Error("reload must not fire for an invalid file") },
		WithDebounce(10*time.Millisecond),
		WithErrorFunc(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(path, []byte(`log_level = "verbose"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nbshadow.toml")
	if err := os.WriteFile(path, []byte(``), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path, func(Config) {})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err == nil {
		t.Error("second Close should report the watcher closed")
	}
}
