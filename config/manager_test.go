package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.ServerURL = "http://chat.example.com:9000"
	cfg.UserID = "alice"

	if err := mgr.Update(cfg); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated := mgr.Get()
	if updated.ServerURL != cfg.ServerURL {
		t.Fatalf("expected server url %s, got %s", cfg.ServerURL, updated.ServerURL)
	}
	if updated.UserID != "alice" {
		t.Fatalf("expected user id alice, got %s", updated.UserID)
	}
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.ServerURL = "not-a-url"
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error for bad server url")
	}

	cfg = mgr.Get()
	cfg.Theme = "sepia"
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error for unknown theme")
	}
}

func TestManagerWatchReloads(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		reloaded <- cfg
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := mgr.Get()
	cfg.UserID = "changed_user"

	if err := writeConfigFile(mgr.Path(), cfg); err != nil {
		t.Fatalf("writeConfigFile: %v", err)
	}

	select {
	case got := <-reloaded:
		if got.UserID != "changed_user" {
			t.Fatalf("expected reloaded user id changed_user, got %s", got.UserID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not fire on config change")
	}
}
