package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeWatchFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigCache_Run_LoadsAllWatches(t *testing.T) {
	dir := t.TempDir()
	writeWatchFile(t, dir, "hoodies.yml", `
keywords: "nike hoodie"
max_price: 25
settings:
  enabled: true
  interval: 60
`)
	writeWatchFile(t, dir, "sneakers.yml", `
keywords: "air max 90"
settings:
  enabled: false
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if cache.GetConfigCount() != 2 {
		t.Fatalf("Expected 2 configs, got %d", cache.GetConfigCount())
	}

	config, err := cache.GetConfig("hoodies")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if config.Keywords != "nike hoodie" {
		t.Errorf("Expected keywords 'nike hoodie', got '%s'", config.Keywords)
	}
	if config.MaxPrice == nil || *config.MaxPrice != 25 {
		t.Errorf("Expected max price 25, got %v", config.MaxPrice)
	}
	if config.Settings.Interval != 60 {
		t.Errorf("Expected interval 60, got %d", config.Settings.Interval)
	}

	enabled := cache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Errorf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["hoodies"]; !ok {
		t.Error("Expected 'hoodies' among enabled configs")
	}
}

func TestConfigCache_DefaultInterval(t *testing.T) {
	dir := t.TempDir()
	writeWatchFile(t, dir, "no-interval.yml", `
keywords: "vintage levis"
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	config, err := cache.GetConfig("no-interval")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if config.Settings.Interval != 30 {
		t.Errorf("Expected default interval 30, got %d", config.Settings.Interval)
	}
}

func TestConfigCache_MissingKeywordsRejected(t *testing.T) {
	dir := t.TempDir()
	writeWatchFile(t, dir, "broken.yml", `
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Config without keywords should be rejected")
	}
}

func TestConfigCache_NegativeMaxPriceRejected(t *testing.T) {
	dir := t.TempDir()
	writeWatchFile(t, dir, "negative.yml", `
keywords: "anything"
max_price: -5
settings:
  enabled: true
`)

	cache := NewConfigCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Config with negative max price should be rejected")
	}
}

func TestConfigCache_MissingDirectoryIsEmpty(t *testing.T) {
	cache := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cache.Run(); err != nil {
		t.Fatalf("Missing watches directory should not be an error, got: %v", err)
	}
	if cache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", cache.GetConfigCount())
	}
}

func TestConfigCache_GetConfigUnknownName(t *testing.T) {
	cache := NewConfigCache(t.TempDir())
	if _, err := cache.GetConfig("nope"); err == nil {
		t.Error("Unknown watch name should return an error")
	}
}
