package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		DBPath:         "./data/inventory.db",
		Port:           "8080",
		WatchesDir:     "./watches",
		ProductsFile:   "./data/scraped_products.json",
		RetentionHours: 24,
		MarketplaceURL: "https://www.vinted.co.uk",
		Timeout:        30,
		UserAgent:      "Test Agent",
		Timezone:       "UTC",
		Debug:          true,
		Version:        "test-version",
	}

	// Test direct field access
	if cfg.DBPath != "./data/inventory.db" {
		t.Errorf("Expected DB path './data/inventory.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WatchesDir != "./watches" {
		t.Errorf("Expected watches dir './watches', got '%s'", cfg.WatchesDir)
	}
	if cfg.ProductsFile != "./data/scraped_products.json" {
		t.Errorf("Expected products file './data/scraped_products.json', got '%s'", cfg.ProductsFile)
	}
	if cfg.RetentionHours != 24 {
		t.Errorf("Expected retention 24 hours, got %d", cfg.RetentionHours)
	}
	if cfg.MarketplaceURL != "https://www.vinted.co.uk" {
		t.Errorf("Expected marketplace URL 'https://www.vinted.co.uk', got '%s'", cfg.MarketplaceURL)
	}
	if cfg.Timeout != 30 {
		t.Errorf("Expected timeout 30, got %d", cfg.Timeout)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}

func TestRetentionWindow(t *testing.T) {
	cfg := &Cfg{RetentionHours: 24}
	if cfg.RetentionWindow() != 24*time.Hour {
		t.Errorf("Expected 24h retention window, got %s", cfg.RetentionWindow())
	}

	cfg.RetentionHours = 48
	if cfg.RetentionWindow() != 48*time.Hour {
		t.Errorf("Expected 48h retention window, got %s", cfg.RetentionWindow())
	}
}
