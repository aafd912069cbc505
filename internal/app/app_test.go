package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hance08/payops/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewDefault()
	cfg.Database.Path = filepath.Join(dir, "payops.db")
	cfg.Ledger.Path = filepath.Join(dir, "ledger.db")
	cfg.Log.Level = "off"
	return cfg
}

func TestNewAppWiresLocalState(t *testing.T) {
	cfg := testConfig(t)

	application, cleanup, err := NewApp(cfg, os.DirFS("../.."))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer cleanup()

	if application.DBPath != cfg.Database.Path || application.LedgerPath != cfg.Ledger.Path {
		t.Errorf("paths = %s, %s", application.DBPath, application.LedgerPath)
	}
	if application.Service == nil || application.Service.Rows == nil {
		t.Fatal("services not wired")
	}
	if application.Service.Auth.LoggedIn() {
		t.Error("a fresh store should have no session")
	}
	if _, err := os.Stat(cfg.Ledger.Path); err != nil {
		t.Errorf("ledger file not created: %v", err)
	}
}

func TestNewAppRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown cache backend",
			mutate:  func(c *config.Config) { c.Cache.Backend = "memcached" },
			wantErr: "unknown cache backend",
		},
		{
			name:    "unknown gateway",
			mutate:  func(c *config.Config) { c.Defaults.Gateway = "square" },
			wantErr: "defaults.gateway",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *config.Config) { c.Log.Level = "loud" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			_, _, err := NewApp(cfg, os.DirFS("../.."))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/data/payops.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "data/payops.db"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %s", got)
	}
}
