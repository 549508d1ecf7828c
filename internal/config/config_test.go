package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Server.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.Ledger.MaxRetries != 5 || cfg.Ledger.RetryBaseDelay != 20*time.Millisecond || cfg.Ledger.TxTimeout != 5*time.Second {
		t.Fatalf("unexpected ledger defaults %+v", cfg.Ledger)
	}
	if cfg.Task.AuditInterval != 0 {
		t.Fatalf("audit should be disabled by default, got %d", cfg.Task.AuditInterval)
	}
	if cfg.Log.GetLevel() != "info" || cfg.Log.GetOutput() != "stdout" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8080"
database:
  driver: postgres
  host: db.internal
ledger:
  max_retries: 2
  retry_base_delay: 50ms
task:
  audit_interval: 300
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FARMER_DATABASE_HOST", "db.override")
	t.Setenv("FARMER_TASK_AUDIT_WORKERS", "8")

	cfg := Load(path)

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Host != "db.override" {
		t.Fatalf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Ledger.MaxRetries != 2 || cfg.Ledger.RetryBaseDelay != 50*time.Millisecond {
		t.Fatalf("unexpected ledger config %+v", cfg.Ledger)
	}
	if cfg.Task.AuditInterval != 300 || cfg.Task.AuditWorkers != 8 {
		t.Fatalf("unexpected task config %+v", cfg.Task)
	}
}
