package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "READ_TIMEOUT", "DXF_DB_PATH", "DXF_UNITS", "DXF_VERSION", "DXF_BODY_LIMIT_MB"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "3000" || cfg.Environment != "development" || cfg.ReadTimeout != 10 {
		t.Errorf("server defaults = %+v", cfg)
	}
	if cfg.DBPath != "data/db/drawings.db" || cfg.Units != "millimeters" || cfg.Version != "r2000" {
		t.Errorf("dxf defaults = %+v", cfg)
	}
	if cfg.BodyLimit != 8*1024*1024 {
		t.Errorf("BodyLimit = %d", cfg.BodyLimit)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_TIMEOUT", "30")
	t.Setenv("WRITE_TIMEOUT", "not-a-number")
	t.Setenv("DXF_VERSION", "r12")
	t.Setenv("DXF_EXPORT_DIR", "/tmp/dxf")

	cfg := Load()
	if cfg.Port != "8080" || cfg.ReadTimeout != 30 {
		t.Errorf("Port/ReadTimeout = %s/%d", cfg.Port, cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 10 {
		t.Errorf("WriteTimeout = %d, want fallback 10", cfg.WriteTimeout)
	}
	if cfg.Version != "r12" || cfg.ExportDir != "/tmp/dxf" {
		t.Errorf("dxf settings = %+v", cfg)
	}
}
