package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RAG.ChunkSize != 500 {
		t.Fatalf("unexpected default chunk size: %d", cfg.RAG.ChunkSize)
	}
	if cfg.RAG.AskTopK != 3 || cfg.RAG.SummarizeTopK != 10 {
		t.Fatalf("unexpected default topK: %d %d", cfg.RAG.AskTopK, cfg.RAG.SummarizeTopK)
	}
	if cfg.Vector.Collection != "report_chunks" {
		t.Fatalf("unexpected default collection: %q", cfg.Vector.Collection)
	}
	if cfg.RabbitMQ.ReportIndexQueue != "report.index" {
		t.Fatalf("unexpected default queue: %q", cfg.RabbitMQ.ReportIndexQueue)
	}
	if cfg.HTTPAddr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected default addr: %q", cfg.HTTPAddr())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("RAG_CHUNK_SIZE", "250")
	t.Setenv("SESSION_SECRET", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != 9090 {
		t.Fatalf("port override ignored: %d", cfg.App.Port)
	}
	if cfg.RAG.ChunkSize != 250 {
		t.Fatalf("chunk size override ignored: %d", cfg.RAG.ChunkSize)
	}
	if cfg.Auth.SessionSecret != "env-secret" {
		t.Fatalf("secret override ignored")
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dsn := cfg.MySQLDSN()
	want := "root:@tcp(127.0.0.1:3306)/aarogya?parseTime=true&loc=Local&charset=utf8mb4"
	if dsn != want {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}

func TestGetEnvAsIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvAsInt("SOME_INT", 7); got != 7 {
		t.Fatalf("expected fallback for bad int, got %d", got)
	}
}
