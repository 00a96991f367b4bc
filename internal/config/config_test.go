package config

import "testing"

// The package directory has no .env file, so this exercises the env-only
// path a containerized deployment uses.
func TestLoadConfig_WithoutDotEnvFile(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d, want 2525", cfg.SMTPPort)
	}
	if cfg.ServerPort != "5000" {
		t.Errorf("ServerPort = %q, want default 5000", cfg.ServerPort)
	}
	if cfg.MongoDB != "helper_service" {
		t.Errorf("MongoDB = %q, want default helper_service", cfg.MongoDB)
	}
}

func TestLoadConfig_BadSMTPPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig accepted a non-numeric SMTP_PORT")
	}
}
