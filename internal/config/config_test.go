package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies the baked-in defaults apply when neither a
// config file nor environment variables are present.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Database.URI != "mongodb://localhost:27017" {
		t.Errorf("Database.URI = %q, want mongodb://localhost:27017", cfg.Database.URI)
	}
	if cfg.Database.Name != "gymbuddy" {
		t.Errorf("Database.Name = %q, want gymbuddy", cfg.Database.Name)
	}
	if !cfg.S3.UseSSL {
		t.Error("S3.UseSSL = false, want true")
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("JWT.Expiration = %v, want 24h", cfg.JWT.Expiration)
	}
}

// TestLoadConfig_EnvOverride verifies environment variables override
// defaults using the dot-to-underscore key mapping.
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Address != ":9999" {
		t.Errorf("Server.Address = %q, want :9999", cfg.Server.Address)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, want env-secret", cfg.JWT.Secret)
	}
}

// TestLoadConfig_File verifies a yaml config file is read, including duration
// parsing for the JWT expiration.
func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":7070"
database:
  uri: "mongodb://db:27017"
  name: "gymbuddy_test"
jwt:
  secret: "file-secret"
  expiration: "90m"
s3:
  bucket_name: "photos"
  region: "eu-central-1"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Address != ":7070" {
		t.Errorf("Server.Address = %q, want :7070", cfg.Server.Address)
	}
	if cfg.Database.Name != "gymbuddy_test" {
		t.Errorf("Database.Name = %q, want gymbuddy_test", cfg.Database.Name)
	}
	if cfg.JWT.Expiration != 90*time.Minute {
		t.Errorf("JWT.Expiration = %v, want 90m", cfg.JWT.Expiration)
	}
	if cfg.S3.BucketName != "photos" {
		t.Errorf("S3.BucketName = %q, want photos", cfg.S3.BucketName)
	}
}
