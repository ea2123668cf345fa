package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "CATALOG_URL", "CATALOG_TIMEOUT_SECONDS",
		"FIREBASE_PROJECT_ID", "FIREBASE_CREDS_BASE64", "FIREBASE_CREDS_FILE", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.CatalogURL != "https://fakestoreapi.com/products" {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.CatalogTimeout != 10*time.Second {
		t.Errorf("CatalogTimeout = %v", cfg.CatalogTimeout)
	}
	if cfg.FirestoreEnabled() {
		t.Errorf("firestore should be disabled without a project id")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_URL", " https://catalog.test/products ")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.CatalogURL != "https://catalog.test/products" {
		t.Errorf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.CatalogTimeout != 3*time.Second {
		t.Errorf("CatalogTimeout = %v", cfg.CatalogTimeout)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric timeout")
	}

	t.Setenv("CATALOG_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestLoadFirestoreRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "catalog-stats")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when project id is set without credentials")
	}

	t.Setenv("FIREBASE_CREDS_BASE64", base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`)))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.FirestoreEnabled() {
		t.Fatalf("firestore should be enabled")
	}
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		t.Fatalf("FirebaseCredentialsJSON: %v", err)
	}
	if source != "base64" || string(creds) != `{"type":"service_account"}` {
		t.Errorf("unexpected creds %q from %s", creds, source)
	}
}

func TestFirebaseCredentialsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte(`{"project_id":"p"}`), 0o600); err != nil {
		t.Fatalf("write creds: %v", err)
	}
	cfg := Config{FirebaseProjectID: "p", FirebaseCredsFile: path}
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		t.Fatalf("FirebaseCredentialsJSON: %v", err)
	}
	if source != "file" || string(creds) != `{"project_id":"p"}` {
		t.Errorf("unexpected creds %q from %s", creds, source)
	}

	bad := Config{FirebaseCredsBase64: "not base64!"}
	if _, _, err := bad.FirebaseCredentialsJSON(); err == nil {
		t.Errorf("expected decode error")
	}
}
