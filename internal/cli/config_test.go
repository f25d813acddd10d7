package cli

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml") // does not exist

	c, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.ListenAddr != ":8090" {
		t.Fatalf("ListenAddr = %q, want :8090", c.ListenAddr)
	}
	if c.AuthzMode != "mock" {
		t.Fatalf("AuthzMode = %q, want mock", c.AuthzMode)
	}
	if c.FGAAPIURL != "http://localhost:8080" {
		t.Fatalf("FGAAPIURL = %q", c.FGAAPIURL)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{
		ListenAddr: ":9000",
		DataDir:    "/tmp/filehub",
		AuthzMode:  "fga",
		FGAAPIURL:  "https://fga.example.com",
		FGAStoreID: "01HXYZ",
		FGAModelID: "01HABC",
	}
	if err := saveConfig(path, want); err != nil {
		t.Fatalf("saveConfig: %v", err)
	}

	got, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got.ListenAddr != want.ListenAddr || got.AuthzMode != want.AuthzMode {
		t.Fatalf("round trip = %+v", got)
	}
	if got.FGAStoreID != want.FGAStoreID || got.FGAModelID != want.FGAModelID {
		t.Fatalf("fga ids = %q/%q", got.FGAStoreID, got.FGAModelID)
	}
}

func TestSaveConfigOmitsUnsetCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := saveConfig(path, &Config{ListenAddr: ":8090", AuthzMode: "mock"}); err != nil {
		t.Fatalf("saveConfig: %v", err)
	}
	got, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got.FGAAPIToken != "" || got.FGAClientSecret != "" {
		t.Fatalf("credentials materialized from nothing: %+v", got)
	}
}
