package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Addr != ":8080" || c.TopN != 10 || c.DefaultTheme != "light" || c.MaxUploadMB != 32 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SUICIDESTATS_TOP_N", "5")
	t.Setenv("SUICIDESTATS_DEFAULT_THEME", "dark")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TopN != 5 || c.DefaultTheme != "dark" {
		t.Errorf("env not applied: %+v", c)
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cfg.yaml")

	in := &Global{Addr: ":9090", MaxUploadMB: 4, SessionCacheSize: 2, DatasetCacheSize: 1, TopN: 3, DefaultTheme: "dark", SampleFile: "master.csv"}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Addr != ":9090" || out.TopN != 3 || out.SampleFile != "master.csv" || out.DatasetCacheSize != 1 {
		t.Errorf("round trip lost values: %+v", out)
	}
}

func TestLoadRejectsBadTopN(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SUICIDESTATS_TOP_N", "0")
	if _, err := Load(""); err == nil {
		t.Error("expected error for top_n=0")
	}
}
