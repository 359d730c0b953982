package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"suicidestats/internal/config"
)

const fixture = `country,year,sex,age,suicides_no,gdp_per_capita ($)
Norway,2010,male,15-24 years,10,87693
Norway,2011,female,15-24 years,4,87693
Sweden,2011,male,25-34 years,7,52076
Chile,2012,male,35-54 years,30,15000
`

// runCmd executes a fresh command tree and returns stdout and stderr.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFixtures(t *testing.T) (dir, csvPath, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	csvPath = filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	cfgPath = filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("top_n: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir, csvPath, cfgPath
}

func TestReportJSONUsesConfiguredTopN(t *testing.T) {
	_, csvPath, cfgPath := writeFixtures(t)

	out, _, err := runCmd(t, "--config", cfgPath, "report", csvPath, "--format", "json")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	var data struct {
		Rows int `json:"rows"`
		Top  []struct {
			Country string `json:"key"`
			Total   int64  `json:"suicides_no"`
		} `json:"top_countries"`
		Template string `json:"template"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if data.Rows != 4 {
		t.Errorf("rows = %d, want 4", data.Rows)
	}
	if len(data.Top) != 2 || data.Top[0].Country != "Chile" || data.Top[1].Country != "Norway" {
		t.Errorf("top countries = %+v", data.Top)
	}
	if data.Template != "plotly_white" {
		t.Errorf("template = %q", data.Template)
	}
}

func TestReportTable(t *testing.T) {
	_, csvPath, cfgPath := writeFixtures(t)

	out, _, err := runCmd(t, "--config", cfgPath, "report", csvPath, "--top", "3")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Top 3 Countries", "Sweden", "2012"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestReportMissingFile(t *testing.T) {
	dir, _, cfgPath := writeFixtures(t)
	if _, _, err := runCmd(t, "--config", cfgPath, "report", filepath.Join(dir, "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExport(t *testing.T) {
	dir, csvPath, _ := writeFixtures(t)
	outPath := filepath.Join(dir, "out.csv")

	stdout, _, err := runCmd(t, "export", csvPath, "--country", "Norway", "--from", "2011", "-o", outPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(stdout, "Wrote 1 rows") {
		t.Errorf("stdout = %q", stdout)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "country,year,sex,age,suicides_no,gdp_per_capita ($)\nNorway,2011,female,15-24 years,4,87693\n"
	if string(b) != want {
		t.Errorf("export =\n%q\nwant\n%q", b, want)
	}
}

func TestExportEmptyWarns(t *testing.T) {
	_, csvPath, _ := writeFixtures(t)

	stdout, stderr, err := runCmd(t, "export", csvPath, "--country", "Atlantis", "-o", "-")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(stderr, "No data available for selected filters.") {
		t.Errorf("stderr = %q", stderr)
	}
	if stdout != "country,year,sex,age,suicides_no,gdp_per_capita ($)\n" {
		t.Errorf("stdout = %q, want header only", stdout)
	}
}

func TestExportInvertedRange(t *testing.T) {
	_, csvPath, _ := writeFixtures(t)
	if _, _, err := runCmd(t, "export", csvPath, "--from", "2012", "--to", "2010", "-o", "-"); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestConfigSetAndShow(t *testing.T) {
	_, _, cfgPath := writeFixtures(t)

	if _, _, err := runCmd(t, "--config", cfgPath, "config", "set", "default_theme", "Dark"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	c, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultTheme != "dark" || c.TopN != 2 {
		t.Errorf("saved config = %+v", c)
	}

	out, _, err := runCmd(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "default_theme: dark") || !strings.Contains(out, "top_n: 2") {
		t.Errorf("show output:\n%s", out)
	}

	if _, _, err := runCmd(t, "--config", cfgPath, "config", "set", "top_n", "0"); err == nil {
		t.Error("expected error for non-positive top_n")
	}
	if _, _, err := runCmd(t, "--config", cfgPath, "config", "set", "colour", "red"); err == nil {
		t.Error("expected error for unknown key")
	}
}
