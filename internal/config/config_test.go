// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
)

// isolate points every config lookup at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		"GREENTHUMB_DATA_FILE",
		"GREENTHUMB_LOG_DIR",
		"GREENTHUMB_LOG_LEVEL",
		"GREENTHUMB_LOG_FORMAT",
		"GREENTHUMB_TODAY",
	} {
		t.Setenv(name, "")
	}
	return home
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DataFile != DefaultDataFile {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, DefaultDataFile)
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, DefaultLogDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.Today != "" {
		t.Errorf("Today: got %q, want empty", cfg.Today)
	}
}

func TestLoadDefaultsResolveAgainstWorkDir(t *testing.T) {
	isolate(t)
	wd := t.TempDir()

	cfg, err := LoadFrom(wd, flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	want := filepath.Join(wd, DefaultDataFile)
	if cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
	if got := cfg.Source("data_file"); got != SourceDefault {
		t.Errorf("Source(data_file): got %q, want %q", got, SourceDefault)
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files: got %v, want none", cfg.Files)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GREENTHUMB_DATA_FILE", "env-plants.json")
	t.Setenv("GREENTHUMB_LOG_LEVEL", "debug")
	t.Setenv("GREENTHUMB_TODAY", "2024-01-05")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.DataFile != "env-plants.json" {
		t.Errorf("DataFile: got %q, want env-plants.json", cfg.DataFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.Source("today") != SourceEnv {
		t.Errorf("Source(today): got %q, want %q", cfg.Source("today"), SourceEnv)
	}
	if cfg.Source("log_dir") != SourceDefault {
		t.Errorf("Source(log_dir): got %q, want %q", cfg.Source("log_dir"), SourceDefault)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	wd := t.TempDir()
	content := `data_file = "garden.json"
log_format = "json"
today = "2024-03-01"
`
	if err := os.WriteFile(filepath.Join(wd, "greenthumb.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(wd, flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DataFile != filepath.Join(wd, "garden.json") {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if cfg.Source("data_file") != SourceProjFile {
		t.Errorf("Source(data_file): got %q, want %q", cfg.Source("data_file"), SourceProjFile)
	}
	want := civil.Date{Year: 2024, Month: 3, Day: 1}
	if got := cfg.TodayDate(); got != want {
		t.Errorf("TodayDate: got %v, want %v", got, want)
	}
	if len(cfg.Files) != 1 {
		t.Errorf("Files: got %v, want one entry", cfg.Files)
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	isolate(t)
	wd := t.TempDir()
	if err := os.WriteFile(filepath.Join(wd, ".greenthumb.toml"), []byte("max_plants = 3\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFrom(wd, flag.NewFlagSet("test", flag.ContinueOnError), nil); err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestUserConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".greenthumb")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "greenthumb.toml"), []byte(`log_level = "warn"`+"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(t.TempDir(), flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.Source("log_level") != SourceUserFile {
		t.Errorf("Source(log_level): got %q, want %q", cfg.Source("log_level"), SourceUserFile)
	}
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	wd := t.TempDir()
	if err := os.WriteFile(filepath.Join(wd, "greenthumb.toml"), []byte(`data_file = "file.json"`+"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GREENTHUMB_DATA_FILE", "env.json")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := LoadFrom(wd, fs, []string{"-data", "flag.json", "-today", "2024-01-02", "ls"})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DataFile != filepath.Join(wd, "flag.json") {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.Source("data_file") != SourceFlag {
		t.Errorf("Source(data_file): got %q, want %q", cfg.Source("data_file"), SourceFlag)
	}
	if got := fs.Args(); len(got) != 1 || got[0] != "ls" {
		t.Errorf("remaining args: got %v, want [ls]", got)
	}
}

func TestFinalizeConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad today", func(c *Config) { c.Today = "2024-13-01" }},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
		{"empty data file", func(c *Config) { c.DataFile = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{WorkDir: t.TempDir()}
			setDefaults(cfg)
			tt.modify(cfg)
			if err := finalizeConfig(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestTodayDateFallsBackToClock(t *testing.T) {
	cfg := &Config{}
	if !cfg.TodayDate().IsValid() {
		t.Error("TodayDate should return a valid date when no override is set")
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	wd := t.TempDir()
	t.Setenv("GREENTHUMB_TEST_GARDEN", filepath.Join(wd, "balcony"))

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/plants.json", filepath.Join(home, "plants.json")},
		{"plants.json", filepath.Join(wd, "plants.json")},
		{"data/../plants.json", filepath.Join(wd, "plants.json")},
		{" plants.json ", filepath.Join(wd, "plants.json")},
		{"$GREENTHUMB_TEST_GARDEN/plants.json", filepath.Join(wd, "balcony", "plants.json")},
		{filepath.Join(wd, "abs.json"), filepath.Join(wd, "abs.json")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := resolvePath(wd, tt.input)
			if got != tt.want {
				t.Errorf("resolvePath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadExpandsHomeInDataFile(t *testing.T) {
	home := isolate(t)
	t.Setenv("GREENTHUMB_DATA_FILE", "~/garden/plants.json")

	cfg, err := LoadFrom(t.TempDir(), flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if want := filepath.Join(home, "garden", "plants.json"); cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
}
