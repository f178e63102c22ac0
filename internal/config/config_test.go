// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and the working directory at fresh temp dirs so user
// and project config files on the host do not leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		"KANBAN_DATA_DIR", "KANBAN_STORAGE_KEY", "KANBAN_SCHEMA", "KANBAN_ID_SCHEME",
		"KANBAN_NOTICE_SECONDS", "KANBAN_LOG_DIR", "KANBAN_LOG_LEVEL", "KANBAN_LOG_FORMAT",
		"KANBAN_LOG_TIMESTAMPS", "KANBAN_LOG_CALLER",
	} {
		t.Setenv(key, "")
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return work
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, DefaultDataDir)
	}
	if cfg.StorageKey != "kanbanTasks" {
		t.Errorf("StorageKey: got %q, want kanbanTasks", cfg.StorageKey)
	}
	if cfg.IDScheme != "timestamp" {
		t.Errorf("IDScheme: got %q, want timestamp", cfg.IDScheme)
	}
	if cfg.NoticeDuration() != 2*time.Second {
		t.Errorf("NoticeDuration: got %v, want 2s", cfg.NoticeDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KANBAN_DATA_DIR", "/tmp/board")
	t.Setenv("KANBAN_ID_SCHEME", "uuid")
	t.Setenv("KANBAN_NOTICE_SECONDS", "5")
	t.Setenv("KANBAN_LOG_CALLER", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnvHelper(cfg, nil, "")

	if cfg.DataDir != "/tmp/board" {
		t.Errorf("DataDir: got %q, want /tmp/board", cfg.DataDir)
	}
	if cfg.IDScheme != "uuid" {
		t.Errorf("IDScheme: got %q, want uuid", cfg.IDScheme)
	}
	if cfg.NoticeSeconds != 5 {
		t.Errorf("NoticeSeconds: got %d, want 5", cfg.NoticeSeconds)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "kanban.toml")

	content := []byte(`storage_key = "team"
notice_seconds = 4
log_level = "debug"
`)
	if err := os.WriteFile(configFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	cws := &ConfigWithSources{Config: cfg}
	if err := loadConfigFileInto(cws, configFile, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFileInto: %v", err)
	}
	if len(cws.Files) != 1 || cws.Files[0] != configFile {
		t.Errorf("Files: got %v", cws.Files)
	}

	if cfg.StorageKey != "team" {
		t.Errorf("StorageKey: got %q, want team", cfg.StorageKey)
	}
	if cfg.NoticeSeconds != 4 {
		t.Errorf("NoticeSeconds: got %d, want 4", cfg.NoticeSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("DataDir should keep its default, got %q", cfg.DataDir)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	err := parseFlagsHelper(cfg, fs, []string{"-key", "sprint", "-id-scheme", "uuid", "ls", "todo"}, nil, "")
	if err != nil {
		t.Fatalf("parseFlagsHelper: %v", err)
	}
	if cfg.StorageKey != "sprint" {
		t.Errorf("StorageKey: got %q, want sprint", cfg.StorageKey)
	}
	if cfg.IDScheme != "uuid" {
		t.Errorf("IDScheme: got %q, want uuid", cfg.IDScheme)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "ls" {
		t.Errorf("remaining args: got %v, want [ls todo]", got)
	}
}

func TestLoadPriority(t *testing.T) {
	work := isolate(t)

	home := os.Getenv("HOME")
	userDir := filepath.Join(home, ".kanban")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	userConfig := "storage_key = \"user\"\nnotice_seconds = 7\nlog_format = \"json\"\n"
	if err := os.WriteFile(filepath.Join(userDir, "kanban.toml"), []byte(userConfig), 0644); err != nil {
		t.Fatal(err)
	}
	projectConfig := "storage_key = \"project\"\nid_scheme = \"uuid\"\n"
	if err := os.WriteFile(filepath.Join(work, "kanban.toml"), []byte(projectConfig), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KANBAN_NOTICE_SECONDS", "3")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"-log-level", "warn"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if cfg.StorageKey != "project" {
		t.Errorf("StorageKey: got %q, want project", cfg.StorageKey)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if cfg.NoticeSeconds != 3 {
		t.Errorf("NoticeSeconds: got %d, want 3", cfg.NoticeSeconds)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}

	wantSources := map[string]ConfigSource{
		"storage_key":    SourceProjFile,
		"id_scheme":      SourceProjFile,
		"log_format":     SourceUserFile,
		"notice_seconds": SourceEnv,
		"log_level":      SourceFlag,
		"data_dir":       SourceDefault,
	}
	for field, want := range wantSources {
		if got := cws.Sources[field]; got != want {
			t.Errorf("Sources[%s]: got %q, want %q", field, got, want)
		}
	}
	if len(cws.Files) != 2 || cws.ConfigFile() != "kanban.toml" {
		t.Errorf("Files: got %v", cws.Files)
	}
}

func TestLoadResolvesDataDir(t *testing.T) {
	work := isolate(t)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	wantRoot, _ := filepath.EvalSymlinks(work)
	gotRoot, _ := filepath.EvalSymlinks(cfg.ProjectRoot)
	if gotRoot != wantRoot {
		t.Errorf("ProjectRoot: got %q, want %q", cfg.ProjectRoot, work)
	}
	if cfg.DataDir != filepath.Join(cfg.ProjectRoot, ".kanban") {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.SchemaFile != "" {
		t.Errorf("SchemaFile: got %q, want empty", cfg.SchemaFile)
	}
}

func TestLoadReportsUndecodedKeys(t *testing.T) {
	work := isolate(t)
	content := "storage_key = \"x\"\ncolumns = 4\n"
	if err := os.WriteFile(filepath.Join(work, ".kanban.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cws.Undecoded) != 1 || !strings.HasSuffix(cws.Undecoded[0], "columns") {
		t.Errorf("Undecoded: got %v", cws.Undecoded)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown id scheme", []string{"-id-scheme", "counter"}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"bad log format", []string{"-log-format", "xml"}},
		{"negative notice", []string{"-notice-seconds", "-1"}},
		{"zero notice", []string{"-notice-seconds", "0"}},
		{"key with separator", []string{"-key", "a/b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), tt.args); err == nil {
				t.Errorf("LoadWithSources(%v) expected error", tt.args)
			}
		})
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		t.Errorf("example config has unknown keys: %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("example config does not validate: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	t.Setenv("KANBAN_TEST_ROOT", "/srv/kanban")

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$KANBAN_TEST_ROOT/logs", "/srv/kanban/logs"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			input string
			want  string
		}{`~\test`, `~\test`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFieldsMatchTOMLKeys(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	var decoded map[string]any
	if _, err := toml.Decode(ExampleConfig(), &decoded); err != nil {
		t.Fatalf("decode example: %v", err)
	}
	for _, f := range cfg.Fields() {
		if f.Name == "schema_file" {
			continue // commented out in the example
		}
		if _, ok := decoded[f.Name]; !ok {
			t.Errorf("field %s missing from example config", f.Name)
		}
	}

	want := map[string]string{
		"storage_key":    DefaultStorageKey,
		"notice_seconds": "2",
		"log_caller":     "false",
	}
	for _, f := range cfg.Fields() {
		if v, ok := want[f.Name]; ok && f.Value != v {
			t.Errorf("%s = %q, want %q", f.Name, f.Value, v)
		}
	}
}
