package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/simcheck/internal/models"
)

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after files are moved first",
			args:     []string{"a.txt", "b.txt", "-threshold", "0.5"},
			expected: []string{"-threshold", "0.5", "a.txt", "b.txt"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-format", "json", "a.txt", "b.txt"},
			expected: []string{"-format", "json", "a.txt", "b.txt"},
		},
		{
			name:     "files only returns unchanged",
			args:     []string{"a.txt", "b.txt"},
			expected: []string{"a.txt", "b.txt"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_explicitPathMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected defaults, got port %d", cfg.Server.Port)
	}
}

func TestLoadConfig_fallbackToCwd(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 4567\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if filepath.Base(resolved) != "config.yaml" || filepath.Dir(resolved) == filepath.Dir(defaultConfigPath) {
		t.Errorf("expected cwd fallback, got %q", resolved)
	}
	if cfg.Server.Port != 4567 {
		t.Errorf("port = %d, want 4567", cfg.Server.Port)
	}
}

func writeFiles(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return dir, paths
}

func TestRunAnalyze_json(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{
		"a.txt": "Cats are mammals. Dogs bark loudly.",
		"b.txt": "Dogs bark loudly. Fish swim quietly.",
	})
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	args := append(append([]string{}, paths...), "-format", "json", "-threshold", "0.5", "-config", cfgPath)

	var stdout, stderr bytes.Buffer
	if code := runAnalyze(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	var res models.AnalysisResult
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if res.Metadata.DocumentsCount != 2 || res.Metadata.Threshold != 0.5 {
		t.Errorf("metadata = %+v", res.Metadata)
	}
	if len(res.Matches) != 1 || res.Matches[0].Similarity != 1 {
		t.Errorf("matches = %+v", res.Matches)
	}
}

func TestRunAnalyze_errors(t *testing.T) {
	_, paths := writeFiles(t, map[string]string{"a.txt": "Only one."})
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"single document", []string{"-config", cfgPath, paths[0]}, 2},
		{"threshold out of range", []string{"-config", cfgPath, "-threshold", "2", paths[0], paths[0]}, 2},
		{"unknown format", []string{"-config", cfgPath, "-format", "xml", paths[0], paths[0]}, 2},
		{"missing file", []string{"-config", cfgPath, paths[0], filepath.Join(t.TempDir(), "gone.txt")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := runAnalyze(tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.code, stderr.String())
			}
			if strings.TrimSpace(stderr.String()) == "" {
				t.Error("expected an error message on stderr")
			}
		})
	}
}

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var stdout, stderr bytes.Buffer
	if code := runConfig([]string{"init", "-config", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	cfg, _, err := loadConfig(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Analysis.MaxDocuments != 5 || cfg.Analysis.DefaultThresholdOrDefault() != 0.3 {
		t.Errorf("expected defaults, got %+v", cfg.Analysis)
	}

	stderr.Reset()
	if code := runConfig([]string{"init", "-config", path}, &stdout, &stderr); code != 1 {
		t.Errorf("existing file: exit code %d, want 1", code)
	}
	if code := runConfig([]string{"init", "-config", path, "-force"}, &stdout, &stderr); code != 0 {
		t.Errorf("-force: exit code %d, want 0 (stderr: %s)", code, stderr.String())
	}
	if code := runConfig([]string{"show"}, &stdout, &stderr); code != 2 {
		t.Errorf("unknown action: exit code %d, want 2", code)
	}
}
