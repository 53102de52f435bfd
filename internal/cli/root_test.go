package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	want := []string{"list", "cat", "filter", "sort", "count", "with", "table", "pp", "summary", "version"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing command: %s", name)
		}
	}

	for _, flag := range []string{"config", "log-level"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Missing persistent flag: %s", flag)
		}
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logDir, "sora.jsonl"), []byte(`{"msg":"hi"}`+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}
	configPath := filepath.Join(dir, "soralog.yaml")
	if err := os.WriteFile(configPath, []byte("root: "+logDir+"\noutput: yaml\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs([]string{"summary", "--config", configPath, "--log-level", "debug"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout.String(), "files: 1") {
		t.Errorf("summary output = %q, want yaml with files: 1", stdout.String())
	}
	if !strings.Contains(stderr.String(), "configuration loaded") {
		t.Errorf("stderr = %q, want debug configuration log", stderr.String())
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"version", "--log-level", "loud"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	// version does not load settings, so it still succeeds.
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	root = NewRootCommand()
	root.SetArgs([]string{"list", "--root", t.TempDir(), "--log-level", "loud"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "log_level") {
		t.Errorf("Execute() error = %v, want log_level error", err)
	}
}
