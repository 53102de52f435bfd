package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/cobra"

	"github.com/soralog/soralog/pkg/record"
)

const (
	apiLog = `{"timestamp":"2024-05-01T00:00:02Z","level":"info","operation":"Sora_20201013.ListConnections","url":"/"}
{"timestamp":"2024-05-01T00:00:01Z","level":"error","operation":"Sora_20201013.GetStatus","url":"/"}
`
	clusterLog = `{"id":"01H","level":"warning","msg":"NODE-DOWN|node b left","domain":["raft"],"sora_version":"2024.1.0","node":"sora@node-a","timestamp":"2024-05-01T00:00:00Z"}
`
	crashLog = "=CRASH REPORT 2024-05-01 ===\n  crasher: x\n"
)

// writeLogDir lays out a small log directory and returns its root.
func writeLogDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"node-a/api.jsonl":     apiLog,
		"node-a/cluster.jsonl": clusterLog,
		"node-a/crash.log":     crashLog,
		"node-a/notes.txt":     "not a log\n",
		"node-b/sora.jsonl":    "",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

// run executes cmd with args and stdin, returning stdout and stderr.
func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, cmd *cobra.Command, stdin string, args ...string) string {
	t.Helper()
	stdout, stderr, err := run(t, cmd, stdin, args...)
	if err != nil {
		t.Fatalf("%s error = %v\nstderr: %s", cmd.Name(), err, stderr)
	}
	return stdout
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func decodeRecords(t *testing.T, out string) []record.Record {
	t.Helper()
	var records []record.Record
	for _, line := range lines(out) {
		r, err := record.Decode([]byte(line))
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", line, err)
		}
		records = append(records, r)
	}
	return records
}

func TestNewCommands(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewListCommand(), "list", []string{"root", "pattern", "absolute"}},
		{NewCatCommand(), "cat [file...]", []string{"root", "pattern", "absolute"}},
		{NewFilterCommand(), "filter", []string{"level", "kind", "eq"}},
		{NewSortCommand(), "sort [field...]", []string{"sort-keys"}},
		{NewCountCommand(), "count [field...]", []string{"output"}},
		{NewWithCommand(), "with <field>...", nil},
		{NewTableCommand(), "table", nil},
		{NewPPCommand(), "pp", nil},
		{NewSummaryCommand(), "summary", []string{"root", "pattern", "absolute", "output"}},
		{NewVersionCommand(), "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			if tt.cmd.Use != tt.use {
				t.Errorf("Unexpected Use: %s", tt.cmd.Use)
			}
			for _, flag := range tt.flags {
				if tt.cmd.Flags().Lookup(flag) == nil {
					t.Errorf("Missing flag: %s", flag)
				}
			}
		})
	}
}

func TestRunList(t *testing.T) {
	root := writeLogDir(t)
	out := mustRun(t, NewListCommand(), "", "--root", root)

	var paths []string
	for _, line := range lines(out) {
		var p string
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			t.Fatalf("line %q is not a JSON string: %v", line, err)
		}
		paths = append(paths, p)
	}

	want := []string{
		filepath.Join(root, "node-a/api.jsonl"),
		filepath.Join(root, "node-a/cluster.jsonl"),
		filepath.Join(root, "node-a/crash.log"),
		filepath.Join(root, "node-b/sora.jsonl"),
	}
	if !slices.Equal(paths, want) {
		t.Errorf("list = %v, want %v", paths, want)
	}
}

func TestRunList_Pattern(t *testing.T) {
	root := writeLogDir(t)
	out := mustRun(t, NewListCommand(), "", "--root", root, "--pattern", "node-b/**")
	if got := lines(out); len(got) != 1 || !strings.Contains(got[0], "sora.jsonl") {
		t.Errorf("list = %v, want only sora.jsonl", got)
	}
}

func TestRunCat(t *testing.T) {
	root := writeLogDir(t)
	records := decodeRecords(t, mustRun(t, NewCatCommand(), "", "--root", root))

	var kinds []string
	for _, r := range records {
		kinds = append(kinds, r.Kind().String())
	}
	want := []string{"api", "api", "cluster", "crash"}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}

	raw, _ := json.Marshal(records[3])
	if !strings.Contains(string(raw), `"@raw_report":"=CRASH REPORT 2024-05-01 ===\n  crasher: x"`) {
		t.Errorf("crash record = %s", raw)
	}
}

func TestRunCat_FileArguments(t *testing.T) {
	root := writeLogDir(t)
	stdout, stderr, err := run(t, NewCatCommand(), "",
		filepath.Join(root, "node-a/notes.txt"),
		filepath.Join(root, "node-a/cluster.jsonl"),
	)
	if err != nil {
		t.Fatalf("cat error = %v", err)
	}
	if got := len(lines(stdout)); got != 1 {
		t.Errorf("cat printed %d records, want 1", got)
	}
	if !strings.Contains(stderr, "skipping file with unknown log kind") {
		t.Errorf("stderr = %q, want skip warning", stderr)
	}
}

func TestRunCat_ParseErrorNamesLine(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "api.jsonl")
	if err := os.WriteFile(path, []byte("{}\n{broken\n"), 0644); err != nil {
		t.Fatalf("Failed to write log: %v", err)
	}

	_, _, err := run(t, NewCatCommand(), "", "--root", root)
	if err == nil || !strings.Contains(err.Error(), path+":2:") {
		t.Errorf("cat error = %v, want %s:2: prefix", err, path)
	}
}

// brokenPipe fails every write the way a closed stdout does.
type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) {
	return 0, &os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}
}

func TestRunCat_BrokenPipe(t *testing.T) {
	root := writeLogDir(t)
	cmd := NewCatCommand()
	cmd.SetArgs([]string{"--root", root})
	cmd.SetOut(brokenPipe{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Errorf("cat error = %v, want nil on broken pipe", err)
	}
}

func catOutput(t *testing.T) string {
	t.Helper()
	return mustRun(t, NewCatCommand(), "", "--root", writeLogDir(t))
}

func TestRunFilter(t *testing.T) {
	in := catOutput(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no conditions", nil, 4},
		{"level", []string{"--level", "warning"}, 2},
		{"kind", []string{"--kind", "api", "--kind", "crash"}, 3},
		{"kind list", []string{"--kind", "api,cluster"}, 3},
		{"eq", []string{"--eq", "msg.tag=NODE-DOWN"}, 1},
		{"eq operation", []string{"--eq", "type=Sora_20201013.GetStatus"}, 1},
		{"combined", []string{"--level", "error", "--kind", "cluster"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, NewFilterCommand(), in, tt.args...)
			if got := len(decodeRecords(t, out)); got != tt.want {
				t.Errorf("filter kept %d records, want %d", got, tt.want)
			}
		})
	}
}

func TestRunFilter_InvalidFlags(t *testing.T) {
	tests := [][]string{
		{"--level", "fatal"},
		{"--kind", "nginx"},
		{"--eq", "node"},
		{"--eq", "bogus=1"},
	}
	for _, args := range tests {
		if _, _, err := run(t, NewFilterCommand(), "", args...); err == nil {
			t.Errorf("filter %v expected error", args)
		}
	}
}

func TestRunFilter_BadInput(t *testing.T) {
	_, _, err := run(t, NewFilterCommand(), `{"@domain":"sora","@path":"sora.jsonl"}`+"\n"+`{"no":"domain"}`)
	if err == nil || !strings.Contains(err.Error(), "record 2") {
		t.Errorf("filter error = %v, want record 2 error", err)
	}
}

func TestRunSort(t *testing.T) {
	in := catOutput(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default timestamp", nil, []string{"crash", "cluster", "api", "api"}},
		{"kind then level", []string{"kind", "level"}, []string{"api", "api", "cluster", "crash"}},
		{"sort-keys flag", []string{"--sort-keys", "level"}, []string{"crash", "api", "cluster", "api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []string
			for _, r := range decodeRecords(t, mustRun(t, NewSortCommand(), in, tt.args...)) {
				kinds = append(kinds, r.Kind().String())
			}
			if !slices.Equal(kinds, tt.want) {
				t.Errorf("sort = %v, want %v", kinds, tt.want)
			}
		})
	}
}

func TestRunSort_InvalidField(t *testing.T) {
	if _, _, err := run(t, NewSortCommand(), "", "bogus"); err == nil {
		t.Error("sort expected error for unknown field")
	}
}

func TestRunCount(t *testing.T) {
	in := catOutput(t)

	out := mustRun(t, NewCountCommand(), in, "kind", "level")
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("count output is not JSON: %v\n%s", err, out)
	}
	want := map[string]any{
		"api":     map[string]any{"error": 1.0, "info": 1.0},
		"cluster": map[string]any{"warning": 1.0},
		"crash":   1.0,
	}
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("count = %s, want %s", gotJSON, wantJSON)
	}
}

func TestRunCount_YAML(t *testing.T) {
	out := mustRun(t, NewCountCommand(), catOutput(t), "kind", "-o", "yaml")
	for _, want := range []string{"api: 2", "cluster: 1", "crash: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("count yaml missing %q:\n%s", want, out)
		}
	}
}

func TestRunWith(t *testing.T) {
	out := mustRun(t, NewWithCommand(), catOutput(t), "kind", "operation")
	got := lines(out)
	want := []string{
		`{"kind":"api","operation":"Sora_20201013.ListConnections"}`,
		`{"kind":"api","operation":"Sora_20201013.GetStatus"}`,
		`{"kind":"cluster","operation":null}`,
		`{"kind":"crash","operation":null}`,
	}
	if !slices.Equal(got, want) {
		t.Errorf("with = %v, want %v", got, want)
	}
}

func TestRunWith_RequiresField(t *testing.T) {
	if _, _, err := run(t, NewWithCommand(), ""); err == nil {
		t.Error("with expected error without fields")
	}
}

func TestRunTable(t *testing.T) {
	in := `{"a":1,"b":"x|y"}` + "\n" + `{"c":[1,2],"a":null}` + "\n"
	got := lines(mustRun(t, NewTableCommand(), in))
	if len(got) != 4 {
		t.Fatalf("table = %d lines, want 4:\n%s", len(got), strings.Join(got, "\n"))
	}
	if !strings.Contains(got[2], `x\|y`) || !strings.Contains(got[3], "1.2") {
		t.Errorf("table rows = %q", got[2:])
	}
}

func TestRunTable_RejectsNonObjects(t *testing.T) {
	if _, _, err := run(t, NewTableCommand(), "[1]\n"); err == nil {
		t.Error("table expected error for non-object input")
	}
}

func TestRunPP(t *testing.T) {
	out := mustRun(t, NewPPCommand(), `{"b":1.50,"a":"<x>"} 2`)
	want := "{\n  \"a\": \"<x>\",\n  \"b\": 1.50\n}\n2\n"
	if out != want {
		t.Errorf("pp = %q, want %q", out, want)
	}
}

func TestRunSummary(t *testing.T) {
	root := writeLogDir(t)
	out := mustRun(t, NewSummaryCommand(), "", "--root", root)

	var got struct {
		Files           int            `json:"files"`
		FilesPerKind    map[string]int `json:"files_per_kind"`
		Records         int            `json:"records"`
		RecordsPerLevel map[string]int `json:"records_per_level"`
		RecordsPerKind  map[string]int `json:"records_per_kind"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("summary output is not JSON: %v\n%s", err, out)
	}

	if got.Files != 3 {
		t.Errorf("files = %d, want 3 (empty file skipped)", got.Files)
	}
	if got.Records != 4 {
		t.Errorf("records = %d, want 4", got.Records)
	}
	if got.RecordsPerKind["api"] != 2 || got.RecordsPerKind["crash"] != 1 {
		t.Errorf("records_per_kind = %v", got.RecordsPerKind)
	}
	if got.RecordsPerLevel["info"] != 2 || got.RecordsPerLevel["warning"] != 1 || got.RecordsPerLevel["error"] != 1 {
		t.Errorf("records_per_level = %v", got.RecordsPerLevel)
	}
	if _, ok := got.FilesPerKind["sora"]; ok {
		t.Errorf("files_per_kind = %v, want no sora entry", got.FilesPerKind)
	}
}

func TestRunSummary_InvalidOutput(t *testing.T) {
	if _, _, err := run(t, NewSummaryCommand(), "", "--root", writeLogDir(t), "-o", "text"); err == nil {
		t.Error("summary expected error for unknown output format")
	}
}

func TestRunVersion(t *testing.T) {
	out := mustRun(t, NewVersionCommand(), "")
	if out != "soralog dev\n" {
		t.Errorf("version = %q", out)
	}
}
