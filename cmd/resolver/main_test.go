package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZJUSCT/resolver/internal/auth"
	"github.com/ZJUSCT/resolver/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestHashPassword(t *testing.T) {
	out, err := execute(t, "hash-password", "hunter2")
	if err != nil {
		t.Fatalf("hash-password error = %v", err)
	}
	if !auth.CheckPasswordHash("hunter2", strings.TrimSpace(out)) {
		t.Fatalf("hash %q does not match", out)
	}
}

func TestImagesCommand(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if err := os.WriteFile(filepath.Join(dir, "1.png"), png, 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "images", dir, "-o", "-")
	if err != nil {
		t.Fatalf("images error = %v", err)
	}
	var images map[string]string
	if err := json.Unmarshal([]byte(out), &images); err != nil || !strings.HasPrefix(images["1"], "data:image/png;base64,") {
		t.Fatalf("images = %v, %v", images, err)
	}
}

func TestImportAndExport(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "contest.json")
	err := os.WriteFile(data, []byte(`{
  "users": [{"userId": 1, "username": "alice"}, {"userId": 2, "username": "bob"}],
  "problems": [{"problemId": 10, "name": "Sum", "points": 100}],
  "submissions": [
    {"submissionId": 1, "problemId": 10, "userId": 2, "time": 50, "points": 100},
    {"submissionId": 2, "problemId": 10, "userId": 1, "time": 300, "points": 100}
  ]
}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "storage:\n  database: " + filepath.Join(dir, "resolver.db") + "\ncontest:\n  source: database\n  freeze_time: 4m\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "import", "-c", cfgPath, "--from", data); err != nil {
		t.Fatalf("import error = %v", err)
	}

	out := filepath.Join(dir, "final.csv")
	if _, err := execute(t, "export", "-c", cfgPath, "--view", "final", "-o", out); err != nil {
		t.Fatalf("export error = %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 || records[1][1] != "bob" || records[2][1] != "alice" || records[2][0] != "2" {
		t.Fatalf("records = %v", records)
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn"} {
		if _, err := newLogger(config.Logger{Level: level}); err != nil {
			t.Errorf("newLogger(%q) error = %v", level, err)
		}
	}
	if _, err := newLogger(config.Logger{Level: "loud"}); err == nil {
		t.Error("newLogger(loud) error = nil")
	}
}
