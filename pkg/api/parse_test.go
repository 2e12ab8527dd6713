package api

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleRunbook = `version: 1
globals:
  name: world
  app:
    port: 8080
steps:
  - name: greet
    shell:
      command: "echo {{ .name }}"
  - name: copy config
    env:
      MODE: production
    file:
      dest: /tmp/app.conf
      content: "port={{ .app.port }}"
      backup: true
      mode: "0600"
`

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "deploy.runbook.yaml")
	if err := os.WriteFile(f, []byte(sampleRunbook), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Version != 1 {
		t.Errorf("expected version 1, got %d", doc.Version)
	}
	if doc.Globals["name"] != "world" {
		t.Errorf("expected globals.name=world, got %v", doc.Globals["name"])
	}
	if len(doc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(doc.Steps))
	}
	if doc.Steps[0].Kind() != OpShell {
		t.Errorf("expected first step kind shell, got %q", doc.Steps[0].Kind())
	}
	if doc.Steps[1].File == nil || !doc.Steps[1].File.Backup {
		t.Error("expected second step to be a file write with backup")
	}
	if doc.Steps[1].Env["MODE"] != "production" {
		t.Errorf("expected step env MODE=production, got %v", doc.Steps[1].Env)
	}
	if doc.Dir != dir {
		t.Errorf("expected Dir=%s, got %s", dir, doc.Dir)
	}
}

func TestLoadDocument_NotFound(t *testing.T) {
	_, err := LoadDocument("/nonexistent/deploy.runbook.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDocument_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "bad.runbook.yaml")
	if err := os.WriteFile(f, []byte(":\n  - ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(f); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadDocument_FailsValidation(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "empty.runbook.yaml")
	if err := os.WriteFile(f, []byte("version: 1\nsteps: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(f); err == nil {
		t.Fatal("expected validation error for empty steps")
	}
}
