package render

import (
	"errors"
	"strings"
	"testing"
)

func TestRender_NoPlaceholders(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{"x": "v"}, nil)

	for _, s := range []string{"", "plain text", "echo hello", "a b c"} {
		got, err := r.Render(s, ctx)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
		if got != s {
			t.Errorf("expected %q unchanged, got %q", s, got)
		}
	}
}

func TestRender_ScalarSubstitution(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{"name": "world", "port": 8080}, nil)

	tests := []struct {
		tmpl string
		want string
	}{
		{"echo {{ .name }}", "echo world"},
		{"{{ .name }}!", "world!"},
		{"port={{ .port }}", "port=8080"},
		{"{{ .name | upper }}", "WORLD"}, // sprig function
	}
	for _, tt := range tests {
		got, err := r.Render(tt.tmpl, ctx)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.tmpl, err)
		}
		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.tmpl, got, tt.want)
		}
	}
}

func TestRender_DotPathAccess(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{
		"app": map[string]any{
			"db": map[string]any{"host": "db.internal"},
		},
	}, nil)

	got, err := r.Render("{{ .app.db.host }}", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "db.internal" {
		t.Errorf("expected 'db.internal', got %q", got)
	}
}

func TestRender_EnvAccess(t *testing.T) {
	r := New()
	ctx := NewContext(nil, []string{"HOME=/home/tester", "USER=tester"})

	got, err := r.Render("{{ .env.HOME }}/bin", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/home/tester/bin" {
		t.Errorf("expected '/home/tester/bin', got %q", got)
	}
}

func TestRender_UndefinedVariable(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{"x": "v"}, nil)

	got, err := r.Render("before {{ .missing }} after", ctx)
	if err == nil {
		t.Fatal("expected error for undefined variable")
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *render.Error, got %T: %v", err, err)
	}
	if got != "" {
		t.Errorf("expected empty result on error, got partially substituted %q", got)
	}
}

func TestRender_MalformedTemplate(t *testing.T) {
	r := New()
	ctx := NewContext(nil, nil)

	_, err := r.Render("{{ .unterminated", ctx)
	if err == nil {
		t.Fatal("expected error for malformed template")
	}
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *render.Error, got %T: %v", err, err)
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{"a": "1"}, []string{"B=2"})

	first, err := r.Render("{{ .a }}-{{ .env.B }}", ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, err := r.Render("{{ .a }}-{{ .env.B }}", ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("rendering is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRenderMap(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{"region": "eu-1"}, nil)

	got, err := r.RenderMap(map[string]string{
		"REGION": "{{ .region }}",
		"STATIC": "fixed",
	}, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["REGION"] != "eu-1" {
		t.Errorf("expected REGION=eu-1, got %q", got["REGION"])
	}
	if got["STATIC"] != "fixed" {
		t.Errorf("expected STATIC=fixed, got %q", got["STATIC"])
	}
}

func TestRenderMap_ErrorNamesKey(t *testing.T) {
	r := New()
	ctx := NewContext(nil, nil)

	_, err := r.RenderMap(map[string]string{"BROKEN": "{{ .nope }}"}, ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "BROKEN") {
		t.Errorf("error should name the offending key: %v", err)
	}
}

func TestNewContext_EnvShadowsGlobal(t *testing.T) {
	r := New()
	ctx := NewContext(map[string]any{"env": "not a map"}, []string{"K=v"})

	got, err := r.Render("{{ .env.K }}", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "v" {
		t.Errorf("reserved env key should shadow globals, got %q", got)
	}
}
