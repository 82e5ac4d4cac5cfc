package placement

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"devx/internal/assets"
)

func testResources() fstest.MapFS {
	return fstest.MapFS{
		"components/next/Button/default/Button.tsx": {Data: []byte("export const Button = 1\n")},
		"components/next/Button/default/Button.jsx": {Data: []byte("export const Button = 2\n")},
		"components/next/Input/glass/Input.tsx":     {Data: []byte("export const Input = 3\n")},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPlaceCopiesTemplate(t *testing.T) {
	root := t.TempDir()
	p := New(testResources(), root)

	dest, err := p.Place("next", "Button", "default", "tsx", "./src/components/generated")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if want := filepath.Join(root, "src/components/generated/Button.tsx"); dest != want {
		t.Errorf("dest = %s, want %s", dest, want)
	}
	if got := readFile(t, dest); got != "export const Button = 1\n" {
		t.Errorf("content = %q", got)
	}
}

func TestPlaceOverwritesExistingFile(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "ui")
	writeFile(t, filepath.Join(out, "Button.jsx"), "old")

	dest, err := New(testResources(), root).Place("next", "Button", "default", "jsx", out)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got := readFile(t, dest); got != "export const Button = 2\n" {
		t.Errorf("content = %q", got)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestPlaceErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "blocker"), "x")

	tests := []struct {
		name      string
		framework string
		component string
		theme     string
		fileType  string
		output    string
		want      error
	}{
		{"unknown framework", "vue", "Button", "default", "tsx", "ui", ErrResourceDirectoryMissing},
		{"unknown theme", "next", "Button", "dark", "tsx", "ui", ErrResourceDirectoryMissing},
		{"path escape", "..", "Button", "default", "tsx", "ui", ErrResourceDirectoryMissing},
		{"missing file type", "next", "Input", "glass", "jsx", "ui", ErrSourceFileMissing},
		{"output is a file", "next", "Button", "default", "tsx", "blocker", ErrCopyFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testResources(), root).Place(tt.framework, tt.component, tt.theme, tt.fileType, tt.output)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if perr.Path == "" {
				t.Error("error should carry the offending path")
			}
		})
	}
}

func TestCopyFailedKeepsCause(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "blocker"), "x")

	_, err := New(testResources(), root).Place("next", "Button", "default", "tsx", "blocker")
	if !errors.Is(err, ErrCopyFailed) {
		t.Fatalf("got %v, want ErrCopyFailed", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("copy failure should keep its cause")
	}
}

func TestBundledTemplatesResolve(t *testing.T) {
	root := t.TempDir()

	dest, err := New(assets.FS(), root).Place("react", "Button", "default", "jsx", "out")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("placed file missing: %v", err)
	}
}

func TestEnsureUtils(t *testing.T) {
	t.Run("creates typescript helper", func(t *testing.T) {
		root := t.TempDir()
		created, err := New(testResources(), root).EnsureUtils(true)
		if err != nil {
			t.Fatalf("EnsureUtils: %v", err)
		}
		if want := filepath.Join(root, "src", "lib", "utils.ts"); created != want {
			t.Errorf("created = %s, want %s", created, want)
		}
		if !strings.Contains(readFile(t, created), "ClassValue") {
			t.Error("typescript helper should import ClassValue")
		}
	})

	t.Run("creates javascript helper", func(t *testing.T) {
		root := t.TempDir()
		created, err := New(testResources(), root).EnsureUtils(false)
		if err != nil {
			t.Fatalf("EnsureUtils: %v", err)
		}
		if want := filepath.Join(root, "src", "lib", "utils.js"); created != want {
			t.Errorf("created = %s, want %s", created, want)
		}
	})

	t.Run("either variant is a no-op", func(t *testing.T) {
		for _, existing := range []string{"utils.ts", "utils.js"} {
			for _, ts := range []bool{true, false} {
				root := t.TempDir()
				lib := filepath.Join(root, "src", "lib")
				writeFile(t, filepath.Join(lib, existing), "custom")

				created, err := New(testResources(), root).EnsureUtils(ts)
				if err != nil {
					t.Fatalf("EnsureUtils(%v) with %s: %v", ts, existing, err)
				}
				if created != "" {
					t.Errorf("EnsureUtils(%v) with %s created %s", ts, existing, created)
				}

				entries, err := os.ReadDir(lib)
				if err != nil {
					t.Fatal(err)
				}
				if len(entries) != 1 {
					t.Errorf("lib dir has %d entries, want 1", len(entries))
				}
				if got := readFile(t, filepath.Join(lib, existing)); got != "custom" {
					t.Errorf("existing helper changed: %q", got)
				}
			}
		}
	})
}
