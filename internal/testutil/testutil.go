// Package testutil provides common test helpers for the condact project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempEnv creates a valid environment directory named name under parent
// (a conda-meta subdirectory plus an empty bin directory) and returns its path.
// An empty parent means a fresh temporary directory.
func TempEnv(t *testing.T, parent, name string) string {
	t.Helper()

	if parent == "" {
		parent = t.TempDir()
	}
	prefix := filepath.Join(parent, name)

	for _, sub := range []string{"conda-meta", "bin"} {
		if err := os.MkdirAll(filepath.Join(prefix, sub), 0755); err != nil {
			t.Fatalf("TempEnv: mkdir failed: %v", err)
		}
	}

	return prefix
}

// TempPlainDir creates a directory that exists but is not an environment.
func TempPlainDir(t *testing.T, parent, name string) string {
	t.Helper()

	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("TempPlainDir: mkdir failed: %v", err)
	}

	return dir
}

// TempHook writes a hook script into <prefix>/etc/conda/<phase>.d/<name>
// and returns its path.
func TempHook(t *testing.T, prefix, phase, name, content string) string {
	t.Helper()

	dir := filepath.Join(prefix, "etc", "conda", phase+".d")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("TempHook: mkdir failed: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("TempHook: write failed: %v", err)
	}

	return path
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	return TempConfigFileAs(t, "config.toml", content)
}

// TempConfigFileAs creates a temporary config file with the given base name,
// e.g. ".condarc" for the YAML format.
func TempConfigFileAs(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// TempRegistryFile creates a temporary environments.json with the given content
// and returns its path.
func TempRegistryFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "environments.json")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempRegistryFile: write failed: %v", err)
	}

	return path
}
