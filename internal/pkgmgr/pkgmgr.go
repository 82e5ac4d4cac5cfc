// Package pkgmgr reads and extends the npm dependency set of a host project.
package pkgmgr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Manager identifies the package manager driving a project.
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
	Bun  Manager = "bun"
)

var lockfiles = []struct {
	file    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"bun.lock", Bun},
	{"bun.lockb", Bun},
	{"package-lock.json", NPM},
}

// Detect picks the manager from the lockfile present in root, defaulting to
// npm.
func Detect(root string) Manager {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(root, lf.file)); err == nil {
			return lf.manager
		}
	}
	return NPM
}

// Parse maps a configured manager name; empty or unknown names yield false.
func Parse(name string) (Manager, bool) {
	switch m := Manager(strings.ToLower(strings.TrimSpace(name))); m {
	case NPM, PNPM, Yarn, Bun:
		return m, true
	}
	return "", false
}

// InstallCommand returns the executable and arguments that add one package.
func (m Manager) InstallCommand(pkg string) (string, []string) {
	switch m {
	case PNPM, Yarn, Bun:
		return string(m), []string{"add", pkg}
	default:
		return string(NPM), []string{"install", pkg}
	}
}

// Client installs packages into the project at Root. Stdin, Stdout and
// Stderr are handed to the package manager process.
type Client struct {
	Root    string
	Manager Manager
	Runner  Runner
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// New returns a client using the real process runner.
func New(root string, manager Manager, stdout, stderr io.Writer) *Client {
	return &Client{Root: root, Manager: manager, Runner: CmdRunner{}, Stdout: stdout, Stderr: stderr}
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Installed returns the sorted top-level package names declared in
// package.json (dependencies and devDependencies).
func (c *Client) Installed(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(c.Root, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("read package.json: %w", err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("decode package.json: %w", err)
	}

	seen := make(map[string]bool, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name := range pkg.Dependencies {
		seen[name] = true
	}
	for name := range pkg.DevDependencies {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Install adds a single package with the project's manager.
func (c *Client) Install(ctx context.Context, name string) error {
	command, args := c.Manager.InstallCommand(name)
	_, err := c.Runner.Run(ctx, command, args, RunOptions{
		Dir:    c.Root,
		Stdin:  c.Stdin,
		Stdout: c.Stdout,
		Stderr: c.Stderr,
	})
	if err != nil {
		return fmt.Errorf("install %s: %w", name, err)
	}
	return nil
}

// LookPath reports where the manager executable lives on PATH.
func (c *Client) LookPath() (string, error) {
	path, err := exec.LookPath(string(c.Manager))
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", c.Manager)
	}
	return path, nil
}
