package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devx/internal/config"
)

// ManifestFileName is the manifest of installed components kept at the
// project root.
const ManifestFileName = "dev.x.config.json"

// ProjectPaths captures canonical locations for a host frontend project.
type ProjectPaths struct {
	Root         string
	ConfigFile   string
	ManifestFile string
	PackageJSON  string
	LibDir       string
	ResourcesDir string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	return ProjectPaths{
		Root:         root,
		ConfigFile:   filepath.Join(root, "dev.yaml"),
		ManifestFile: filepath.Join(root, ManifestFileName),
		PackageJSON:  filepath.Join(root, "package.json"),
		LibDir:       filepath.Join(root, "src", "lib"),
	}
}

// ApplyConfig resolves config-provided locations against the project root.
func ApplyConfig(pp ProjectPaths, cfg config.Config) ProjectPaths {
	if resources := strings.TrimSpace(cfg.Resources); resources != "" {
		pp.ResourcesDir = ResolveProjectPath(pp.Root, resources)
	}
	return pp
}

// ResolveProjectPath joins a relative value onto root; absolute values are
// cleaned and returned as-is.
func ResolveProjectPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// GlobalDir returns the user-level dev directory (~/.dev).
// It creates the directory if it does not exist.
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".dev")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global dir: %w", err)
	}
	return dir, nil
}

// GlobalLogsDir returns the global logs directory (~/.dev/logs).
// It creates the directory if it does not exist.
func GlobalLogsDir() (string, error) {
	global, err := GlobalDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(global, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global logs dir: %w", err)
	}
	return dir, nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
