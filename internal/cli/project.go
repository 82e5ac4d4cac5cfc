package cli

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devx/internal/assets"
	"devx/internal/config"
	"devx/internal/logx"
	"devx/internal/paths"
	"devx/internal/pkgmgr"
)

// loadProject resolves the project directory and its effective configuration:
// dev.yaml, then DEV_* environment variables, then any flags bound on v.
func loadProject(v *viper.Viper) (paths.ProjectPaths, config.Config, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, err
	}
	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return paths.ProjectPaths{}, config.Config{}, fmt.Errorf("project directory does not exist: %s", pp.Root)
	}

	if configPath != "" {
		pp.ConfigFile = paths.ResolveProjectPath(pp.Root, configPath)
	}
	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, err
	}
	if v == nil {
		v = config.NewEnv()
	}
	cfg.Overlay(v)

	return paths.ApplyConfig(pp, cfg), cfg, nil
}

// openLogger opens the per-run log file under ~/.dev/logs. When the log
// directory is unusable the command still runs with a discarding logger.
func openLogger(cmd *cobra.Command, name string) (*log.Logger, func()) {
	var mirror io.Writer
	if verbose {
		mirror = cmd.ErrOrStderr()
	}

	dir, err := paths.GlobalLogsDir()
	if err == nil {
		logger, closer, openErr := logx.New(dir, mirror)
		if openErr == nil {
			logger.Printf("dev %s (project=%q)", name, projectDir)
			return logger, func() { _ = closer.Close() }
		}
		err = openErr
	}
	if mirror != nil {
		logger := log.New(mirror, "", log.LstdFlags)
		logger.Printf("logging to file disabled: %v", err)
		return logger, func() {}
	}
	return logx.Discard(), func() {}
}

// templateFS returns the component templates: the configured resources
// directory when set, the embedded set otherwise.
func templateFS(pp paths.ProjectPaths) fs.FS {
	if pp.ResourcesDir != "" {
		return os.DirFS(pp.ResourcesDir)
	}
	return assets.FS()
}

// packageManager picks the configured manager or detects one from lockfiles.
func packageManager(pp paths.ProjectPaths, cfg config.Config) (pkgmgr.Manager, error) {
	if cfg.Packages.Manager == "" {
		return pkgmgr.Detect(pp.Root), nil
	}
	m, ok := pkgmgr.Parse(cfg.Packages.Manager)
	if !ok {
		return "", fmt.Errorf("unknown package manager %q (want npm, pnpm, yarn or bun)", cfg.Packages.Manager)
	}
	return m, nil
}
