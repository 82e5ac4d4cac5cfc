package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"devx/internal/config"
	"devx/internal/detect"
	"devx/internal/manifest"
	"devx/internal/paths"
	"devx/internal/pkgmgr"
	"devx/internal/placement"
	"devx/internal/registry"
	"devx/internal/tui"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the project is ready for dev add",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return fmt.Errorf("project directory does not exist: %s", pp.Root)
	}
	if configPath != "" {
		pp.ConfigFile = paths.ResolveProjectPath(pp.Root, configPath)
	}

	var checks []healthCheck

	cfg, cfgErr := config.Load(pp.ConfigFile)
	if cfgErr == nil {
		cfg.Overlay(config.NewEnv())
		pp = paths.ApplyConfig(pp, cfg)
	}
	checks = append(checks, checkConfig(pp, cfg, cfgErr))
	checks = append(checks, checkFramework(pp, cfg))
	checks = append(checks, checkRegistry(registry.Default()))
	checks = append(checks, checkManifest(manifest.New(pp.ManifestFile)))
	checks = append(checks, checkPackages(cmd, pp, cfg))
	checks = append(checks, checkUtils(pp))

	if err := writeDoctorResult(cmd, pp.Root, checks); err != nil {
		return err
	}
	return doctorError(checks)
}

func checkConfig(pp paths.ProjectPaths, cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	source := "defaults"
	if ok, _ := paths.FileExists(pp.ConfigFile); ok {
		source = filepath.Base(pp.ConfigFile)
	}

	var warnings, errs []string
	for _, v := range cfg.Validate(pp.Root) {
		switch v.Level {
		case "warning":
			warnings = append(warnings, v.Message)
		case "error":
			errs = append(errs, v.Message)
		}
	}

	if len(errs) > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: strings.Join(errs, ", ")}
	}
	if len(warnings) > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: strings.Join(warnings, ", ")}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: source}
}

func checkFramework(pp paths.ProjectPaths, cfg config.Config) healthCheck {
	fw, err := detect.Resolve(pp.Root, cfg.Add.Framework)
	if err != nil {
		return healthCheck{
			Name:    "Framework",
			Status:  "error",
			Summary: fmt.Sprintf("%v; expected one of %s or pass --framework", err, strings.Join(detect.Markers(), ", ")),
		}
	}
	lang := "JavaScript"
	if fw.UsesTypeScript {
		lang = "TypeScript"
	}
	summary := fmt.Sprintf("%s (%s)", fw.Framework, lang)
	if cfg.Add.Framework != "" {
		summary += ", from config"
	}
	return healthCheck{Name: "Framework", Status: "ok", Summary: summary}
}

func checkRegistry(reg *registry.Registry) healthCheck {
	if err := reg.Validate(); err != nil {
		return healthCheck{Name: "Components", Status: "error", Summary: err.Error()}
	}
	return healthCheck{Name: "Components", Status: "ok", Summary: fmt.Sprintf("%d available", len(reg.List()))}
}

func checkManifest(store *manifest.Store) healthCheck {
	if _, err := os.Stat(store.Path()); errors.Is(err, os.ErrNotExist) {
		return healthCheck{Name: "Manifest", Status: "ok", Summary: "not created yet"}
	}
	records, err := store.Records()
	if err != nil {
		return healthCheck{
			Name:    "Manifest",
			Status:  "warning",
			Summary: fmt.Sprintf("%v; it will be recreated on the next add", err),
		}
	}
	return healthCheck{Name: "Manifest", Status: "ok", Summary: fmt.Sprintf("%d components recorded", len(records))}
}

func checkPackages(cmd *cobra.Command, pp paths.ProjectPaths, cfg config.Config) healthCheck {
	manager, err := packageManager(pp, cfg)
	if err != nil {
		return healthCheck{Name: "Packages", Status: "error", Summary: err.Error()}
	}
	if ok, _ := paths.FileExists(pp.PackageJSON); !ok {
		return healthCheck{Name: "Packages", Status: "error", Summary: "package.json not found in " + pp.Root}
	}
	client := pkgmgr.New(pp.Root, manager, nil, nil)

	installed, err := client.Installed(cmd.Context())
	if err != nil {
		return healthCheck{Name: "Packages", Status: "error", Summary: err.Error()}
	}
	if cfg.Packages.SkipInstall {
		return healthCheck{Name: "Packages", Status: "ok", Summary: fmt.Sprintf("%d declared, installs skipped", len(installed))}
	}
	bin, err := client.LookPath()
	if err != nil {
		return healthCheck{Name: "Packages", Status: "warning", Summary: err.Error()}
	}
	return healthCheck{
		Name:    "Packages",
		Status:  "ok",
		Summary: fmt.Sprintf("%d declared, %s at %s", len(installed), manager, bin),
	}
}

func checkUtils(pp paths.ProjectPaths) healthCheck {
	for _, name := range []string{"utils.ts", "utils.js"} {
		if ok, _ := paths.FileExists(filepath.Join(pp.LibDir, name)); ok {
			return healthCheck{Name: "Utils", Status: "ok", Summary: filepath.Join(placement.UtilsDir, name)}
		}
	}
	return healthCheck{Name: "Utils", Status: "ok", Summary: "created on first add"}
}

func writeDoctorResult(cmd *cobra.Command, projectRoot string, checks []healthCheck) error {
	if outputJSON {
		return writeJSON(cmd, checks)
	}

	tbl := tui.NewTable("Project health: "+projectRoot, "Check", "Status", "Summary")
	tbl.StatusColumn = 1
	for _, c := range checks {
		tbl.AddRow(c.Name, c.Status, c.Summary)
	}
	return tbl.Render(cmd.OutOrStdout(), tui.DetectMode(cmd.OutOrStdout(), false))
}

// doctorError joins the failed checks into one error, or returns nil.
func doctorError(checks []healthCheck) error {
	var errs []error
	for _, c := range checks {
		if c.Status == "error" {
			errs = append(errs, fmt.Errorf("%s: %s", c.Name, c.Summary))
		}
	}
	return errors.Join(errs...)
}
