package cli

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"devx/internal/config"
	"devx/internal/detect"
	"devx/internal/installer"
	"devx/internal/manifest"
	"devx/internal/pkgmgr"
	"devx/internal/placement"
	"devx/internal/registry"
	"devx/internal/tui"
)

var (
	addList bool
	addYes  bool
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [component]",
		Short: "Add a component and its dependencies to the project",
		Example: `  dev add LoginCard
  dev add Button -t jsx -o src/ui --theme default
  dev add --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringP("type", "t", "", "File type of the component (jsx or tsx)")
	cmd.Flags().StringP("output", "o", "", "Directory the component is written to")
	cmd.Flags().String("theme", "", "Theme of the component")
	cmd.Flags().StringP("framework", "f", "", "Framework in use (next or react), skips detection")
	cmd.Flags().Bool("skip-install", false, "Do not install missing npm packages")
	cmd.Flags().BoolVarP(&addList, "list", "l", false, "Show available components")
	cmd.Flags().BoolVarP(&addYes, "yes", "y", false, "Overwrite existing components without asking")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	reg := registry.Default()
	if addList {
		return writeComponentList(cmd, reg)
	}

	v := config.NewEnv()
	for key, flag := range map[string]string{
		"type":         "type",
		"output":       "output",
		"theme":        "theme",
		"framework":    "framework",
		"skip_install": "skip-install",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}

	pp, cfg, err := loadProject(v)
	if err != nil {
		return err
	}

	logger, closeLog := openLogger(cmd, "add")
	defer closeLog()

	manager, err := packageManager(pp, cfg)
	if err != nil {
		return err
	}

	var prompter tui.Prompter = tui.StaticPrompter{Answer: true}
	if !addYes {
		prompter = tui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	var component string
	if len(args) > 0 {
		component = args[0]
	}

	packages := newPackages(cmd, pkgmgr.New(pp.Root, manager, nil, nil), logger)

	inst := installer.New(installer.Deps{
		Registry: reg,
		Store:    manifest.New(pp.ManifestFile),
		Detect: func(override string) (detect.Context, error) {
			return detect.Resolve(pp.Root, override)
		},
		Packages: packages,
		Placer:   placement.New(templateFS(pp), pp.Root),
		Confirm:  prompter,
		Logger:   logger,
		Out:      cmd.OutOrStdout(),
	})

	err = inst.Install(cmd.Context(), installer.Request{
		Component:   component,
		FileType:    cfg.Add.Type,
		Output:      cfg.Add.Output,
		Theme:       cfg.Add.Theme,
		Framework:   cfg.Add.Framework,
		Yes:         addYes,
		SkipInstall: cfg.Packages.SkipInstall,
	})
	if err != nil {
		logger.Printf("add %s failed: %v", component, err)
	}
	return err
}

// newPackages wires the package manager to the command's streams, or to the
// log behind a spinner when running in a terminal without --verbose.
func newPackages(cmd *cobra.Command, client *pkgmgr.Client, logger *log.Logger) installer.Packages {
	if tui.DetectMode(cmd.OutOrStdout(), false) == tui.ModeTUI && !verbose {
		client.Stdout = logger.Writer()
		client.Stderr = logger.Writer()
		return spinnerPackages{Client: client, out: cmd.OutOrStdout()}
	}
	client.Stdin = cmd.InOrStdin()
	client.Stdout = cmd.OutOrStdout()
	client.Stderr = cmd.ErrOrStderr()
	return client
}

// spinnerPackages shows a spinner while the package manager runs. The
// manager's own output goes to the client's writers, normally the log file.
type spinnerPackages struct {
	*pkgmgr.Client
	out io.Writer
}

func (p spinnerPackages) Install(ctx context.Context, name string) error {
	command, args := p.Manager.InstallCommand(name)
	s := tui.StartSpinner(p.out, command+" "+strings.Join(args, " "))
	if err := p.Client.Install(ctx, name); err != nil {
		s.Stop("")
		return err
	}
	s.Stop(tui.StatusStyle("installed").Render("installed " + name))
	return nil
}
