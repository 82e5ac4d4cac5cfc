// Package installer runs the add pipeline: it resolves a component's internal
// dependencies, installs its npm packages, records it in the manifest and
// places its template in the project.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"devx/internal/config"
	"devx/internal/detect"
	"devx/internal/manifest"
	"devx/internal/registry"
	"devx/internal/tui"
)

// OverwriteQuestion is asked when a component is already recorded at the
// requested output.
const OverwriteQuestion = "Do you want to overwrite the existing component?"

// Packages lists and installs host npm packages.
type Packages interface {
	Installed(ctx context.Context) ([]string, error)
	Install(ctx context.Context, name string) error
}

// Placer writes template files into the project.
type Placer interface {
	EnsureUtils(usesTypeScript bool) (string, error)
	Place(framework, component, theme, fileType, output string) (string, error)
}

// Store is the subset of the manifest store the pipeline needs.
type Store interface {
	EnsureExists() error
	Find(name, output string) (manifest.Record, bool, error)
	Upsert(name, output string) error
	InstalledNames() []string
}

// Deps are the collaborators of an Installer.
type Deps struct {
	Registry *registry.Registry
	Store    Store
	Detect   func(override string) (detect.Context, error)
	Packages Packages
	Placer   Placer
	Confirm  tui.Prompter
	Logger   *log.Logger
	Out      io.Writer
}

// Request describes one add invocation. Empty fields fall back to the
// detected file type, config.DefaultOutputDir and the "default" theme.
type Request struct {
	Component   string
	FileType    string
	Output      string
	Theme       string
	Framework   string
	Yes         bool
	SkipInstall bool
}

// Installer runs add requests against a single project.
type Installer struct {
	deps Deps
}

// New returns an installer. Nil Logger and Out are replaced with discarding
// implementations.
func New(deps Deps) *Installer {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Installer{deps: deps}
}

// Install adds req.Component and, first, any internal dependencies missing
// from the manifest. Dependencies are added depth-first in declaration order
// with the same file type, theme, framework and output. A dependency whose
// template cannot be placed is reported and skipped; an aborted overwrite, a
// cycle or cancellation fails the whole request. Completed work is not rolled
// back.
func (in *Installer) Install(ctx context.Context, req Request) error {
	return in.install(ctx, req, nil)
}

func (in *Installer) install(ctx context.Context, req Request, chain []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := strings.TrimSpace(req.Component)
	logger := in.deps.Logger

	// Validate.
	if name == "" {
		return &Error{Kind: ErrComponentNotFound, Err: errors.New("component name must be a non-empty string")}
	}
	comp, ok := in.deps.Registry.Get(name)
	if !ok {
		return &Error{Kind: ErrComponentNotFound, Component: name}
	}
	if slices.Contains(chain, comp.Name) {
		path := append(slices.Clone(chain), comp.Name)
		return &Error{Kind: ErrCyclicDependency, Component: comp.Name, Err: &registry.CycleError{Path: path}}
	}
	chain = append(chain, comp.Name)

	// Resolve framework and defaults.
	fw, err := in.deps.Detect(req.Framework)
	if err != nil {
		return &Error{Kind: ErrFrameworkNotDetected, Component: comp.Name, Err: err}
	}
	req = withDefaults(req, fw)
	logger.Printf("add %s: framework=%s type=%s theme=%s output=%s", comp.Name, req.Framework, req.FileType, req.Theme, req.Output)

	// Shared cn() helper.
	created, err := in.deps.Placer.EnsureUtils(fw.UsesTypeScript)
	if err != nil {
		return fromPlacement(comp.Name, err)
	}
	if created != "" {
		logger.Printf("created %s", created)
		fmt.Fprintf(in.deps.Out, "%s %s\n", tui.MutedStyle.Render("created"), tui.PathStyle.Render(created))
	}

	// Internal dependencies not yet recorded.
	installed := in.deps.Store.InstalledNames()
	for _, dep := range comp.InternalDependencies {
		if slices.Contains(installed, dep) {
			continue
		}
		fmt.Fprintf(in.deps.Out, "Adding %s component...\n", tui.ComponentStyle.Render(dep))
		logger.Printf("add %s: adding internal dependency %s", comp.Name, dep)

		child := req
		child.Component = dep
		if err := in.install(ctx, child, chain); err != nil {
			if !placementFailure(err) {
				return fmt.Errorf("add %s: dependency %s: %w", comp.Name, dep, err)
			}
			in.warn("could not add dependency %s of %s: %v", dep, comp.Name, err)
		}
	}

	// Conflict check.
	if err := in.deps.Store.EnsureExists(); err != nil {
		logger.Printf("ensure manifest: %v", err)
	}
	_, found, err := in.deps.Store.Find(comp.Name, req.Output)
	if err != nil {
		in.warn("could not read manifest, assuming %s is not installed: %v", comp.Name, err)
		found = false
	}
	if found {
		fmt.Fprintf(in.deps.Out, "The %q component already exists in the path %q.\n", comp.Name, req.Output)
		overwrite := req.Yes
		if !overwrite {
			overwrite, err = in.deps.Confirm.Confirm(ctx, OverwriteQuestion)
			if err != nil {
				return &Error{Kind: ErrUserAborted, Component: comp.Name, Path: req.Output, Err: err}
			}
		}
		if !overwrite {
			logger.Printf("add %s: overwrite declined", comp.Name)
			return &Error{Kind: ErrUserAborted, Component: comp.Name, Path: req.Output}
		}
	}

	// External packages.
	if req.SkipInstall {
		logger.Printf("add %s: package install skipped", comp.Name)
	} else {
		in.installPackages(ctx, comp)
	}
	if err := ctx.Err(); err != nil {
		logger.Printf("add %s: cancelled before placement", comp.Name)
		return err
	}

	// Record.
	if err := in.deps.Store.Upsert(comp.Name, req.Output); err != nil {
		if errors.Is(err, manifest.ErrRepaired) {
			in.warn("%v", err)
		} else {
			in.warn("could not record %s in the manifest: %v", comp.Name, err)
		}
	}

	// Place.
	dest, err := in.deps.Placer.Place(req.Framework, comp.Name, req.Theme, req.FileType, req.Output)
	if err != nil {
		logger.Printf("add %s: place failed: %v", comp.Name, err)
		return fromPlacement(comp.Name, err)
	}
	logger.Printf("add %s: wrote %s", comp.Name, dest)

	fmt.Fprintf(in.deps.Out, "%s %s %s\n",
		tui.ComponentStyle.Render(comp.Name+"."+req.FileType),
		tui.MutedStyle.Render("added to ->"),
		tui.PathStyle.Render(req.Output),
	)
	return nil
}

// installPackages installs the component's npm packages missing from the
// host, one at a time. Failures are reported and skipped.
func (in *Installer) installPackages(ctx context.Context, comp registry.Component) {
	if in.deps.Packages == nil || len(comp.Dependencies) == 0 {
		return
	}
	have, err := in.deps.Packages.Installed(ctx)
	if err != nil {
		in.deps.Logger.Printf("list installed packages: %v", err)
		have = nil
	}

	for _, pkg := range missingPackages(comp.Dependencies, have) {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(in.deps.Out, "Installing %s...\n", tui.ComponentStyle.Render(pkg))
		if err := in.deps.Packages.Install(ctx, pkg); err != nil {
			fail := &Error{Kind: ErrExternalInstallFailed, Component: comp.Name, Path: pkg, Err: err}
			in.warn("error installing dependency %q: %v", pkg, err)
			in.deps.Logger.Printf("%v", fail)
			continue
		}
		in.deps.Logger.Printf("installed %s", pkg)
	}
}

// placementFailure reports whether err failed only while placing a template.
func placementFailure(err error) bool {
	switch KindOf(err) {
	case ErrResourceDirectoryMissing, ErrSourceFileMissing, ErrCopyFailed:
		return true
	}
	return false
}

// missingPackages returns the declared packages absent from installed,
// deduplicated and in declaration order.
func missingPackages(declared, installed []string) []string {
	var missing []string
	for _, pkg := range declared {
		if slices.Contains(installed, pkg) || slices.Contains(missing, pkg) {
			continue
		}
		missing = append(missing, pkg)
	}
	return missing
}

func withDefaults(req Request, fw detect.Context) Request {
	req.FileType = strings.TrimPrefix(strings.TrimSpace(req.FileType), ".")
	if req.FileType == "" {
		req.FileType = fw.DefaultFileType()
	}
	if strings.TrimSpace(req.Output) == "" {
		req.Output = config.DefaultOutputDir
	}
	if strings.TrimSpace(req.Theme) == "" {
		req.Theme = "default"
	}
	req.Framework = string(fw.Framework)
	return req
}

func (in *Installer) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	in.deps.Logger.Printf("warning: %s", msg)
	fmt.Fprintln(in.deps.Out, tui.WarnStyle.Render("warning: "+msg))
}
