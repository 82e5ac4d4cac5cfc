package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"devx/internal/installer"
	"devx/internal/tui"
)

var (
	projectDir string
	configPath string
	outputJSON bool
	verbose    bool
)

// Execute runs the root cobra command. Interrupts cancel the command context
// so running package installs are stopped.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(reportError(os.Stdout, os.Stderr, err))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dev",
		Short:         "Add prebuilt UI components to Next.js and React projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to dev.yaml (defaults to <project>/dev.yaml)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Mirror log output to stderr")

	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newFrameworksCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// reportError prints err and returns the process exit code. A declined
// overwrite prints "Abort" and is not a failure.
func reportError(stdout, stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, installer.ErrUserAborted) {
		fmt.Fprintln(stdout, "Abort")
		return 0
	}
	msg := "error: " + err.Error()
	if tui.IsTerminal(stderr) {
		msg = tui.ErrorStyle.Render(msg)
	}
	fmt.Fprintln(stderr, msg)
	return 1
}
