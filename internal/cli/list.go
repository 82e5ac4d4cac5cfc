package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devx/internal/registry"
	"devx/internal/tui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show available components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeComponentList(cmd, registry.Default())
		},
	}
}

func newFrameworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "Show supported frameworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFrameworkList(cmd, registry.Default())
		},
	}
}

type componentJSON struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies"`
	Internal     []string `json:"internal_dependencies"`
}

func writeComponentList(cmd *cobra.Command, reg *registry.Registry) error {
	components := reg.List()

	if outputJSON {
		payload := make([]componentJSON, 0, len(components))
		for _, c := range components {
			payload = append(payload, componentJSON{
				Name:         c.Name,
				Description:  c.Description,
				Dependencies: nonNil(c.Dependencies),
				Internal:     nonNil(c.InternalDependencies),
			})
		}
		return writeJSON(cmd, payload)
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), false)
	tbl := tui.NewTable("Available components:", "Component", "Dependencies", "Requires")
	for _, c := range components {
		tbl.AddRow(c.Name, joinOrNone(c.Dependencies, mode), joinOrNone(c.InternalDependencies, mode))
	}
	return tbl.Render(cmd.OutOrStdout(), mode)
}

func writeFrameworkList(cmd *cobra.Command, reg *registry.Registry) error {
	frameworks := reg.Frameworks()
	if outputJSON {
		return writeJSON(cmd, frameworks)
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), false)
	tbl := tui.NewTable("Supported frameworks:", "Framework", "Description")
	for _, fw := range frameworks {
		tbl.AddRow(fw.Name, fw.Description)
	}
	return tbl.Render(cmd.OutOrStdout(), mode)
}

func joinOrNone(items []string, mode tui.OutputMode) string {
	if len(items) == 0 {
		if mode == tui.ModeTUI {
			return tui.MutedStyle.Render("None")
		}
		return "None"
	}
	return strings.Join(items, ", ")
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
