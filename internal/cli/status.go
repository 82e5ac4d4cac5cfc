package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"devx/internal/manifest"
	"devx/internal/paths"
	"devx/internal/tui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show components recorded in the manifest and whether their files exist",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

type statusRow struct {
	Name   string `json:"name"`
	Output string `json:"output"`
	File   string `json:"file,omitempty"`
	Status string `json:"status"` // "present" or "missing"
}

func runStatus(cmd *cobra.Command, _ []string) error {
	pp, _, err := loadProject(nil)
	if err != nil {
		return err
	}

	store := manifest.New(pp.ManifestFile)
	records, err := store.Records()
	if err != nil {
		return err
	}

	rows := make([]statusRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, componentStatus(pp, rec))
	}

	if outputJSON {
		return writeJSON(cmd, struct {
			Project    string      `json:"project"`
			Manifest   string      `json:"manifest"`
			Components []statusRow `json:"components"`
		}{pp.Root, store.Path(), rows})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project: %s\n", pp.Root)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No components recorded yet. Run `dev add <component>` to add one.")
		return nil
	}

	mode := tui.DetectMode(out, false)
	tbl := tui.NewTable("", "Component", "Output", "Status", "File")
	tbl.StatusColumn = 2
	for _, row := range rows {
		tbl.AddRow(row.Name, row.Output, row.Status, row.File)
	}
	return tbl.Render(out, mode)
}

// componentStatus looks for <name>.* in the record's output directory.
func componentStatus(pp paths.ProjectPaths, rec manifest.Record) statusRow {
	row := statusRow{Name: rec.Name, Output: rec.Output, Status: "missing"}

	dir := paths.ResolveProjectPath(pp.Root, rec.Output)
	matches, err := filepath.Glob(filepath.Join(dir, globEscape(rec.Name)+".*"))
	if err != nil {
		return row
	}
	for _, m := range matches {
		if ok, _ := paths.FileExists(m); ok {
			row.Status = "present"
			if rel, err := filepath.Rel(pp.Root, m); err == nil {
				row.File = rel
			} else {
				row.File = m
			}
			break
		}
	}
	return row
}

func globEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`)
	return r.Replace(s)
}
