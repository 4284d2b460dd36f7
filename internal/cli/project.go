package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/arnavsurve/launchcfg/internal/project"
	"github.com/arnavsurve/launchcfg/internal/scheme"
	"github.com/arnavsurve/launchcfg/internal/ui"
	"github.com/spf13/cobra"
)

// ProjectSchemes pairs a candidate project with its shared schemes.
type ProjectSchemes struct {
	Path    string   `json:"path"`
	Schemes []string `json:"schemes"`
}

// ProjectReport is what `project info --json` prints.
type ProjectReport struct {
	Kind     project.Kind     `json:"kind"`
	Path     string           `json:"path"`
	Name     string           `json:"name"`
	Projects []ProjectSchemes `json:"projects"`
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project introspection",
		Long:  `Inspect the Xcode workspace or project and the projects it expands to.`,
	}

	cmd.AddCommand(projectInfoCmd())

	return cmd
}

func projectInfoCmd() *cobra.Command {
	var (
		projectFlag string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show project information",
		Long: `Classify the input path and list the candidate projects, in search order,
with the shared schemes each one defines.`,
		Example: `  launchcfg project info
  launchcfg project info -p App.xcworkspace --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := projectPath(projectFlag)
			if err != nil {
				return fmt.Errorf("no project found: %w", err)
			}

			report, err := buildReport(path)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			renderer := ui.NewRendererTo(cmd.ErrOrStderr())
			renderer.Success("%s: %s", report.Kind, report.Name)
			renderer.Info("Path: %s", report.Path)

			if len(report.Projects) == 0 {
				renderer.Warning("No projects to search")
				return nil
			}

			renderer.Heading("Search order")
			for i, p := range report.Projects {
				renderer.Info("%d. %s", i+1, filepath.Base(p.Path))
				if len(p.Schemes) == 0 {
					renderer.Dim("   no shared schemes")
					continue
				}
				for _, s := range p.Schemes {
					renderer.Info("   • %s", s)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Path to the .xcworkspace or .xcodeproj")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func buildReport(path string) (*ProjectReport, error) {
	info, err := project.Inspect(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	report := &ProjectReport{
		Kind:     info.Kind,
		Path:     info.Path,
		Name:     info.Name,
		Projects: make([]ProjectSchemes, 0, len(info.Candidates)),
	}

	for _, c := range info.Candidates {
		names, err := scheme.List(c)
		if err != nil {
			return nil, fmt.Errorf("failed to list schemes of %s: %w", c, err)
		}
		if names == nil {
			names = []string{}
		}
		report.Projects = append(report.Projects, ProjectSchemes{Path: c, Schemes: names})
	}

	return report, nil
}
