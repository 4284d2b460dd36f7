package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func schemesCmd() *cobra.Command {
	var (
		projectFlag string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List shared schemes",
		Long: `List the shared schemes of every candidate project, in search order.
A scheme name defined by several projects is listed once.`,
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

			names := uniqueSchemes(report.Projects)

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(names)
			}

			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Path to the .xcworkspace or .xcodeproj")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func uniqueSchemes(projects []ProjectSchemes) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, p := range projects {
		for _, s := range p.Schemes {
			if seen[s] {
				continue
			}
			seen[s] = true
			names = append(names, s)
		}
	}
	return names
}
