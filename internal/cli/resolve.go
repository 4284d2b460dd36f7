package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/arnavsurve/launchcfg/internal/project"
	"github.com/arnavsurve/launchcfg/internal/resolve"
	"github.com/arnavsurve/launchcfg/internal/scheme"
	"github.com/arnavsurve/launchcfg/internal/ui"
	"github.com/arnavsurve/launchcfg/internal/watcher"
	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	var (
		projectFlag   string
		schemeFlag    string
		output        string
		parallel      bool
		skipMalformed bool
		watch         bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the build configuration of a scheme's launch action",
		Long: `Resolve the build configuration used by the launch action of a shared scheme.

For a workspace, every referenced project is searched in the order the workspace
declares them (CocoaPods' Pods project excluded) and the first project whose shared
scheme names a launch configuration wins.

The project path and scheme fall back to $PROJECT_PATH / $SCHEME, then
$BITRISE_PROJECT_PATH / $BITRISE_SCHEME. Without a path, the workspace or project
in the current directory is used.`,
		Example: `  launchcfg resolve -s App
  launchcfg resolve -p ios/App.xcworkspace -s App
  launchcfg resolve -s App -o yaml
  PROJECT_PATH=App.xcodeproj SCHEME=App launchcfg resolve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(output); err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			renderer := ui.NewRendererTo(cmd.ErrOrStderr())

			opts := resolve.Options{
				Parallel:      parallel,
				SkipMalformed: skipMalformed,
				Logger:        logger,
			}
			if verbose {
				opts.OnProbe = func(p resolve.Probe) { renderProbe(renderer, p) }
			}
			resolver := resolve.NewResolver(opts)

			path, err := projectPath(projectFlag)
			if err != nil {
				err = &resolve.Error{Kind: resolve.KindInvalidInputPath, Err: err}
				if werr := writeEnvelope(out, output, errorEnvelope(err)); werr != nil {
					return werr
				}
				return reportedError{err}
			}
			name := schemeName(schemeFlag)

			if watch {
				return watchResolve(ctx, out, output, renderer, resolver, path, name)
			}

			return resolveOnce(ctx, out, output, resolver, path, name)
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Path to the .xcworkspace or .xcodeproj")
	cmd.Flags().StringVarP(&schemeFlag, "scheme", "s", "", "Shared scheme name")
	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "Output format (json/yaml)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Probe workspace projects concurrently")
	cmd.Flags().BoolVar(&skipMalformed, "skip-malformed", false, "Skip unparsable schemes instead of failing")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Resolve again whenever a workspace or scheme file changes")

	return cmd
}

// resolveOnce writes exactly one envelope for the resolution of path.
func resolveOnce(ctx context.Context, out io.Writer, format string, resolver *resolve.Resolver, path, name string) error {
	result, err := resolver.Resolve(ctx, path, name)
	if err != nil {
		if werr := writeEnvelope(out, format, errorEnvelope(err)); werr != nil {
			return werr
		}
		return reportedError{err}
	}

	logger.Info("resolved", "scheme", name, "configuration", result.Configuration, "project", result.Project)
	return writeEnvelope(out, format, successEnvelope(result))
}

func watchResolve(ctx context.Context, out io.Writer, format string, renderer *ui.Renderer, resolver *resolve.Resolver, path, name string) error {
	w, err := watcher.New(300 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if err := resolveOnce(ctx, out, format, resolver, path, name); err != nil && !isReported(err) {
		return err
	}

	added, err := w.AddDirs(watchDirs(path)...)
	if err != nil {
		return fmt.Errorf("failed to watch: %w", err)
	}
	if added == 0 {
		return fmt.Errorf("nothing to watch under %s", path)
	}
	renderer.Dim("Watching %d director(ies) for scheme changes...", added)

	for ev := range w.Watch(ctx) {
		renderer.Dim("Changed: %s", filepath.Base(ev.Path))
		// the manifest or a new scheme directory may have widened the set
		if _, err := w.AddDirs(watchDirs(path)...); err != nil {
			logger.Warn("watch directories", "error", err)
		}
		if err := resolveOnce(ctx, out, format, resolver, path, name); err != nil && !isReported(err) {
			return err
		}
	}

	return nil
}

// watchDirs lists the directories whose contents can change the result:
// the workspace bundle, and for each candidate the project bundle and the
// path down to its shared scheme directory. Directories that do not exist
// yet are returned too; the watcher skips them until they appear.
func watchDirs(path string) []string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}

	var dirs []string
	if project.Classify(abs) == project.KindWorkspace {
		dirs = append(dirs, abs)
	}

	candidates, err := project.Candidates(abs)
	if err != nil {
		return dirs
	}
	for _, c := range candidates {
		shared := filepath.Join(c, scheme.SharedDir)
		dirs = append(dirs, c, filepath.Dir(shared), shared)
	}
	return dirs
}

func renderProbe(r *ui.Renderer, p resolve.Probe) {
	name := filepath.Base(p.Project)
	switch p.Status {
	case resolve.StatusFound:
		r.Success("%s: %s", name, p.Configuration)
	case resolve.StatusMalformed:
		r.Error("%s: malformed scheme (%v)", name, p.Err)
	case resolve.StatusNoLaunchConfiguration:
		r.Warning("%s: scheme has no launch configuration", name)
	default:
		r.Dim("%s: no shared scheme at %s", name, p.SchemePath)
	}
}
