package resolve

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/arnavsurve/launchcfg/internal/project"
	"github.com/arnavsurve/launchcfg/internal/scheme"
	"golang.org/x/sync/errgroup"
)

// ProbeStatus is the outcome of looking for the scheme in one project.
type ProbeStatus int

const (
	StatusSchemeMissing ProbeStatus = iota
	StatusNoLaunchConfiguration
	StatusMalformed
	StatusFound
)

func (s ProbeStatus) String() string {
	switch s {
	case StatusSchemeMissing:
		return "scheme missing"
	case StatusNoLaunchConfiguration:
		return "no launch configuration"
	case StatusMalformed:
		return "malformed"
	case StatusFound:
		return "found"
	default:
		return "unknown"
	}
}

// Probe records what a single candidate project yielded.
type Probe struct {
	Project       string
	SchemePath    string
	Status        ProbeStatus
	Configuration string
	Err           error
}

// Result is a successful resolution.
type Result struct {
	Configuration string `json:"configuration"`
	Project       string `json:"project"`
	SchemePath    string `json:"scheme_path"`
	Tried         int    `json:"tried"`
}

// Options tune a Resolver. The zero value searches sequentially and
// treats malformed schemes as fatal.
type Options struct {
	// Parallel probes all candidates concurrently. The first candidate in
	// declaration order still wins.
	Parallel bool
	// SkipMalformed moves on to the next candidate when a located scheme
	// cannot be parsed instead of failing the resolution.
	SkipMalformed bool
	// OnProbe is called for every examined candidate, in order.
	OnProbe func(Probe)
	Logger  *slog.Logger
}

// Resolver finds the build configuration a scheme launches with.
type Resolver struct {
	opts   Options
	logger *slog.Logger
}

func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{opts: opts, logger: logger}
}

// Resolve returns the launch action build configuration of schemeName,
// searching the projects path expands to in declaration order.
func (r *Resolver) Resolve(ctx context.Context, path, schemeName string) (*Result, error) {
	if path == "" {
		return nil, &Error{Kind: KindInvalidInputPath, Err: errors.New("project path is required")}
	}
	if schemeName == "" {
		return nil, &Error{Kind: KindInvalidInputPath, Path: path, Err: errors.New("scheme name is required")}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Kind: KindInvalidInputPath, Path: path, Err: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &Error{Kind: KindInvalidInputPath, Path: path, Err: err}
	}

	kind := project.Classify(abs)
	r.logger.Debug("classified input", "path", abs, "kind", kind.String())

	candidates, err := project.Candidates(abs)
	if err != nil {
		return nil, &Error{Kind: KindWorkspaceRead, Path: abs, Scheme: schemeName, Err: err}
	}
	r.logger.Debug("expanded candidates", "count", len(candidates), "candidates", candidates)

	probeAt := func(i int) Probe { return probeProject(candidates[i], schemeName) }
	if r.opts.Parallel && len(candidates) > 1 {
		probes, err := r.probeAll(ctx, candidates, schemeName)
		if err != nil {
			return nil, err
		}
		probeAt = func(i int) Probe { return probes[i] }
	}

	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := probeAt(i)
		r.report(p)

		switch p.Status {
		case StatusFound:
			return &Result{
				Configuration: p.Configuration,
				Project:       p.Project,
				SchemePath:    p.SchemePath,
				Tried:         i + 1,
			}, nil
		case StatusMalformed:
			if !r.opts.SkipMalformed {
				return nil, &Error{Kind: KindSchemeParse, Path: p.SchemePath, Scheme: schemeName, Tried: i + 1, Err: p.Err}
			}
		}
	}

	return nil, &Error{Kind: KindLaunchActionNotFound, Path: abs, Scheme: schemeName, Tried: len(candidates)}
}

// probeAll examines every candidate concurrently. probes[i] belongs to
// candidates[i] regardless of completion order.
func (r *Resolver) probeAll(ctx context.Context, candidates []string, schemeName string) ([]Probe, error) {
	probes := make([]Probe, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, candidate := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			probes[i] = probeProject(candidate, schemeName)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return probes, nil
}

func (r *Resolver) report(p Probe) {
	r.logger.Debug("probed candidate",
		"project", p.Project,
		"scheme_path", p.SchemePath,
		"status", p.Status.String(),
		"configuration", p.Configuration,
	)
	if r.opts.OnProbe != nil {
		r.opts.OnProbe(p)
	}
}

func probeProject(projectPath, schemeName string) Probe {
	p := Probe{Project: projectPath}

	schemePath, ok := scheme.Locate(projectPath, schemeName)
	if !ok {
		p.SchemePath = scheme.SharedPath(projectPath, schemeName)
		p.Status = StatusSchemeMissing
		return p
	}
	p.SchemePath = schemePath

	s, err := scheme.Open(schemePath)
	if err != nil {
		p.Status = StatusMalformed
		p.Err = err
		return p
	}

	config, ok := s.LaunchConfiguration()
	if !ok {
		p.Status = StatusNoLaunchConfiguration
		return p
	}

	p.Status = StatusFound
	p.Configuration = config
	return p
}
