package project

import (
	"path/filepath"
	"strings"
)

// Classify reports whether path names a workspace bundle. Anything else,
// including a path without an extension, is treated as a project.
func Classify(path string) Kind {
	if filepath.Ext(filepath.Clean(path)) == WorkspaceExtension {
		return KindWorkspace
	}
	return KindProject
}

// Candidates returns the projects to search for path, in priority order.
// A bare project yields itself without touching the filesystem.
func Candidates(path string) ([]string, error) {
	if Classify(path) == KindWorkspace {
		return ExpandWorkspace(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return []string{abs}, nil
}

// Inspect classifies path and expands it into its candidate projects.
func Inspect(path string) (*Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	kind := Classify(abs)
	name := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))

	candidates, err := Candidates(abs)
	if err != nil {
		return nil, err
	}

	return &Info{
		Kind:       kind,
		Path:       abs,
		Name:       name,
		Candidates: candidates,
	}, nil
}
