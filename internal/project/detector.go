package project

import (
	"fmt"
	"path/filepath"
)

// Detector finds an Xcode workspace or project in a directory.
type Detector struct{}

// NewDetector creates a new project Detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect finds a workspace or project in the given directory
func (d *Detector) Detect(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	// Workspaces win: CocoaPods and multi-project setups build through them
	if path, err := d.find(absDir, WorkspaceExtension); err == nil {
		return path, nil
	}

	if path, err := d.find(absDir, ProjectExtension); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("no %s or %s found in %s", WorkspaceExtension, ProjectExtension, dir)
}

func (d *Detector) find(dir, ext string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s found", ext)
	}
	// Glob sorts, so the pick is stable across runs
	return matches[0], nil
}
