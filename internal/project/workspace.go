package project

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/launchcfg/internal/xmldoc"
)

// FileReference is a FileRef entry of a workspace manifest.
type FileReference struct {
	// Location is the raw attribute value, e.g. "group:App/App.xcodeproj".
	Location string
	// Path is the absolute path the location points at. Empty when the
	// location type cannot be resolved on this machine.
	Path string
}

// IsProject reports whether the reference points at a user project.
func (r FileReference) IsProject() bool {
	if r.Path == "" {
		return false
	}
	if filepath.Ext(r.Path) != ProjectExtension {
		return false
	}
	return !strings.HasSuffix(filepath.ToSlash(r.Path), PodsProjectSuffix)
}

// Workspace is a parsed .xcworkspace manifest.
type Workspace struct {
	Path       string
	References []FileReference
}

type workspaceNode struct {
	XMLName  xml.Name
	Location string          `xml:"location,attr"`
	Children []workspaceNode `xml:",any"`
}

type workspaceDocument struct {
	XMLName xml.Name        `xml:"Workspace"`
	Nodes   []workspaceNode `xml:",any"`
}

// OpenWorkspace reads the manifest of the workspace bundle at path.
func OpenWorkspace(path string) (*Workspace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(abs, workspaceDataFile))
	if err != nil {
		return nil, fmt.Errorf("read workspace: %w", err)
	}

	return ParseWorkspace(abs, data)
}

// ParseWorkspace parses manifest data belonging to the workspace at path.
// References keep document order; refs inside a Group follow the group's
// position.
func ParseWorkspace(path string, data []byte) (*Workspace, error) {
	if _, err := xmldoc.Expect(data, "Workspace"); err != nil {
		return nil, fmt.Errorf("parse workspace %s: %w", filepath.Base(path), err)
	}

	var doc workspaceDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse workspace %s: %w", filepath.Base(path), err)
	}

	ws := &Workspace{Path: path}
	containerDir := filepath.Dir(path)
	ws.collect(doc.Nodes, containerDir, containerDir)
	return ws, nil
}

func (w *Workspace) collect(nodes []workspaceNode, groupDir, containerDir string) {
	for _, n := range nodes {
		switch n.XMLName.Local {
		case "FileRef":
			p, _ := resolveLocation(n.Location, groupDir, containerDir)
			w.References = append(w.References, FileReference{Location: n.Location, Path: p})
		case "Group":
			dir := groupDir
			if p, ok := resolveLocation(n.Location, groupDir, containerDir); ok {
				dir = p
			}
			w.collect(n.Children, dir, containerDir)
		}
	}
}

// ProjectPaths returns the user projects referenced by the workspace.
func (w *Workspace) ProjectPaths() []string {
	paths := make([]string, 0, len(w.References))
	for _, ref := range w.References {
		if ref.IsProject() {
			paths = append(paths, ref.Path)
		}
	}
	return paths
}

// ExpandWorkspace opens the workspace at path and returns its projects in
// declaration order.
func ExpandWorkspace(path string) ([]string, error) {
	ws, err := OpenWorkspace(path)
	if err != nil {
		return nil, err
	}
	return ws.ProjectPaths(), nil
}

// resolveLocation turns a "type:path" location into an absolute path.
func resolveLocation(location, groupDir, containerDir string) (string, bool) {
	kind, rel, found := strings.Cut(location, ":")
	if !found {
		kind, rel = "group", location
	}

	switch kind {
	case "group":
		return joinLocation(groupDir, rel), true
	case "container", "self":
		return joinLocation(containerDir, rel), true
	case "absolute":
		return filepath.Clean(rel), true
	default:
		// developer: and anything newer depend on the local Xcode install
		return "", false
	}
}

func joinLocation(base, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(base, rel)
}
