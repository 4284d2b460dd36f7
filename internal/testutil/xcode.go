// Package testutil builds Xcode workspace and project fixtures on disk.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SchemeXML returns a shared scheme document whose LaunchAction uses
// config. An empty config omits the buildConfiguration attribute.
func SchemeXML(config string) string {
	attr := ""
	if config != "" {
		attr = fmt.Sprintf("\n      buildConfiguration = \"%s\"", config)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<Scheme
   LastUpgradeVersion = "1500"
   version = "1.7">
   <BuildAction
      parallelizeBuildables = "YES"
      buildImplicitDependencies = "YES">
   </BuildAction>
   <TestAction
      buildConfiguration = "Debug"
      selectedDebuggerIdentifier = "Xcode.DebuggerFoundation.Debugger.LLDB"
      shouldUseLaunchSchemeArgsEnv = "YES">
   </TestAction>
   <LaunchAction` + attr + `
      selectedDebuggerIdentifier = "Xcode.DebuggerFoundation.Debugger.LLDB"
      launchStyle = "0"
      useCustomWorkingDirectory = "NO">
   </LaunchAction>
   <ProfileAction
      buildConfiguration = "Release"
      shouldUseLaunchSchemeArgsEnv = "YES">
   </ProfileAction>
   <ArchiveAction
      buildConfiguration = "Release"
      revealArchiveInOrganizer = "YES">
   </ArchiveAction>
</Scheme>
`
}

// SchemeWithoutLaunchAction has every action except LaunchAction.
const SchemeWithoutLaunchAction = `<?xml version="1.0" encoding="UTF-8"?>
<Scheme
   LastUpgradeVersion = "1500"
   version = "1.7">
   <TestAction
      buildConfiguration = "Debug">
   </TestAction>
   <ArchiveAction
      buildConfiguration = "Release">
   </ArchiveAction>
</Scheme>
`

// WorkspaceXML returns a workspace manifest with one FileRef per location.
func WorkspaceXML(locations ...string) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<Workspace\n   version = \"1.0\">\n")
	for _, loc := range locations {
		fmt.Fprintf(&b, "   <FileRef\n      location = \"%s\">\n   </FileRef>\n", loc)
	}
	b.WriteString("</Workspace>\n")
	return b.String()
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// CreateProject creates the bundle dir/rel with the given shared schemes
// (name -> document) and returns its path.
func CreateProject(t *testing.T, dir, rel string, schemes map[string]string) string {
	t.Helper()
	proj := filepath.Join(dir, rel)
	if err := os.MkdirAll(proj, 0755); err != nil {
		t.Fatal(err)
	}
	WriteFile(t, filepath.Join(proj, "project.pbxproj"), "// !$*UTF8*$!\n{}\n")
	for name, doc := range schemes {
		WriteFile(t, filepath.Join(proj, "xcshareddata", "xcschemes", name+".xcscheme"), doc)
	}
	return proj
}

// CreateWorkspace creates the bundle dir/rel with manifest as its
// contents.xcworkspacedata and returns its path.
func CreateWorkspace(t *testing.T, dir, rel, manifest string) string {
	t.Helper()
	ws := filepath.Join(dir, rel)
	WriteFile(t, filepath.Join(ws, "contents.xcworkspacedata"), manifest)
	return ws
}

// ReadFile returns the contents of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
