package scheme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/launchcfg/internal/xmldoc"
	"github.com/bitrise-io/go-xcode/v2/xcodeproject/xcscheme"
)

// Scheme holds the parts of an .xcscheme document this tool reads.
type Scheme struct {
	Name string
	// LaunchAction is nil when the scheme has no LaunchAction element.
	LaunchAction *LaunchAction
}

// LaunchAction is the "Run" action of a scheme.
type LaunchAction struct {
	// BuildConfiguration is nil when the attribute is missing or empty.
	BuildConfiguration *string
}

// Open reads and parses the scheme file at path. The whole document must
// be well formed; trailing content after </Scheme> is an error.
func Open(path string) (*Scheme, error) {
	name := strings.TrimSuffix(filepath.Base(path), Extension)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scheme: %w", err)
	}

	outline, err := xmldoc.Expect(data, "Scheme")
	if err != nil {
		return nil, fmt.Errorf("parse scheme %s: %w", name, err)
	}

	doc, err := xcscheme.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse scheme %s: %w", name, err)
	}

	s := &Scheme{Name: name}
	if outline.Has("LaunchAction") {
		action := &LaunchAction{}
		if config := doc.LaunchAction.BuildConfiguration; config != "" {
			action.BuildConfiguration = &config
		}
		s.LaunchAction = action
	}
	return s, nil
}

// LaunchConfiguration returns the build configuration the scheme runs
// under. ok is false when there is no launch action, or it names no
// configuration.
func (s *Scheme) LaunchConfiguration() (config string, ok bool) {
	if s.LaunchAction == nil {
		return "", false
	}
	if s.LaunchAction.BuildConfiguration == nil {
		return "", false
	}
	return *s.LaunchAction.BuildConfiguration, true
}
