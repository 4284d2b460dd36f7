package project

// Kind is the classification of an input path.
type Kind int

const (
	KindProject Kind = iota
	KindWorkspace
)

const (
	WorkspaceExtension = ".xcworkspace"
	ProjectExtension   = ".xcodeproj"

	// CocoaPods writes this aggregate project into every workspace it manages.
	PodsProjectSuffix = "Pods/Pods.xcodeproj"

	workspaceDataFile = "contents.xcworkspacedata"
)

func (k Kind) String() string {
	switch k {
	case KindWorkspace:
		return "workspace"
	default:
		return "xcodeproj"
	}
}

// Info describes an input path and the projects it expands to.
type Info struct {
	Kind       Kind     `json:"kind"`
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
