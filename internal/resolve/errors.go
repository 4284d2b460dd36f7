package resolve

import "fmt"

// ErrorKind classifies a failed resolution.
type ErrorKind int

const (
	KindInvalidInputPath ErrorKind = iota + 1
	KindWorkspaceRead
	KindSchemeParse
	KindLaunchActionNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInputPath:
		return "InvalidInputPath"
	case KindWorkspaceRead:
		return "WorkspaceReadError"
	case KindSchemeParse:
		return "SchemeParseError"
	case KindLaunchActionNotFound:
		return "LaunchActionNotFound"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is. Only the kind is compared.
var (
	ErrInvalidInputPath     = &Error{Kind: KindInvalidInputPath}
	ErrWorkspaceRead        = &Error{Kind: KindWorkspaceRead}
	ErrSchemeParse          = &Error{Kind: KindSchemeParse}
	ErrLaunchActionNotFound = &Error{Kind: KindLaunchActionNotFound}
)

// Error is a fatal resolution failure.
type Error struct {
	Kind ErrorKind
	// Path is the input, workspace or scheme file the failure concerns.
	Path   string
	Scheme string
	// Tried counts the candidate projects examined before giving up.
	Tried int
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidInputPath:
		if e.Path == "" {
			return fmt.Sprintf("invalid input: %v", e.Err)
		}
		return fmt.Sprintf("invalid project path %s: %v", e.Path, e.Err)
	case KindWorkspaceRead:
		return fmt.Sprintf("failed to read workspace %s: %v", e.Path, e.Err)
	case KindSchemeParse:
		return fmt.Sprintf("malformed scheme %s: %v", e.Path, e.Err)
	case KindLaunchActionNotFound:
		return fmt.Sprintf("launch action default configuration not found for scheme %q (%d project(s) searched)", e.Scheme, e.Tried)
	default:
		return fmt.Sprintf("resolve %s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
