package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arnavsurve/launchcfg/internal/resolve"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Envelope is the single document written to stdout per resolution.
type Envelope struct {
	Data  string `json:"data,omitempty" yaml:"data,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func validFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: json, yaml)", format)
	}
}

func successEnvelope(result *resolve.Result) Envelope {
	return Envelope{Data: result.Configuration}
}

func errorEnvelope(err error) Envelope {
	return Envelope{Error: errorDetail(err)}
}

// errorDetail renders err followed by its kind and cause chain, one level
// per line.
func errorDetail(err error) string {
	lines := []string{err.Error()}

	var rerr *resolve.Error
	if errors.As(err, &rerr) {
		lines = append(lines, "kind: "+rerr.Kind.String())
		if rerr.Path != "" {
			lines = append(lines, "path: "+rerr.Path)
		}
	}

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		lines = append(lines, "caused by: "+cause.Error())
	}

	return strings.Join(lines, "\n")
}

func writeEnvelope(w io.Writer, format string, env Envelope) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		if env.Error == "" {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(env)
	}
}

// reportedError marks a failure whose envelope is already on stdout.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
