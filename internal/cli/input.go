package cli

import (
	"os"

	"github.com/arnavsurve/launchcfg/internal/project"
)

// Environment variables consulted when a flag is not given, in order.
var (
	projectPathEnvKeys = []string{"PROJECT_PATH", "BITRISE_PROJECT_PATH"}
	schemeEnvKeys      = []string{"SCHEME", "BITRISE_SCHEME"}
)

func firstEnv(keys []string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// projectPath returns the flag value, else the environment, else the
// workspace or project found in the working directory.
func projectPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := firstEnv(projectPathEnvKeys); v != "" {
		return v, nil
	}

	path, err := project.NewDetector().Detect(".")
	if err != nil {
		return "", err
	}
	logger.Debug("detected project", "path", path)
	return path, nil
}

func schemeName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return firstEnv(schemeEnvKeys)
}
