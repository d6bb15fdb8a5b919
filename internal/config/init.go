package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/blueprint/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into ~/.blueprint.
	InitTargetGlobal InitTarget = "global"

	configurationDirectoryMode = 0o755
	configurationFileMode      = 0o600

	// DefaultConfigurationTemplate is written by InitializeConfiguration.
	DefaultConfigurationTemplate = `# Directory rendered when no path argument is given.
# Empty means the directory containing the blueprint executable.
root: ""
# Draw progress bars on stderr when it is a terminal.
progress: true
# Copy the rendered blueprint to the system clipboard.
clipboard: true
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested target
// and returns the written path. Existing files are kept unless Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, resolveErr := resolveInitDestination(options)
	if resolveErr != nil {
		return "", resolveErr
	}

	_, statErr := os.Stat(destinationPath)
	switch {
	case statErr == nil && !options.Force:
		return "", fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", destinationPath)
	case statErr != nil && !os.IsNotExist(statErr):
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, statErr)
	}

	if writeErr := os.WriteFile(destinationPath, []byte(DefaultConfigurationTemplate), configurationFileMode); writeErr != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeErr)
	}
	return destinationPath, nil
}

func resolveInitDestination(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, configurationDirectoryMode); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
