// Package utils holds process-level helpers: logging, version lookup and executable location.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion    = "unknown"
	develBuildVersion = "(devel)"
	gitExecutableName = "git"
)

// Version is injected at link time with -ldflags "-X github.com/temirov/blueprint/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the linked version, then Go build info, then git describe output.
func GetApplicationVersion() string {
	if trimmed := strings.TrimSpace(Version); trimmed != "" {
		return trimmed
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}

	gitDirectoryPath, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError != nil {
		return unknownVersion
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		// #nosec G204
		describeCommand := exec.Command(gitExecutableName, arguments...)
		describeCommand.Dir = gitDirectoryPath
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findGitDirectory searches upward from startDirectory for a directory containing .git.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, errorAbsolute)
	}

	for currentDirectory := absoluteStartDirectory; ; {
		fileInformation, errorStat := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return "", fmt.Errorf(".git directory not found in or above %s", absoluteStartDirectory)
		}
		currentDirectory = parentDirectory
	}
}
