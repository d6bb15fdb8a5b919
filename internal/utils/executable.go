package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExecutableLocation describes where the running program lives on disk.
type ExecutableLocation struct {
	Directory string
	FileName  string
}

// LocateExecutable resolves the running executable, following symlinks.
func LocateExecutable() (ExecutableLocation, error) {
	executablePath, executableError := os.Executable()
	if executableError != nil {
		return ExecutableLocation{}, fmt.Errorf("locate executable: %w", executableError)
	}
	return locationFromPath(executablePath), nil
}

func locationFromPath(executablePath string) ExecutableLocation {
	resolvedPath, resolveError := filepath.EvalSymlinks(executablePath)
	if resolveError != nil {
		resolvedPath = executablePath
	}
	absolutePath, absoluteError := filepath.Abs(resolvedPath)
	if absoluteError == nil {
		resolvedPath = absolutePath
	}
	return ExecutableLocation{
		Directory: filepath.Dir(resolvedPath),
		FileName:  filepath.Base(resolvedPath),
	}
}
