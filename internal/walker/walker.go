// Package walker enumerates a directory subtree top-down, pruning excluded folders before descent.
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/blueprint/internal/types"
)

const (
	errorNilVisitorMessage        = "walker: visit function is nil"
	errorAbsoluteRootFormat       = "%w: resolving absolute path for %s: %w"
	errorStatRootFormat           = "%w: stat %s: %w"
	errorRootNotDirectoryFormat   = "%w: %s is not a directory"
	errorReadRootFormat           = "%w: reading directory %s: %w"
	warningSkipSubdirectoryFormat = "Warning: Skipping subdirectory %s due to error: %v"
)

// VisitFunc receives every visited directory. Returning an error stops the walk.
type VisitFunc func(directory types.Directory) error

// WarnFunc receives non-fatal traversal warnings.
type WarnFunc func(message string)

type walkState struct {
	ctx     context.Context
	root    string
	options types.TraversalOptions
	visit   VisitFunc
	warn    WarnFunc
}

// Walk visits the directory tree rooted at options.Root depth-first, parent before children.
// Each directory is reported with its filtered subdirectory names and its file names in
// directory-listing order. Subdirectories that cannot be read are reported through warn
// and visited as empty; a root that cannot be read fails the walk with types.ErrFilesystem.
func Walk(ctx context.Context, options types.TraversalOptions, visit VisitFunc, warn WarnFunc) error {
	if visit == nil {
		return fmt.Errorf(errorNilVisitorMessage)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if warn == nil {
		warn = func(string) {}
	}

	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return fmt.Errorf(errorAbsoluteRootFormat, types.ErrFilesystem, options.Root, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return fmt.Errorf(errorStatRootFormat, types.ErrFilesystem, absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirectoryFormat, types.ErrFilesystem, absoluteRoot)
	}
	rootEntries, readError := os.ReadDir(absoluteRoot)
	if readError != nil {
		return fmt.Errorf(errorReadRootFormat, types.ErrFilesystem, absoluteRoot, readError)
	}

	state := &walkState{
		ctx:     ctx,
		root:    absoluteRoot,
		options: options,
		visit:   visit,
		warn:    warn,
	}
	return state.walkDirectory(absoluteRoot, rootEntries)
}

func (state *walkState) walkDirectory(directoryPath string, entries []os.DirEntry) error {
	if contextError := state.ctx.Err(); contextError != nil {
		return contextError
	}

	directory := types.Directory{
		Path:  directoryPath,
		Name:  filepath.Base(directoryPath),
		Depth: directoryDepth(state.root, directoryPath),
	}
	for _, entry := range entries {
		entryName := entry.Name()
		if entry.IsDir() {
			if state.options.Exclusions.Contains(entryName) {
				continue
			}
			directory.Subdirectories = append(directory.Subdirectories, entryName)
			continue
		}
		if state.options.SelfFileName != "" && entryName == state.options.SelfFileName {
			continue
		}
		directory.Files = append(directory.Files, entryName)
	}

	if visitError := state.visit(directory); visitError != nil {
		return visitError
	}

	for _, subdirectoryName := range directory.Subdirectories {
		subdirectoryPath := filepath.Join(directoryPath, subdirectoryName)
		subdirectoryEntries, readError := os.ReadDir(subdirectoryPath)
		if readError != nil {
			// The directory is still visited, empty, so counts and lines stay in step.
			state.warn(fmt.Sprintf(warningSkipSubdirectoryFormat, subdirectoryPath, readError))
			subdirectoryEntries = nil
		}
		if walkError := state.walkDirectory(subdirectoryPath, subdirectoryEntries); walkError != nil {
			return walkError
		}
	}
	return nil
}

// directoryDepth returns the number of path segments between root and path.
func directoryDepth(root string, path string) int {
	relativePath, relativeError := filepath.Rel(root, path)
	if relativeError != nil || relativePath == "." {
		return 0
	}
	return strings.Count(relativePath, string(filepath.Separator)) + 1
}
