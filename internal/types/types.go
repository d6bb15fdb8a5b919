// Package types defines every cross‑package data structure used by the blueprint CLI.
package types

import (
	"errors"
	"slices"
)

const (
	// NodeModulesDirectoryName is the npm dependency directory excluded by default.
	NodeModulesDirectoryName = "node_modules"
	// PycacheDirectoryName is the Python bytecode cache directory excluded by default.
	PycacheDirectoryName = "__pycache__"
)

var (
	// ErrDependencyUnavailable reports a collaborator that could not be set up at startup.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrFilesystem reports a directory that could not be read.
	ErrFilesystem = errors.New("filesystem error")
	// ErrClipboard reports a failed clipboard copy.
	ErrClipboard = errors.New("clipboard error")
)

// Exclusions is an immutable set of folder names pruned from traversal.
type Exclusions struct {
	names map[string]struct{}
}

// NewExclusions builds an exclusion set from folder names.
func NewExclusions(folderNames ...string) Exclusions {
	names := make(map[string]struct{}, len(folderNames))
	for _, folderName := range folderNames {
		if folderName == "" {
			continue
		}
		names[folderName] = struct{}{}
	}
	return Exclusions{names: names}
}

// DefaultExclusions returns the fixed exclusion set.
func DefaultExclusions() Exclusions {
	return NewExclusions(NodeModulesDirectoryName, PycacheDirectoryName)
}

// Contains reports whether folderName matches an excluded name exactly.
func (exclusions Exclusions) Contains(folderName string) bool {
	_, excluded := exclusions.names[folderName]
	return excluded
}

// Names returns the excluded folder names in sorted order.
func (exclusions Exclusions) Names() []string {
	names := make([]string, 0, len(exclusions.names))
	for name := range exclusions.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TraversalOptions is the immutable configuration shared by every traversal pass.
type TraversalOptions struct {
	// Root is the directory the walk starts from.
	Root string
	// Exclusions lists folder names pruned at every level.
	Exclusions Exclusions
	// SelfFileName is the running program's file name, dropped from file listings.
	// An empty value keeps every file.
	SelfFileName string
}

// Directory is a single visited directory in a traversal.
type Directory struct {
	Path           string
	Name           string
	Depth          int
	Subdirectories []string
	Files          []string
}

// EntryCount returns the number of counted entries directly inside the directory.
func (directory Directory) EntryCount() int {
	return len(directory.Subdirectories) + len(directory.Files)
}
