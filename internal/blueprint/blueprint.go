// Package blueprint counts and renders directory trees as indented text.
package blueprint

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/temirov/blueprint/internal/progress"
	"github.com/temirov/blueprint/internal/types"
	"github.com/temirov/blueprint/internal/walker"
)

const (
	countingDescription   = "Counting items"
	generatingDescription = "Generating folder structure"
	progressUnit          = "item"

	branchConnector     = "├── "
	lastBranchConnector = "└── "
	indentSegment       = "│   "
	directorySuffix     = "/"
	lineSeparator       = "\n"
)

// Blueprint is the ordered list of rendered lines.
type Blueprint struct {
	Lines []string
}

// String joins the lines with newlines.
func (blueprint Blueprint) String() string {
	return strings.Join(blueprint.Lines, lineSeparator)
}

// Count returns the number of directories and files below the root, excluding the root itself.
func Count(ctx context.Context, source walker.Source, sink progress.Sink) (int, error) {
	bar := resolveSink(sink).Start(countingDescription, progressUnit, progress.UnknownTotal)
	defer bar.Finish()

	total := 0
	walkError := source.Walk(ctx, func(directory types.Directory) error {
		entries := directory.EntryCount()
		total += entries
		bar.Add(entries)
		return nil
	})
	if walkError != nil {
		return 0, walkError
	}
	return total, nil
}

// Render builds the blueprint. The total only bounds the progress display.
func Render(ctx context.Context, source walker.Source, total int, sink progress.Sink) (Blueprint, error) {
	bar := resolveSink(sink).Start(generatingDescription, progressUnit, total)
	defer bar.Finish()

	var lines []string
	walkError := source.Walk(ctx, func(directory types.Directory) error {
		indent := ""
		if directory.Depth > 1 {
			indent = strings.Repeat(indentSegment, directory.Depth-1)
		}

		if directory.Depth == 0 {
			lines = append(lines, rootName(directory)+directorySuffix)
		} else {
			lines = append(lines, indent+branchConnector+directory.Name+directorySuffix)
			bar.Add(1)
		}

		fileIndent := indent
		if directory.Depth > 0 {
			fileIndent += indentSegment
		}
		fileNames := slices.Clone(directory.Files)
		slices.Sort(fileNames)
		for fileIndex, fileName := range fileNames {
			connector := branchConnector
			if fileIndex == len(fileNames)-1 {
				connector = lastBranchConnector
			}
			lines = append(lines, fileIndent+connector+fileName)
			bar.Add(1)
		}
		return nil
	})
	if walkError != nil {
		return Blueprint{}, walkError
	}
	return Blueprint{Lines: lines}, nil
}

func rootName(directory types.Directory) string {
	trimmed := strings.TrimRight(directory.Name, string(filepath.Separator))
	if trimmed == "" && directory.Path != "" {
		trimmed = strings.TrimRight(filepath.VolumeName(directory.Path), string(filepath.Separator))
	}
	return trimmed
}

func resolveSink(sink progress.Sink) progress.Sink {
	if sink == nil {
		return progress.Noop{}
	}
	return sink
}
