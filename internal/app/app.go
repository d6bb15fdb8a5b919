// Package app sequences counting, rendering and copying of a directory blueprint.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/blueprint/internal/blueprint"
	"github.com/temirov/blueprint/internal/progress"
	"github.com/temirov/blueprint/internal/services/clipboard"
	"github.com/temirov/blueprint/internal/types"
	"github.com/temirov/blueprint/internal/walker"
)

const (
	dependenciesLoadedMessage   = "Libraries loaded successfully.\n"
	rootDirectoryMessageFormat  = "Root directory: %s\n"
	totalItemsMessageFormat     = "Total items to process: %d\n"
	generatedMessageFormat      = "Folder structure generated (%d lines).\n"
	copiedMessage               = "Folder structure copied to clipboard!\n"
	copyFailedMessageFormat     = "Error copying to clipboard: %v\n"
	copyDisabledMessage         = "Clipboard copy disabled; folder structure not copied.\n"
	errorMissingRootMessage     = "app: root directory is empty"
	errorMissingClipboardFormat = "%w: clipboard copier is not configured"
)

// Options configures a single run.
type Options struct {
	Root              string
	SelfFileName      string
	Exclusions        types.Exclusions
	ClipboardDisabled bool
	Progress          progress.Sink
	Clipboard         clipboard.Copier
	Output            io.Writer
	Logger            *zap.Logger
}

// Result describes what a run produced.
type Result struct {
	Root      string
	Total     int
	Blueprint blueprint.Blueprint
	Copied    bool
	CopyError error
}

// Run counts the tree, renders it and copies the blueprint to the clipboard.
// Clipboard failures are reported on Output and do not fail the run.
// Collaborators are checked before any message is written.
func Run(ctx context.Context, options Options) (Result, error) {
	if options.Root == "" {
		return Result{}, fmt.Errorf(errorMissingRootMessage)
	}
	if options.Clipboard == nil && !options.ClipboardDisabled {
		return Result{}, fmt.Errorf(errorMissingClipboardFormat, types.ErrDependencyUnavailable)
	}
	output := options.Output
	if output == nil {
		output = os.Stdout
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Result{Root: options.Root}
	fmt.Fprint(output, dependenciesLoadedMessage)
	fmt.Fprintf(output, rootDirectoryMessageFormat, options.Root)

	recorder := walker.NewRecordingSource(types.TraversalOptions{
		Root:         options.Root,
		Exclusions:   options.Exclusions,
		SelfFileName: options.SelfFileName,
	}, func(message string) {
		logger.Warn(message)
	})

	total, countError := blueprint.Count(ctx, recorder, options.Progress)
	if countError != nil {
		return result, countError
	}
	result.Total = total
	fmt.Fprintf(output, totalItemsMessageFormat, total)

	rendered, renderError := blueprint.Render(ctx, recorder.Snapshot(), total, options.Progress)
	if renderError != nil {
		return result, renderError
	}
	result.Blueprint = rendered
	fmt.Fprintf(output, generatedMessageFormat, len(rendered.Lines))

	if options.ClipboardDisabled {
		fmt.Fprint(output, copyDisabledMessage)
		return result, nil
	}
	if copyError := options.Clipboard.Copy(rendered.String()); copyError != nil {
		result.CopyError = copyError
		fmt.Fprintf(output, copyFailedMessageFormat, copyError)
		logger.Debug("clipboard copy failed", zap.Error(copyError))
		return result, nil
	}
	result.Copied = true
	fmt.Fprint(output, copiedMessage)
	return result, nil
}
