package walker

import (
	"context"
	"fmt"
	"slices"

	"github.com/temirov/blueprint/internal/types"
)

// Source yields directories in traversal order.
type Source interface {
	Walk(ctx context.Context, visit VisitFunc) error
}

// FileSystemSource walks the live filesystem on every call.
type FileSystemSource struct {
	options types.TraversalOptions
	warn    WarnFunc
}

// NewFileSystemSource constructs a Source that performs a fresh walk per call.
func NewFileSystemSource(options types.TraversalOptions, warn WarnFunc) *FileSystemSource {
	return &FileSystemSource{options: options, warn: warn}
}

// Walk performs a fresh traversal.
func (source *FileSystemSource) Walk(ctx context.Context, visit VisitFunc) error {
	return Walk(ctx, source.options, visit, source.warn)
}

// Snapshot is a buffered traversal that can be replayed any number of times.
type Snapshot struct {
	directories []types.Directory
}

// RecordingSource walks the live filesystem and buffers what it visited,
// so a later pass can replay exactly the same tree.
type RecordingSource struct {
	options  types.TraversalOptions
	warn     WarnFunc
	snapshot *Snapshot
}

// NewRecordingSource constructs a Source that records its most recent walk.
func NewRecordingSource(options types.TraversalOptions, warn WarnFunc) *RecordingSource {
	return &RecordingSource{options: options, warn: warn}
}

// Walk performs a fresh traversal, replacing any previous recording.
// The recording is kept only when the walk completes.
func (source *RecordingSource) Walk(ctx context.Context, visit VisitFunc) error {
	if visit == nil {
		return fmt.Errorf(errorNilVisitorMessage)
	}
	recorded := &Snapshot{}
	walkError := Walk(ctx, source.options, func(directory types.Directory) error {
		recorded.directories = append(recorded.directories, cloneDirectory(directory))
		return visit(directory)
	}, source.warn)
	if walkError != nil {
		return walkError
	}
	source.snapshot = recorded
	return nil
}

// Snapshot returns the last completed walk, or nil before one has completed.
func (source *RecordingSource) Snapshot() *Snapshot {
	return source.snapshot
}

// Collect walks the tree once and buffers every visited directory.
func Collect(ctx context.Context, options types.TraversalOptions, warn WarnFunc) (*Snapshot, error) {
	recorder := NewRecordingSource(options, warn)
	if collectError := recorder.Walk(ctx, func(types.Directory) error { return nil }); collectError != nil {
		return nil, collectError
	}
	return recorder.Snapshot(), nil
}

// Len returns the number of buffered directories.
func (snapshot *Snapshot) Len() int {
	return len(snapshot.directories)
}

// Walk replays the buffered directories in their original order.
// Visitors receive copies and cannot alter later replays.
func (snapshot *Snapshot) Walk(ctx context.Context, visit VisitFunc) error {
	if visit == nil {
		return fmt.Errorf(errorNilVisitorMessage)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, directory := range snapshot.directories {
		if contextError := ctx.Err(); contextError != nil {
			return contextError
		}
		if visitError := visit(cloneDirectory(directory)); visitError != nil {
			return visitError
		}
	}
	return nil
}

func cloneDirectory(directory types.Directory) types.Directory {
	cloned := directory
	cloned.Subdirectories = slices.Clone(directory.Subdirectories)
	cloned.Files = slices.Clone(directory.Files)
	return cloned
}

var (
	_ Source = (*FileSystemSource)(nil)
	_ Source = (*RecordingSource)(nil)
	_ Source = (*Snapshot)(nil)
)
