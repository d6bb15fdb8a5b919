package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/temirov/blueprint/internal/types"
)

func writeTree(t *testing.T, root string, relativePaths ...string) {
	t.Helper()
	for _, relativePath := range relativePaths {
		absolutePath := filepath.Join(root, filepath.FromSlash(relativePath))
		if strings.HasSuffix(relativePath, "/") {
			if err := os.MkdirAll(absolutePath, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", absolutePath, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(absolutePath), err)
		}
		if err := os.WriteFile(absolutePath, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", absolutePath, err)
		}
	}
}

func collectDirectories(t *testing.T, options types.TraversalOptions, warn WarnFunc) []types.Directory {
	t.Helper()
	var directories []types.Directory
	walkError := Walk(context.Background(), options, func(directory types.Directory) error {
		directories = append(directories, directory)
		return nil
	}, warn)
	if walkError != nil {
		t.Fatalf("Walk error: %v", walkError)
	}
	return directories
}

func TestWalkVisitsTopDownWithPruning(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b.txt",
		"a/x.txt",
		"a/node_modules/dep/index.js",
		"a/deep/y.txt",
		"node_modules/z.txt",
		"__pycache__/m.pyc",
	)
	directories := collectDirectories(t, types.TraversalOptions{Root: root, Exclusions: types.DefaultExclusions()}, nil)

	type visited struct {
		relative       string
		depth          int
		subdirectories []string
		files          []string
	}
	var actual []visited
	for _, directory := range directories {
		relative, _ := filepath.Rel(root, directory.Path)
		actual = append(actual, visited{
			relative:       filepath.ToSlash(relative),
			depth:          directory.Depth,
			subdirectories: directory.Subdirectories,
			files:          directory.Files,
		})
	}
	expected := []visited{
		{relative: ".", depth: 0, subdirectories: []string{"a"}, files: []string{"b.txt"}},
		{relative: "a", depth: 1, subdirectories: []string{"deep"}, files: []string{"x.txt"}},
		{relative: "a/deep", depth: 2, subdirectories: nil, files: []string{"y.txt"}},
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("unexpected traversal:\n%+v\nexpected:\n%+v", actual, expected)
	}
}

func TestWalkDropsSelfFileAtEveryLevel(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "tool", "keep.txt", "nested/tool", "nested/other.txt")
	directories := collectDirectories(t, types.TraversalOptions{Root: root, SelfFileName: "tool"}, nil)
	for _, directory := range directories {
		for _, fileName := range directory.Files {
			if fileName == "tool" {
				t.Fatalf("self file listed in %s", directory.Path)
			}
		}
	}
	if len(directories) != 2 || len(directories[0].Files) != 1 || len(directories[1].Files) != 1 {
		t.Fatalf("unexpected directories: %+v", directories)
	}
}

func TestWalkRootErrors(t *testing.T) {
	base := t.TempDir()
	regularFile := filepath.Join(base, "file.txt")
	if err := os.WriteFile(regularFile, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	testCases := []struct {
		name string
		root string
	}{
		{name: "missing_root", root: filepath.Join(base, "missing")},
		{name: "root_is_file", root: regularFile},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			walkError := Walk(context.Background(), types.TraversalOptions{Root: testCase.root}, func(types.Directory) error {
				t.Fatalf("visit must not be called")
				return nil
			}, nil)
			if !errors.Is(walkError, types.ErrFilesystem) {
				t.Fatalf("expected ErrFilesystem, got %v", walkError)
			}
		})
	}
}

func TestWalkSkipsUnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := t.TempDir()
	writeTree(t, root, "locked/secret.txt", "open/visible.txt")
	lockedPath := filepath.Join(root, "locked")
	if err := os.Chmod(lockedPath, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedPath, 0o755) })

	var warnings []string
	directories := collectDirectories(t, types.TraversalOptions{Root: root}, func(message string) {
		warnings = append(warnings, message)
	})
	if len(warnings) != 1 || !strings.Contains(warnings[0], lockedPath) {
		t.Fatalf("expected one warning for %s, got %v", lockedPath, warnings)
	}
	if len(directories) != 3 {
		t.Fatalf("expected root, locked and open directories, got %d", len(directories))
	}
	if locked := directories[1]; locked.Path != lockedPath || len(locked.Files) != 0 || len(locked.Subdirectories) != 0 {
		t.Fatalf("expected locked directory visited empty, got %+v", locked)
	}
	if !reflect.DeepEqual(directories[0].Subdirectories, []string{"locked", "open"}) {
		t.Fatalf("unexpected root subdirectories: %v", directories[0].Subdirectories)
	}
}

func TestWalkTreatsDirectorySymlinkAsFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	root := t.TempDir()
	writeTree(t, root, "real/inner.txt")
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "loop")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	directories := collectDirectories(t, types.TraversalOptions{Root: root}, nil)
	if len(directories) != 2 {
		t.Fatalf("expected symlink not to be followed, got %d directories", len(directories))
	}
	if !reflect.DeepEqual(directories[0].Files, []string{"loop"}) {
		t.Fatalf("expected symlink listed as file, got %v", directories[0].Files)
	}
}

func TestWalkStopsOnVisitError(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/1.txt", "b/2.txt")
	stopError := errors.New("stop")
	visits := 0
	walkError := Walk(context.Background(), types.TraversalOptions{Root: root}, func(types.Directory) error {
		visits++
		if visits == 2 {
			return stopError
		}
		return nil
	}, nil)
	if !errors.Is(walkError, stopError) {
		t.Fatalf("expected stop error, got %v", walkError)
	}
	if visits != 2 {
		t.Fatalf("expected 2 visits, got %d", visits)
	}
}

func TestWalkHonorsCanceledContext(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	walkError := Walk(ctx, types.TraversalOptions{Root: root}, func(types.Directory) error { return nil }, nil)
	if !errors.Is(walkError, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", walkError)
	}
}

func TestWalkRequiresVisitor(t *testing.T) {
	if walkError := Walk(context.Background(), types.TraversalOptions{Root: t.TempDir()}, nil, nil); walkError == nil {
		t.Fatalf("expected error for nil visitor")
	}
}

func TestSnapshotReplaysIndependentCopies(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/1.txt", "2.txt")
	snapshot, collectError := Collect(context.Background(), types.TraversalOptions{Root: root}, nil)
	if collectError != nil {
		t.Fatalf("Collect error: %v", collectError)
	}
	if snapshot.Len() != 2 {
		t.Fatalf("expected 2 buffered directories, got %d", snapshot.Len())
	}
	mutate := func(directory types.Directory) error {
		if len(directory.Files) > 0 {
			directory.Files[0] = "mutated"
		}
		return nil
	}
	if err := snapshot.Walk(context.Background(), mutate); err != nil {
		t.Fatalf("replay error: %v", err)
	}
	var files []string
	if err := snapshot.Walk(context.Background(), func(directory types.Directory) error {
		files = append(files, directory.Files...)
		return nil
	}); err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"2.txt", "1.txt"}) {
		t.Fatalf("snapshot altered by visitor: %v", files)
	}
}

func TestDirectoryDepth(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	testCases := []struct {
		path  string
		depth int
	}{
		{path: root, depth: 0},
		{path: filepath.Join(root, "a"), depth: 1},
		{path: filepath.Join(root, "a", "b", "c"), depth: 3},
	}
	for _, testCase := range testCases {
		if depth := directoryDepth(root, testCase.path); depth != testCase.depth {
			t.Fatalf("directoryDepth(%s) = %d, expected %d", testCase.path, depth, testCase.depth)
		}
	}
}

func TestRecordingSourceKeepsCompletedWalkOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/1.txt", "b/2.txt")
	recorder := NewRecordingSource(types.TraversalOptions{Root: root}, nil)
	if recorder.Snapshot() != nil {
		t.Fatalf("expected no snapshot before walking")
	}

	abortError := errors.New("abort")
	if err := recorder.Walk(context.Background(), func(types.Directory) error { return abortError }); !errors.Is(err, abortError) {
		t.Fatalf("expected abort error, got %v", err)
	}
	if recorder.Snapshot() != nil {
		t.Fatalf("expected aborted walk not to be recorded")
	}

	visited := 0
	if err := recorder.Walk(context.Background(), func(types.Directory) error {
		visited++
		return nil
	}); err != nil {
		t.Fatalf("Walk error: %v", err)
	}
	if recorder.Snapshot() == nil || recorder.Snapshot().Len() != visited || visited != 3 {
		t.Fatalf("expected snapshot of 3 directories, visited %d", visited)
	}
}
