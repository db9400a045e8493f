package discover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/rockplan/rockplan/internal/fsops"
	fsopsMocks "github.com/rockplan/rockplan/internal/fsops/mocks"
)

func TestDescriptorsFindsAllSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{
		"rocks/svc-b/rockcraft.yaml",
		"rocks/svc-a/rockcraft.yaml",
		"rocks/svc-a/src/notes.txt",
		".git/rockcraft.yaml",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := os.WriteFile(path, []byte("name: x\nversion: \"1\"\n"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	got, err := Descriptors(root, "rockcraft.yaml", fsops.DefaultOps())
	if err != nil {
		t.Fatalf("Descriptors failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 descriptors, got %v", got)
	}
	if filepath.Base(filepath.Dir(got[0])) != "svc-a" || filepath.Base(filepath.Dir(got[1])) != "svc-b" {
		t.Fatalf("descriptors out of lexical order: %v", got)
	}
}

func TestDescriptorsRootNotDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Descriptors(file, "rockcraft.yaml", fsops.DefaultOps()); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

type fakeFileInfo struct {
	name  string
	isDir bool
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() fs.FileMode  { return fs.ModeDir }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.isDir }
func (f fakeFileInfo) Sys() any           { return nil }

func TestDescriptorsWalkErrorPropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pathOps := fsopsMocks.NewMockPathOps(ctrl)
	osOps := fsopsMocks.NewMockOSOps(ctrl)
	walker := fsopsMocks.NewMockDirWalker(ctrl)

	pathOps.EXPECT().Abs("/rocks").Return("/rocks", nil)
	osOps.EXPECT().Stat("/rocks").Return(fakeFileInfo{name: "rocks", isDir: true}, nil)
	walkErr := errors.New("disk gone")
	walker.EXPECT().WalkDir("/rocks", gomock.Any()).Return(walkErr)

	_, err := Descriptors("/rocks", "rockcraft.yaml", fsops.Ops{Path: pathOps, OS: osOps, Walker: walker})
	if !errors.Is(err, walkErr) {
		t.Fatalf("expected walk error to propagate, got %v", err)
	}
}
