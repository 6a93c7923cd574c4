package sequence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFrame creates a file with content and a controlled modification time.
func writeFrame(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	return names
}

func TestCollectOrdersByModTime(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	base := time.Now().Add(-2 * time.Hour).Truncate(time.Second)

	// Created out of order on purpose; mtime decides the sequence.
	frames := []struct {
		name  string
		mtime time.Time
	}{
		{"d+1.jpg", base.Add(4 * time.Minute)},
		{"a+1.jpg", base.Add(1 * time.Minute)},
		{"e+1.jpg", base.Add(5 * time.Minute)},
		{"b+1.jpg", base.Add(2 * time.Minute)},
		{"c+1.jpg", base.Add(3 * time.Minute)},
	}
	for _, f := range frames {
		writeFrame(t, filepath.Join(src, f.name), f.name, f.mtime)
	}
	// Frames of other capture positions must not be picked up.
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "decoy", base)
	writeFrame(t, filepath.Join(src, "a+2.jpg"), "decoy", base)
	writeFrame(t, filepath.Join(src, "notes.txt"), "decoy", base)

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Offset: 1, TargetDir: target})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Count)
	assert.False(t, result.Cancelled)

	assert.Equal(t, []string{"0.jpg", "1.jpg", "2.jpg", "3.jpg", "4.jpg"}, listNames(t, target))

	// Sequence position follows modification time, not name order.
	for i, want := range []string{"a+1.jpg", "b+1.jpg", "c+1.jpg", "d+1.jpg", "e+1.jpg"} {
		link, err := os.Readlink(filepath.Join(target, fmt.Sprintf("%d.jpg", i)))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(src, want), link)
	}
}

func TestCollectTieBreakByName(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)

	writeFrame(t, filepath.Join(src, "z+0.jpg"), "z", mtime)
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "a", mtime)

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)

	first, err := os.Readlink(filepath.Join(target, "0.jpg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(src, "a+0.jpg"), first)
}

func TestCollectNegativeOffset(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	mtime := time.Now().Add(-time.Hour)

	writeFrame(t, filepath.Join(src, "frame-1.jpg"), "x", mtime)
	writeFrame(t, filepath.Join(src, "frame+1.jpg"), "decoy", mtime)

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Offset: -1, TargetDir: target})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	link, err := os.Readlink(filepath.Join(target, "0.jpg"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(src, "frame-1.jpg"), link)
}

func TestCollectSubdir(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	sub := filepath.Join(src, "2024-06-01")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mtime := time.Now().Add(-time.Hour)

	writeFrame(t, filepath.Join(sub, "a+0.jpg"), "in", mtime)
	writeFrame(t, filepath.Join(src, "b+0.jpg"), "out", mtime)

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Subdir: "2024-06-01", Offset: 0, TargetDir: target})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestCollectSymlinkResolvesToSource(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	frame := filepath.Join(src, "a+0.jpg")
	writeFrame(t, frame, "before", time.Now().Add(-time.Hour))

	c := &Collector{}
	_, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target})
	require.NoError(t, err)

	linked := filepath.Join(target, "0.jpg")
	info, err := os.Lstat(linked)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "target entry is a symlink")

	// The link tracks the source: changing the original changes what the
	// link resolves to.
	require.NoError(t, os.WriteFile(frame, []byte("after"), 0o644))
	got, err := os.ReadFile(linked)
	require.NoError(t, err)
	assert.Equal(t, "after", string(got))
}

func TestCollectCopyIsIndependent(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	frame := filepath.Join(src, "a+0.jpg")
	writeFrame(t, frame, "original", time.Now().Add(-time.Hour))

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target, Copy: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	copied := filepath.Join(target, "0.jpg")
	info, err := os.Lstat(copied)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink, "target entry is a regular file")

	require.NoError(t, os.WriteFile(frame, []byte("changed"), 0o644))
	got, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func TestCollectPurgeDeclined(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "x", time.Now().Add(-time.Hour))
	stale := filepath.Join(target, "stale.jpg")
	writeFrame(t, stale, "old", time.Now().Add(-time.Hour))

	declined := false
	c := &Collector{
		Confirm: func(string) (bool, error) {
			declined = true
			return false, nil
		},
	}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target, Purge: true})
	require.NoError(t, err)
	assert.True(t, declined, "confirmation was requested")
	assert.True(t, result.Cancelled)
	assert.Zero(t, result.Count)

	// Nothing deleted, nothing created.
	assert.Equal(t, []string{"stale.jpg"}, listNames(t, target))
}

func TestCollectPurgeConfirmed(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "x", time.Now().Add(-time.Hour))
	writeFrame(t, filepath.Join(target, "stale.jpg"), "old", time.Now().Add(-time.Hour))

	c := &Collector{
		Confirm: func(string) (bool, error) { return true, nil },
	}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target, Purge: true})
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []string{"0.jpg"}, listNames(t, target))
}

func TestCollectPurgeSilentSkipsConfirmation(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "x", time.Now().Add(-time.Hour))
	writeFrame(t, filepath.Join(target, "stale.jpg"), "old", time.Now().Add(-time.Hour))

	c := &Collector{
		Confirm: func(string) (bool, error) {
			t.Fatal("confirmation must not be requested in silent mode")
			return false, nil
		},
	}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target, Purge: true, Silent: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []string{"0.jpg"}, listNames(t, target))
}

func TestCollectPurgeEmptyTargetNeedsNoConfirmation(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "x", time.Now().Add(-time.Hour))

	c := &Collector{
		Confirm: func(string) (bool, error) {
			t.Fatal("confirmation must not be requested for an empty target")
			return false, nil
		},
	}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: target, Purge: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestCollectMissingSourceDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	target := filepath.Join(t.TempDir(), "seq")

	c := &Collector{}
	_, err := c.Collect(Options{SourceDir: missing, Offset: 0, TargetDir: target})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceDir)

	// No target directory must be created on a configuration error.
	_, statErr := os.Stat(target)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestCollectNoMatches(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Offset: 7, TargetDir: target})
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, listNames(t, target))
}

func TestCollectRelativeTargetResolvesUnderSource(t *testing.T) {
	src := t.TempDir()
	writeFrame(t, filepath.Join(src, "a+0.jpg"), "x", time.Now().Add(-time.Hour))

	c := &Collector{}
	result, err := c.Collect(Options{SourceDir: src, Offset: 0, TargetDir: "timelapse"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []string{"0.jpg"}, listNames(t, filepath.Join(src, "timelapse")))
}

func TestOpErrorWrapping(t *testing.T) {
	inner := os.ErrPermission
	err := &OpError{Op: "remove", Path: "/x/y", Err: inner}
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "remove /x/y")
}
