// Package sequence reorganizes timestamped camera frames into numbered
// sequences for time-lapse assembly.
//
// A capture run produces groups of near-simultaneous frames whose names end
// in a signed index suffix ("...+0.jpg", "...+1.jpg"). Collect picks one
// frame per group by that suffix, orders the matches by modification time,
// and links or copies them into the target directory as "0.jpg", "1.jpg", …
// so a video encoder can consume them in capture order.
package sequence

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// ext is the fixed frame extension for both matching and output names.
const ext = ".jpg"

// Options describes one collection run.
type Options struct {
	// SourceDir must exist; relative TargetDir and Subdir resolve under it.
	SourceDir string

	// Subdir, if set, is the directory under SourceDir holding the frames.
	Subdir string

	// Offset selects which frame of each capture group to collect. It is
	// matched against the signed suffix immediately before the extension,
	// rendered with an explicit sign ("+3", "-1").
	Offset int

	// TargetDir receives the numbered sequence. Created if absent. A
	// relative path is resolved against SourceDir.
	TargetDir string

	// Purge removes every entry directly under TargetDir before
	// collecting. Non-recursive.
	Purge bool

	// Silent skips the interactive purge confirmation.
	Silent bool

	// Copy duplicates file bytes instead of creating symlinks. The default
	// symlink mode leaves links that break if the source later moves or is
	// deleted; the caller owns that tradeoff.
	Copy bool
}

// Result reports the outcome of a collection run.
type Result struct {
	// Count is the number of frames placed in the target directory.
	Count int

	// Cancelled is set when the user declined the purge confirmation. It
	// is a normal early exit, not an error; nothing was deleted or
	// created.
	Cancelled bool
}

// Collector performs collection runs. Confirm is consulted before a purge
// deletes anything; a nil Confirm declines, so interactive callers must wire
// one. Out receives one line per created target entry, matching the original
// tool's progress output; nil discards it.
type Collector struct {
	Confirm func(prompt string) (bool, error)
	Out     io.Writer
}

// Collect gathers matching frames into a numbered sequence.
//
// Known limitations, deliberate and documented rather than fixed:
//   - If the purge succeeds and a later step fails, the purged files stay
//     deleted; there is no rollback.
//   - Concurrent runs against the same target directory race between purge
//     and re-population; nothing locks the filesystem.
func (c *Collector) Collect(opts Options) (Result, error) {
	info, err := os.Stat(opts.SourceDir)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrSourceDir, opts.SourceDir)
	}

	target := opts.TargetDir
	if !filepath.IsAbs(target) {
		target = filepath.Join(opts.SourceDir, target)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return Result{}, &OpError{Op: "mkdir", Path: target, Err: err}
	}

	if opts.Purge {
		cancelled, err := c.purge(target, opts.Silent)
		if err != nil {
			return Result{}, err
		}
		if cancelled {
			return Result{Cancelled: true}, nil
		}
	}

	files, err := c.match(opts)
	if err != nil {
		return Result{}, err
	}

	for i, path := range files {
		dst := filepath.Join(target, fmt.Sprintf("%d%s", i, ext))
		if opts.Copy {
			if err := copyFile(path, dst); err != nil {
				return Result{}, err
			}
		} else {
			if err := os.Symlink(path, dst); err != nil {
				return Result{}, &OpError{Op: "symlink", Path: dst, Err: err}
			}
		}
		c.print(dst)
	}

	slog.Debug("collection complete", "count", len(files), "target", target, "copy", opts.Copy)
	return Result{Count: len(files)}, nil
}

// purge deletes every entry directly under target, asking for confirmation
// first unless silent. Returns cancelled=true when the user declines.
func (c *Collector) purge(target string, silent bool) (bool, error) {
	entries, err := os.ReadDir(target)
	if err != nil {
		return false, &OpError{Op: "read", Path: target, Err: err}
	}
	if len(entries) == 0 {
		return false, nil
	}
	if !silent {
		prompt := fmt.Sprintf("All files in target directory %s will be deleted.\nDo you want to continue? (y/n)", target)
		ok := false
		if c.Confirm != nil {
			ok, err = c.Confirm(prompt)
			if err != nil {
				return false, err
			}
		}
		if !ok {
			return true, nil
		}
	}
	for _, entry := range entries {
		path := filepath.Join(target, entry.Name())
		if err := os.Remove(path); err != nil {
			return false, &OpError{Op: "remove", Path: path, Err: err}
		}
	}
	return false, nil
}

// match lists the frames whose names end in the signed offset suffix, sorted
// by modification time ascending. Files sharing an identical modification
// time are ordered by name, so the output numbering is deterministic.
func (c *Collector) match(opts Options) ([]string, error) {
	pattern := filepath.Join(opts.SourceDir, opts.Subdir, fmt.Sprintf("*%+d%s", opts.Offset, ext))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &OpError{Op: "read", Path: pattern, Err: err}
	}

	type entry struct {
		path  string
		mtime int64
	}
	entries := make([]entry, 0, len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &OpError{Op: "read", Path: path, Err: err}
		}
		entries = append(entries, entry{path: path, mtime: info.ModTime().UnixNano()})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].mtime != entries[j].mtime {
			return entries[i].mtime < entries[j].mtime
		}
		return entries[i].path < entries[j].path
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out, nil
}

func (c *Collector) print(line string) {
	if c.Out != nil {
		fmt.Fprintln(c.Out, line)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &OpError{Op: "copy", Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &OpError{Op: "copy", Path: dst, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &OpError{Op: "copy", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &OpError{Op: "copy", Path: dst, Err: err}
	}
	return nil
}
