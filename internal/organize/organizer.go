// Package organize sorts the files of a directory tree into category
// folders by extension. It is plain filesystem plumbing: no part of it
// touches the vault or anything secret.
package organize

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/keep-cli/keep/internal/logging"
)

// Options controls an organizer run
type Options struct {
	// DryRun previews every decision without creating or moving anything
	DryRun bool
	// IncludeHidden also organizes dotfiles and descends into dot-directories
	IncludeHidden bool
	// Categories overrides the extension mapping; nil uses DefaultCategories
	Categories map[string]string
	// SkipPaths are absolute paths left untouched (the active log file)
	SkipPaths []string
	// Logger receives structured events; nil disables logging
	Logger *logging.Logger
}

// Move records one file relocation (planned, in dry-run mode)
type Move struct {
	Source string
	Target string
}

// FileError records a per-file failure; the run continues past it
type FileError struct {
	Path string
	Err  error
}

// Summary are the run totals reported to the user
type Summary struct {
	Scanned int
	Moved   int
	Skipped int
	Errors  int
}

// Result is the full outcome of an organizer run
type Result struct {
	Moves   []Move
	Skipped []string
	Errors  []FileError
	Summary Summary
}

type organizer struct {
	source     string
	categories map[string]string
	skip       map[string]bool
	opts       Options
	log        *logging.Logger
}

// Organize sorts every file under source into category folders created
// directly beneath it. Files already inside their category folder are left
// alone; name collisions get an incrementing " (N)" suffix. Per-file
// failures are collected in the result, not fatal.
func Organize(source string, opts Options) (*Result, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	fi, err := os.Stat(absSource)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("source directory does not exist: %s", source)
		}
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", source)
	}

	categories := opts.Categories
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	skip := make(map[string]bool, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	o := &organizer{
		source:     absSource,
		categories: categories,
		skip:       skip,
		opts:       opts,
		log:        opts.Logger,
	}
	return o.run()
}

func (o *organizer) run() (*Result, error) {
	result := &Result{}

	// Snapshot the file list up front so files moved during the run are
	// never revisited.
	files, skippedHidden, err := o.collect()
	if err != nil {
		return nil, err
	}
	result.Skipped = skippedHidden

	for _, path := range files {
		result.Summary.Scanned++
		if err := o.placeFile(path, result); err != nil {
			o.event(logging.LevelError, "organize.error", err.Error(), map[string]interface{}{
				"path": path,
			})
			result.Errors = append(result.Errors, FileError{Path: path, Err: err})
		}
	}

	result.Summary.Moved = len(result.Moves)
	result.Summary.Skipped = len(result.Skipped)
	result.Summary.Errors = len(result.Errors)

	o.event(logging.LevelInfo, "organize.summary", "run complete", map[string]interface{}{
		"scanned": result.Summary.Scanned,
		"moved":   result.Summary.Moved,
		"skipped": result.Summary.Skipped,
		"errors":  result.Summary.Errors,
		"dry_run": o.opts.DryRun,
	})

	return result, nil
}

// collect walks the tree and returns the files to process plus the hidden
// paths skipped. Symlinks are never followed or moved.
func (o *organizer) collect() (files []string, skipped []string, err error) {
	walkErr := filepath.WalkDir(o.source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		hidden := strings.HasPrefix(name, ".") && path != o.source

		if d.IsDir() {
			if hidden && !o.opts.IncludeHidden {
				skipped = append(skipped, path)
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if o.skip[path] {
			return nil
		}
		if hidden && !o.opts.IncludeHidden {
			skipped = append(skipped, path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("failed to scan source: %w", walkErr)
	}
	return files, skipped, nil
}

func (o *organizer) placeFile(path string, result *Result) error {
	category := CategoryFor(filepath.Ext(path), o.categories)
	targetDir := filepath.Join(o.source, category)
	target := filepath.Join(targetDir, filepath.Base(path))

	// Already in its category folder
	if filepath.Dir(path) == targetDir {
		return nil
	}

	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		o.event(logging.LevelInfo, "organize.mkdir", "creating category directory", map[string]interface{}{
			"dir": targetDir,
		})
		if !o.opts.DryRun {
			if err := os.MkdirAll(targetDir, 0o755); err != nil {
				return fmt.Errorf("failed to create category directory: %w", err)
			}
		}
	}

	if _, err := os.Lstat(target); err == nil {
		resolved := resolveConflict(target)
		o.event(logging.LevelInfo, "organize.conflict", "target exists, renaming", map[string]interface{}{
			"target":   target,
			"resolved": resolved,
		})
		target = resolved
	}

	o.event(logging.LevelInfo, "organize.move", "moving file", map[string]interface{}{
		"src":     path,
		"dst":     target,
		"dry_run": o.opts.DryRun,
	})

	if !o.opts.DryRun {
		if err := moveFile(path, target); err != nil {
			return err
		}
	}
	result.Moves = append(result.Moves, Move{Source: path, Target: target})
	return nil
}

func (o *organizer) event(level logging.Level, eventType, message string, fields map[string]interface{}) {
	if o.log == nil {
		return
	}
	o.log.Log(level, eventType, message, fields)
}

// resolveConflict appends " (1)", " (2)", ... before the extension until
// the name is free
func resolveConflict(target string) string {
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// rename fails (cross-device moves).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create target file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to close target file: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}
