package cmd

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acalc/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the Kong variable named key, or fallback if ctx carries
// no Kong context or the variable is undefined.
func kongVar(ctx context.Context, key, fallback string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil || ktx.Model == nil {
		return fallback
	}

	if v, ok := ktx.Model.Vars()[key]; ok {
		return v
	}

	return fallback
}

type (
	outputKey struct{}
	output    struct{ stdout, stderr io.Writer }
)

// WithOutput returns a new context.Context whose commands write results to
// stdout and diagnostics to stderr.
func WithOutput(ctx context.Context, stdout, stderr io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, output{stdout, stderr})
}

func outputFrom(ctx context.Context) output {
	out, ok := ctx.Value(outputKey{}).(output)
	if !ok {
		return output{os.Stdout, os.Stderr}
	}

	if out.stdout == nil {
		out.stdout = io.Discard
	}

	if out.stderr == nil {
		out.stderr = io.Discard
	}

	return out
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		files    []Source
		hasStdin bool
		reader   io.Reader
	}

	// Source is a named input stream.
	Source struct {
		Name string
		io.Reader
	}

	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		All() iter.Seq[Source]
		io.Reader
		io.WriterTo
		io.Closer
	}
)

// stdinName is the name reported for the stdin source.
const stdinName = "<stdin>"

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.files) == 0 && !s.hasStdin }

// Stdin returns os.Stdin if stdin was included as a source, or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return os.Stdin
	}

	return nil
}

// All yields each source file in order, followed by stdin if present.
func (s *sourceFiles) All() iter.Seq[Source] {
	return func(yield func(Source) bool) {
		for _, f := range s.files {
			if !yield(f) {
				return
			}
		}

		if s.hasStdin {
			yield(Source{Name: stdinName, Reader: os.Stdin})
		}
	}
}

func (s *sourceFiles) multi() io.Reader {
	if s.reader == nil {
		var readers []io.Reader
		for src := range s.All() {
			readers = append(readers, src.Reader)
		}

		s.reader = io.MultiReader(readers...)
	}

	return s.reader
}

// Read implements io.Reader by reading from all source files in order,
// including stdin if present.
func (s *sourceFiles) Read(p []byte) (n int, err error) {
	return s.multi().Read(p)
}

// WriteTo implements io.WriterTo by writing all source files to w in order,
// including stdin if present.
func (s *sourceFiles) WriteTo(w io.Writer) (n int64, err error) {
	return io.Copy(w, s.multi())
}

// Close closes every opened file. Stdin is left open.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, f := range s.files {
		if c, ok := f.Reader.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the
// [SourceFiles] that read from the given source paths.
//
// The function deduplicates readers by resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin reader.
// The stdin reader is placed last so it reads after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

// buildSourceFiles constructs a SourceFiles from the given source paths.
// Paths that cannot be opened are logged and skipped.
func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.files = make([]Source, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := stdinFileKey()

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		file, ok := openUniqueFile(src, seen)
		if !ok {
			continue
		}

		srcs.files = append(srcs.files, Source{Name: src, Reader: file})
	}

	// Stdin may have been included via "-" or as a named file such as
	// /dev/stdin. Either way it is read once, last.
	if _, named := seen[stdinKey]; stdinOK && named {
		srcs.hasStdin = true
		srcs.files = dropKey(srcs.files, stdinKey)
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

func stdinFileKey() (fileKey, bool) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// dropKey closes and removes the files identified by key.
func dropKey(files []Source, key fileKey) []Source {
	kept := files[:0]

	for _, f := range files {
		if file, ok := f.Reader.(*os.File); ok {
			info, err := file.Stat()
			if err == nil {
				if k, ok := makeFileKey(info); ok && k == key {
					_ = file.Close()

					continue
				}
			}
		}

		kept = append(kept, f)
	}

	return kept
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns the opened file and true if successful, or nil and false if the file
// is a duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool) {
	skip := func(reason string, err error) (*os.File, bool) {
		log.Warn("skipping source file",
			slog.String("path", path),
			slog.String("reason", reason),
			slog.Any("error", err),
		)

		return nil, false
	}

	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return skip("resolve path", err)
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return skip("resolve symlinks", err)
	}

	// Get file info to extract device and inode.
	info, err := os.Stat(resolved)
	if err != nil {
		return skip("stat", err)
	}

	key, ok := makeFileKey(info)
	if !ok {
		return skip("identify", nil)
	}

	if _, exists := seen[key]; exists {
		log.Debug("skipping duplicate source file", slog.String("path", path))

		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return skip("open", err)
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}

// sourceFilesFrom retrieves the SourceFiles stored in ctx by
// WithSourceFiles. Returns nil if none were stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}
