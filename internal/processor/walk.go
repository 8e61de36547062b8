package processor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bovan/import-sorter/internal/editor"
	"github.com/bovan/import-sorter/internal/logging"
	"github.com/bovan/import-sorter/internal/sorter"
	"github.com/bovan/import-sorter/pkg/types"
)

// SortDirectory walks dir and rewrites every sortable file whose imports are
// out of order. Files are discovered and processed lazily, one at a time,
// and each yields exactly one element on the returned channel. A failed file
// is the stream's final element; nothing after it is touched. The channel is
// closed when the walk ends or ctx is cancelled.
func (s *Service) SortDirectory(ctx context.Context, dir string, cfg *types.Config) (<-chan types.FileSortResult, error) {
	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	ch := make(chan types.FileSortResult)
	go func() {
		defer close(ch)

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if d.IsDir() || !sorter.SupportedFile(path) {
				return nil
			}
			if excluded(dir, path, cfg.General.Exclude) {
				return nil
			}

			res := s.sortFile(ctx, path, cfg)
			select {
			case ch <- res:
			case <-ctx.Done():
				return filepath.SkipAll
			}
			if res.Err != nil {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			select {
			case ch <- types.FileSortResult{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch, nil
}

// sortFile processes one file and writes it back in place when a sort is
// required, preserving the original file mode.
func (s *Service) sortFile(ctx context.Context, path string, cfg *types.Config) types.FileSortResult {
	out := types.FileSortResult{FilePath: path}

	info, err := os.Stat(path)
	if err != nil {
		out.Err = err
		return out
	}

	data, err := os.ReadFile(path)
	if err != nil {
		out.Err = err
		return out
	}

	res, err := s.sortFn(ctx, fileURI(path), string(data), cfg)
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", path, err)
		return out
	}

	if !res.IsSortRequired {
		return out
	}

	after, err := editor.ApplyEditsToText(string(data), sorter.EditsFromResult(res))
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", path, err)
		return out
	}

	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		out.Err = err
		return out
	}

	clog := logging.Component("processor")
	clog.Debug().Str("file", path).Msg("rewrote imports")
	out.Changed = true
	return out
}

// excluded reports whether any exclude glob matches the file, tested against
// both the path relative to the walk root and the full slashed path.
func excluded(root, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	full := filepath.ToSlash(path)

	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, full); err == nil && ok {
			return true
		}
	}
	return false
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
