package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FilesystemConfig holds configuration for a FilesystemSource.
type FilesystemConfig struct {
	// BaseDir is the base directory to traverse.
	BaseDir string

	// IncludePatterns is a list of glob patterns to include. If empty,
	// all files are included (subject to exclude patterns). Supports
	// ** wildcards for recursive matching.
	IncludePatterns []string

	// ExcludePatterns is a list of glob patterns to exclude. The
	// default excludes are: .git/**
	ExcludePatterns []string
}

// FilesystemSource traverses a local directory and yields its files.
type FilesystemSource struct {
	config FilesystemConfig
}

// NewFilesystemSource creates a filesystem source rooted at
// cfg.BaseDir. Glob patterns are validated up front.
func NewFilesystemSource(cfg FilesystemConfig) (*FilesystemSource, error) {
	if cfg.BaseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	cfg.ExcludePatterns = append([]string{".git/**"}, cfg.ExcludePatterns...)

	for _, pattern := range cfg.IncludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}
	for _, pattern := range cfg.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return &FilesystemSource{config: cfg}, nil
}

// Type returns "filesystem" as the source type.
func (fs *FilesystemSource) Type() string {
	return "filesystem"
}

// Traverse walks the directory tree and yields an item for every
// matching file.
func (fs *FilesystemSource) Traverse(ctx context.Context) (<-chan Item, <-chan error) {
	items := make(chan Item)
	errs := make(chan error, 1)

	go func() {
		defer close(items)
		defer close(errs)

		err := filepath.Walk(fs.config.BaseDir, func(path string, info os.FileInfo, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				return err
			}

			relPath, err := filepath.Rel(fs.config.BaseDir, path)
			if err != nil {
				relPath = path
			}
			if relPath == "." {
				return nil
			}

			// Check exclude patterns first.
			for _, pattern := range fs.config.ExcludePatterns {
				matched, err := doublestar.Match(pattern, relPath)
				if err != nil {
					continue
				}
				if matched {
					if info.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}

			if len(fs.config.IncludePatterns) > 0 {
				included := false
				for _, pattern := range fs.config.IncludePatterns {
					matched, err := doublestar.Match(pattern, relPath)
					if err != nil {
						continue
					}
					if matched {
						included = true
						break
					}
				}
				if !included {
					if info.IsDir() {
						// Descend anyway when a recursive pattern
						// could match files further down.
						for _, pattern := range fs.config.IncludePatterns {
							if strings.Contains(pattern, "**") {
								return nil
							}
						}
						return filepath.SkipDir
					}
					return nil
				}
			}

			if info.IsDir() {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", relPath, err)
			}

			select {
			case items <- Item{Path: relPath, Content: content}:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		if err != nil {
			errs <- err
		}
	}()

	return items, errs
}
