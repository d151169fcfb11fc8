package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// LocalProvider implements Provider for a project rooted at a local
// directory. Useful for already-cloned working copies and for tests.
type LocalProvider struct {
	root string
}

// NewLocalProvider returns a provider rooted at dir. The directory must
// exist at the time of the first listing, not at construction.
func NewLocalProvider(dir string) *LocalProvider {
	return &LocalProvider{root: dir}
}

// ListFiles walks the directory tree rooted at the provider's root.
func (p *LocalProvider) ListFiles(ctx context.Context) ([]FileEntry, error) {
	var entries []FileEntry
	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == p.root {
			return nil
		}
		rel, err := filepath.Rel(p.root, path)
		if err != nil {
			return err
		}
		entry := FileEntry{Path: filepath.ToSlash(rel)}
		if d.IsDir() {
			entry.Kind = KindDirectory
		} else if d.Type().IsRegular() {
			entry.Kind = KindFile
			if info, err := d.Info(); err == nil {
				entry.Size = uint64(info.Size())
			}
		} else {
			return nil // skip symlinks and other special files
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrUnavailable, p.root, err)
	}
	return entries, nil
}

// ReadFile reads one file relative to the root. Missing or unreadable
// files yield empty content.
func (p *LocalProvider) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(p.root, filepath.FromSlash(path)))
	if err != nil {
		slog.WarnContext(ctx, "failed to read file", "path", path, "error", err)
		return nil, nil
	}
	return content, nil
}

// MaterializeWorkingCopy copies the tree into a fresh temporary directory,
// so destructive transforms never touch the original.
func (p *LocalProvider) MaterializeWorkingCopy(ctx context.Context) (string, error) {
	workDir, err := os.MkdirTemp("", "greenopt-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating working copy dir: %v", ErrUnavailable, err)
	}
	if err := os.CopyFS(workDir, os.DirFS(p.root)); err != nil {
		os.RemoveAll(workDir)
		return "", fmt.Errorf("%w: copying %s: %v", ErrUnavailable, p.root, err)
	}
	slog.InfoContext(ctx, "materialized working copy", "dir", workDir)
	return workDir, nil
}
