// Package source abstracts where a project's file tree comes from.
//
// The optimizer core only ever sees the Provider interface; whether the tree
// is fetched from the GitHub API or read from a local directory is decided
// by the caller.
package source

import (
	"context"
	"errors"
)

// ErrUnavailable indicates that the source itself cannot be listed or
// materialized. It is fatal for an optimization run, unlike individual
// file read failures which yield empty content.
var ErrUnavailable = errors.New("source unavailable")

// FileKind distinguishes regular files from directories in a listing.
type FileKind string

const (
	KindFile      FileKind = "file"
	KindDirectory FileKind = "directory"
)

// FileEntry describes one entry of a project listing. Path is
// project-relative and forward-slash separated; identity is Path.
type FileEntry struct {
	Path string   `json:"path"`
	Kind FileKind `json:"kind"`
	Size uint64   `json:"size"`
}

// IsFile reports whether the entry is a regular file.
func (e FileEntry) IsFile() bool {
	return e.Kind == KindFile
}

// Provider supplies a project's file tree.
//
// ReadFile returns empty content (and no error) for files that cannot be
// fetched; callers must tolerate that. ListFiles and MaterializeWorkingCopy
// failures wrap ErrUnavailable.
type Provider interface {
	// ListFiles returns the full recursive listing, files and directories.
	ListFiles(ctx context.Context) ([]FileEntry, error)

	// ReadFile returns the full content of one file.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// MaterializeWorkingCopy produces a local, mutable copy of the tree and
	// returns its root directory. The caller owns the directory and is
	// responsible for removing it.
	MaterializeWorkingCopy(ctx context.Context) (string, error)
}
