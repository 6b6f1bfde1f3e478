// Package fs defines the filesystem abstraction used by tsfind.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Name  string
	Size  int64
	MTime time.Time
	Inode uint64
	IsDir bool
}

// DirEntry is one name returned by ReadDir.
type DirEntry struct {
	Name  string
	IsDir bool
}

type FS interface {
	ReadDir(ctx context.Context, path string) ([]DirEntry, error)
	Stat(path string) (FileInfo, error)
	CopyFile(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}
