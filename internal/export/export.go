// Package export copies matched files into a destination directory.
package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raoulx24/tsfind/internal/fs"
	"github.com/raoulx24/tsfind/internal/logging"
	"github.com/raoulx24/tsfind/internal/scanner"
)

// Exporter writes each scan result into its own directory under root.
type Exporter struct {
	root string
	fs   fs.FS
	log  logging.Logger
}

// New creates an exporter. A nil filesystem means the local OS filesystem.
func New(root string, log logging.Logger, filesystem fs.FS) *Exporter {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Exporter{root: root, fs: filesystem, log: log}
}

// TmpPrefix marks an export that is still being written.
const TmpPrefix = ".tmp-"

// DirName is the directory a request is exported to, relative to the root.
func DirName(r scanner.Request) string {
	return fmt.Sprintf("%s-%d-%d", r.Tag, r.Range.Start, r.Range.End)
}

// Export copies every entry into <root>/<DirName> atomically: files are
// written to a temp directory that is renamed into place once complete.
// An existing export with the same name is replaced.
func (e *Exporter) Export(ctx context.Context, res scanner.Result) (string, error) {
	name := DirName(res.Request)
	tmpDir := filepath.Join(e.root, TmpPrefix+name)
	finalDir := filepath.Join(e.root, name)
	e.log.Debug("exporting", "run", res.RunID, "tmpDir", tmpDir, "finalDir", finalDir, "files", len(res.Entries))

	if err := e.fs.RemoveAll(tmpDir); err != nil {
		return "", fmt.Errorf("clearing tmp dir: %w", err)
	}
	if err := e.fs.MkdirAll(tmpDir); err != nil {
		return "", fmt.Errorf("creating tmp dir: %w", err)
	}

	for _, entry := range res.Entries {
		dst := filepath.Join(tmpDir, entry.Name)
		if err := e.fs.CopyFile(ctx, entry.Path, dst); err != nil {
			_ = e.fs.RemoveAll(tmpDir)
			return "", fmt.Errorf("copying %s: %w", entry.Name, err)
		}
	}

	if err := e.fs.RemoveAll(finalDir); err != nil {
		_ = e.fs.RemoveAll(tmpDir)
		return "", fmt.Errorf("replacing previous export: %w", err)
	}
	if err := e.fs.Rename(ctx, tmpDir, finalDir); err != nil {
		_ = e.fs.RemoveAll(tmpDir)
		return "", fmt.Errorf("finalizing export: %w", err)
	}

	e.log.Info("export complete", "run", res.RunID, "dir", finalDir, "files", len(res.Entries))
	return finalDir, nil
}
