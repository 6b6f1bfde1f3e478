// Package scanner reads a directory and keeps the file names that match a
// type tag and time range.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/raoulx24/tsfind/internal/fs"
	"github.com/raoulx24/tsfind/internal/logging"
	"github.com/raoulx24/tsfind/internal/match"
)

// ErrInvalidDirectory is returned when the scan path is missing, is not a
// directory, or cannot be read.
var ErrInvalidDirectory = errors.New("invalid directory path")

// Request describes a single scan.
type Request struct {
	Dir   string
	Tag   string
	Range match.TimeRange
}

// Entry is one matching file.
type Entry struct {
	Name      string
	Path      string
	Timestamp uint64
}

// Stats counts what happened to every directory entry.
type Stats struct {
	Seen        int
	Dirs        int
	TagMismatch int
	NoTimestamp int
	OutOfRange  int
	Matched     int
}

// Result is the outcome of a scan. Entries keep directory order.
type Result struct {
	RunID   string
	Request Request
	Entries []Entry
	Stats   Stats
}

// Scanner applies match.Matches to every file name in a directory.
type Scanner struct {
	fs  fs.FS
	log logging.Logger
}

// New creates a scanner. A nil filesystem means the local OS filesystem.
func New(log logging.Logger, filesystem fs.FS) *Scanner {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Scanner{fs: filesystem, log: log}
}

// ValidateDir checks that dir exists and is a directory.
func (s *Scanner) ValidateDir(dir string) error {
	return validateDir(s.fs, dir)
}

func validateDir(f fs.FS, dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidDirectory)
	}
	info, err := f.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	if !info.IsDir {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}
	return nil
}

// Scan lists req.Dir once and returns the matching files. Malformed names are
// counted and skipped; only directory errors abort the scan.
func (s *Scanner) Scan(ctx context.Context, req Request) (Result, error) {
	res := Result{RunID: uuid.NewString(), Request: req}

	if err := validateDir(s.fs, req.Dir); err != nil {
		return res, err
	}

	s.log.Debug("scanning directory",
		"run", res.RunID,
		"dir", req.Dir,
		"tag", req.Tag,
		"start", req.Range.Start,
		"end", req.Range.End)

	entries, err := s.fs.ReadDir(ctx, req.Dir)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}

	for _, e := range entries {
		res.Stats.Seen++
		if e.IsDir {
			res.Stats.Dirs++
			continue
		}

		if !match.Matches(e.Name, req.Tag, req.Range) {
			s.classifyMiss(&res.Stats, e.Name, req.Tag)
			continue
		}

		ts, _ := match.TimestampOf(e.Name)
		res.Entries = append(res.Entries, Entry{
			Name:      e.Name,
			Path:      filepath.Join(req.Dir, e.Name),
			Timestamp: ts,
		})
		res.Stats.Matched++
	}

	s.log.Info("scan finished",
		"run", res.RunID,
		"dir", req.Dir,
		"seen", res.Stats.Seen,
		"matched", res.Stats.Matched,
		"no_timestamp", res.Stats.NoTimestamp)

	return res, nil
}

// classifyMiss records why a name was rejected, for logging only.
func (s *Scanner) classifyMiss(st *Stats, name, tag string) {
	switch _, ok := match.TimestampOf(name); {
	case !strings.Contains(name, tag):
		st.TagMismatch++
	case !ok:
		st.NoTimestamp++
		s.log.Debug("skipping file without timestamp token", "name", name)
	default:
		st.OutOfRange++
	}
}
