package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/tsfind/internal/fs"
	"github.com/raoulx24/tsfind/internal/logging"
	"github.com/raoulx24/tsfind/internal/match"
)

const tag = "iot_reward_share"

// memFS serves a fixed listing in a fixed order.
type memFS struct {
	entries []fs.DirEntry
	readErr error
}

func (m *memFS) ReadDir(context.Context, string) ([]fs.DirEntry, error) {
	return m.entries, m.readErr
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	return fs.FileInfo{Path: path, IsDir: true}, nil
}

func (m *memFS) CopyFile(context.Context, string, string) error { return nil }
func (m *memFS) Rename(context.Context, string, string) error   { return nil }
func (m *memFS) MkdirAll(string) error                          { return nil }
func (m *memFS) RemoveAll(string) error                         { return nil }

func TestScan(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"iot_reward_share.1700000000000.csv",
		"iot_reward_share.1700000000500.gz",
		"iot_reward_share.1800000000000.gz",
		"iot_reward_share.latest.gz",
		"iot_reward_share",
		"other_file.1700000000000.csv",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "iot_reward_share.1700000000001.d"), 0o755))

	s := New(logging.Nop{}, nil)
	res, err := s.Scan(context.Background(), Request{
		Dir:   dir,
		Tag:   tag,
		Range: match.TimeRange{Start: 1700000000000, End: 1700000001000},
	})
	require.NoError(t, err)

	var names []string
	for _, e := range res.Entries {
		names = append(names, e.Name)
		assert.Equal(t, filepath.Join(dir, e.Name), e.Path)
	}
	assert.ElementsMatch(t, []string{
		"iot_reward_share.1700000000000.csv",
		"iot_reward_share.1700000000500.gz",
	}, names)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, Stats{
		Seen:        7,
		Dirs:        1,
		TagMismatch: 1,
		NoTimestamp: 2,
		OutOfRange:  1,
		Matched:     2,
	}, res.Stats)
}

func TestScanKeepsDirectoryOrder(t *testing.T) {
	m := &memFS{entries: []fs.DirEntry{
		{Name: "iot_reward_share.30.csv"},
		{Name: "iot_reward_share.10.csv"},
		{Name: "iot_reward_share.20.csv"},
	}}

	res, err := New(logging.Nop{}, m).Scan(context.Background(), Request{
		Dir:   "/data",
		Tag:   tag,
		Range: match.TimeRange{Start: 0, End: 100},
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, uint64(30), res.Entries[0].Timestamp)
	assert.Equal(t, uint64(10), res.Entries[1].Timestamp)
	assert.Equal(t, uint64(20), res.Entries[2].Timestamp)
}

func TestScanInvalidDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	s := New(logging.Nop{}, nil)

	_, err := s.Scan(context.Background(), Request{Dir: filepath.Join(dir, "missing"), Tag: tag})
	assert.ErrorIs(t, err, ErrInvalidDirectory)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = s.Scan(context.Background(), Request{Dir: file, Tag: tag})
	assert.ErrorIs(t, err, ErrInvalidDirectory)

	_, err = s.Scan(context.Background(), Request{Dir: "", Tag: tag})
	assert.ErrorIs(t, err, ErrInvalidDirectory)
}

func TestScanReadError(t *testing.T) {
	m := &memFS{readErr: os.ErrPermission}

	_, err := New(logging.Nop{}, m).Scan(context.Background(), Request{Dir: "/data", Tag: tag})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDirectory))
	assert.True(t, errors.Is(err, os.ErrPermission))
}
