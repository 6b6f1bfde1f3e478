package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/tsfind/internal/match"
	"github.com/raoulx24/tsfind/internal/present"
	"github.com/raoulx24/tsfind/internal/prompt"
	"github.com/raoulx24/tsfind/internal/scanner"
	"github.com/raoulx24/tsfind/pkg/version"
)

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range []string{
		"iot_reward_share.1731858300000.gz",
		"iot_reward_share.1731861900000.gz",
		"iot_reward_share.1731861900001.gz",
		"another_file_type.1731858300000.gz",
		"iot_reward_share.manifest",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootWithFlags(t *testing.T) {
	dir := fixtureDir(t)

	out, _, err := execute(t, "",
		"--dir", dir,
		"--type", "1",
		"--start", "2024-11-17T15:45:00Z",
		"--end", "2024-11-17T16:45:00Z",
		"--sort", "asc")
	require.NoError(t, err)

	assert.Contains(t, out, "Processing files in directory: "+dir)
	assert.Contains(t, out, "Processing files between timestamps: 1731858300000 and 1731861900000")
	assert.True(t, strings.HasSuffix(out, present.Header+"\n"+
		"iot_reward_share.1731858300000.gz\n"+
		"iot_reward_share.1731861900000.gz\n"), out)
}

func TestRootInteractive(t *testing.T) {
	dir := fixtureDir(t)
	stdin := dir + "\n2\n2024-11-17T15:45:00Z\n2024-11-17T16:45:00Z\n"

	out, _, err := execute(t, stdin)
	require.NoError(t, err)

	assert.Contains(t, out, "Enter the path to the directory containing the files:")
	assert.True(t, strings.HasSuffix(out, present.Header+"\nanother_file_type.1731858300000.gz\n"), out)
}

func TestRootDefaultsUnknownType(t *testing.T) {
	dir := fixtureDir(t)

	out, _, err := execute(t, "",
		"--dir", dir,
		"--type", "9",
		"--start", "2024-11-17T16:45:00Z",
		"--end", "2024-11-17T16:45:00Z")
	require.NoError(t, err)

	assert.Contains(t, out, "Invalid option. Defaulting to 'iot_reward_share'.")
	assert.True(t, strings.HasSuffix(out, present.Header+"\niot_reward_share.1731861900000.gz\n"), out)
}

func TestRootJSON(t *testing.T) {
	dir := fixtureDir(t)

	out, errOut, err := execute(t, "",
		"--dir", dir,
		"--type", "iot_reward_share",
		"--start", "2024-11-17T15:45:00Z",
		"--end", "2024-11-17T16:45:00Z",
		"--format", "json",
		"--sort", "desc")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Processing files in directory")

	var doc struct {
		Files []struct {
			Name string `json:"name"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "iot_reward_share.1731861900000.gz", doc.Files[0].Name)
}

func TestRootInvalidDirectory(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "missing")+"\n")
	assert.ErrorIs(t, err, scanner.ErrInvalidDirectory)
}

func TestRootInvalidTimestamp(t *testing.T) {
	dir := fixtureDir(t)

	_, _, err := execute(t, "not-a-date\n", "--dir", dir, "--type", "1")
	assert.ErrorIs(t, err, prompt.ErrInvalidTimestamp)
	assert.ErrorIs(t, err, match.ErrInvalidFormat)
}

func TestRootCopyTo(t *testing.T) {
	dir := fixtureDir(t)
	dst := t.TempDir()

	_, _, err := execute(t, "",
		"--dir", dir,
		"--type", "1",
		"--start", "2024-11-17T15:45:00Z",
		"--end", "2024-11-17T15:45:00Z",
		"--copy-to", dst)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dst, "iot_reward_share-1731858300000-1731858300000", "iot_reward_share.1731858300000.gz"))
	assert.NoError(t, err)
}

func TestRootConfigFile(t *testing.T) {
	dir := fixtureDir(t)
	cfgPath := filepath.Join(t.TempDir(), "tsfind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
scan:
  dir: `+dir+`
  type: "1"
  start: "2024-11-17T16:45:00Z"
  end: "2024-11-17T17:45:00Z"
output:
  sort: asc
`), 0o644))

	out, _, err := execute(t, "", "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, present.Header+
		"\niot_reward_share.1731861900000.gz\niot_reward_share.1731861900001.gz\n"), out)
}

func TestRootMissingExplicitConfig(t *testing.T) {
	_, _, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootRunErrorReportedOnce(t *testing.T) {
	dir := fixtureDir(t)
	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, nil, 0o644))

	_, errOut, err := execute(t, "",
		"--dir", dir,
		"--type", "1",
		"--start", "2024-11-17T15:45:00Z",
		"--end", "2024-11-17T16:45:00Z",
		"--copy-to", notADir)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(errOut, err.Error()), errOut)
}

func TestWatchRejectsCopyToWatchedDir(t *testing.T) {
	dir := fixtureDir(t)

	_, _, err := execute(t, "", "watch",
		"--dir", dir,
		"--type", "1",
		"--start", "2024-11-17T15:45:00Z",
		"--end", "2024-11-17T16:45:00Z",
		"--copy-to", dir+string(filepath.Separator)+".",
		"--mode", "cron",
		"--schedule", "@every 1h")
	require.Error(t, err)
	assert.ErrorIs(t, err, errCopyToWatched)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--json")
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Version, info.Version)
}
