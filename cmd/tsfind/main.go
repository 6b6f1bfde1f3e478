// Package main implements the tsfind command line tool.
// It lists the files of a directory whose names carry a type tag and a
// Unix millisecond timestamp inside a given range.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raoulx24/tsfind/internal/runner"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// rootFlags holds the flags shared by every command.
type rootFlags struct {
	configPath string
	dir        string
	fileType   string
	start      string
	end        string
	format     string
	sort       string
	copyTo     string
	logLevel   string
	logFormat  string
}

// newRootCmd creates the base command. Without flags it asks for every
// parameter interactively.
func newRootCmd() *cobra.Command {
	opts := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tsfind",
		Short: "List files whose embedded timestamp falls in a time range",
		Long: `tsfind scans a directory and prints the files whose name contains a type tag
and whose second period-delimited token is a Unix millisecond timestamp inside
the requested range, e.g. iot_reward_share.1700000000000.gz.

Parameters not given as flags or in the config file are asked for on the terminal.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./tsfind.yaml if present)")
	f.StringVarP(&opts.dir, "dir", "d", "", "directory to scan")
	f.StringVarP(&opts.fileType, "type", "t", "", "file type: option key or tag name")
	f.StringVar(&opts.start, "start", "", "range start, RFC-3339 (e.g. 2024-11-17T15:45:00Z)")
	f.StringVar(&opts.end, "end", "", "range end, RFC-3339 (e.g. 2024-11-17T16:45:00Z)")
	f.StringVarP(&opts.format, "format", "o", "", "output format: text or json")
	f.StringVar(&opts.sort, "sort", "", "order of results: none, asc or desc")
	f.StringVar(&opts.copyTo, "copy-to", "", "copy matching files into this directory")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// runScan resolves the parameters and scans once.
func runScan(cmd *cobra.Command, opts *rootFlags) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, cfg)
	if err != nil {
		return err
	}

	r := runner.New(s.req, s.log, s.scanner, s.presenter, s.exporter, nil)
	_, err = r.Run(cmd.Context())
	return err
}
