package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raoulx24/tsfind/internal/config"
	"github.com/raoulx24/tsfind/internal/export"
	"github.com/raoulx24/tsfind/internal/logging"
	"github.com/raoulx24/tsfind/internal/match"
	"github.com/raoulx24/tsfind/internal/present"
	"github.com/raoulx24/tsfind/internal/prompt"
	"github.com/raoulx24/tsfind/internal/scanner"
)

// logLevelEnv overrides logging.level from the config file.
const logLevelEnv = "TSFIND_LOG_LEVEL"

// session is everything a scan needs once the parameters are known.
type session struct {
	log       *logging.SlogLogger
	req       scanner.Request
	scanner   *scanner.Scanner
	presenter *present.Presenter
	exporter  *export.Exporter
}

// loadConfig reads the config file and lets flags that were set override it.
func loadConfig(cmd *cobra.Command, opts *rootFlags) (*config.Config, error) {
	path, optional := opts.configPath, false
	if path == "" {
		path, optional = config.DefaultPath, true
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}

	if lvl := os.Getenv(logLevelEnv); lvl != "" {
		cfg.Logging.Level = lvl
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	set("dir", &cfg.Scan.Dir, opts.dir)
	set("type", &cfg.Scan.Type, opts.fileType)
	set("start", &cfg.Scan.Start, opts.start)
	set("end", &cfg.Scan.End, opts.end)
	set("format", &cfg.Output.Format, opts.format)
	set("sort", &cfg.Output.Sort, opts.sort)
	set("copy-to", &cfg.Output.CopyTo, opts.copyTo)
	set("log-level", &cfg.Logging.Level, opts.logLevel)
	set("log-format", &cfg.Logging.Format, opts.logFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession resolves the scan parameters, asking on the terminal for the
// ones cfg leaves empty. Questions go to stderr when stdout carries JSON.
func newSession(cmd *cobra.Command, cfg *config.Config) (*session, error) {
	log := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	out := cmd.OutOrStdout()
	notices := out
	if cfg.Output.Format == present.FormatJSON {
		notices = cmd.ErrOrStderr()
	}

	sc := scanner.New(log, nil)
	p := prompt.New(cmd.InOrStdin(), notices)

	req, err := resolveRequest(cfg, p, sc, notices)
	if err != nil {
		return nil, err
	}

	pr, err := present.New(out, cfg.Output.Format, cfg.Output.Sort)
	if err != nil {
		return nil, err
	}

	s := &session{
		log:       log,
		req:       req,
		scanner:   sc,
		presenter: pr,
	}
	if cfg.Output.CopyTo != "" {
		s.exporter = export.New(cfg.Output.CopyTo, log, nil)
	}
	return s, nil
}

// resolveRequest fills directory, tag and range in the order the questions
// are asked. The first invalid answer ends the run.
func resolveRequest(cfg *config.Config, p *prompt.Prompter, sc *scanner.Scanner, notices io.Writer) (scanner.Request, error) {
	var req scanner.Request

	if cfg.Scan.Dir != "" {
		if err := sc.ValidateDir(cfg.Scan.Dir); err != nil {
			return req, err
		}
		req.Dir = cfg.Scan.Dir
	} else {
		dir, err := p.Directory(sc.ValidateDir)
		if err != nil {
			return req, err
		}
		req.Dir = dir
	}
	fmt.Fprintf(notices, "Processing files in directory: %s\n", req.Dir)

	if cfg.Scan.Type != "" {
		tag, defaulted := cfg.FileTypes.Resolve(cfg.Scan.Type)
		if defaulted {
			fmt.Fprintf(notices, "Invalid option. Defaulting to '%s'.\n", tag)
		}
		req.Tag = tag
	} else {
		tag, err := p.FileType(cfg.FileTypes)
		if err != nil {
			return req, err
		}
		req.Tag = tag
	}

	var err error
	if cfg.Scan.Start == "" && cfg.Scan.End == "" {
		req.Range, err = p.Range()
	} else {
		req.Range, err = givenRange(p, cfg.Scan)
	}
	if err != nil {
		return req, err
	}
	fmt.Fprintf(notices, "Processing files between timestamps: %d and %d\n", req.Range.Start, req.Range.End)

	return req, nil
}

// givenRange parses the boundaries that were given and asks for the rest.
func givenRange(p *prompt.Prompter, sc config.ScanConfig) (match.TimeRange, error) {
	start, err := boundary(p, "start", sc.Start, prompt.ExampleStart)
	if err != nil {
		return match.TimeRange{}, err
	}
	end, err := boundary(p, "end", sc.End, prompt.ExampleEnd)
	if err != nil {
		return match.TimeRange{}, err
	}
	return prompt.CheckRange(start, end)
}

func boundary(p *prompt.Prompter, which, given, example string) (uint64, error) {
	if given != "" {
		return prompt.ParseBoundary(which, given)
	}
	return p.Timestamp(which, example)
}
