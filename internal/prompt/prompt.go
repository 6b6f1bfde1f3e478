// Package prompt asks the user for the scan parameters on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raoulx24/tsfind/internal/filetype"
	"github.com/raoulx24/tsfind/internal/match"
)

var (
	// ErrInvalidTimestamp is returned when a boundary timestamp fails to parse.
	// It wraps match.ErrInvalidFormat.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidRange is returned when the start timestamp is after the end.
	ErrInvalidRange = errors.New("start timestamp is after end timestamp")
)

// Example timestamps shown in the questions.
const (
	ExampleStart = "2024-11-17T15:45:00Z"
	ExampleEnd   = "2024-11-17T16:45:00Z"
)

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its line ending. A final line
// without a newline is accepted; EOF with nothing read is an error.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Directory asks for the directory path. validate decides whether the path
// is usable; its error is returned unchanged.
func (p *Prompter) Directory(validate func(string) error) (string, error) {
	fmt.Fprintln(p.out, "Enter the path to the directory containing the files:")
	dir, err := p.readLine()
	if err != nil {
		return "", err
	}
	if err := validate(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// FileType shows the catalog menu and resolves the answer. Unknown answers
// fall back to the catalog default with a notice.
func (p *Prompter) FileType(c filetype.Catalog) (string, error) {
	def := c.DefaultOption()
	fmt.Fprintf(p.out, "Enter the file type to process (e.g., '%s'):\n", def.Tag)
	for _, o := range c.Options {
		fmt.Fprintf(p.out, "%s: %s\n", o.Key, o.DisplayName())
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}

	tag, defaulted := c.Resolve(answer)
	if defaulted {
		fmt.Fprintf(p.out, "Invalid option. Defaulting to '%s'.\n", tag)
	}
	return tag, nil
}

// Timestamp asks one question and parses the answer as RFC-3339.
func (p *Prompter) Timestamp(which, example string) (uint64, error) {
	fmt.Fprintf(p.out, "Enter the %s timestamp in ISO format (e.g., %s):\n", which, example)
	answer, err := p.readLine()
	if err != nil {
		return 0, err
	}
	return ParseBoundary(which, answer)
}

// ParseBoundary parses a start or end timestamp given on the command line or
// in answer to a question.
func ParseBoundary(which, text string) (uint64, error) {
	ms, err := match.ParseISO8601ToUnixMillis(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidTimestamp, which, err)
	}
	return ms, nil
}

// Range asks for the start and end timestamps.
func (p *Prompter) Range() (match.TimeRange, error) {
	start, err := p.Timestamp("start", ExampleStart)
	if err != nil {
		return match.TimeRange{}, err
	}
	end, err := p.Timestamp("end", ExampleEnd)
	if err != nil {
		return match.TimeRange{}, err
	}
	return CheckRange(start, end)
}

// CheckRange builds a TimeRange, rejecting start > end.
func CheckRange(start, end uint64) (match.TimeRange, error) {
	if start > end {
		return match.TimeRange{}, fmt.Errorf("%w: %d > %d", ErrInvalidRange, start, end)
	}
	return match.TimeRange{Start: start, End: end}, nil
}
