// Package present renders scan results.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/raoulx24/tsfind/internal/match"
	"github.com/raoulx24/tsfind/internal/scanner"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Orderings. OrderNone keeps directory order.
const (
	OrderNone = "none"
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Header precedes the list in text output.
const Header = "Files matching the criteria:"

// Presenter writes results to an io.Writer.
type Presenter struct {
	w      io.Writer
	format string
	order  string
}

// New validates format and order and returns a presenter.
func New(w io.Writer, format, order string) (*Presenter, error) {
	if format == "" {
		format = FormatText
	}
	if order == "" {
		order = OrderNone
	}
	switch format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	switch order {
	case OrderNone, OrderAsc, OrderDesc:
	default:
		return nil, fmt.Errorf("unknown sort order %q", order)
	}
	return &Presenter{w: w, format: format, order: order}, nil
}

type jsonEntry struct {
	Name        string `json:"name"`
	TimestampMS uint64 `json:"timestamp_ms"`
	Timestamp   string `json:"timestamp"`
}

type jsonResult struct {
	RunID   string      `json:"run_id"`
	Dir     string      `json:"dir"`
	Tag     string      `json:"tag"`
	StartMS uint64      `json:"start_ms"`
	EndMS   uint64      `json:"end_ms"`
	Start   string      `json:"start"`
	End     string      `json:"end"`
	Files   []jsonEntry `json:"files"`
}

// Present writes res in the configured format and order.
func (p *Presenter) Present(res scanner.Result) error {
	entries := p.sorted(res.Entries)

	if p.format == FormatJSON {
		out := jsonResult{
			RunID:   res.RunID,
			Dir:     res.Request.Dir,
			Tag:     res.Request.Tag,
			StartMS: res.Request.Range.Start,
			EndMS:   res.Request.Range.End,
			Start:   match.FormatUnixMillis(res.Request.Range.Start),
			End:     match.FormatUnixMillis(res.Request.Range.End),
			Files:   make([]jsonEntry, 0, len(entries)),
		}
		for _, e := range entries {
			out.Files = append(out.Files, jsonEntry{
				Name:        e.Name,
				TimestampMS: e.Timestamp,
				Timestamp:   match.FormatUnixMillis(e.Timestamp),
			})
		}
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if _, err := fmt.Fprintln(p.w, Header); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(p.w, e.Name); err != nil {
			return err
		}
	}
	return nil
}

func (p *Presenter) sorted(in []scanner.Entry) []scanner.Entry {
	if p.order == OrderNone {
		return in
	}
	out := append([]scanner.Entry(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Timestamp != b.Timestamp {
			if p.order == OrderDesc {
				return a.Timestamp > b.Timestamp
			}
			return a.Timestamp < b.Timestamp
		}
		return a.Name < b.Name
	})
	return out
}
