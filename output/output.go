// Package output renders lookup results for the command line.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.thinkinpower.net/bindb/mod"
	"github.com/charmbracelet/lipgloss"
)

type Format int

const (
	FormatPretty Format = iota
	FormatJSON
	FormatCSV
)

// ParseFormat maps "json" and "csv" to their formats; anything else is pretty.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	default:
		return FormatPretty
	}
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "pretty"
	}
}

// card is the subset of a record printed by the json and csv formats.
type card struct {
	Scheme  string `json:"scheme"`
	Type    string `json:"type"`
	Brand   string `json:"brand"`
	Bank    string `json:"bank"`
	Country string `json:"country"`
}

type Formatter struct {
	Format Format
	Color  bool
}

// Write renders r to w followed by a newline.
func (f Formatter) Write(w io.Writer, r mod.Record) error {
	switch f.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(card{Scheme: r.Scheme, Type: r.Type, Brand: r.Brand, Bank: r.Bank, Country: r.Country})
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{r.Scheme, r.Type, r.Brand, r.Bank, r.Country}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	default:
		summary := r.Summary()
		if f.Color {
			summary = colorize(w, summary)
		}
		_, err := fmt.Fprintln(w, summary)
		return err
	}
}

// colorize styles every line separately so lipgloss does not pad lines to a
// common width. Writers that are not terminals get the text unchanged.
func colorize(w io.Writer, s string) string {
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
