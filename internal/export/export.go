// Package export saves analysis results to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/display"
	"github.com/spigell/resume-matcher/internal/report"
)

// DefaultDir is where results land unless configured otherwise.
const DefaultDir = "output"

const defaultName = "results"

type Format string

const (
	FormatNone Format = "none"
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats lists the accepted formats in prompt order.
var Formats = []Format{FormatNone, FormatTXT, FormatCSV, FormatJSON}

// ParseFormat accepts a format name; an empty string means none.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatNone, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want none, txt, csv or json)", s)
}

// EnsureDir creates the output directory.
func EnsureDir(dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", dir, err)
	}
	return nil
}

// ResolvePath places name inside dir and adds the format extension when name
// has none. Absolute names and names already inside dir are kept.
func ResolvePath(dir, name string, format Format) string {
	if dir == "" {
		dir = DefaultDir
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	if filepath.Ext(name) == "" {
		name += "." + string(format)
	}
	if filepath.IsAbs(name) {
		return name
	}

	cleanDir := filepath.Clean(dir)
	cleanName := filepath.Clean(name)
	if cleanName == cleanDir || strings.HasPrefix(cleanName, cleanDir+string(filepath.Separator)) {
		return cleanName
	}
	return filepath.Join(cleanDir, cleanName)
}

// Save writes res to path in the given format.
func Save(path string, format Format, res *analysis.Result) (err error) {
	if format == FormatNone {
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return Write(file, format, res)
}

// Write renders res to w.
func Write(w io.Writer, format Format, res *analysis.Result) error {
	switch format {
	case FormatTXT:
		return WriteTXT(w, res.Report)
	case FormatCSV:
		return WriteCSV(w, res.Report)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatNone:
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteTXT uses the console layout without the banner lines.
func WriteTXT(w io.Writer, rep *report.Report) error {
	p := display.New(w)
	if len(rep.Resumes) == 1 {
		return p.Resume(rep.Resumes[0])
	}

	if _, err := io.WriteString(w, "=== SUMMARY ===\n"); err != nil {
		return err
	}
	if err := p.Summary(rep.Summary); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n=== KEYWORD COMPARISON ===\n"); err != nil {
		return err
	}
	if err := p.Matrix(rep.Matrix); err != nil {
		return err
	}
	if len(rep.Gaps) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n=== TOP GAPS ACROSS RESUMES ===\n"); err != nil {
		return err
	}
	return p.Gaps(rep.Gaps)
}

// WriteCSV writes the single resume layout for one resume and summary,
// matrix and gaps blocks otherwise.
func WriteCSV(w io.Writer, rep *report.Report) error {
	cw := csv.NewWriter(w)

	var records [][]string
	if len(rep.Resumes) == 1 {
		records = singleRecords(rep.Resumes[0])
	} else {
		records = multiRecords(rep)
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func singleRecords(d report.ResumeDetail) [][]string {
	records := [][]string{
		{"Match Percent", report.FormatPercent(d.MatchPercent) + "%"},
		{},
		{"Matched Keywords", "Frequency in JD"},
	}
	for _, k := range d.Matched {
		records = append(records, []string{k.Keyword, strconv.Itoa(k.JobFrequency)})
	}
	records = append(records, []string{}, []string{"Missing Keywords", "Frequency in JD"})
	for _, k := range d.Missing {
		records = append(records, []string{k.Keyword, strconv.Itoa(k.JobFrequency)})
	}
	return records
}

func multiRecords(rep *report.Report) [][]string {
	records := [][]string{
		{"=== SUMMARY ==="},
		{"Resume File", "Match %", "#Matched", "#Missing"},
	}
	for _, r := range rep.Summary {
		records = append(records, []string{
			r.Label,
			report.FormatPercent(r.MatchPercent),
			strconv.Itoa(r.Matched),
			strconv.Itoa(r.Missing),
		})
	}

	records = append(records, []string{}, []string{"=== KEYWORD COMPARISON ==="}, rep.Matrix.Header())
	for _, row := range rep.Matrix.Rows {
		record := make([]string, 0, len(row.Counts)+1)
		record = append(record, row.Keyword)
		for _, c := range row.Counts {
			record = append(record, strconv.Itoa(c))
		}
		records = append(records, record)
	}

	if len(rep.Gaps) > 0 {
		records = append(records,
			[]string{},
			[]string{"=== TOP GAPS ACROSS RESUMES ==="},
			[]string{"Keyword", "#Resumes without keyword", "Frequency in JD"},
		)
		for _, g := range rep.Gaps {
			records = append(records, []string{g.Keyword, strconv.Itoa(g.Resumes), strconv.Itoa(g.JobFrequency)})
		}
	}
	return records
}

// WriteJSON dumps the whole run result.
func WriteJSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
