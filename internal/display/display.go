// Package display renders analysis results as fixed-width console text.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/resume-matcher/internal/report"
)

const (
	keywordWidth   = 20
	frequencyWidth = 16
	labelWidth     = 28
	matrixWidth    = 15
)

// Printer writes sections to an io.Writer. The first write error sticks and
// is returned by every later call.
type Printer struct {
	w   io.Writer
	err error
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) rule(n int) {
	p.printf("%s\n", strings.Repeat("-", n))
}

// Intro prints the banner shown before any prompt.
func (p *Printer) Intro(maxResumes int) error {
	p.printf("=== Resume Keyword Matcher ===\n\n")
	p.printf("Compare up to %d resumes against a job description.\n", maxResumes)
	p.printf("See which resume covers the most important keywords for the job.\n\n")
	p.printf("Resumes with more keyword matches may stand out more to employers.\n\n")
	return p.err
}

// Report prints the single resume layout for one resume and the summary,
// matrix and gaps layout otherwise.
func (p *Printer) Report(rep *report.Report) error {
	if len(rep.Resumes) == 1 {
		p.printf("\n=== RESULTS for %s ===\n", rep.Resumes[0].Label)
		return p.Resume(rep.Resumes[0])
	}

	p.printf("\n=== SUMMARY ===\n")
	if err := p.Summary(rep.Summary); err != nil {
		return err
	}
	p.printf("\n=== KEYWORD COMPARISON ===\n")
	if err := p.Matrix(rep.Matrix); err != nil {
		return err
	}
	if len(rep.Gaps) > 0 {
		p.printf("\n=== TOP GAPS ACROSS RESUMES ===\n")
		return p.Gaps(rep.Gaps)
	}
	return p.err
}

// Resume prints the match percent and ranked matched and missing keywords.
func (p *Printer) Resume(d report.ResumeDetail) error {
	p.printf("Match Percent: %s%%\n\n", report.FormatPercent(d.MatchPercent))
	p.printf("Matched Keywords (%d):\n", len(d.Matched))
	p.keywordTable(d.Matched)
	p.printf("\nMissing Keywords (%d):\n", len(d.Missing))
	p.keywordTable(d.Missing)
	return p.err
}

func (p *Printer) keywordTable(rows []report.RankedKeyword) {
	p.printf("%-*s %*s\n", keywordWidth, "Keyword", frequencyWidth, "Frequency in JD")
	p.rule(keywordWidth + frequencyWidth)
	for _, r := range rows {
		p.printf("%-*s %*d\n", keywordWidth, r.Keyword, frequencyWidth, r.JobFrequency)
	}
}

// Summary prints one row per resume.
func (p *Printer) Summary(rows []report.SummaryRow) error {
	p.printf("%-*s %8s %10s %10s\n", labelWidth, "Resume File", "Match %", "#Matched", "#Missing")
	p.rule(60)
	for _, r := range rows {
		p.printf("%-*s %8s %10d %10d\n", labelWidth, r.Label, report.FormatPercent(r.MatchPercent), r.Matched, r.Missing)
	}
	return p.err
}

// Matrix prints keywords against per-resume counts.
func (p *Printer) Matrix(m report.Matrix) error {
	header := m.Header()
	p.printf("%s\n", joinCells(header))
	p.rule((matrixWidth + 3) * len(header))
	for _, row := range m.Rows {
		cells := make([]string, 0, len(row.Counts)+1)
		cells = append(cells, row.Keyword)
		for _, c := range row.Counts {
			cells = append(cells, fmt.Sprint(c))
		}
		p.printf("%s\n", joinCells(cells))
	}
	return p.err
}

func joinCells(cells []string) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = fmt.Sprintf("%-*s", matrixWidth, c)
	}
	return strings.Join(padded, " | ")
}

// Gaps prints keywords most resumes lack.
func (p *Printer) Gaps(gaps []report.Gap) error {
	p.printf("%-*s %12s %*s\n", keywordWidth, "Keyword", "#Resumes", frequencyWidth, "Frequency in JD")
	p.rule(keywordWidth + 12 + frequencyWidth + 2)
	for _, g := range gaps {
		p.printf("%-*s %12d %*d\n", keywordWidth, g.Keyword, g.Resumes, frequencyWidth, g.JobFrequency)
	}
	return p.err
}
