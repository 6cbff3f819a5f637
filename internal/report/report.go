// Package report shapes match results into the ordered structures consumed by
// presentation and export: ranked keyword lists, summary rows, the keyword by
// resume frequency matrix and the top gaps across resumes.
//
// Every keyword listing uses the same ranking: descending job description
// frequency, ties broken by ascending token. The package performs no I/O.
package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/resume-matcher/internal/keywords"
	"github.com/spigell/resume-matcher/internal/matching"
)

// DefaultGapLimit is the number of gaps surfaced when no limit is given.
const DefaultGapLimit = 8

// Input holds everything Assemble needs from one analysis run.
type Input struct {
	Keywords       keywords.Set
	JobFrequencies matching.Frequencies
	Resumes        []matching.ResumeResult
	GapLimit       int
}

// RankedKeyword is a keyword with its job description frequency.
type RankedKeyword struct {
	Keyword      string `json:"keyword"`
	JobFrequency int    `json:"job_frequency"`
}

// ResumeDetail is the per-resume matched and missing breakdown, both ranked.
type ResumeDetail struct {
	Label        string          `json:"label"`
	MatchPercent float64         `json:"match_percent"`
	Matched      []RankedKeyword `json:"matched"`
	Missing      []RankedKeyword `json:"missing"`
}

// SummaryRow is one line of the multi-resume summary table.
type SummaryRow struct {
	Label        string  `json:"label"`
	MatchPercent float64 `json:"match_percent"`
	Matched      int     `json:"matched"`
	Missing      int     `json:"missing"`
}

// Gap is a keyword missing from one or more resumes.
type Gap struct {
	Keyword      string `json:"keyword"`
	Resumes      int    `json:"resumes_without_keyword"`
	JobFrequency int    `json:"job_frequency"`
}

// Report is the assembled, presentation-ready view of a run.
type Report struct {
	KeywordCount int            `json:"keyword_count"`
	Keywords     []string       `json:"keywords"`
	Resumes      []ResumeDetail `json:"resumes"`
	Summary      []SummaryRow   `json:"summary"`
	Matrix       Matrix         `json:"matrix"`
	Gaps         []Gap          `json:"gaps"`
}

// Rank orders keys by descending job frequency, then ascending token.
func Rank(keys []string, jobFreq matching.Frequencies) []string {
	ranked := slices.Clone(keys)
	slices.SortFunc(ranked, func(a, b string) int {
		if fa, fb := jobFreq.Get(a), jobFreq.Get(b); fa != fb {
			if fa > fb {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	return ranked
}

// RankSet ranks the members of a keyword set.
func RankSet(set keywords.Set, jobFreq matching.Frequencies) []string {
	keys := make([]string, 0, set.Len())
	for k := range set {
		keys = append(keys, k)
	}
	return Rank(keys, jobFreq)
}

// Assemble builds the report. Resume order is preserved in every view.
func Assemble(in Input) *Report {
	ranked := RankSet(in.Keywords, in.JobFrequencies)

	labels := make([]string, len(in.Resumes))
	details := make([]ResumeDetail, len(in.Resumes))
	summary := make([]SummaryRow, len(in.Resumes))
	for i, r := range in.Resumes {
		labels[i] = Label(r.Label, i)
		details[i] = ResumeDetail{
			Label:        labels[i],
			MatchPercent: r.Result.Percent,
			Matched:      rankedKeywords(r.Result.Matched, in.JobFrequencies),
			Missing:      rankedKeywords(r.Result.Missing, in.JobFrequencies),
		}
		summary[i] = SummaryRow{
			Label:        labels[i],
			MatchPercent: r.Result.Percent,
			Matched:      r.Result.Matched.Len(),
			Missing:      r.Result.Missing.Len(),
		}
	}

	return &Report{
		KeywordCount: len(ranked),
		Keywords:     ranked,
		Resumes:      details,
		Summary:      summary,
		Matrix:       BuildMatrix(ranked, labels, in.Resumes),
		Gaps:         Gaps(in.Resumes, in.JobFrequencies, in.GapLimit),
	}
}

// Label returns label, or "Resume N" (1-based) when it is blank.
func Label(label string, idx int) string {
	if strings.TrimSpace(label) == "" {
		return fmt.Sprintf("Resume %d", idx+1)
	}
	return label
}

// FormatPercent renders a match percent with one decimal place.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

func rankedKeywords(set keywords.Set, jobFreq matching.Frequencies) []RankedKeyword {
	ranked := RankSet(set, jobFreq)
	out := make([]RankedKeyword, len(ranked))
	for i, k := range ranked {
		out[i] = RankedKeyword{Keyword: k, JobFrequency: jobFreq.Get(k)}
	}
	return out
}
