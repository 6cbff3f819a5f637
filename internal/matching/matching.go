// Package matching compares a job keyword set with a resume token sequence
// and tallies token frequencies.
package matching

import (
	"github.com/spigell/resume-matcher/internal/keywords"
)

// Result is the outcome of matching one resume against a keyword set.
// Matched and Missing partition the keyword set.
type Result struct {
	Matched keywords.Set `json:"matched"`
	Missing keywords.Set `json:"missing"`
	Percent float64      `json:"match_percent"`
}

// ResumeResult is a Result together with the resume's own frequency table and label.
type ResumeResult struct {
	Label       string      `json:"label"`
	Result      Result      `json:"result"`
	Frequencies Frequencies `json:"frequencies"`
}

// Match splits kw into the keywords present in resumeTokens and those absent.
// An empty keyword set yields two empty sets.
func Match(kw keywords.Set, resumeTokens []string) (matched, missing keywords.Set) {
	present := keywords.NewSet(resumeTokens...)

	matched = make(keywords.Set)
	missing = make(keywords.Set)
	for k := range kw {
		if present.Has(k) {
			matched[k] = struct{}{}
			continue
		}
		missing[k] = struct{}{}
	}

	return matched, missing
}

// MatchPercent returns 100*matched/total, or exactly 0 when total is 0.
func MatchPercent(matched, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(100*matched) / float64(total)
}

// Evaluate matches resumeTokens against kw and records the resume's frequency table.
func Evaluate(label string, resumeTokens []string, kw keywords.Set) ResumeResult {
	matched, missing := Match(kw, resumeTokens)

	return ResumeResult{
		Label: label,
		Result: Result{
			Matched: matched,
			Missing: missing,
			Percent: MatchPercent(matched.Len(), kw.Len()),
		},
		Frequencies: Count(resumeTokens),
	}
}
