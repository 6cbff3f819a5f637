package report

import (
	"slices"
	"strings"

	"github.com/spigell/resume-matcher/internal/matching"
)

// Gaps counts, for every keyword, how many resumes miss it and returns the
// top limit entries ranked by descending miss count, descending job frequency
// and ascending token. A non-positive limit selects DefaultGapLimit.
func Gaps(resumes []matching.ResumeResult, jobFreq matching.Frequencies, limit int) []Gap {
	if limit <= 0 {
		limit = DefaultGapLimit
	}

	misses := make(map[string]int)
	for _, r := range resumes {
		for k := range r.Result.Missing {
			misses[k]++
		}
	}

	gaps := make([]Gap, 0, len(misses))
	for k, n := range misses {
		gaps = append(gaps, Gap{Keyword: k, Resumes: n, JobFrequency: jobFreq.Get(k)})
	}

	slices.SortFunc(gaps, func(a, b Gap) int {
		if a.Resumes != b.Resumes {
			return b.Resumes - a.Resumes
		}
		if a.JobFrequency != b.JobFrequency {
			return b.JobFrequency - a.JobFrequency
		}
		return strings.Compare(a.Keyword, b.Keyword)
	})

	if len(gaps) > limit {
		gaps = gaps[:limit]
	}
	return gaps
}
