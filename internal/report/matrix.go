package report

import (
	"github.com/spigell/resume-matcher/internal/matching"
)

// MatrixRow holds one keyword's frequency in each resume, in resume order.
type MatrixRow struct {
	Keyword string `json:"keyword"`
	Counts  []int  `json:"counts"`
}

// Matrix is the keyword by resume frequency table.
type Matrix struct {
	Labels []string    `json:"labels"`
	Rows   []MatrixRow `json:"rows"`
}

// BuildMatrix produces one row per ranked keyword and one column per resume.
// Missing frequencies default to 0.
func BuildMatrix(ranked []string, labels []string, resumes []matching.ResumeResult) Matrix {
	rows := make([]MatrixRow, len(ranked))
	for i, k := range ranked {
		counts := make([]int, len(resumes))
		for j, r := range resumes {
			counts[j] = r.Frequencies.Get(k)
		}
		rows[i] = MatrixRow{Keyword: k, Counts: counts}
	}

	return Matrix{Labels: append([]string(nil), labels...), Rows: rows}
}

// Header returns the column names: "Keyword" followed by the resume labels.
func (m Matrix) Header() []string {
	return append([]string{"Keyword"}, m.Labels...)
}
