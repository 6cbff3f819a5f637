package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/keywords"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/report"
)

func jobFrequencies() matching.Frequencies {
	return matching.Count([]string{"manage", "databases", "build", "apis", "apis", "apis"})
}

func assemble(resumes ...matching.ResumeResult) *report.Report {
	return report.Assemble(report.Input{
		Keywords:       keywords.NewSet("manage", "databases", "build", "apis"),
		JobFrequencies: jobFrequencies(),
		Resumes:        resumes,
	})
}

func TestReportSingleResume(t *testing.T) {
	kw := keywords.NewSet("manage", "databases", "build", "apis")
	rep := assemble(matching.Evaluate("cv.txt", []string{"build", "apis", "daily"}, kw))

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Report(rep))
	out := buf.String()

	assert.Contains(t, out, "=== RESULTS for cv.txt ===\n")
	assert.Contains(t, out, "Match Percent: 50.0%\n")
	assert.Contains(t, out, "Matched Keywords (2):\n")
	assert.Contains(t, out, "Missing Keywords (2):\n")
	assert.Contains(t, out, "Keyword"+strings.Repeat(" ", 15)+"Frequency in JD\n")
	assert.Contains(t, out, strings.Repeat("-", 36)+"\n")
	assert.Contains(t, out, "apis"+strings.Repeat(" ", 32)+"3\n")
	assert.Less(t, strings.Index(out, "apis "), strings.Index(out, "build "))
	assert.Less(t, strings.Index(out, "databases "), strings.Index(out, "manage "))
	assert.NotContains(t, out, "SUMMARY")
}

func TestReportMultipleResumes(t *testing.T) {
	kw := keywords.NewSet("manage", "databases", "build", "apis")
	rep := assemble(
		matching.Evaluate("alice.txt", []string{"apis", "apis", "manage"}, kw),
		matching.Evaluate("bob.pdf", []string{"build"}, kw),
	)

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Report(rep))
	out := buf.String()

	assert.Contains(t, out, "=== SUMMARY ===\n")
	assert.Contains(t, out, "alice.txt"+strings.Repeat(" ", 19)+"     50.0          2          2\n")
	assert.Contains(t, out, "=== KEYWORD COMPARISON ===\n")
	assert.Contains(t, out, "Keyword         | alice.txt       | bob.pdf        \n")
	assert.Contains(t, out, strings.Repeat("-", 54)+"\n")
	assert.Contains(t, out, "apis            | 2               | 0              \n")
	assert.Contains(t, out, "=== TOP GAPS ACROSS RESUMES ===\n")

	lines := strings.Split(out, "\n")
	var matrixKeywords []string
	inMatrix := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "=== KEYWORD COMPARISON"):
			inMatrix = true
		case strings.HasPrefix(line, "=== TOP GAPS"):
			inMatrix = false
		case inMatrix && strings.Contains(line, " | ") && !strings.HasPrefix(line, "Keyword"):
			matrixKeywords = append(matrixKeywords, strings.TrimSpace(strings.SplitN(line, "|", 2)[0]))
		}
	}
	assert.Equal(t, []string{"apis", "build", "databases", "manage"}, matrixKeywords)
}

func TestIntro(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Intro(3))
	assert.True(t, strings.HasPrefix(buf.String(), "=== Resume Keyword Matcher ===\n\n"))
	assert.Contains(t, buf.String(), "Compare up to 3 resumes")
}

func TestGaps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).Gaps([]report.Gap{{Keyword: "kafka", Resumes: 2, JobFrequency: 4}}))
	assert.Contains(t, buf.String(), "kafka"+strings.Repeat(" ", 15)+strings.Repeat(" ", 12)+"2"+strings.Repeat(" ", 16)+"4\n")
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestPrinterStickyError(t *testing.T) {
	w := &failingWriter{}
	p := New(w)

	require.Error(t, p.Intro(3))
	require.Error(t, p.Summary(nil))
	assert.Equal(t, 1, w.calls)
}
