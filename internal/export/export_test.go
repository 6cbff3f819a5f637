package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/normalize"
)

const jobText = "Manage databases and build APIs. APIs APIs."

func run(t *testing.T, resumes ...analysis.Input) *analysis.Result {
	t.Helper()
	a := analysis.New(analysis.Options{StopWords: normalize.NewStopWords("and", "i")}, nil, nil)
	res, err := a.Run(context.Background(), analysis.Input{Label: "job.txt", Text: jobText}, resumes)
	require.NoError(t, err)
	return res
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatNone,
		"none":  FormatNone,
		" TXT ": FormatTXT,
		"csv":   FormatCSV,
		"json":  FormatJSON,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xlsx")
	require.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name   string
		dir    string
		file   string
		format Format
		want   string
	}{
		{name: "adds dir and extension", dir: "output", file: "run1", format: FormatCSV, want: filepath.Join("output", "run1.csv")},
		{name: "keeps extension", dir: "output", file: "report.txt", format: FormatTXT, want: filepath.Join("output", "report.txt")},
		{name: "already inside dir", dir: "output", file: "output/report.txt", format: FormatTXT, want: filepath.Join("output", "report.txt")},
		{name: "default name", dir: "output", file: "  ", format: FormatJSON, want: filepath.Join("output", "results.json")},
		{name: "default dir", dir: "", file: "a", format: FormatTXT, want: filepath.Join("output", "a.txt")},
		{name: "absolute", dir: "output", file: "/tmp/a.csv", format: FormatCSV, want: "/tmp/a.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.dir, tt.file, tt.format))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteCSVSingle(t *testing.T) {
	res := run(t, analysis.Input{Label: "cv.txt", Text: "I build APIs daily."})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Report))

	want := strings.Join([]string{
		"Match Percent,50.0%",
		"",
		"Matched Keywords,Frequency in JD",
		"apis,3",
		"build,1",
		"",
		"Missing Keywords,Frequency in JD",
		"databases,1",
		"manage,1",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVMultiple(t *testing.T) {
	res := run(t,
		analysis.Input{Label: "a.txt", Text: "apis apis manage"},
		analysis.Input{Text: "build"},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Report))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "=== SUMMARY ===\nResume File,Match %,#Matched,#Missing\na.txt,50.0,2,2\nResume 2,25.0,1,3\n"))
	assert.Contains(t, out, "\n=== KEYWORD COMPARISON ===\nKeyword,a.txt,Resume 2\napis,2,0\nbuild,0,1\ndatabases,0,0\nmanage,1,0\n")
	assert.Contains(t, out, "=== TOP GAPS ACROSS RESUMES ===\nKeyword,#Resumes without keyword,Frequency in JD\ndatabases,2,1\n")
}

func TestWriteTXTSingle(t *testing.T) {
	res := run(t, analysis.Input{Label: "cv.txt", Text: "I build APIs daily."})

	var buf bytes.Buffer
	require.NoError(t, WriteTXT(&buf, res.Report))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Match Percent: 50.0%\n\nMatched Keywords (2):\n"))
	assert.NotContains(t, out, "RESULTS for")
}

func TestWriteTXTMultiple(t *testing.T) {
	res := run(t,
		analysis.Input{Label: "a.txt", Text: "apis"},
		analysis.Input{Label: "b.txt", Text: "build"},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteTXT(&buf, res.Report))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "=== SUMMARY ===\n"))
	assert.Contains(t, out, "\n=== KEYWORD COMPARISON ===\n")
	assert.Contains(t, out, "\n=== TOP GAPS ACROSS RESUMES ===\n")
}

func TestSaveJSON(t *testing.T) {
	res := run(t, analysis.Input{Label: "cv.txt", Text: "I build APIs daily."})
	path := filepath.Join(t.TempDir(), "run.json")

	require.NoError(t, Save(path, FormatJSON, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		RunID string `json:"run_id"`
		Mode  string `json:"mode"`
		Job   struct {
			Keywords []string `json:"keywords"`
		} `json:"job"`
		Report struct {
			KeywordCount int `json:"keyword_count"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, res.RunID, decoded.RunID)
	assert.Equal(t, "all_words", decoded.Mode)
	assert.Equal(t, []string{"apis", "build", "databases", "manage"}, decoded.Job.Keywords)
	assert.Equal(t, 4, decoded.Report.KeywordCount)
}

func TestSaveNone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.txt")
	require.NoError(t, Save(path, FormatNone, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
