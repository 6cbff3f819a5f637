// Package analysis runs the matching pipeline for one job description and a
// handful of resumes.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/keywords"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/normalize"
	"github.com/spigell/resume-matcher/internal/report"
)

// Options configure an Analyzer.
type Options struct {
	Mode        keywords.Mode
	StopWords   normalize.StopWords
	ExcludeFile string
	GapLimit    int
}

// Input is decoded document text with its display label.
type Input struct {
	Label string
	Text  string
}

// JobProfile is what the job description contributes to every comparison.
type JobProfile struct {
	Label       string               `json:"label"`
	Tokens      []string             `json:"-"`
	Keywords    keywords.Set         `json:"keywords"`
	Frequencies matching.Frequencies `json:"frequencies"`
	Filters     []filtering.Status   `json:"filters"`
}

// Result is the outcome of one run.
type Result struct {
	RunID   string                  `json:"run_id"`
	Mode    keywords.Mode           `json:"mode"`
	Job     *JobProfile             `json:"job"`
	Resumes []matching.ResumeResult `json:"resumes"`
	Report  *report.Report          `json:"report"`
}

// Analyzer extracts job keywords and scores resumes against them.
type Analyzer struct {
	opts   Options
	tagger keywords.Tagger
	logger *zap.Logger
}

// New returns an analyzer. tagger is only consulted in nouns_verbs mode and
// may be nil otherwise.
func New(opts Options, tagger keywords.Tagger, log *zap.Logger) *Analyzer {
	if opts.Mode == "" {
		opts.Mode = keywords.ModeAllWords
	}
	if opts.StopWords == nil {
		opts.StopWords = normalize.DefaultStopWords()
	}
	if opts.GapLimit <= 0 {
		opts.GapLimit = report.DefaultGapLimit
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{opts: opts, tagger: tagger, logger: log}
}

// Job normalizes the job description, runs the filter steps and derives the
// keyword set and frequency table from what is left.
func (a *Analyzer) Job(ctx context.Context, in Input) (*JobProfile, error) {
	log := logger.WithDocument(a.logger, "job_description", in.Label)

	tokens := normalize.Normalize(in.Text, a.opts.StopWords)
	log.Debug("job description normalized", zap.Int("tokens", len(tokens)))

	steps := filtering.Default()
	cfg := &filtering.Config{Mode: a.opts.Mode, ExcludeFile: a.opts.ExcludeFile}
	deps := filtering.Deps{Logger: log, Tagger: a.tagger}

	filtered, err := filtering.Run(ctx, cfg, deps, steps, tokens)
	if err != nil {
		return nil, fmt.Errorf("filtering job description: %w", err)
	}

	profile := &JobProfile{
		Label:       in.Label,
		Tokens:      filtered,
		Keywords:    keywords.Extract(filtered),
		Frequencies: matching.Count(filtered),
		Filters:     filtering.Describe(steps),
	}
	log.Info("keywords extracted",
		zap.String("mode", a.opts.Mode.String()),
		zap.Int("keywords", profile.Keywords.Len()),
	)

	return profile, nil
}

// Resume matches one resume against job. Resumes are never grammatically
// filtered.
func (a *Analyzer) Resume(in Input, job *JobProfile) matching.ResumeResult {
	tokens := normalize.Normalize(in.Text, a.opts.StopWords)
	return matching.Evaluate(in.Label, tokens, job.Keywords)
}

// Run analyzes job against resumes. Resumes are evaluated concurrently and
// reported in the order given; blank labels become "Resume N".
func (a *Analyzer) Run(ctx context.Context, job Input, resumes []Input) (*Result, error) {
	runID := uuid.NewString()
	log := logger.WithFields(a.logger, zap.String(logger.FieldRunID, runID))
	scoped := &Analyzer{opts: a.opts, tagger: a.tagger, logger: log}

	profile, err := scoped.Job(ctx, job)
	if err != nil {
		return nil, err
	}

	results := make([]matching.ResumeResult, len(resumes))
	var wg sync.WaitGroup
	for i, r := range resumes {
		r.Label = report.Label(r.Label, i)
		wg.Add(1)
		go func(i int, r Input) {
			defer wg.Done()
			results[i] = scoped.Resume(r, profile)
		}(i, r)
	}
	wg.Wait()

	for _, r := range results {
		logger.WithDocument(log, "resume", r.Label).Info("resume matched",
			zap.String("match_percent", report.FormatPercent(r.Result.Percent)),
			zap.Int("matched", r.Result.Matched.Len()),
			zap.Int("missing", r.Result.Missing.Len()),
		)
	}

	rep := report.Assemble(report.Input{
		Keywords:       profile.Keywords,
		JobFrequencies: profile.Frequencies,
		Resumes:        results,
		GapLimit:       a.opts.GapLimit,
	})

	return &Result{
		RunID:   runID,
		Mode:    a.opts.Mode,
		Job:     profile,
		Resumes: results,
		Report:  rep,
	}, nil
}
