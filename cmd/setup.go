package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/ai/gemini"
	"github.com/spigell/resume-matcher/internal/ai/prose"
	"github.com/spigell/resume-matcher/internal/documents"
	"github.com/spigell/resume-matcher/internal/export"
	"github.com/spigell/resume-matcher/internal/headhunter"
	"github.com/spigell/resume-matcher/internal/keywords"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/normalize"
	"github.com/spigell/resume-matcher/internal/secrets"
)

type environment struct {
	loader    *documents.Loader
	tagger    keywords.Tagger
	stopWords normalize.StopWords
}

type warmer interface {
	Warm(ctx context.Context) error
}

// setup performs the one-time preparation before any document is read.
func setup(ctx context.Context, config *Config, mode keywords.Mode, refs []string, log *zap.Logger) (*environment, error) {
	if err := export.EnsureDir(config.OutputDir); err != nil {
		return nil, err
	}

	stopWords, err := loadStopWords(config.StopWordsFile)
	if err != nil {
		return nil, err
	}

	tagger, err := newTagger(ctx, config.Tagger, mode, log)
	if err != nil {
		return nil, fmt.Errorf("building tagger: %w", err)
	}

	loader, err := newLoader(ctx, config, refs, log)
	if err != nil {
		return nil, err
	}

	return &environment{loader: loader, tagger: tagger, stopWords: stopWords}, nil
}

func loadStopWords(path string) (normalize.StopWords, error) {
	defaults := normalize.DefaultStopWords()
	if path = strings.TrimSpace(path); path == "" {
		return defaults, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stop words file: %w", err)
	}
	defer file.Close()

	extra, err := normalize.ParseStopWords(file)
	if err != nil {
		return nil, err
	}
	return defaults.Merge(extra), nil
}

// newTagger returns nil unless mode needs part-of-speech tags.
func newTagger(ctx context.Context, cfg *TaggerConfig, mode keywords.Mode, log *zap.Logger) (keywords.Tagger, error) {
	if mode != keywords.ModeNounsVerbs {
		return nil, nil
	}

	provider, err := ai.ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	var (
		tagger keywords.Tagger
		model  string
	)
	switch provider {
	case ai.ProviderGemini:
		tagger, err = newGeminiTagger(ctx, cfg.Gemini, log)
		if err != nil {
			return nil, err
		}
		model = cfg.Gemini.Model
	default:
		tagger = prose.New(logger.WithTagger(log, string(provider), ""))
	}

	if w, ok := tagger.(warmer); ok {
		if err := w.Warm(ctx); err != nil {
			return nil, fmt.Errorf("warming %s tagger: %w", provider, err)
		}
	}

	log.Info("tagger ready", logger.TaggerFields(string(provider), model)...)
	return tagger, nil
}

func newGeminiTagger(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (keywords.Tagger, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set tagger.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithTagger(log, string(ai.ProviderGemini), cfg.Model).With(
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewTagger(generator, genLogger, cfg.MaxLogLength, cfg.BatchSize), nil
}

func newLoader(ctx context.Context, config *Config, refs []string, log *zap.Logger) (*documents.Loader, error) {
	loader := documents.NewLoader(log)

	hh, err := newHeadHunter(config.HeadHunter, log)
	if err != nil {
		return nil, err
	}
	loader.Vacancies = hh

	if !hasS3Ref(refs) {
		return loader, nil
	}

	accessKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "s3 access key",
		Value: config.S3.AccessKey,
		Env:   "AWS_ACCESS_KEY_ID",
		File:  config.S3.AccessKeyFile,
	})
	if err != nil {
		return nil, err
	}
	secretKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "s3 secret key",
		Value: config.S3.SecretKey,
		Env:   "AWS_SECRET_ACCESS_KEY",
		File:  config.S3.SecretKeyFile,
	})
	if err != nil {
		return nil, err
	}

	client, err := documents.NewS3Client(ctx, documents.S3Config{
		Endpoint:  config.S3.Endpoint,
		Region:    config.S3.Region,
		AccessKey: accessKey,
		SecretKey: secretKey,
	})
	if err != nil {
		return nil, err
	}
	loader.S3 = client

	return loader, nil
}

func newHeadHunter(cfg *HeadHunterConfig, log *zap.Logger) (*headhunter.Client, error) {
	token, err := secrets.LoadOptional(secrets.Source{
		Name: "headhunter token",
		Env:  "HH_TOKEN",
		File: cfg.TokenFile,
	})
	if err != nil {
		return nil, err
	}

	hh := headhunter.New(log, token)
	if cfg.UserAgent != "" {
		hh.UserAgent = cfg.UserAgent
	}
	if cfg.APIURL != "" {
		hh.APIURL = strings.TrimRight(cfg.APIURL, "/")
	}
	return hh, nil
}

func hasS3Ref(refs []string) bool {
	for _, ref := range refs {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref)), "s3://") {
			return true
		}
	}
	return false
}
