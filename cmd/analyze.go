package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/display"
	"github.com/spigell/resume-matcher/internal/documents"
	"github.com/spigell/resume-matcher/internal/export"
	"github.com/spigell/resume-matcher/internal/logger"
)

var errExit = errors.New("exit requested")

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"run"},
	Short:   "Compare resumes against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("job", "J", "", "job description: file, URL, s3://bucket/key or hh:<vacancy id>")
	analyzeCmd.Flags().StringSliceP("resume", "r", nil, "resume reference, repeat or separate by commas")
	analyzeCmd.Flags().StringP("mode", "m", "", "keyword extraction mode: all_words or nouns_verbs")
	analyzeCmd.Flags().StringP("export", "e", "", "save results: none, txt, csv or json")
	analyzeCmd.Flags().StringP("output", "o", "", "output directory for saved results (default \"output\")")
	analyzeCmd.Flags().StringP("name", "n", "", "file name for saved results")
	analyzeCmd.Flags().String("exclude-file", "", "file with words to drop from the job description")
	analyzeCmd.Flags().String("stop-words-file", "", "file with extra stop words")
	analyzeCmd.Flags().String("tagger", "", "part-of-speech tagger: prose or gemini")
	analyzeCmd.Flags().BoolP("yes", "y", false, "do not prompt, take everything from flags and config")

	viper.BindPFlag("job", analyzeCmd.Flags().Lookup("job"))
	viper.BindPFlag("resumes", analyzeCmd.Flags().Lookup("resume"))
	viper.BindPFlag("mode", analyzeCmd.Flags().Lookup("mode"))
	viper.BindPFlag("export", analyzeCmd.Flags().Lookup("export"))
	viper.BindPFlag("output-dir", analyzeCmd.Flags().Lookup("output"))
	viper.BindPFlag("export-name", analyzeCmd.Flags().Lookup("name"))
	viper.BindPFlag("exclude-file", analyzeCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("stop-words-file", analyzeCmd.Flags().Lookup("stop-words-file"))
	viper.BindPFlag("tagger.provider", analyzeCmd.Flags().Lookup("tagger"))
	viper.BindPFlag("yes", analyzeCmd.Flags().Lookup("yes"))
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-matcher", zap.String("version", resolveVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	out := cmd.OutOrStdout()
	ui := &prompter{interactive: !viper.GetBool("yes")}

	if err := execute(ctx, config, ui, out, logger); err != nil {
		if errors.Is(err, errExit) {
			logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}
}

func execute(ctx context.Context, config *Config, ui *prompter, out io.Writer, log *zap.Logger) error {
	printer := display.New(out)
	if ui.interactive {
		if err := printer.Intro(config.MaxResumes); err != nil {
			return err
		}
	}

	jobRef, err := ui.jobRef(config.Job)
	if err != nil {
		return err
	}
	resumeRefs, err := ui.resumeRefs(config.Resumes, config.MaxResumes)
	if err != nil {
		return err
	}
	mode, err := ui.mode(config.Mode)
	if err != nil {
		return err
	}

	env, err := setup(ctx, config, mode, append([]string{jobRef}, resumeRefs...), log)
	if err != nil {
		return err
	}

	jobDoc, err := env.loader.Load(ctx, documents.RoleJob, jobRef)
	if err != nil {
		return fmt.Errorf("could not read job description: %w", err)
	}

	resumes := make([]analysis.Input, 0, len(resumeRefs))
	for _, ref := range resumeRefs {
		doc, err := env.loader.Load(ctx, documents.RoleResume, ref)
		if err != nil {
			log.Warn("skipping resume", zap.String("ref", ref), zap.Error(err))
			continue
		}
		resumes = append(resumes, analysis.Input{Label: doc.Label, Text: doc.Text})
	}

	if len(resumes) == 0 {
		log.Info("exiting", zap.String("reason", "no valid resumes processed"))
		return nil
	}

	analyzer := analysis.New(analysis.Options{
		Mode:        mode,
		StopWords:   env.stopWords,
		ExcludeFile: config.ExcludeFile,
		GapLimit:    config.GapsLimit,
	}, env.tagger, log)

	res, err := analyzer.Run(ctx, analysis.Input{Label: jobDoc.Label, Text: jobDoc.Text}, resumes)
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	if err := printer.Report(res.Report); err != nil {
		return err
	}

	return save(config, ui, out, res, log)
}

func save(config *Config, ui *prompter, out io.Writer, res *analysis.Result, log *zap.Logger) error {
	format, err := ui.exportFormat(config.Export)
	if err != nil {
		return err
	}
	if format == export.FormatNone {
		fmt.Fprintln(out, "\nResults not saved to file.")
		return nil
	}

	name, err := ui.exportName(config.ExportName, format)
	if err != nil {
		return err
	}

	path := export.ResolvePath(config.OutputDir, name, format)
	if err := export.Save(path, format, res); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}

	log.Info("results saved",
		zap.String(logger.FieldRunID, res.RunID),
		zap.String("path", path),
		zap.String("format", string(format)),
	)
	fmt.Fprintf(out, "\nResults saved to %s\n", path)
	return nil
}
