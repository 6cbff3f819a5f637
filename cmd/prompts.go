package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/spigell/resume-matcher/internal/documents"
	"github.com/spigell/resume-matcher/internal/export"
	"github.com/spigell/resume-matcher/internal/keywords"
)

// prompter asks for values missing from flags and config. With interactive
// off it only validates what it was given.
type prompter struct {
	interactive bool
}

var modes = []keywords.Mode{keywords.ModeAllWords, keywords.ModeNounsVerbs}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}

func (p *prompter) jobRef(configured string) (string, error) {
	if !p.interactive {
		if configured == "" {
			return "", errors.New("job description is required (--job)")
		}
		return configured, documents.ValidateRef(configured)
	}

	prompt := promptui.Prompt{
		Label:    "Path to the job description (.txt, .pdf, .docx, .html, URL or hh:<id>)",
		Default:  configured,
		Validate: documents.ValidateRef,
	}
	ref, err := prompt.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(ref), nil
}

func (p *prompter) resumeRefs(configured []string, limit int) ([]string, error) {
	validate := func(input string) error {
		return validateResumeRefs(splitRefs(input), limit)
	}

	if !p.interactive {
		if err := validateResumeRefs(configured, limit); err != nil {
			return nil, err
		}
		return configured, nil
	}

	prompt := promptui.Prompt{
		Label:    fmt.Sprintf("Path(s) to 1-%d resumes, separated by commas", limit),
		Default:  strings.Join(configured, ", "),
		Validate: validate,
	}
	input, err := prompt.Run()
	if err != nil {
		return nil, promptErr(err)
	}
	return splitRefs(input), nil
}

func validateResumeRefs(refs []string, limit int) error {
	if len(refs) == 0 {
		return errors.New("at least one resume is required")
	}
	if len(refs) > limit {
		return fmt.Errorf("please enter 1-%d resumes, got %d", limit, len(refs))
	}
	for _, ref := range refs {
		if err := documents.ValidateRef(ref); err != nil {
			return err
		}
	}
	return nil
}

func (p *prompter) mode(configured string) (keywords.Mode, error) {
	if configured != "" || !p.interactive {
		return keywords.ParseMode(configured)
	}

	items := make([]string, len(modes))
	for i, m := range modes {
		items[i] = m.Description()
	}

	prompt := promptui.Select{
		Label: "Keyword extraction mode",
		Items: items,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return modes[idx], nil
}

func (p *prompter) exportFormat(configured string) (export.Format, error) {
	if configured != "" || !p.interactive {
		return export.ParseFormat(configured)
	}

	items := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		items[i] = string(f)
	}

	prompt := promptui.Select{
		Label: "Save results?",
		Items: items,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return export.Formats[idx], nil
}

func (p *prompter) exportName(configured string, format export.Format) (string, error) {
	if configured != "" || !p.interactive {
		return configured, nil
	}

	prompt := promptui.Prompt{
		Label:   fmt.Sprintf("Enter filename (e.g., results.%s)", format),
		Default: "results." + string(format),
	}
	name, err := prompt.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(name), nil
}
