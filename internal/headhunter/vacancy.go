package headhunter

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mitchellh/mapstructure"
)

const VacancyPath = "/vacancies"

type Vacancy struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Employer struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"employer,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	// Description is HTML as returned by the API.
	Description string `json:"description,omitempty"`
	KeySkills   []struct {
		Name string `json:"name,omitempty"`
	} `json:"key_skills,omitempty"`
	Archived bool `json:"archived,omitempty"`
}

func (c *Client) getVacancy(ctx context.Context, id string) (*Vacancy, error) {
	if !isDigits(id) {
		return nil, fmt.Errorf("invalid vacancy id %q", id)
	}

	raw, err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, VacancyPath, id), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching vacancy %s: %w", id, err)
	}

	var vacancy Vacancy
	cfg := &mapstructure.DecoderConfig{
		Result:           &vacancy,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

// Title is used as the document label.
func (va *Vacancy) Title() string {
	name := strings.TrimSpace(va.Name)
	if name == "" {
		return "hh.ru vacancy " + va.ID
	}
	if va.Employer.Name != "" {
		return fmt.Sprintf("%s (%s)", name, va.Employer.Name)
	}
	return name
}

// Text renders the vacancy as plain text: name, description converted to
// markdown, then key skills.
func (va *Vacancy) Text() (string, error) {
	var b strings.Builder
	b.WriteString(va.Name)
	b.WriteString("\n\n")

	if va.Description != "" {
		md, err := htmltomarkdown.ConvertString(va.Description)
		if err != nil {
			return "", fmt.Errorf("converting vacancy %s description: %w", va.ID, err)
		}
		b.WriteString(md)
		b.WriteString("\n")
	}

	if len(va.KeySkills) > 0 {
		skills := make([]string, 0, len(va.KeySkills))
		for _, s := range va.KeySkills {
			skills = append(skills, s.Name)
		}
		b.WriteString("\nKey skills: ")
		b.WriteString(strings.Join(skills, ", "))
		b.WriteString("\n")
	}

	return b.String(), nil
}
