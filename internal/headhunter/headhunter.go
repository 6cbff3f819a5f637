package headhunter

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "spigell/resume-matcher (spigelly@gmail.com)"

	vacancyPrefix = "hh:"
)

var vacancyPath = regexp.MustCompile(`^/vacancy/(\d+)/?$`)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for the public hh.ru API. token may be empty, vacancy
// lookups do not require authorization.
func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// GetVacancy fetches a single vacancy with its full description.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	return c.getVacancy(ctx, id)
}

// VacancyID extracts a vacancy ID from "hh:<id>" or an hh.ru vacancy URL.
func VacancyID(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if id, ok := strings.CutPrefix(ref, vacancyPrefix); ok {
		id = strings.TrimSpace(id)
		return id, isDigits(id)
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "hh.ru" && !strings.HasSuffix(host, ".hh.ru") {
		return "", false
	}

	m := vacancyPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
