// Package documents resolves job description and resume references into
// plain text.
package documents

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/headhunter"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/utils"
)

// Role tells which side of the comparison a document is on.
type Role string

const (
	RoleJob    Role = "job_description"
	RoleResume Role = "resume"
)

const (
	defaultAttempts  = 3
	defaultRetryStep = time.Second
	previewLength    = 120
)

var (
	// ErrUnsupported is returned for file types that cannot be turned into text.
	ErrUnsupported = errors.New("unsupported document type")
	// ErrEmpty is returned when a job description yields no text. Empty
	// resumes load fine and score zero.
	ErrEmpty = errors.New("document has no text")
)

// Document is a loaded reference.
type Document struct {
	Role  Role   `json:"role"`
	Label string `json:"label"`
	Ref   string `json:"ref"`
	Text  string `json:"-"`
}

// ObjectGetter is the part of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// VacancyGetter fetches hh.ru vacancies.
type VacancyGetter interface {
	GetVacancy(ctx context.Context, id string) (*headhunter.Vacancy, error)
}

// Loader reads documents from local files, S3 compatible storage, plain
// HTTP(S) URLs and hh.ru vacancies. Remote sources are optional: a nil S3 or
// Vacancies field makes the matching refs fail with a clear error.
type Loader struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	S3         ObjectGetter
	Vacancies  VacancyGetter
	Attempts   int
	RetryStep  time.Duration
}

// NewLoader returns a loader for local files and HTTP(S) URLs.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		logger:     logger,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Attempts:   defaultAttempts,
		RetryStep:  defaultRetryStep,
	}
}

// Load resolves ref and extracts its text.
func (l *Loader) Load(ctx context.Context, role Role, ref string) (*Document, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%s: empty reference", role)
	}

	var (
		doc *Document
		err error
	)
	switch kindOf(ref) {
	case refVacancy:
		doc, err = l.loadVacancy(ctx, ref)
	case refS3:
		doc, err = l.loadS3(ctx, ref)
	case refHTTP:
		doc, err = l.loadHTTP(ctx, ref)
	default:
		doc, err = l.loadFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s %q: %w", role, ref, err)
	}

	doc.Role = role
	doc.Ref = ref
	doc.Text = strings.TrimSpace(doc.Text)

	log := logger.WithDocument(l.logger, string(role), doc.Label)
	if doc.Text == "" {
		if role == RoleJob {
			return nil, fmt.Errorf("loading %s %q: %w", role, ref, ErrEmpty)
		}
		log.Warn("document has no text")
	}

	log.Info("document loaded", zap.Int("chars", len([]rune(doc.Text))))
	log.Debug("document preview", zap.String("text", utils.TruncateForLog(doc.Text, previewLength)))

	return doc, nil
}

func (l *Loader) loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, err := Extract(path, "", data)
	if err != nil {
		return nil, err
	}

	return &Document{Label: filepath.Base(path), Text: text}, nil
}

func (l *Loader) loadVacancy(ctx context.Context, ref string) (*Document, error) {
	if l.Vacancies == nil {
		return nil, errors.New("hh.ru source is not configured")
	}
	id, ok := headhunter.VacancyID(ref)
	if !ok {
		return nil, fmt.Errorf("invalid hh.ru vacancy reference %q", ref)
	}

	vacancy, err := retry(ctx, l, func() (*headhunter.Vacancy, error) {
		return l.Vacancies.GetVacancy(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	text, err := vacancy.Text()
	if err != nil {
		return nil, err
	}

	return &Document{Label: vacancy.Title(), Text: text}, nil
}

func retry[T any](ctx context.Context, l *Loader, fn func() (T, error)) (T, error) {
	return utils.Retry(ctx, l.Attempts, l.RetryStep, fn)
}
