package documents

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/resume-matcher/internal/headhunter"
)

type refKind int

const (
	refFile refKind = iota
	refS3
	refHTTP
	refVacancy
)

func kindOf(ref string) refKind {
	if _, ok := headhunter.VacancyID(ref); ok {
		return refVacancy
	}
	if strings.HasPrefix(ref, "hh:") {
		return refVacancy
	}

	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "s3://"):
		return refS3
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return refHTTP
	default:
		return refFile
	}
}

// ValidateRef checks a reference before it is loaded. Local files must exist
// and carry a supported extension; remote references are checked for syntax.
func ValidateRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("path is empty")
	}

	switch kindOf(ref) {
	case refVacancy:
		if _, ok := headhunter.VacancyID(ref); !ok {
			return fmt.Errorf("invalid hh.ru vacancy reference %q", ref)
		}
		return nil
	case refS3:
		_, _, err := splitS3(ref)
		return err
	case refHTTP:
		u, err := url.Parse(ref)
		if err != nil {
			return err
		}
		if u.Host == "" {
			return fmt.Errorf("url %q has no host", ref)
		}
		return nil
	}

	info, err := os.Stat(ref)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%q is a directory", ref)
	}
	if !Supported(filepath.Ext(ref)) {
		return fmt.Errorf("%q: %w", ref, ErrUnsupported)
	}
	return nil
}

// splitS3 parses s3://bucket/key.
func splitS3(ref string) (bucket, key string, err error) {
	rest := ref[len("s3://"):]
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q, want s3://bucket/key", ref)
	}
	return bucket, key, nil
}
