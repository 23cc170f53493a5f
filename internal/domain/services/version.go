package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ochairo/hashwatch/internal/domain/entities"
)

// ExtractVersion applies pattern to the full text and returns the first
// capture group of the first match.
//
// Only the first match is considered: when its capture is empty the result is
// ErrVersionNotFound and later matches are not tried.
func ExtractVersion(text, pattern string) (string, error) {
	re, err := compileVersionPattern(pattern)
	if err != nil {
		return "", err
	}

	matches := re.FindStringSubmatch(text)
	if matches == nil || matches[1] == "" {
		return "", fmt.Errorf("%w: no match for pattern %s", entities.ErrVersionNotFound, pattern)
	}

	return matches[1], nil
}

// DownloadURL substitutes token for the single {version} placeholder in template
func DownloadURL(template, token string) (string, error) {
	if err := validateTemplate(template); err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("empty version token for template %s", template)
	}

	idx := strings.Index(template, entities.VersionPlaceholder)
	return template[:idx] + token + template[idx+len(entities.VersionPlaceholder):], nil
}

func compileVersionPattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid version pattern %q: %v", entities.ErrInvalidCatalog, pattern, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%w: version pattern %q must have exactly one capture group, has %d",
			entities.ErrInvalidCatalog, pattern, re.NumSubexp())
	}
	return re, nil
}

func validateTemplate(template string) error {
	if n := strings.Count(template, entities.VersionPlaceholder); n != 1 {
		return fmt.Errorf("%w: download template %q must contain exactly one %s placeholder, has %d",
			entities.ErrInvalidCatalog, template, entities.VersionPlaceholder, n)
	}
	return nil
}
