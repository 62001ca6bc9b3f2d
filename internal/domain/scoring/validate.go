package scoring

import (
	"fmt"
	"strings"

	"scanguard/internal/domain/models"
)

// ValidateSubject checks a raw subject against the format rules for its scan
// kind. It runs before any external lookup so malformed input never spends
// collaborator quota.
func ValidateSubject(kind models.ScanKind, subject string) error {
	switch kind {
	case models.ScanKindPhishing:
		if !strings.HasPrefix(subject, "http") {
			return fmt.Errorf("%w: url must start with http", models.ErrInvalidInput)
		}
	case models.ScanKindIPDomain:
		if strings.TrimSpace(subject) == "" {
			return fmt.Errorf("%w: ip or domain is required", models.ErrInvalidInput)
		}
	case models.ScanKindDataLeak:
		if !strings.Contains(subject, "@") {
			return fmt.Errorf("%w: not a valid email address", models.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown scan kind %q", models.ErrInvalidInput, kind)
	}
	return nil
}
