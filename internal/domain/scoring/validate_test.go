package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scanguard/internal/domain/models"
)

func TestValidateSubject(t *testing.T) {
	tests := []struct {
		name    string
		kind    models.ScanKind
		subject string
		wantErr bool
	}{
		{"valid https url", models.ScanKindPhishing, "https://example.com", false},
		{"valid http url", models.ScanKindPhishing, "http://example.com", false},
		{"url without scheme", models.ScanKindPhishing, "example.com", true},
		{"empty url", models.ScanKindPhishing, "", true},

		{"valid ip", models.ScanKindIPDomain, "8.8.8.8", false},
		{"valid domain", models.ScanKindIPDomain, "example.com", false},
		{"empty ip", models.ScanKindIPDomain, "", true},
		{"whitespace ip", models.ScanKindIPDomain, "   ", true},

		{"valid email", models.ScanKindDataLeak, "user@example.com", false},
		{"email without at", models.ScanKindDataLeak, "user.example.com", true},
		{"empty email", models.ScanKindDataLeak, "", true},

		{"unknown kind", models.ScanKind("bogus"), "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubject(tt.kind, tt.subject)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
