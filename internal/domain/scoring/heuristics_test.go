package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scanguard/internal/domain/models"
)

func TestPhishingHeuristic(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		score int
	}{
		{"clean url", "https://example.com", 0},
		{"single pattern", "https://example.com/login", 20},
		{"stacked patterns", "https://secure-login-bank-verify.com", 75}, // login+verify+bank+secure
		{"capped", "https://secure-login-bank-verify-account-free.zip", 80},
		{"case insensitive", "https://MyBank.example.com/LOGIN", 45},
		{"hyphenated secure counts twice", "https://pay-secure-portal.com", 30}, // secure + -secure-
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := PhishingHeuristic(tt.url)
			assert.Equal(t, tt.score, h.Score)
			assert.Equal(t, PhishingCap, h.Cap)
			assert.LessOrEqual(t, h.Score, h.Cap)
		})
	}
}

func TestPhishingHeuristicSignals(t *testing.T) {
	h := PhishingHeuristic("https://secure-login-bank-verify.com")
	assert.ElementsMatch(t, []string{"login", "verify", "bank", "secure"}, h.Signals)

	h = PhishingHeuristic("https://example.com")
	assert.Empty(t, h.Signals)
}

func TestIPDomainHeuristic(t *testing.T) {
	tests := []struct {
		name  string
		sig   IPDomainSignals
		score int
	}{
		{"no evidence", IPDomainSignals{}, 0},
		{"typical flags", IPDomainSignals{MaliciousCount: 3, SuspiciousCount: 2, Reputation: -5}, 52},
		{"malicious part capped at 40", IPDomainSignals{MaliciousCount: 20}, 40},
		{"suspicious part capped at 20", IPDomainSignals{SuspiciousCount: 10}, 20},
		{"everything maxed hits the cap", IPDomainSignals{MaliciousCount: 20, SuspiciousCount: 10, Reputation: -100}, 60},
		{"positive reputation adds nothing", IPDomainSignals{MaliciousCount: 1, Reputation: 50}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := IPDomainHeuristic(tt.sig)
			assert.Equal(t, tt.score, h.Score)
			assert.Equal(t, IPDomainCap, h.Cap)
		})
	}
}

func TestDataLeakHeuristic(t *testing.T) {
	sensitive := models.BreachRecord{Name: "SiteA", DataClasses: []string{"Passwords", "Email addresses"}}
	mild := models.BreachRecord{Name: "SiteB", DataClasses: []string{"Usernames"}}

	t.Run("no breaches", func(t *testing.T) {
		h := DataLeakHeuristic(nil)
		assert.Zero(t, h.Score)
		assert.Empty(t, h.Signals)
	})

	t.Run("four breaches two sensitive hits", func(t *testing.T) {
		breaches := []models.BreachRecord{
			{Name: "A", DataClasses: []string{"Passwords"}},
			{Name: "B", DataClasses: []string{"Bank account numbers"}},
			{Name: "C", DataClasses: []string{"Usernames"}},
			{Name: "D"},
		}
		// min(4*10,30) + min(2*5,30)
		h := DataLeakHeuristic(breaches)
		assert.Equal(t, 40, h.Score)
	})

	t.Run("sensitive part capped", func(t *testing.T) {
		var breaches []models.BreachRecord
		for i := 0; i < 10; i++ {
			breaches = append(breaches, sensitive)
		}
		// breach part 30, 10 password hits -> 50 sensitive points capped at 30
		h := DataLeakHeuristic(breaches)
		assert.Equal(t, 60, h.Score)
		assert.Equal(t, DataLeakCap, h.Cap)
	})

	t.Run("non-sensitive classes score breach count only", func(t *testing.T) {
		h := DataLeakHeuristic([]models.BreachRecord{mild})
		assert.Equal(t, 10, h.Score)
	})
}

func TestSensitiveDataClassHits(t *testing.T) {
	breaches := []models.BreachRecord{
		{DataClasses: []string{"Passwords", "Credit cards", "Usernames"}},
		{DataClasses: []string{"API keys", "Email addresses"}},
		{DataClasses: []string{"Social security numbers (SSN)"}},
	}
	assert.Equal(t, 4, SensitiveDataClassHits(breaches))
	assert.Zero(t, SensitiveDataClassHits(nil))
}
