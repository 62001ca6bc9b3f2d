package scoring

import (
	"fmt"
	"strings"

	"scanguard/internal/domain/models"
)

// Per-analyzer ceilings. The cap bounds heuristic influence relative to the
// advisory score in the final blend.
const (
	PhishingCap = 80
	IPDomainCap = 60
	DataLeakCap = 60
)

// HeuristicScore is the rule-based sub-score for one scan, bounded by the
// analyzer's cap. Signals lists the human-readable evidence that contributed.
type HeuristicScore struct {
	Score   int
	Cap     int
	Signals []string
}

// phishingPatterns maps URL substrings to point values. Matches are not
// mutually exclusive: every matching pattern contributes, which is intentional
// for coarse severity rather than precision.
var phishingPatterns = []struct {
	Pattern string
	Points  int
}{
	{"login", 20},
	{"verify", 20},
	{"bank", 25},
	{"account", 15},
	{"secure", 10},
	{"update", 10},
	{"free", 15},
	{".zip", 25},
	{"-secure-", 20},
	{"cloudfront", 20},
}

// PhishingHeuristic scores a URL by scanning its lower-cased form against the
// suspicious substring table, capped at PhishingCap.
func PhishingHeuristic(url string) HeuristicScore {
	lowered := strings.ToLower(url)

	h := HeuristicScore{Cap: PhishingCap}
	for _, p := range phishingPatterns {
		if strings.Contains(lowered, p.Pattern) {
			h.Score += p.Points
			h.Signals = append(h.Signals, p.Pattern)
		}
	}
	if h.Score > h.Cap {
		h.Score = h.Cap
	}
	return h
}

// IPDomainSignals is the evidence an IP/domain reputation lookup yields.
// A failed or absent lookup maps to the zero value, which scores zero.
type IPDomainSignals struct {
	MaliciousCount  int
	SuspiciousCount int
	Reputation      int
}

// IPDomainHeuristic scores reputation evidence: 10 points per vendor flagging
// the subject malicious (up to 40), 6 per suspicious flag (up to 20), plus 10
// for a negative community reputation, capped at IPDomainCap.
func IPDomainHeuristic(sig IPDomainSignals) HeuristicScore {
	h := HeuristicScore{Cap: IPDomainCap}

	if sig.MaliciousCount > 0 {
		h.Score += min(sig.MaliciousCount*10, 40)
		h.Signals = append(h.Signals, fmt.Sprintf("flagged malicious by %d vendors", sig.MaliciousCount))
	}
	if sig.SuspiciousCount > 0 {
		h.Score += min(sig.SuspiciousCount*6, 20)
		h.Signals = append(h.Signals, fmt.Sprintf("flagged suspicious by %d vendors", sig.SuspiciousCount))
	}
	if sig.Reputation < 0 {
		h.Score += 10
		h.Signals = append(h.Signals, fmt.Sprintf("negative community reputation (%d)", sig.Reputation))
	}

	if h.Score > h.Cap {
		h.Score = h.Cap
	}
	return h
}

// sensitiveDataClasses are keywords that mark a breach data class as high
// impact when it contains one of them (case-insensitive substring match).
var sensitiveDataClasses = []string{"password", "bank", "credit", "token", "api", "ssn"}

// DataLeakHeuristic scores breach evidence: 10 points per breach (up to 30)
// plus 5 per sensitive data-class hit (up to 30), capped at DataLeakCap.
func DataLeakHeuristic(breaches []models.BreachRecord) HeuristicScore {
	h := HeuristicScore{Cap: DataLeakCap}

	if len(breaches) > 0 {
		h.Score += min(len(breaches)*10, 30)
		h.Signals = append(h.Signals, fmt.Sprintf("found in %d breaches", len(breaches)))
	}

	hits := SensitiveDataClassHits(breaches)
	if hits > 0 {
		h.Score += min(hits*5, 30)
		h.Signals = append(h.Signals, fmt.Sprintf("%d sensitive data classes exposed", hits))
	}

	if h.Score > h.Cap {
		h.Score = h.Cap
	}
	return h
}

// SensitiveDataClassHits counts breach data-class strings that contain a
// sensitive keyword. Each matching data class counts once, across all breaches.
func SensitiveDataClassHits(breaches []models.BreachRecord) int {
	hits := 0
	for _, b := range breaches {
		for _, dc := range b.DataClasses {
			lowered := strings.ToLower(dc)
			for _, kw := range sensitiveDataClasses {
				if strings.Contains(lowered, kw) {
					hits++
					break
				}
			}
		}
	}
	return hits
}
