package visit

import (
	"strings"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

// Matcher selects caseload candidates for an extracted patient name. It is
// a strategy so ranking (edit distance, phonetic matching) can be swapped
// in without touching the resolver.
type Matcher interface {
	Match(name string, caseload []entities.Beneficiary) []entities.Beneficiary
}

// SubstringMatcher matches by case-insensitive substring in either
// direction, so "sunita" finds "Sunita Devi" and a spoken full name still
// finds a shorter stored one. Candidates keep store order; no ranking.
type SubstringMatcher struct{}

// NewSubstringMatcher creates the default matcher
func NewSubstringMatcher() *SubstringMatcher {
	return &SubstringMatcher{}
}

// Match returns every candidate whose name contains, or is contained in,
// the query
func (m *SubstringMatcher) Match(name string, caseload []entities.Beneficiary) []entities.Beneficiary {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil
	}

	var matches []entities.Beneficiary
	for _, b := range caseload {
		candidate := strings.ToLower(b.Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
			matches = append(matches, b)
		}
	}
	return matches
}
