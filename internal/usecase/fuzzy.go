package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Score scale and defaults for the fuzzy matcher.
const (
	defaultScoreThreshold = 60 // minimum partial-ratio score, 0-100 scale
	defaultFuzzyLimit     = 5  // maximum candidates returned
)

// FuzzyConfig holds configuration for the fuzzy matcher
type FuzzyConfig struct {
	ScoreThreshold     int
	Limit              int
	EnableDebugLogging bool
}

// FuzzyMatcher ranks candidate strings against a query term by partial-ratio
// similarity. It holds no state beyond its tuning and is reproducible given
// the same inputs.
type FuzzyMatcher struct {
	scoreThreshold     int
	limit              int
	enableDebugLogging bool
}

// NewFuzzyMatcher creates a new fuzzy matcher with the given configuration
func NewFuzzyMatcher(config FuzzyConfig) *FuzzyMatcher {
	threshold := config.ScoreThreshold
	if threshold <= 0 {
		threshold = defaultScoreThreshold
	}

	limit := config.Limit
	if limit <= 0 {
		limit = defaultFuzzyLimit
	}

	return &FuzzyMatcher{
		scoreThreshold:     threshold,
		limit:              limit,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

type scoredCandidate struct {
	value string
	score int
}

// Match returns up to limit candidates ranked by partial-ratio score,
// filtered to score >= threshold. Ties are broken by original candidate
// order (stable sort). Empty term or candidate list returns an empty list.
func (m *FuzzyMatcher) Match(term string, candidates []string) []string {
	if term == "" || len(candidates) == 0 {
		return nil
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		score := PartialRatio(term, candidate)
		if score < m.scoreThreshold {
			continue
		}
		scored = append(scored, scoredCandidate{value: candidate, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > m.limit {
		scored = scored[:m.limit]
	}

	results := make([]string, len(scored))
	for i, s := range scored {
		results[i] = s.value
		if m.enableDebugLogging {
			log.Printf("[FUZZY] %q ~ %q score=%d", term, s.value, s.score)
		}
	}

	return results
}

// PartialRatio computes a 0-100 similarity score between two strings based on
// the best-aligning window of the longer string against the shorter one,
// using Levenshtein distance per window. Comparison is case-insensitive.
func PartialRatio(a, b string) int {
	shorter := []rune(strings.ToLower(a))
	longer := []rune(strings.ToLower(b))
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len(shorter) == 0 {
		return 0
	}
	if string(shorter) == string(longer) {
		return 100
	}

	s := string(shorter)
	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := string(longer[i : i+len(shorter)])
		distance := matchr.Levenshtein(s, window)
		if distance > len(shorter) {
			distance = len(shorter)
		}
		score := (len(shorter) - distance) * 100 / len(shorter)
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}

	return best
}
