package search

import (
	"unicode"
)

// FuzzyMatcher scores subsequence matches of a pattern against a name.
// Scoring follows the fzf/sublime family:
//   - every matched rune earns charBonus
//   - a rune adjacent to the previous match earns consecutiveBonus
//   - a rune at a word boundary earns wordBoundaryBonus
//   - gaps between matches cost gapPenalty per skipped rune
//   - contiguous substrings earn substringBonus, prefixes prefixBonus
type FuzzyMatcher struct {
	consecutiveBonus        float64
	wordBoundaryBonus       float64
	charBonus               float64
	gapPenalty              float64
	caseMismatchPenalty     float64
	substringBonus          float64
	prefixBonus             float64
	substringBoundaryFactor float64
	substringInteriorFactor float64
}

// NewFuzzyMatcher creates a matcher with default weights.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{
		consecutiveBonus:        1.2,
		wordBoundaryBonus:       0.6,
		charBonus:               1.2,
		gapPenalty:              0.18,
		caseMismatchPenalty:     0.1,
		substringBonus:          1.2,
		prefixBonus:             2.4,
		substringBoundaryFactor: 0.3,
		substringInteriorFactor: 0.15,
	}
}

func patternHasUppercase(pattern string) bool {
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Match reports whether every rune of pattern occurs in text in order, and
// how well. Matching is case-insensitive unless pattern has an uppercase rune.
func (fm *FuzzyMatcher) Match(pattern, text string) (score float64, matched bool) {
	if pattern == "" {
		return 1.0, true
	}

	caseSensitive := patternHasUppercase(pattern)
	pr := []rune(pattern)
	tr := []rune(text)
	pf := foldRunes(pr, !caseSensitive)
	tf := foldRunes(tr, !caseSensitive)

	if len(pf) > len(tf) {
		return 0, false
	}

	if idx := indexRunes(tf, pf); idx >= 0 {
		return fm.substringScore(pr, tr, idx), true
	}
	return fm.subsequenceScore(pr, pf, tr, tf)
}

func (fm *FuzzyMatcher) substringScore(pr, tr []rune, idx int) float64 {
	m := len(pr)
	score := fm.charBonus*float64(m) + fm.consecutiveBonus*float64(m-1)
	if isWordBoundary(tr, idx) {
		score += fm.wordBoundaryBonus
	}

	bonus := fm.substringBonus
	if idx > 0 {
		switch tr[idx-1] {
		case '/', '\\':
		case '-', '_', ' ', '.', ':':
			bonus *= fm.substringBoundaryFactor
		default:
			bonus *= fm.substringInteriorFactor
		}
	} else {
		score += fm.prefixBonus
	}
	score += bonus

	for i := 0; i < m; i++ {
		if pr[i] != tr[idx+i] {
			score -= fm.caseMismatchPenalty
		}
	}
	return score
}

func (fm *FuzzyMatcher) subsequenceScore(pr, pf, tr, tf []rune) (float64, bool) {
	score := 0.0
	prev := -1
	j := 0
	for i, want := range pf {
		for j < len(tf) && tf[j] != want {
			j++
		}
		if j == len(tf) {
			return 0, false
		}

		score += fm.charBonus
		if isWordBoundary(tr, j) {
			score += fm.wordBoundaryBonus
		}
		switch {
		case prev == -1:
			score -= fm.gapPenalty * 0.02 * float64(j)
		case j == prev+1:
			score += fm.consecutiveBonus
		default:
			score -= fm.gapPenalty * float64(j-prev-1)
		}
		if pr[i] != tr[j] {
			score -= fm.caseMismatchPenalty
		}
		prev = j
		j++
	}
	return score, true
}

func foldRunes(rs []rune, fold bool) []rune {
	if !fold {
		return rs
	}
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for k, r := range needle {
			if haystack[i+k] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}

// isWordBoundary is true at the start of text, after a separator, and at a
// lower-to-upper case transition.
func isWordBoundary(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := text[idx-1], text[idx]
	switch prev {
	case '/', '\\', '-', '_', ' ', '.', ':':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
