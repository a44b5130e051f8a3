// Package textutil provides the low-level tokenization shared by every
// analyzer: word, sentence, and paragraph splitting, syllable estimates,
// and case-insensitive phrase and whole-word search.
package textutil

import (
	"math"
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`[A-Za-z0-9']+`)
	sentenceEnd     = regexp.MustCompile(`[.!?]+`)
	paragraphSplit  = regexp.MustCompile(`\n\s*\n+`)
	multiSpace      = regexp.MustCompile(`\s+`)
	vowelGroup      = regexp.MustCompile(`[aeiouy]+`)
	trailingSilentE = regexp.MustCompile(`e$`)
)

// Words tokenizes text into lowercase word tokens.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// WordCount counts word tokens without materializing them twice.
func WordCount(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// Sentences splits text on terminal punctuation and drops empty spans.
func Sentences(text string) []string {
	raw := sentenceEnd.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Paragraphs splits on blank-line boundaries and drops empty spans.
func Paragraphs(text string) []string {
	raw := paragraphSplit.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Syllables estimates syllable count for a single word by counting
// vowel groups, discounting a trailing silent e. Always at least 1 for
// a non-empty word.
func Syllables(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return 0
	}
	w = trailingSilentE.ReplaceAllString(w, "")
	n := len(vowelGroup.FindAllString(w, -1))
	if n < 1 {
		return 1
	}
	return n
}

// PhraseCount counts case-insensitive occurrences of phrase in text.
func PhraseCount(text, phrase string) int {
	if phrase == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(phrase))
}

// WholeWordCount counts case-insensitive whole-word occurrences of name
// in text. Used for character mentions, where "Anna" must not match
// "Annabel".
func WholeWordCount(text, name string) int {
	if strings.TrimSpace(name) == "" {
		return 0
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// ContainsWholeWord reports whether name occurs as a whole word in text.
func ContainsWholeWord(text, name string) bool {
	return WholeWordCount(text, name) > 0
}

// StdDev computes the population standard deviation of values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// NormalizeSpace collapses runs of whitespace to single spaces.
func NormalizeSpace(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
