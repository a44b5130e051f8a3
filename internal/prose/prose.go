// Package prose runs the independent line-level quality pass: passive
// voice, adverbs, clichés, filter words, weak verbs, sentence variety,
// reading level, and sensory density.
package prose

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// readingLevelUnknown is the sentinel when a denominator would be zero.
const readingLevelUnknown = "--"

// notAdverbs are common -ly words that are not adverbs.
var notAdverbs = map[string]struct{}{
	"only": {}, "family": {}, "reply": {}, "apply": {}, "supply": {},
	"early": {}, "likely": {}, "lonely": {}, "ugly": {}, "belly": {},
	"ally": {}, "rally": {}, "jelly": {}, "holy": {}, "italy": {},
}

type Analyzer struct {
	patterns *lexicon.Patterns
	logger   *slog.Logger
}

func NewAnalyzer(patterns *lexicon.Patterns, logger *slog.Logger) *Analyzer {
	return &Analyzer{patterns: patterns, logger: logger}
}

// Analyze computes the prose metrics for text. Empty text yields the
// zero value with the reading-level sentinel.
func (a *Analyzer) Analyze(text string) manuscript.ProseMetrics {
	m := manuscript.ProseMetrics{ReadingLevel: readingLevelUnknown}
	if strings.TrimSpace(text) == "" {
		return m
	}

	words := textutil.Words(text)
	sentences := textutil.Sentences(text)

	for _, re := range a.patterns.Passive {
		m.PassiveVoiceCount += len(re.FindAllStringIndex(text, -1))
	}

	for _, match := range a.patterns.Adverb.FindAllString(text, -1) {
		if _, skip := notAdverbs[strings.ToLower(match)]; !skip {
			m.AdverbCount++
		}
	}

	for _, c := range lexicon.Cliches {
		m.ClicheCount += textutil.PhraseCount(text, c)
	}

	filter := toSet(lexicon.FilterWords)
	weak := toSet(lexicon.WeakVerbs)
	sensory := toSet(lexicon.SensoryWords)
	sensoryHits := 0
	for _, w := range words {
		if _, ok := filter[w]; ok {
			m.FilterWordCount++
		}
		if _, ok := weak[w]; ok {
			m.WeakVerbCount++
		}
		if _, ok := sensory[w]; ok {
			sensoryHits++
		}
	}
	if len(words) > 0 {
		m.SensoryDensity = float64(sensoryHits) / float64(len(words))
	}

	m.SentenceVariety = sentenceVariety(sentences)
	m.ReadingLevel = readingLevel(words, sentences)

	a.logger.Debug("prose scored",
		"passive", m.PassiveVoiceCount,
		"adverbs", m.AdverbCount,
		"cliches", m.ClicheCount)
	return m
}

// sentenceVariety is the standard deviation of sentence word counts.
func sentenceVariety(sentences []string) float64 {
	lengths := make([]float64, 0, len(sentences))
	for _, s := range sentences {
		if n := len(textutil.Words(s)); n > 0 {
			lengths = append(lengths, float64(n))
		}
	}
	return textutil.StdDev(lengths)
}

// readingLevel is the Flesch-Kincaid grade, formatted to one decimal.
// Returns the "--" sentinel when either denominator is zero.
func readingLevel(words, sentences []string) string {
	if len(words) == 0 || len(sentences) == 0 {
		return readingLevelUnknown
	}
	syllables := 0
	for _, w := range words {
		syllables += textutil.Syllables(w)
	}
	grade := 0.39*(float64(len(words))/float64(len(sentences))) +
		11.8*(float64(syllables)/float64(len(words))) - 15.59
	if grade < 0 {
		grade = 0
	}
	return strconv.FormatFloat(grade, 'f', 1, 64)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
