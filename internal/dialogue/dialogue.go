// Package dialogue extracts quoted speech and scores it against a fixed
// ten-criterion rubric. Every criterion is binary; the quality score is
// the fraction earned, scaled to 100.
package dialogue

import (
	"log/slog"
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

const criteriaTotal = 10

type Analyzer struct {
	logger *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze scores the dialogue found in text. Text without quotation
// marks yields all-zero metrics.
func (a *Analyzer) Analyze(text string) manuscript.DialogueMetrics {
	segments := Extract(text)
	if len(segments) == 0 {
		return manuscript.DialogueMetrics{}
	}

	passed := []string{}
	earn := func(name string, ok bool) {
		if ok {
			passed = append(passed, name)
		}
	}

	earn("depth", averageLength(segments) > 50)
	earn("non_repetition", nonRepetitive(segments))
	earn("low_filler", fillerRatio(segments) < 0.20)
	earn("tag_variety", tagVariety(text) > 5)
	earn("unpredictable", predictableCount(segments) < 3)
	earn("character_growth", growth(segments))
	earn("low_exposition", expositionRatio(segments) < 0.20)
	earn("conflict", conflictRatio(segments) > 0.20)
	earn("punctuation_range", punctuationRange(segments) >= 2)
	earn("pacing", pacingScore(segments) > 60)

	a.logger.Debug("dialogue scored", "segments", len(segments), "criteria_passed", len(passed))
	return manuscript.DialogueMetrics{
		SegmentCount:   len(segments),
		QualityScore:   float64(len(passed)) / criteriaTotal * 100,
		CriteriaPassed: passed,
	}
}

// Extract collects the spans between quote characters by toggling an
// inside-quotes state on every straight or smart double quote.
func Extract(text string) []string {
	var segments []string
	var cur strings.Builder
	inside := false
	for _, r := range text {
		switch r {
		case '"', '“', '”':
			if inside {
				s := strings.TrimSpace(cur.String())
				if s != "" {
					segments = append(segments, s)
				}
				cur.Reset()
			}
			inside = !inside
		default:
			if inside {
				cur.WriteRune(r)
			}
		}
	}
	return segments
}

func averageLength(segments []string) float64 {
	total := 0
	for _, s := range segments {
		total += len(s)
	}
	return float64(total) / float64(len(segments))
}

// nonRepetitive fails when any normalized segment appears more than
// twice and there are enough segments for that to be meaningful.
func nonRepetitive(segments []string) bool {
	if len(segments) <= 5 {
		return true
	}
	counts := map[string]int{}
	for _, s := range segments {
		counts[strings.ToLower(textutil.NormalizeSpace(s))]++
	}
	for _, c := range counts {
		if c > 2 {
			return false
		}
	}
	return true
}

func fillerRatio(segments []string) float64 {
	hit := 0
	for _, s := range segments {
		lower := strings.ToLower(s)
		for _, f := range lexicon.DialogueFillers {
			// Multi-word fillers match as phrases; single words need
			// word boundaries so "er" does not hit "ledger".
			matched := false
			if strings.Contains(f, " ") {
				matched = strings.Contains(lower, f)
			} else {
				matched = textutil.ContainsWholeWord(lower, f)
			}
			if matched {
				hit++
				break
			}
		}
	}
	return float64(hit) / float64(len(segments))
}

func tagVariety(text string) int {
	lower := strings.ToLower(text)
	distinct := 0
	for _, v := range lexicon.AttributionVerbs {
		if textutil.ContainsWholeWord(lower, v) {
			distinct++
		}
	}
	return distinct
}

func predictableCount(segments []string) int {
	count := 0
	for _, s := range segments {
		for _, p := range lexicon.PredictablePhrases {
			count += textutil.PhraseCount(s, p)
		}
	}
	return count
}

// growth passes when the second half of the conversation introduces
// strictly more unique lines than the first. It needs enough segments
// to be meaningful.
func growth(segments []string) bool {
	if len(segments) <= 10 {
		return false
	}
	half := len(segments) / 2
	return uniqueCount(segments[half:]) > uniqueCount(segments[:half])
}

func uniqueCount(segments []string) int {
	set := map[string]struct{}{}
	for _, s := range segments {
		set[strings.ToLower(textutil.NormalizeSpace(s))] = struct{}{}
	}
	return len(set)
}

// expositionRatio counts long segments with no expressive punctuation,
// a proxy for characters narrating facts at each other.
func expositionRatio(segments []string) float64 {
	hit := 0
	for _, s := range segments {
		if len(s) > 100 && !strings.ContainsAny(s, "?!") && !strings.Contains(s, "...") {
			hit++
		}
	}
	return float64(hit) / float64(len(segments))
}

func conflictRatio(segments []string) float64 {
	hit := 0
	for _, s := range segments {
		lower := strings.ToLower(s)
		for _, w := range lexicon.ConflictWords {
			if textutil.ContainsWholeWord(lower, w) {
				hit++
				break
			}
		}
	}
	return float64(hit) / float64(len(segments))
}

// punctuationRange counts which of exclamation, question, and ellipsis
// appear anywhere in the dialogue.
func punctuationRange(segments []string) int {
	all := strings.Join(segments, " ")
	found := 0
	if strings.Contains(all, "!") {
		found++
	}
	if strings.Contains(all, "?") {
		found++
	}
	if strings.Contains(all, "...") || strings.Contains(all, "…") {
		found++
	}
	return found
}

// pacingScore rewards variation in segment length.
func pacingScore(segments []string) float64 {
	lengths := make([]float64, len(segments))
	for i, s := range segments {
		lengths[i] = float64(len(s))
	}
	score := textutil.StdDev(lengths) / 30 * 100
	if score > 100 {
		score = 100
	}
	return score
}
