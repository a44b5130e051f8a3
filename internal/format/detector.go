// Package format classifies a manuscript as novel or screenplay using
// weighted pattern scoring plus layout heuristics. Both the tension
// analyzer and the plot detector branch on the result, since beat
// vocabularies and expected positions differ by format.
package format

import (
	"log/slog"
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// minSignalChars is the floor below which classification is not
// attempted; short text defaults to novel at 0.5 confidence.
const minSignalChars = 500

type Detector struct {
	patterns *lexicon.Patterns
	logger   *slog.Logger
}

func NewDetector(patterns *lexicon.Patterns, logger *slog.Logger) *Detector {
	return &Detector{patterns: patterns, logger: logger}
}

// Detect returns the format and a confidence in [0,1]. The ambiguous
// zone (screenplay probability between 0.4 and 0.6) resolves to novel
// at 0.5, the more common case.
func (d *Detector) Detect(text string) (manuscript.DocumentFormat, float64) {
	if len(text) < minSignalChars {
		return manuscript.FormatNovel, 0.5
	}

	screenplayScore := scorePatterns(d.patterns.Screenplay, text)
	novelScore := scorePatterns(d.patterns.Novel, text)

	sBonus, nBonus := layoutScores(text)
	screenplayScore += sBonus
	novelScore += nBonus

	total := screenplayScore + novelScore
	if total == 0 {
		return manuscript.FormatNovel, 0.5
	}
	screenplayProb := screenplayScore / total

	d.logger.Debug("format detection",
		"screenplay_score", screenplayScore,
		"novel_score", novelScore,
		"screenplay_prob", screenplayProb)

	switch {
	case screenplayProb > 0.6:
		return manuscript.FormatScreenplay, screenplayProb
	case screenplayProb < 0.4:
		return manuscript.FormatNovel, 1 - screenplayProb
	default:
		return manuscript.FormatNovel, 0.5
	}
}

func scorePatterns(patterns []lexicon.WeightedPattern, text string) float64 {
	score := 0.0
	for _, p := range patterns {
		score += float64(len(p.Pattern.FindAllStringIndex(text, -1))) * p.Weight
	}
	return score
}

// layoutScores adds the secondary heuristics: paragraph length, line
// length, and words-per-page estimate.
func layoutScores(text string) (screenplay, novel float64) {
	paragraphs := textutil.Paragraphs(text)
	if len(paragraphs) > 0 {
		totalLen := 0
		for _, p := range paragraphs {
			totalLen += len(p)
		}
		avg := float64(totalLen) / float64(len(paragraphs))
		if avg < 150 {
			screenplay += 2
		} else if avg > 300 {
			novel += 2
		}
	}

	lines := nonEmptyLines(text)
	if len(lines) > 0 {
		totalLen := 0
		for _, l := range lines {
			totalLen += len(l)
		}
		avg := float64(totalLen) / float64(len(lines))
		if avg < 60 {
			screenplay += 2
		} else if avg > 80 {
			novel += 2
		}
	}

	pageCount := len(text) / 3000
	if pageCount < 1 {
		pageCount = 1
	}
	wordsPerPage := float64(textutil.WordCount(text)) / float64(pageCount)
	if wordsPerPage < 220 {
		screenplay += 2
	} else if wordsPerPage > 240 {
		novel += 2
	}
	return screenplay, novel
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
