// Package tension slides a word window across the manuscript and scores
// each window against the lexicon tables, emitting the tension curve the
// plot detector consumes.
package tension

import (
	"log/slog"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// windowSize is the trailing window, in words, each sample scores.
const windowSize = 100

const (
	tensionWeight    = 0.30
	actionWeight     = 0.20
	revelationWeight = 0.25
	formatWeight     = 0.15
	scoreDivisor     = 3.0
)

type Analyzer struct {
	tension    map[string]struct{}
	action     map[string]struct{}
	revelation map[string]struct{}
	visual     map[string]struct{}
	internal   map[string]struct{}
	logger     *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{
		tension:    toSet(lexicon.TensionWords),
		action:     toSet(lexicon.ActionVerbs),
		revelation: toSet(lexicon.RevelationWords),
		visual:     toSet(lexicon.VisualActionWords),
		internal:   toSet(lexicon.InternalChangeWords),
		logger:     logger,
	}
}

// Curve samples the text at a format- and length-dependent interval and
// returns the ordered tension curve. Word offsets are strictly
// increasing; tension values are clamped to [0,1].
func (a *Analyzer) Curve(text string, totalWords int, docFormat manuscript.DocumentFormat) []manuscript.TensionPoint {
	words := textutil.Words(text)
	if len(words) == 0 || totalWords == 0 {
		return nil
	}

	interval := sampleInterval(docFormat, totalWords)
	points := make([]manuscript.TensionPoint, 0, len(words)/interval+1)
	window := make([]string, 0, windowSize)

	for i, w := range words {
		window = append(window, w)
		if len(window) > windowSize {
			window = window[1:]
		}
		count := i + 1
		if count%interval == 0 || i == len(words)-1 {
			t := a.scoreWindow(window, docFormat)
			points = append(points, manuscript.TensionPoint{
				Position:   float64(count) / float64(totalWords),
				Tension:    t,
				WordOffset: count,
			})
		}
	}
	a.logger.Debug("tension curve sampled", "samples", len(points), "interval", interval)
	return points
}

func (a *Analyzer) scoreWindow(window []string, docFormat manuscript.DocumentFormat) float64 {
	score := 0.0
	for _, w := range window {
		if _, ok := a.tension[w]; ok {
			score += tensionWeight
		}
		if _, ok := a.action[w]; ok {
			score += actionWeight
		}
		if _, ok := a.revelation[w]; ok {
			score += revelationWeight
		}
		switch docFormat {
		case manuscript.FormatScreenplay:
			if _, ok := a.visual[w]; ok {
				score += formatWeight
			}
		default:
			if _, ok := a.internal[w]; ok {
				score += formatWeight
			}
		}
	}
	return textutil.Clamp(score/scoreDivisor, 0, 1)
}

// sampleInterval scales with total length: screenplays sample more
// densely because their turns are expected to be more frequent.
func sampleInterval(docFormat manuscript.DocumentFormat, totalWords int) int {
	if docFormat == manuscript.FormatScreenplay {
		return clampInt(totalWords/20, 50, 200)
	}
	return clampInt(totalWords/10, 100, 500)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
