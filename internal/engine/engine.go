// Package engine wires the analyzers into the single analysis entry
// point. The engine holds no mutable state between calls beyond the
// load-once lexicon tables: given identical inputs it produces
// identical results, timestamps and IDs aside.
package engine

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vampirenirmal/storyscope/internal/character"
	"github.com/vampirenirmal/storyscope/internal/config"
	"github.com/vampirenirmal/storyscope/internal/dialogue"
	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/format"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/plot"
	"github.com/vampirenirmal/storyscope/internal/prose"
	"github.com/vampirenirmal/storyscope/internal/tension"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// charsPerPage drives the rough page estimate.
const charsPerPage = 3000

type Engine struct {
	limits     config.Limits
	detector   *format.Detector
	tension    *tension.Analyzer
	plot       *plot.Detector
	dialogue   *dialogue.Analyzer
	prose      *prose.Analyzer
	characters *character.Analyzer
	logger     *slog.Logger
}

// New builds the engine, compiling the shared pattern set once. A
// pattern that fails to compile is a startup fault, not a runtime one.
func New(limits config.Limits, logger *slog.Logger) (*Engine, error) {
	patterns, err := lexicon.Build()
	if err != nil {
		return nil, fmt.Errorf("building lexicon patterns: %w", err)
	}
	return &Engine{
		limits:     limits,
		detector:   format.NewDetector(patterns, logger),
		tension:    tension.NewAnalyzer(logger),
		plot:       plot.NewDetector(logger),
		dialogue:   dialogue.NewAnalyzer(logger),
		prose:      prose.NewAnalyzer(patterns, logger),
		characters: character.NewAnalyzer(logger),
		logger:     logger,
	}, nil
}

// Analyze runs the full pipeline synchronously and returns a fresh
// result tree owned by the caller. It never fails on content: empty or
// malformed input degrades to zero-valued metrics.
func (e *Engine) Analyze(req manuscript.Request) *manuscript.AnalysisResults {
	started := time.Now()

	fullText := req.Text
	analyzed := truncate(fullText, e.limits.MaxTextChars)

	results := &manuscript.AnalysisResults{
		ID:         uuid.NewString(),
		SourceName: req.SourceName,
		CreatedAt:  time.Now().UTC(),

		WordCount:      textutil.WordCount(fullText),
		SentenceCount:  len(textutil.Sentences(fullText)),
		ParagraphCount: len(textutil.Paragraphs(fullText)),
		PageCount:      pageCount(fullText),
	}

	docFormat, confidence := e.detector.Detect(analyzed)
	analyzedWords := textutil.WordCount(analyzed)
	curve := e.tension.Curve(analyzed, analyzedWords, docFormat)
	results.Plot = e.plot.Analyze(analyzed, analyzedWords, docFormat, confidence, curve)

	results.Prose = e.prose.Analyze(analyzed)
	results.Dialogue = e.dialogue.Analyze(analyzed)

	chapters := character.SplitChapters(analyzed, req.Outline)
	names := e.characters.Resolve(req.CharacterNames, analyzed)
	results.CharacterPresence = e.characters.Presence(names, chapters)
	results.CharacterInteractions = e.characters.Interactions(names, chapters)
	results.DecisionBeliefLoops = e.characters.DecisionBeliefLoops(names, chapters)
	results.BeliefShiftMatrices = e.characters.BeliefShifts(names, chapters)
	results.DecisionConsequenceChains = e.characters.ConsequenceChains(names, chapters)

	e.logger.Debug("analysis complete",
		"id", results.ID,
		"words", results.WordCount,
		"format", docFormat,
		"characters", len(names),
		"elapsed", time.Since(started))
	return results
}

// truncate caps the analyzed text, backing off to a rune boundary so a
// multibyte character is never split. The caller-visible counts are
// still computed against the full text.
func truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func pageCount(text string) int {
	pages := len(text) / charsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}
