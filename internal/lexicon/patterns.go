package lexicon

import (
	"fmt"
	"regexp"
)

// WeightedPattern is a compiled regex with the score weight one match
// contributes during format detection.
type WeightedPattern struct {
	Name    string
	Pattern *regexp.Regexp
	Weight  float64
}

// Patterns is the full compiled pattern set. Built once by Build; all
// analyzers share the same instance.
type Patterns struct {
	Screenplay     []WeightedPattern
	Novel          []WeightedPattern
	Passive        []*regexp.Regexp
	Adverb         *regexp.Regexp
	ChapterHeading *regexp.Regexp
}

type patternSpec struct {
	name   string
	expr   string
	weight float64
}

var screenplaySpecs = []patternSpec{
	{"scene_heading", `(?m)^\s*(INT\.|EXT\.|INT/EXT\.?)\s`, 3.0},
	{"character_cue", `(?m)^\s*[A-Z][A-Z .'-]{2,30}$`, 2.0},
	{"transition", `(?m)(CUT TO:|FADE IN:|FADE OUT\.?|DISSOLVE TO:|SMASH CUT)`, 3.0},
	{"parenthetical", `(?m)^\s*\([a-z][a-z ,']{1,40}\)\s*$`, 2.0},
}

var novelSpecs = []patternSpec{
	{"chapter_header", `(?mi)^\s*(chapter|ch\.?)\s+[0-9ivxlcdm]+`, 3.0},
	{"internal_thought", `(?i)\b(thought|wondered|remembered|felt|realized)\b`, 1.0},
	{"dialogue_tag", `(?i)[,"”]\s*(he|she|they|\w+)\s+(said|asked|replied|whispered)`, 2.0},
	{"time_transition", `(?i)\b(the next morning|later that (day|night|evening)|the following day|hours later|days later|that night)\b`, 2.0},
}

var passiveSpecs = []string{
	`(?i)\b(was|were|is|are|been|being|be)\s+\w+ed\b`,
	`(?i)\b(was|were|is|are|been|being|be)\s+\w+(own|aken|itten|ung|one)\b`,
}

// Build compiles the full pattern set. A failing pattern aborts the
// build with an error naming it; callers treat that as a startup fault
// rather than degrading coverage silently.
func Build() (*Patterns, error) {
	p := &Patterns{}
	var err error
	if p.Screenplay, err = compileSpecs(screenplaySpecs); err != nil {
		return nil, fmt.Errorf("screenplay patterns: %w", err)
	}
	if p.Novel, err = compileSpecs(novelSpecs); err != nil {
		return nil, fmt.Errorf("novel patterns: %w", err)
	}
	for _, expr := range passiveSpecs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("passive pattern %q: %w", expr, err)
		}
		p.Passive = append(p.Passive, re)
	}
	p.Adverb, err = regexp.Compile(`(?i)\b\w{3,}ly\b`)
	if err != nil {
		return nil, fmt.Errorf("adverb pattern: %w", err)
	}
	p.ChapterHeading, err = regexp.Compile(`(?mi)^\s*(#\s*)?(chapter|ch\.?)\s+([0-9ivxlcdm]+)\b.*$|^\s*([0-9]{1,3})\s*$`)
	if err != nil {
		return nil, fmt.Errorf("chapter heading pattern: %w", err)
	}
	return p, nil
}

func compileSpecs(specs []patternSpec) ([]WeightedPattern, error) {
	out := make([]WeightedPattern, 0, len(specs))
	for _, s := range specs {
		re, err := regexp.Compile(s.expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		out = append(out, WeightedPattern{Name: s.name, Pattern: re, Weight: s.weight})
	}
	return out, nil
}
