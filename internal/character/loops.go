package character

import (
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// Sampling caps. Belief shifts read first/middle/last; consequence
// chains read quartile positions; the full loop samples up to five
// spread chapters. Only chapters where the name occurs qualify.
const (
	beliefShiftSamples = 3
	consequenceSamples = 4
	loopSamples        = 5
)

// DecisionBeliefLoops assembles the per-character pressure/belief/
// decision/outcome model. A chapter contributes an entry only when it
// yields both a belief sentence and a decision sentence; the remaining
// fields fall back to fixed generic phrases. The first matching
// sentence per chapter wins; this coarseness is intentional and kept
// from the heuristic's design.
func (a *Analyzer) DecisionBeliefLoops(names []string, chapters []Chapter) []manuscript.DecisionBeliefLoop {
	out := []manuscript.DecisionBeliefLoop{}
	for _, name := range names {
		var entries []manuscript.LoopEntry
		for _, ch := range sampleChapters(name, chapters, loopSamples) {
			sentences := textutil.Sentences(ch.Text)
			belief, ok := firstCueSentence(sentences, name, lexicon.BeliefCues)
			if !ok {
				continue
			}
			decision, ok := firstCueSentence(sentences, name, lexicon.DecisionCues)
			if !ok {
				continue
			}
			entries = append(entries, manuscript.LoopEntry{
				Chapter:      ch.Number,
				Pressure:     cueOr(sentences, name, lexicon.CounterpressureCues, lexicon.GenericPressure),
				BeliefInPlay: belief,
				Decision:     decision,
				Outcome:      cueOr(sentences, name, lexicon.OutcomeCues, lexicon.GenericOutcome),
				BeliefShift:  cueOr(sentences, name, lexicon.EffectCues, lexicon.GenericShift),
			})
		}
		if len(entries) > 0 {
			out = append(out, manuscript.DecisionBeliefLoop{Character: name, Entries: entries})
		}
	}
	return out
}

// BeliefShifts mines belief, evidence, and counterpressure sentences
// from the first, middle, and last qualifying chapters. A chapter with
// no belief sentence is skipped; a character with no entries produces
// no matrix.
func (a *Analyzer) BeliefShifts(names []string, chapters []Chapter) []manuscript.BeliefShiftMatrix {
	out := []manuscript.BeliefShiftMatrix{}
	for _, name := range names {
		var shifts []manuscript.BeliefShiftEntry
		for _, ch := range sampleChapters(name, chapters, beliefShiftSamples) {
			sentences := textutil.Sentences(ch.Text)
			belief, ok := firstCueSentence(sentences, name, lexicon.BeliefCues)
			if !ok {
				continue
			}
			shifts = append(shifts, manuscript.BeliefShiftEntry{
				Chapter:         ch.Number,
				Belief:          belief,
				Evidence:        cueOr(sentences, name, lexicon.EvidenceCues, lexicon.GenericEvidence),
				Counterpressure: cueOr(sentences, name, lexicon.CounterpressureCues, lexicon.GenericCounter),
			})
		}
		if len(shifts) > 0 {
			out = append(out, manuscript.BeliefShiftMatrix{Character: name, Shifts: shifts})
		}
	}
	return out
}

// ConsequenceChains mines decision, outcome, and long-term effect
// sentences at quartile chapter positions. A chapter with no decision
// sentence is skipped entirely.
func (a *Analyzer) ConsequenceChains(names []string, chapters []Chapter) []manuscript.DecisionConsequenceChain {
	out := []manuscript.DecisionConsequenceChain{}
	for _, name := range names {
		var links []manuscript.ConsequenceEntry
		for _, ch := range sampleChapters(name, chapters, consequenceSamples) {
			sentences := textutil.Sentences(ch.Text)
			decision, ok := firstCueSentence(sentences, name, lexicon.DecisionCues)
			if !ok {
				continue
			}
			links = append(links, manuscript.ConsequenceEntry{
				Chapter:          ch.Number,
				Decision:         decision,
				ImmediateOutcome: cueOr(sentences, name, lexicon.OutcomeCues, lexicon.GenericOutcome),
				LongTermEffect:   cueOr(sentences, name, lexicon.EffectCues, lexicon.GenericEffect),
			})
		}
		if len(links) > 0 {
			out = append(out, manuscript.DecisionConsequenceChain{Character: name, Links: links})
		}
	}
	return out
}

// sampleChapters picks up to max chapters spread evenly across the
// chapters where the character's name actually occurs, always including
// the first and last when possible.
func sampleChapters(name string, chapters []Chapter, max int) []Chapter {
	var qualifying []Chapter
	for _, ch := range chapters {
		if textutil.ContainsWholeWord(ch.Text, name) {
			qualifying = append(qualifying, ch)
		}
	}
	if len(qualifying) <= max {
		return qualifying
	}
	out := make([]Chapter, 0, max)
	step := float64(len(qualifying)-1) / float64(max-1)
	seen := map[int]struct{}{}
	for i := 0; i < max; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx >= len(qualifying) {
			idx = len(qualifying) - 1
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, qualifying[idx])
	}
	return out
}

// firstCueSentence returns the first sentence containing both the
// character's name and any cue. Multi-word cues match as substrings;
// single words match on word boundaries.
func firstCueSentence(sentences []string, name string, cues []string) (string, bool) {
	for _, s := range sentences {
		if !textutil.ContainsWholeWord(s, name) {
			continue
		}
		lower := strings.ToLower(s)
		for _, cue := range cues {
			if strings.Contains(cue, " ") {
				if strings.Contains(lower, cue) {
					return strings.TrimSpace(s), true
				}
			} else if textutil.ContainsWholeWord(lower, cue) {
				return strings.TrimSpace(s), true
			}
		}
	}
	return "", false
}

// cueOr returns the first cue sentence or the fixed generic fallback.
func cueOr(sentences []string, name string, cues []string, generic string) string {
	if s, ok := firstCueSentence(sentences, name, cues); ok {
		return s
	}
	return generic
}
