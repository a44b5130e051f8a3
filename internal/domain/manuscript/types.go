package manuscript

import "time"

// DocumentFormat is the detected layout family of a manuscript.
type DocumentFormat string

const (
	FormatNovel      DocumentFormat = "novel"
	FormatScreenplay DocumentFormat = "screenplay"
)

// OutlineEntry describes one structural node supplied by the caller's
// outline subsystem. Level 0 = part, 1 = chapter, 2 = heading.
type OutlineEntry struct {
	Level    int `json:"level"`
	Location int `json:"location"`
	Length   int `json:"length"`
}

// PagePosition maps a text location to a page number. Accepted and
// carried on the request but not yet used to position extractions.
type PagePosition struct {
	Location int `json:"location"`
	Page     int `json:"page"`
}

// Request carries everything a single analysis run consumes. The
// validate tags bound caller-supplied metadata at the API boundary; the
// text itself is unbounded here and capped by the engine's limits.
type Request struct {
	Text           string         `json:"text"`
	SourceName     string         `json:"source_name,omitempty" validate:"max=255"`
	CharacterNames []string       `json:"character_names,omitempty" validate:"max=200,dive,max=100"`
	Outline        []OutlineEntry `json:"outline,omitempty" validate:"max=5000"`
	Pages          []PagePosition `json:"pages,omitempty" validate:"max=20000"`
}

// TensionPoint is one sample of the tension curve.
type TensionPoint struct {
	Position   float64 `json:"position"`
	Tension    float64 `json:"tension"`
	WordOffset int     `json:"word_offset"`
}

// PlotPoint is a detected or back-filled story beat.
type PlotPoint struct {
	Type                 string  `json:"type"`
	WordPosition         int     `json:"word_position"`
	PercentagePosition   float64 `json:"percentage_position"`
	TensionLevel         float64 `json:"tension_level"`
	Question             string  `json:"question"`
	SuggestedImprovement string  `json:"suggested_improvement,omitempty"`
}

type IssueSeverity string

const (
	SeverityMinor    IssueSeverity = "minor"
	SeverityModerate IssueSeverity = "moderate"
	SeverityMajor    IssueSeverity = "major"
)

// IssueCategory distinguishes the format-specific structural problems.
type IssueCategory string

const (
	IssueExcessiveInertia  IssueCategory = "excessive_inertia"
	IssueLateIgnition      IssueCategory = "late_ignition"
	IssueThematicDiffusion IssueCategory = "thematic_diffusion"
	IssueRepetitiveScenes  IssueCategory = "repetitive_scenes"
	IssueMidpointSag       IssueCategory = "midpoint_sag"
	IssuePassiveHero       IssueCategory = "passive_protagonist"
	IssuePacing            IssueCategory = "pacing"
)

// StructuralIssue flags a pacing or structure problem over a fractional
// range of the manuscript. Start and End are in [0,1] with Start <= End.
type StructuralIssue struct {
	Severity    IssueSeverity `json:"severity"`
	Category    IssueCategory `json:"category"`
	Description string        `json:"description"`
	Suggestion  string        `json:"suggestion"`
	Start       float64       `json:"start"`
	End         float64       `json:"end"`
}

// NovelMetrics are the prose-narrative quality signals computed only
// for novel-formatted manuscripts.
type NovelMetrics struct {
	InternalChange    float64 `json:"internal_change"`
	ThematicResonance float64 `json:"thematic_resonance"`
	NarrativeMomentum float64 `json:"narrative_momentum"`
}

// ScreenplayMetrics are the screen-format quality signals.
type ScreenplayMetrics struct {
	VisualCausality  float64 `json:"visual_causality"`
	SceneEfficiency  float64 `json:"scene_efficiency"`
	PacingScore      float64 `json:"pacing_score"`
	EstimatedRuntime int     `json:"estimated_runtime_minutes"`
}

// PlotAnalysis is the structural half of an analysis run.
type PlotAnalysis struct {
	Format           DocumentFormat     `json:"format"`
	FormatConfidence float64            `json:"format_confidence"`
	PlotPoints       []PlotPoint        `json:"plot_points"`
	TensionCurve     []TensionPoint     `json:"tension_curve"`
	StructureScore   int                `json:"structure_score"`
	MissingPoints    []string           `json:"missing_points"`
	StructuralIssues []StructuralIssue  `json:"structural_issues"`
	Novel            *NovelMetrics      `json:"novel_metrics,omitempty"`
	Screenplay       *ScreenplayMetrics `json:"screenplay_metrics,omitempty"`
}

// LoopEntry is one chapter's worth of a character's decision-belief loop.
type LoopEntry struct {
	Chapter      int    `json:"chapter"`
	Pressure     string `json:"pressure"`
	BeliefInPlay string `json:"belief_in_play"`
	Decision     string `json:"decision"`
	Outcome      string `json:"outcome"`
	BeliefShift  string `json:"belief_shift"`
}

// ArcQuality grades how much a character's beliefs move across a loop.
type ArcQuality string

const (
	ArcInsufficient ArcQuality = "insufficient"
	ArcFlat         ArcQuality = "flat"
	ArcDeveloping   ArcQuality = "developing"
	ArcEvolving     ArcQuality = "evolving"
)

// DecisionBeliefLoop is the per-character pressure/belief/decision/outcome
// model, ordered by chapter.
type DecisionBeliefLoop struct {
	Character string      `json:"character"`
	Entries   []LoopEntry `json:"entries"`
}

// ArcQuality derives the arc grade from the diversity of beliefs and
// shifts across the loop's entries. It is computed, never stored.
func (l DecisionBeliefLoop) ArcQuality() ArcQuality {
	if len(l.Entries) < 2 {
		return ArcInsufficient
	}
	beliefs := map[string]struct{}{}
	shifts := map[string]struct{}{}
	for _, e := range l.Entries {
		beliefs[e.BeliefInPlay] = struct{}{}
		shifts[e.BeliefShift] = struct{}{}
	}
	switch {
	case len(beliefs) == 1 && len(shifts) <= 1:
		return ArcFlat
	case len(beliefs) >= 2 && len(shifts) >= 2:
		return ArcEvolving
	default:
		return ArcDeveloping
	}
}

// CharacterPresence maps chapter number to mention count for one
// character. Absent chapters imply zero mentions.
type CharacterPresence struct {
	Character string      `json:"character"`
	Mentions  map[int]int `json:"mentions"`
}

// CharacterInteraction records how often an unordered pair of characters
// shares a chapter. Strength is coAppearances/totalChapters, in [0,1].
type CharacterInteraction struct {
	CharacterA    string  `json:"character_a"`
	CharacterB    string  `json:"character_b"`
	CoAppearances int     `json:"co_appearances"`
	Sections      []int   `json:"sections"`
	Strength      float64 `json:"strength"`
}

// BeliefShiftEntry captures a belief, its evidence, and the pressure
// against it, scoped to a chapter.
type BeliefShiftEntry struct {
	Chapter         int    `json:"chapter"`
	Belief          string `json:"belief"`
	Evidence        string `json:"evidence"`
	Counterpressure string `json:"counterpressure"`
}

type BeliefShiftMatrix struct {
	Character string             `json:"character"`
	Shifts    []BeliefShiftEntry `json:"shifts"`
}

// ConsequenceEntry captures a decision and its short- and long-range
// fallout, scoped to a chapter.
type ConsequenceEntry struct {
	Chapter          int    `json:"chapter"`
	Decision         string `json:"decision"`
	ImmediateOutcome string `json:"immediate_outcome"`
	LongTermEffect   string `json:"long_term_effect"`
}

type DecisionConsequenceChain struct {
	Character string             `json:"character"`
	Links     []ConsequenceEntry `json:"links"`
}

// DialogueMetrics is the rubric outcome for extracted dialogue.
type DialogueMetrics struct {
	SegmentCount   int      `json:"segment_count"`
	QualityScore   float64  `json:"quality_score"`
	CriteriaPassed []string `json:"criteria_passed,omitempty"`
}

// ProseMetrics holds the independent prose-quality pass.
type ProseMetrics struct {
	PassiveVoiceCount int     `json:"passive_voice_count"`
	AdverbCount       int     `json:"adverb_count"`
	ClicheCount       int     `json:"cliche_count"`
	FilterWordCount   int     `json:"filter_word_count"`
	WeakVerbCount     int     `json:"weak_verb_count"`
	SentenceVariety   float64 `json:"sentence_variety"`
	ReadingLevel      string  `json:"reading_level"`
	SensoryDensity    float64 `json:"sensory_density"`
}

// AnalysisResults is the root aggregate returned by one analysis run.
// It is created fresh per call and owned exclusively by the caller.
type AnalysisResults struct {
	ID         string    `json:"id"`
	SourceName string    `json:"source_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	WordCount      int `json:"word_count"`
	SentenceCount  int `json:"sentence_count"`
	ParagraphCount int `json:"paragraph_count"`
	PageCount      int `json:"page_count"`

	Prose    ProseMetrics    `json:"prose"`
	Dialogue DialogueMetrics `json:"dialogue"`

	Plot *PlotAnalysis `json:"plot,omitempty"`

	DecisionBeliefLoops       []DecisionBeliefLoop       `json:"decision_belief_loops"`
	CharacterInteractions     []CharacterInteraction     `json:"character_interactions"`
	CharacterPresence         []CharacterPresence        `json:"character_presence"`
	BeliefShiftMatrices       []BeliefShiftMatrix        `json:"belief_shift_matrices"`
	DecisionConsequenceChains []DecisionConsequenceChain `json:"decision_consequence_chains"`
}
