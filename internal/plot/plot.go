// Package plot consumes the tension curve, detects and back-fills story
// beats, derives structural issues, and scores the overall structure.
package plot

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// minSamples is the floor below which no beats are detected at all.
const minSamples = 6

const (
	novelPeakThreshold       = 0.40
	screenplayPeakThreshold  = 0.45
	screenplaySharpDelta     = 0.30
	valleyClimbDelta         = 0.25
	lowTension               = 0.20
	inertiaRunLimit          = 5
	flatDelta                = 0.05
	flatRunLimit             = 3
	missingBeatPenaltyNovel  = 6
	missingBeatPenaltyScreen = 8
	varianceBonusThreshold   = 0.05
	wordsPerScreenPage       = 220
)

type Detector struct {
	logger *slog.Logger
}

func NewDetector(logger *slog.Logger) *Detector {
	return &Detector{logger: logger}
}

// Analyze turns a tension curve into the full structural report for the
// detected format.
func (d *Detector) Analyze(text string, totalWords int, f manuscript.DocumentFormat, confidence float64, curve []manuscript.TensionPoint) *manuscript.PlotAnalysis {
	analysis := &manuscript.PlotAnalysis{
		Format:           f,
		FormatConfidence: confidence,
		TensionCurve:     curve,
		PlotPoints:       []manuscript.PlotPoint{},
		MissingPoints:    []string{},
		StructuralIssues: []manuscript.StructuralIssue{},
	}

	if analysis.TensionCurve == nil {
		analysis.TensionCurve = []manuscript.TensionPoint{}
	}

	beats := beatsFor(f)
	points := d.detect(curve, f, beats)
	points = backfill(points, curve, beats)
	if points == nil {
		points = []manuscript.PlotPoint{}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].PercentagePosition < points[j].PercentagePosition
	})
	analysis.PlotPoints = points
	analysis.MissingPoints = missingBeats(points, beats)

	issues := detectIssues(curve, points, f, totalWords)
	analysis.StructuralIssues = issues
	analysis.StructureScore = score(points, analysis.MissingPoints, issues, beats, f)

	switch f {
	case manuscript.FormatScreenplay:
		analysis.Screenplay = screenplayMetrics(text, totalWords, curve)
	default:
		analysis.Novel = novelMetrics(text, totalWords, curve)
	}

	d.logger.Debug("plot analysis",
		"format", f,
		"points", len(points),
		"missing", len(analysis.MissingPoints),
		"issues", len(issues),
		"score", analysis.StructureScore)
	return analysis
}

// detect runs the peak and valley passes over consecutive sample triples.
// Screenplay detection is deliberately more sensitive to sharp local
// swings; novels additionally get a valley-before-climb pass read as a
// setup beat.
func (d *Detector) detect(curve []manuscript.TensionPoint, f manuscript.DocumentFormat, beats []Beat) []manuscript.PlotPoint {
	if len(curve) < minSamples {
		return nil
	}

	seen := map[string]struct{}{}
	var points []manuscript.PlotPoint

	add := func(sample manuscript.TensionPoint) {
		beat := classify(beats, sample.Position)
		if _, ok := seen[beat.Name]; ok {
			return
		}
		seen[beat.Name] = struct{}{}
		points = append(points, manuscript.PlotPoint{
			Type:               beat.Name,
			WordPosition:       sample.WordOffset,
			PercentagePosition: sample.Position,
			TensionLevel:       sample.Tension,
			Question:           beat.Question,
		})
	}

	for i := 1; i < len(curve)-1; i++ {
		prev, cur, next := curve[i-1], curve[i], curve[i+1]
		isPeak := cur.Tension > prev.Tension && cur.Tension > next.Tension
		if isPeak {
			switch f {
			case manuscript.FormatScreenplay:
				if cur.Tension > screenplayPeakThreshold ||
					math.Abs(cur.Tension-prev.Tension) > screenplaySharpDelta ||
					math.Abs(next.Tension-cur.Tension) > screenplaySharpDelta {
					add(cur)
				}
			default:
				if cur.Tension > novelPeakThreshold {
					add(cur)
				}
			}
		}
	}

	if f == manuscript.FormatNovel {
		for i := 1; i < len(curve)-1; i++ {
			prev, cur, next := curve[i-1], curve[i], curve[i+1]
			if cur.Tension < prev.Tension && next.Tension-cur.Tension > valleyClimbDelta {
				add(cur)
			}
		}
	}
	return points
}

// backfill guarantees every mandatory beat exists by synthesizing a
// point at the tension sample nearest the beat's expected position,
// tagged with that beat's failure note.
func backfill(points []manuscript.PlotPoint, curve []manuscript.TensionPoint, beats []Beat) []manuscript.PlotPoint {
	if len(curve) < minSamples {
		return points
	}
	have := map[string]struct{}{}
	for _, p := range points {
		have[p.Type] = struct{}{}
	}
	for _, b := range beats {
		if !b.Mandatory {
			continue
		}
		if _, ok := have[b.Name]; ok {
			continue
		}
		sample := nearestSample(curve, b.Expected)
		points = append(points, manuscript.PlotPoint{
			Type:                 b.Name,
			WordPosition:         sample.WordOffset,
			PercentagePosition:   sample.Position,
			TensionLevel:         sample.Tension,
			Question:             b.Question,
			SuggestedImprovement: b.Failure,
		})
	}
	return points
}

func nearestSample(curve []manuscript.TensionPoint, position float64) manuscript.TensionPoint {
	best := curve[0]
	bestDist := math.Abs(curve[0].Position - position)
	for _, s := range curve[1:] {
		if d := math.Abs(s.Position - position); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

func missingBeats(points []manuscript.PlotPoint, beats []Beat) []string {
	have := map[string]struct{}{}
	for _, p := range points {
		have[p.Type] = struct{}{}
	}
	missing := []string{}
	for _, b := range beats {
		if _, ok := have[b.Name]; !ok {
			missing = append(missing, b.Name)
		}
	}
	return missing
}

func detectIssues(curve []manuscript.TensionPoint, points []manuscript.PlotPoint, f manuscript.DocumentFormat, totalWords int) []manuscript.StructuralIssue {
	if len(curve) < minSamples {
		return []manuscript.StructuralIssue{}
	}
	if f == manuscript.FormatScreenplay {
		return screenplayIssues(curve, totalWords)
	}
	return novelIssues(curve)
}

func novelIssues(curve []manuscript.TensionPoint) []manuscript.StructuralIssue {
	issues := []manuscript.StructuralIssue{}

	// Excessive inertia: a long run of low-tension samples.
	runStart, runLen := 0, 0
	for i, s := range curve {
		if s.Tension < lowTension {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			if runLen == inertiaRunLimit+1 {
				issues = append(issues, manuscript.StructuralIssue{
					Severity:    manuscript.SeverityModerate,
					Category:    manuscript.IssueExcessiveInertia,
					Description: fmt.Sprintf("Tension stays under %.1f for %d consecutive samples.", lowTension, runLen),
					Suggestion:  "Introduce a complication or a reveal inside this stretch.",
					Start:       curve[runStart].Position,
					End:         s.Position,
				})
			}
		} else {
			runLen = 0
		}
	}

	// Late ignition: the first real spike arrives too late.
	ignition := -1.0
	for _, s := range curve {
		if s.Tension > novelPeakThreshold {
			ignition = s.Position
			break
		}
	}
	if ignition > 0.20 {
		issues = append(issues, manuscript.StructuralIssue{
			Severity:    manuscript.SeverityMajor,
			Category:    manuscript.IssueLateIgnition,
			Description: fmt.Sprintf("The first high-tension passage appears at %.0f%% of the manuscript.", ignition*100),
			Suggestion:  "Move or add a destabilizing event inside the first fifth of the book.",
			Start:       0,
			End:         ignition,
		})
	}

	// Thematic diffusion: a flat middle band.
	var mid []float64
	for _, s := range curve {
		if s.Position >= 0.45 && s.Position <= 0.55 {
			mid = append(mid, s.Tension)
		}
	}
	if len(mid) >= 2 {
		sd := textutil.StdDev(mid)
		if sd*sd < 0.02 {
			issues = append(issues, manuscript.StructuralIssue{
				Severity:    manuscript.SeverityMinor,
				Category:    manuscript.IssueThematicDiffusion,
				Description: "Tension barely moves through the middle tenth of the manuscript.",
				Suggestion:  "Use the midpoint to reverse fortune or reframe the goal.",
				Start:       0.45,
				End:         0.55,
			})
		}
	}
	return issues
}

func screenplayIssues(curve []manuscript.TensionPoint, totalWords int) []manuscript.StructuralIssue {
	issues := []manuscript.StructuralIssue{}

	// Repetitive scenes: near-flat consecutive deltas.
	runStart, runLen := 0, 0
	for i := 1; i < len(curve); i++ {
		if math.Abs(curve[i].Tension-curve[i-1].Tension) < flatDelta {
			if runLen == 0 {
				runStart = i - 1
			}
			runLen++
			if runLen == flatRunLimit+1 {
				issues = append(issues, manuscript.StructuralIssue{
					Severity:    manuscript.SeverityMinor,
					Category:    manuscript.IssueRepetitiveScenes,
					Description: fmt.Sprintf("%d consecutive samples change tension by less than %.2f.", runLen, flatDelta),
					Suggestion:  "Vary scene intent; consecutive scenes should not hold the same temperature.",
					Start:       curve[runStart].Position,
					End:         curve[i].Position,
				})
			}
		} else {
			runLen = 0
		}
	}

	// Midpoint sag: the back half averages below 90% of the front half.
	var pre, post []float64
	for _, s := range curve {
		if s.Position < 0.5 {
			pre = append(pre, s.Tension)
		} else {
			post = append(post, s.Tension)
		}
	}
	if len(pre) > 0 && len(post) > 0 {
		if mean(post) < 0.9*mean(pre) {
			issues = append(issues, manuscript.StructuralIssue{
				Severity:    manuscript.SeverityModerate,
				Category:    manuscript.IssueMidpointSag,
				Description: "Average tension after the midpoint drops below 90% of the first half.",
				Suggestion:  "Raise stakes after the midpoint instead of coasting toward the finale.",
				Start:       0.5,
				End:         1.0,
			})
		}
	}

	// Passive protagonist: too few high-tension samples overall.
	high := 0
	for _, s := range curve {
		if s.Tension > 0.5 {
			high++
		}
	}
	if high < 3 {
		issues = append(issues, manuscript.StructuralIssue{
			Severity:    manuscript.SeverityModerate,
			Category:    manuscript.IssuePassiveHero,
			Description: fmt.Sprintf("Only %d samples exceed 0.5 tension across the script.", high),
			Suggestion:  "Give the protagonist actions with visible, costly consequences.",
			Start:       0,
			End:         1.0,
		})
	}

	// Pacing: estimated runtime outside the releasable window.
	runtime := estimatedRuntime(totalWords)
	if runtime < 85 || runtime > 130 {
		issues = append(issues, manuscript.StructuralIssue{
			Severity:    manuscript.SeverityModerate,
			Category:    manuscript.IssuePacing,
			Description: fmt.Sprintf("Estimated runtime is %d minutes, outside the 85-130 minute window.", runtime),
			Suggestion:  "Cut or expand toward a conventional feature length.",
			Start:       0,
			End:         1.0,
		})
	}
	return issues
}

// score starts at 100, penalizes missing mandatory beats and issues by
// severity, and rewards a curve with real variance.
func score(points []manuscript.PlotPoint, missing []string, issues []manuscript.StructuralIssue, beats []Beat, f manuscript.DocumentFormat) int {
	s := 100

	mandatory := map[string]struct{}{}
	for _, b := range beats {
		if b.Mandatory {
			mandatory[b.Name] = struct{}{}
		}
	}
	penalty := missingBeatPenaltyNovel
	if f == manuscript.FormatScreenplay {
		penalty = missingBeatPenaltyScreen
	}
	for _, m := range missing {
		if _, ok := mandatory[m]; ok {
			s -= penalty
		}
	}

	for _, issue := range issues {
		switch issue.Severity {
		case manuscript.SeverityMinor:
			s -= 3
		case manuscript.SeverityModerate:
			s -= 7
		case manuscript.SeverityMajor:
			s -= 12
		}
	}

	if len(points) >= 2 {
		levels := make([]float64, len(points))
		for i, p := range points {
			levels[i] = p.TensionLevel
		}
		sd := textutil.StdDev(levels)
		if sd*sd > varianceBonusThreshold {
			s += 10
		}
	}

	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

func novelMetrics(text string, totalWords int, curve []manuscript.TensionPoint) *manuscript.NovelMetrics {
	if totalWords == 0 {
		return &manuscript.NovelMetrics{}
	}
	internal := densityPerThousand(text, totalWords, lexicon.InternalChangeWords)
	thematic := densityPerThousand(text, totalWords, lexicon.RevelationWords)
	return &manuscript.NovelMetrics{
		InternalChange:    textutil.Clamp(internal*6, 0, 100),
		ThematicResonance: textutil.Clamp(thematic*8, 0, 100),
		NarrativeMomentum: textutil.Clamp(meanDelta(curve)*400, 0, 100),
	}
}

func screenplayMetrics(text string, totalWords int, curve []manuscript.TensionPoint) *manuscript.ScreenplayMetrics {
	m := &manuscript.ScreenplayMetrics{EstimatedRuntime: estimatedRuntime(totalWords)}
	if totalWords == 0 {
		return m
	}
	m.VisualCausality = textutil.Clamp(densityPerThousand(text, totalWords, lexicon.VisualActionWords)*6, 0, 100)
	active := 0
	for _, s := range curve {
		if s.Tension > 0.3 {
			active++
		}
	}
	if len(curve) > 0 {
		m.SceneEfficiency = textutil.Clamp(float64(active)/float64(len(curve))*100, 0, 100)
	}
	m.PacingScore = textutil.Clamp(100-math.Abs(float64(m.EstimatedRuntime)-107)*1.5, 0, 100)
	return m
}

func estimatedRuntime(totalWords int) int {
	r := totalWords / wordsPerScreenPage
	if r < 1 {
		r = 1
	}
	return r
}

func densityPerThousand(text string, totalWords int, words []string) float64 {
	set := map[string]struct{}{}
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	hits := 0
	for _, w := range textutil.Words(text) {
		if _, ok := set[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(totalWords) * 1000
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func meanDelta(curve []manuscript.TensionPoint) float64 {
	if len(curve) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(curve); i++ {
		total += math.Abs(curve[i].Tension - curve[i-1].Tension)
	}
	return total / float64(len(curve)-1)
}
