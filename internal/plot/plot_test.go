package plot

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
)

func newDetector() *Detector {
	return NewDetector(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// curveFrom builds an evenly spaced curve from tension levels.
func curveFrom(levels []float64) []manuscript.TensionPoint {
	points := make([]manuscript.TensionPoint, len(levels))
	for i, l := range levels {
		points[i] = manuscript.TensionPoint{
			Position:   float64(i+1) / float64(len(levels)),
			Tension:    l,
			WordOffset: (i + 1) * 100,
		}
	}
	return points
}

func TestAnalyzeTooFewSamples(t *testing.T) {
	curve := curveFrom([]float64{0.1, 0.5, 0.2, 0.6, 0.3})
	analysis := newDetector().Analyze("", 500, manuscript.FormatNovel, 0.8, curve)
	if len(analysis.PlotPoints) != 0 {
		t.Errorf("expected no plot points for %d samples, got %d", len(curve), len(analysis.PlotPoints))
	}
	if len(analysis.MissingPoints) != len(novelBeats) {
		t.Errorf("missing points = %d, want all %d beats", len(analysis.MissingPoints), len(novelBeats))
	}
	if analysis.StructureScore < 0 || analysis.StructureScore > 100 {
		t.Errorf("structure score %d out of [0,100]", analysis.StructureScore)
	}
}

func TestAnalyzeEmptyCurve(t *testing.T) {
	analysis := newDetector().Analyze("", 0, manuscript.FormatNovel, 0.5, nil)
	if analysis.PlotPoints == nil || analysis.TensionCurve == nil {
		t.Fatal("PlotPoints and TensionCurve must be empty, not nil")
	}
	if len(analysis.PlotPoints) != 0 || len(analysis.TensionCurve) != 0 {
		t.Error("expected empty analysis for empty curve")
	}
	if analysis.Novel == nil {
		t.Error("novel metrics should be present even for empty input")
	}
}

func TestMandatoryBeatsBackfilled(t *testing.T) {
	// Flat low curve: nothing detectable, so every mandatory beat must
	// be synthesized near its expected position.
	levels := make([]float64, 20)
	for i := range levels {
		levels[i] = 0.1
	}
	analysis := newDetector().Analyze("", 2000, manuscript.FormatNovel, 0.8, curveFrom(levels))

	want := map[string]bool{
		"Inciting Disruption": false,
		"Midpoint Reversal":   false,
		"Crisis":              false,
		"Climax":              false,
	}
	for _, p := range analysis.PlotPoints {
		if _, ok := want[p.Type]; ok {
			want[p.Type] = true
			if p.SuggestedImprovement == "" {
				t.Errorf("back-filled beat %s missing improvement note", p.Type)
			}
		}
	}
	for beat, found := range want {
		if !found {
			t.Errorf("mandatory beat %s not back-filled", beat)
		}
	}
	for _, m := range analysis.MissingPoints {
		if _, mandatory := want[m]; mandatory {
			t.Errorf("mandatory beat %s still listed missing after back-fill", m)
		}
	}
}

func TestPlotPointInvariants(t *testing.T) {
	levels := []float64{0.1, 0.5, 0.2, 0.3, 0.7, 0.2, 0.4, 0.9, 0.3, 0.2, 0.6, 0.1}
	analysis := newDetector().Analyze("", 1200, manuscript.FormatNovel, 0.8, curveFrom(levels))
	for _, p := range analysis.PlotPoints {
		if p.PercentagePosition < 0 || p.PercentagePosition > 1 {
			t.Errorf("beat %s position %f out of [0,1]", p.Type, p.PercentagePosition)
		}
		if p.TensionLevel < 0 || p.TensionLevel > 1 {
			t.Errorf("beat %s tension %f out of [0,1]", p.Type, p.TensionLevel)
		}
		if p.Question == "" {
			t.Errorf("beat %s has no diagnostic question", p.Type)
		}
	}
	if analysis.StructureScore < 0 || analysis.StructureScore > 100 {
		t.Errorf("structure score %d out of [0,100]", analysis.StructureScore)
	}
}

func TestStructureScoreRewardsShapedTension(t *testing.T) {
	flat := make([]float64, 20)
	for i := range flat {
		flat[i] = 0.1
	}
	shaped := make([]float64, 20)
	for i := range shaped {
		shaped[i] = 0.15
	}
	// Clear peaks near the inciting, midpoint, crisis, and climax bands.
	shaped[2] = 0.55  // ~15%
	shaped[9] = 0.70  // ~50%
	shaped[14] = 0.65 // ~75%
	shaped[17] = 0.95 // ~90%

	d := newDetector()
	flatScore := d.Analyze("", 2000, manuscript.FormatNovel, 0.8, curveFrom(flat)).StructureScore
	shapedScore := d.Analyze("", 2000, manuscript.FormatNovel, 0.8, curveFrom(shaped)).StructureScore
	if shapedScore <= flatScore {
		t.Errorf("shaped curve score %d should beat flat curve score %d", shapedScore, flatScore)
	}
}

func TestShapedCurveDetectsExpectedBeats(t *testing.T) {
	levels := make([]float64, 20)
	for i := range levels {
		levels[i] = 0.15
	}
	levels[2] = 0.55
	levels[16] = 0.95 // 17/20 = 85%, inside the climax band
	analysis := newDetector().Analyze("", 2000, manuscript.FormatNovel, 0.8, curveFrom(levels))

	detected := map[string]manuscript.PlotPoint{}
	for _, p := range analysis.PlotPoints {
		detected[p.Type] = p
	}
	inciting, ok := detected["Inciting Disruption"]
	if !ok {
		t.Fatal("Inciting Disruption not present")
	}
	if inciting.SuggestedImprovement != "" {
		t.Error("detected inciting beat should not carry a back-fill note")
	}
	climax, ok := detected["Climax"]
	if !ok {
		t.Fatal("Climax not present")
	}
	if climax.SuggestedImprovement != "" {
		t.Error("detected climax should not carry a back-fill note")
	}
	for _, m := range analysis.MissingPoints {
		if m == "Inciting Disruption" || m == "Climax" {
			t.Errorf("%s should not be missing", m)
		}
	}
}

func TestNovelIssues(t *testing.T) {
	// Long low-tension prefix triggers inertia and late ignition.
	levels := make([]float64, 20)
	for i := range levels {
		levels[i] = 0.05
	}
	levels[12] = 0.6
	analysis := newDetector().Analyze("", 2000, manuscript.FormatNovel, 0.8, curveFrom(levels))

	categories := map[manuscript.IssueCategory]bool{}
	for _, issue := range analysis.StructuralIssues {
		categories[issue.Category] = true
		if issue.Start < 0 || issue.End > 1 || issue.Start > issue.End {
			t.Errorf("issue %s has invalid range [%f, %f]", issue.Category, issue.Start, issue.End)
		}
	}
	if !categories[manuscript.IssueExcessiveInertia] {
		t.Error("expected excessive inertia issue")
	}
	if !categories[manuscript.IssueLateIgnition] {
		t.Error("expected late ignition issue")
	}
}

func TestScreenplayIssues(t *testing.T) {
	// Flat curve and a short script: repetitive scenes, sagging back
	// half is not triggered by a flat curve, passive protagonist and
	// pacing are.
	levels := make([]float64, 16)
	for i := range levels {
		levels[i] = 0.2
	}
	analysis := newDetector().Analyze("", 4000, manuscript.FormatScreenplay, 0.9, curveFrom(levels))

	categories := map[manuscript.IssueCategory]bool{}
	for _, issue := range analysis.StructuralIssues {
		categories[issue.Category] = true
	}
	if !categories[manuscript.IssueRepetitiveScenes] {
		t.Error("expected repetitive scenes issue")
	}
	if !categories[manuscript.IssuePassiveHero] {
		t.Error("expected passive protagonist issue")
	}
	if !categories[manuscript.IssuePacing] {
		t.Error("expected pacing issue for an 18-minute runtime")
	}
	if analysis.Screenplay == nil {
		t.Fatal("screenplay metrics missing")
	}
	if analysis.Screenplay.EstimatedRuntime != 4000/220 {
		t.Errorf("estimated runtime = %d, want %d", analysis.Screenplay.EstimatedRuntime, 4000/220)
	}
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		position float64
		want     string
	}{
		{0.01, "Opening State"},
		{0.10, "Inciting Disruption"},
		{0.50, "Midpoint Reversal"},
		{0.75, "Crisis"},
		{0.85, "Climax"},
		{0.99, "Aftermath"},
	}
	for _, tt := range tests {
		if got := classify(novelBeats, tt.position); got.Name != tt.want {
			t.Errorf("classify(%f) = %s, want %s", tt.position, got.Name, tt.want)
		}
	}
}
