package character

import (
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/lexicon"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSplitChaptersFromOutline(t *testing.T) {
	text := "Part One\nMara walked north.\nChapter Two Title\nMara walked south."
	outline := []manuscript.OutlineEntry{
		{Level: 1, Location: 0, Length: 28},
		{Level: 1, Location: 28, Length: 36},
	}

	chapters := SplitChapters(text, outline)
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	if chapters[0].Title != "Part One" {
		t.Errorf("first title = %q", chapters[0].Title)
	}
	if chapters[1].Number != 2 || chapters[1].Title != "Chapter Two Title" {
		t.Errorf("second chapter = %+v", chapters[1])
	}
}

func TestSplitChaptersSkipsInvalidOffsets(t *testing.T) {
	text := "Some short text."
	outline := []manuscript.OutlineEntry{
		{Level: 1, Location: -5},
		{Level: 1, Location: 0},
		{Level: 1, Location: 9999},
	}

	chapters := SplitChapters(text, outline)
	if len(chapters) != 1 {
		t.Fatalf("got %d chapters, want 1", len(chapters))
	}
	if chapters[0].Text != text {
		t.Errorf("chapter text = %q", chapters[0].Text)
	}
}

func TestSplitChaptersLevelFallback(t *testing.T) {
	text := "Heading A\nbody a\nHeading B\nbody b"
	outline := []manuscript.OutlineEntry{
		{Level: 2, Location: 0},
		{Level: 2, Location: 17},
	}

	chapters := SplitChapters(text, outline)
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters from level-2 fallback, want 2", len(chapters))
	}
}

func TestSplitChaptersFromMarkers(t *testing.T) {
	text := "Front matter to drop.\nChapter 1\nMara begins.\nChapter 2\nMara ends."

	chapters := SplitChapters(text, nil)
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	if chapters[0].Title != "Chapter 1" || chapters[1].Title != "Chapter 2" {
		t.Errorf("titles = %q, %q", chapters[0].Title, chapters[1].Title)
	}
}

func TestSplitChaptersWholeTextFallback(t *testing.T) {
	text := "No markers anywhere in this manuscript."

	chapters := SplitChapters(text, nil)
	if len(chapters) != 1 {
		t.Fatalf("got %d chapters, want 1", len(chapters))
	}
	if chapters[0].Number != 1 || chapters[0].Title != "Chapter 1" || chapters[0].Text != text {
		t.Errorf("fallback chapter = %+v", chapters[0])
	}
}

func TestResolve(t *testing.T) {
	a := testAnalyzer()
	text := "Mara met Tomas at the bridge. Annabel waved."

	tests := []struct {
		name      string
		canonical []string
		want      []string
	}{
		{"empty canonical resolves nothing", nil, nil},
		{"keeps caller order", []string{"Tomas", "Mara"}, []string{"Tomas", "Mara"}},
		{"drops absent names", []string{"Mara", "Igor"}, []string{"Mara"}},
		{"whole words only", []string{"Anna"}, nil},
		{"full name reduces to first token", []string{"Mara Quinn"}, []string{"Mara"}},
		{"dedupes case-insensitively", []string{"Mara", "  mara "}, []string{"Mara"}},
		{"skips blank entries", []string{"", "Tomas"}, []string{"Tomas"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Resolve(tt.canonical, text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresenceOmitsZeroChapters(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{
		{Number: 1, Text: "Mara spoke. Mara listened."},
		{Number: 2, Text: "Tomas waited alone."},
	}

	presence := a.Presence([]string{"Mara"}, chapters)
	if len(presence) != 1 {
		t.Fatalf("got %d presence records, want 1", len(presence))
	}
	want := map[int]int{1: 2}
	if !reflect.DeepEqual(presence[0].Mentions, want) {
		t.Errorf("Mentions = %v, want %v", presence[0].Mentions, want)
	}
}

func TestInteractions(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{
		{Number: 1, Text: "Mara argued with Tomas."},
		{Number: 2, Text: "Mara traveled alone."},
	}

	t.Run("single name yields none", func(t *testing.T) {
		got := a.Interactions([]string{"Mara"}, chapters)
		if len(got) != 0 {
			t.Errorf("got %d interactions, want 0", len(got))
		}
	})

	t.Run("pair strength over total chapters", func(t *testing.T) {
		got := a.Interactions([]string{"Mara", "Tomas"}, chapters)
		if len(got) != 1 {
			t.Fatalf("got %d interactions, want 1", len(got))
		}
		in := got[0]
		if in.CoAppearances != 1 || !reflect.DeepEqual(in.Sections, []int{1}) {
			t.Errorf("interaction = %+v", in)
		}
		if math.Abs(in.Strength-0.5) > 1e-9 {
			t.Errorf("Strength = %v, want 0.5", in.Strength)
		}
	})

	t.Run("sorted by co-appearances then names", func(t *testing.T) {
		multi := []Chapter{
			{Number: 1, Text: "Mara, Tomas, and Annabel met."},
			{Number: 2, Text: "Mara and Tomas argued."},
		}
		got := a.Interactions([]string{"Tomas", "Annabel", "Mara"}, multi)
		if len(got) != 3 {
			t.Fatalf("got %d interactions, want 3", len(got))
		}
		if got[0].CoAppearances != 2 {
			t.Errorf("strongest pair first: %+v", got[0])
		}
	})
}

func TestSampleChapters(t *testing.T) {
	chapters := make([]Chapter, 0, 10)
	for i := 1; i <= 10; i++ {
		chapters = append(chapters, Chapter{Number: i, Text: "Mara appears here."})
	}

	sampled := sampleChapters("Mara", chapters, 5)
	if len(sampled) != 5 {
		t.Fatalf("got %d samples, want 5", len(sampled))
	}
	if sampled[0].Number != 1 || sampled[len(sampled)-1].Number != 10 {
		t.Errorf("samples should span first to last, got %d..%d",
			sampled[0].Number, sampled[len(sampled)-1].Number)
	}

	few := sampleChapters("Mara", chapters[:3], 5)
	if len(few) != 3 {
		t.Errorf("under the cap all qualifying chapters return, got %d", len(few))
	}

	none := sampleChapters("Igor", chapters, 5)
	if len(none) != 0 {
		t.Errorf("absent name should sample nothing, got %d", len(none))
	}
}

const loopChapterText = "Mara believed the river was safe. " +
	"Mara decided to cross at dawn. " +
	"But Mara pressed on. " +
	"The crossing led to disaster for Mara. " +
	"Mara changed after that."

func TestDecisionBeliefLoops(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{{Number: 1, Text: loopChapterText}}

	loops := a.DecisionBeliefLoops([]string{"Mara"}, chapters)
	if len(loops) != 1 {
		t.Fatalf("got %d loops, want 1", len(loops))
	}
	if len(loops[0].Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(loops[0].Entries))
	}
	e := loops[0].Entries[0]
	if e.BeliefInPlay != "Mara believed the river was safe" {
		t.Errorf("BeliefInPlay = %q", e.BeliefInPlay)
	}
	if e.Decision != "Mara decided to cross at dawn" {
		t.Errorf("Decision = %q", e.Decision)
	}
	if e.Pressure != "But Mara pressed on" {
		t.Errorf("Pressure = %q", e.Pressure)
	}
	if e.Outcome != "The crossing led to disaster for Mara" {
		t.Errorf("Outcome = %q", e.Outcome)
	}
	if e.BeliefShift != "Mara changed after that" {
		t.Errorf("BeliefShift = %q", e.BeliefShift)
	}
}

func TestDecisionBeliefLoopsRequireBeliefAndDecision(t *testing.T) {
	a := testAnalyzer()

	t.Run("belief without decision", func(t *testing.T) {
		chapters := []Chapter{{Number: 1, Text: "Mara believed the river was safe. Mara walked away."}}
		if got := a.DecisionBeliefLoops([]string{"Mara"}, chapters); len(got) != 0 {
			t.Errorf("got %d loops, want 0", len(got))
		}
	})

	t.Run("decision without belief", func(t *testing.T) {
		chapters := []Chapter{{Number: 1, Text: "Mara decided to cross at dawn. Mara walked away."}}
		if got := a.DecisionBeliefLoops([]string{"Mara"}, chapters); len(got) != 0 {
			t.Errorf("got %d loops, want 0", len(got))
		}
	})
}

func TestDecisionBeliefLoopsGenericFallbacks(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{{Number: 1, Text: "Mara believed the river was safe. Mara decided to cross."}}

	loops := a.DecisionBeliefLoops([]string{"Mara"}, chapters)
	if len(loops) != 1 || len(loops[0].Entries) != 1 {
		t.Fatalf("loops = %+v", loops)
	}
	e := loops[0].Entries[0]
	if e.Pressure != lexicon.GenericPressure {
		t.Errorf("Pressure = %q", e.Pressure)
	}
	if e.Outcome != lexicon.GenericOutcome {
		t.Errorf("Outcome = %q", e.Outcome)
	}
	if e.BeliefShift != lexicon.GenericShift {
		t.Errorf("BeliefShift = %q", e.BeliefShift)
	}
}

func TestBeliefShifts(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{
		{Number: 1, Text: "Mara believed Tomas because he never lied."},
		{Number: 2, Text: "Mara walked on without a word."},
		{Number: 3, Text: "Mara doubted everything, but she stayed."},
	}

	matrices := a.BeliefShifts([]string{"Mara"}, chapters)
	if len(matrices) != 1 {
		t.Fatalf("got %d matrices, want 1", len(matrices))
	}
	shifts := matrices[0].Shifts
	if len(shifts) != 2 {
		t.Fatalf("got %d shifts, want 2 (chapter without belief skipped)", len(shifts))
	}
	if shifts[0].Chapter != 1 || shifts[1].Chapter != 3 {
		t.Errorf("shift chapters = %d, %d", shifts[0].Chapter, shifts[1].Chapter)
	}
	if shifts[0].Evidence != "Mara believed Tomas because he never lied" {
		t.Errorf("Evidence = %q", shifts[0].Evidence)
	}
	if shifts[1].Counterpressure != "Mara doubted everything, but she stayed" {
		t.Errorf("Counterpressure = %q", shifts[1].Counterpressure)
	}
	if shifts[1].Evidence != lexicon.GenericEvidence {
		t.Errorf("Evidence fallback = %q", shifts[1].Evidence)
	}
}

func TestConsequenceChains(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{
		{Number: 1, Text: "Mara chose exile. The choice cost Mara her home. Mara never again spoke of it."},
		{Number: 2, Text: "Mara remembered nothing of note."},
	}

	chains := a.ConsequenceChains([]string{"Mara"}, chapters)
	if len(chains) != 1 {
		t.Fatalf("got %d chains, want 1", len(chains))
	}
	links := chains[0].Links
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].Decision != "Mara chose exile" {
		t.Errorf("Decision = %q", links[0].Decision)
	}
	if links[0].ImmediateOutcome != "The choice cost Mara her home" {
		t.Errorf("ImmediateOutcome = %q", links[0].ImmediateOutcome)
	}
	if links[0].LongTermEffect != "Mara never again spoke of it" {
		t.Errorf("LongTermEffect = %q", links[0].LongTermEffect)
	}
}

func TestNoQualifyingEntriesEmitsNoRecord(t *testing.T) {
	a := testAnalyzer()
	chapters := []Chapter{{Number: 1, Text: "Mara walked through the quiet valley."}}

	if got := a.DecisionBeliefLoops([]string{"Mara"}, chapters); len(got) != 0 {
		t.Errorf("loops = %d, want 0", len(got))
	}
	if got := a.BeliefShifts([]string{"Mara"}, chapters); len(got) != 0 {
		t.Errorf("shifts = %d, want 0", len(got))
	}
	if got := a.ConsequenceChains([]string{"Mara"}, chapters); len(got) != 0 {
		t.Errorf("chains = %d, want 0", len(got))
	}
}
