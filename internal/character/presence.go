package character

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
	"github.com/vampirenirmal/storyscope/internal/textutil"
)

// Analyzer runs every character-centric pass. The canonical name list
// is the single source of truth: names absent from it are never
// analyzed, no matter how often they appear in the text.
type Analyzer struct {
	logger *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Resolve intersects the caller's canonical names with the text. Full
// names reduce to their first token, duplicates collapse
// case-insensitively, and only names occurring as whole words at least
// once survive, in the caller's order. An empty canonical list resolves
// to nothing.
func (a *Analyzer) Resolve(canonical []string, text string) []string {
	seen := map[string]struct{}{}
	var resolved []string
	for _, name := range canonical {
		if fields := strings.Fields(name); len(fields) > 0 {
			name = fields[0]
		} else {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if textutil.ContainsWholeWord(text, name) {
			resolved = append(resolved, name)
		}
	}
	a.logger.Debug("names resolved", "canonical", len(canonical), "resolved", len(resolved))
	return resolved
}

// Presence counts case-insensitive whole-word mentions per chapter.
// Chapters with zero mentions are omitted from the map.
func (a *Analyzer) Presence(names []string, chapters []Chapter) []manuscript.CharacterPresence {
	out := make([]manuscript.CharacterPresence, 0, len(names))
	for _, name := range names {
		mentions := map[int]int{}
		for _, ch := range chapters {
			if n := textutil.WholeWordCount(ch.Text, name); n > 0 {
				mentions[ch.Number] = n
			}
		}
		out = append(out, manuscript.CharacterPresence{Character: name, Mentions: mentions})
	}
	return out
}

// Interactions counts chapters in which both names of a pair appear.
// Strength is coAppearances over total chapters; results are sorted by
// co-appearance count descending, then by name for stability.
func (a *Analyzer) Interactions(names []string, chapters []Chapter) []manuscript.CharacterInteraction {
	if len(names) < 2 || len(chapters) == 0 {
		return []manuscript.CharacterInteraction{}
	}

	present := make([]map[int]bool, len(names))
	for i, name := range names {
		present[i] = map[int]bool{}
		for _, ch := range chapters {
			if textutil.ContainsWholeWord(ch.Text, name) {
				present[i][ch.Number] = true
			}
		}
	}

	var out []manuscript.CharacterInteraction
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			var sections []int
			for _, ch := range chapters {
				if present[i][ch.Number] && present[j][ch.Number] {
					sections = append(sections, ch.Number)
				}
			}
			if len(sections) == 0 {
				continue
			}
			out = append(out, manuscript.CharacterInteraction{
				CharacterA:    names[i],
				CharacterB:    names[j],
				CoAppearances: len(sections),
				Sections:      sections,
				Strength:      float64(len(sections)) / float64(len(chapters)),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CoAppearances != out[j].CoAppearances {
			return out[i].CoAppearances > out[j].CoAppearances
		}
		if out[i].CharacterA != out[j].CharacterA {
			return out[i].CharacterA < out[j].CharacterA
		}
		return out[i].CharacterB < out[j].CharacterB
	})
	return out
}
