// Package character resolves canonical character names against the
// manuscript and produces the presence, interaction, and arc analyses.
package character

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vampirenirmal/storyscope/internal/domain/manuscript"
)

// Chapter is one analysis section of the manuscript.
type Chapter struct {
	Number int
	Title  string
	Text   string
}

// headingCap bounds how many level-2 outline headings are promoted to
// chapters when no chapter- or part-level entries exist.
const headingCap = 40

var chapterMarker = regexp.MustCompile(`(?mi)^\s*(?:#\s*)?(?:chapter|ch\.)\s+[0-9ivxlcdm]+\b.*$|^\s*[0-9]{1,3}\s*$`)

// SplitChapters sections the text, preferring outline structure, then
// regex chapter markers, then the whole text as a single chapter.
func SplitChapters(text string, outline []manuscript.OutlineEntry) []Chapter {
	if chapters := fromOutline(text, outline); len(chapters) > 0 {
		return chapters
	}
	if chapters := fromMarkers(text); len(chapters) > 0 {
		return chapters
	}
	return []Chapter{{Number: 1, Title: "Chapter 1", Text: text}}
}

// fromOutline uses level-1 entries (chapters), falling back to level 0
// (parts), then a capped prefix of level 2 (headings). Entries whose
// range does not resolve inside the text are skipped explicitly.
func fromOutline(text string, outline []manuscript.OutlineEntry) []Chapter {
	if len(outline) == 0 {
		return nil
	}
	entries := atLevel(outline, 1)
	if len(entries) == 0 {
		entries = atLevel(outline, 0)
	}
	if len(entries) == 0 {
		entries = atLevel(outline, 2)
		if len(entries) > headingCap {
			entries = entries[:headingCap]
		}
	}
	if len(entries) == 0 {
		return nil
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Location < entries[j].Location })

	var chapters []Chapter
	for i, e := range entries {
		start, ok := resolveOffset(text, e.Location)
		if !ok {
			continue
		}
		end := len(text)
		if i+1 < len(entries) {
			if next, ok := resolveOffset(text, entries[i+1].Location); ok {
				end = next
			}
		}
		if start >= end {
			continue
		}
		body := text[start:end]
		title := firstLine(body)
		chapters = append(chapters, Chapter{Number: len(chapters) + 1, Title: title, Text: body})
	}
	return chapters
}

// resolveOffset validates an outline location against the text bounds.
// Invalid ranges are distinguishable from legitimately absent outline
// entries: the caller skips them rather than truncating silently.
func resolveOffset(text string, location int) (int, bool) {
	if location < 0 || location > len(text) {
		return 0, false
	}
	return location, true
}

func atLevel(outline []manuscript.OutlineEntry, level int) []manuscript.OutlineEntry {
	var out []manuscript.OutlineEntry
	for _, e := range outline {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// fromMarkers splits on regex chapter headings. Text before the first
// marker is dropped as front matter only if a marker exists at all.
func fromMarkers(text string) []Chapter {
	locs := chapterMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	var chapters []Chapter
	for i, loc := range locs {
		start := loc[0]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := text[start:end]
		chapters = append(chapters, Chapter{Number: i + 1, Title: firstLine(body), Text: body})
	}
	return chapters
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
