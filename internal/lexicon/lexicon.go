// Package lexicon holds the fixed word and phrase tables every analyzer
// scores against. The tables are built once at startup and never
// mutated; pattern compilation failures surface as errors from Build
// rather than silently shrinking coverage.
package lexicon

// TensionWords mark danger, dread, and stakes. Each hit adds 0.3 to a
// tension window.
var TensionWords = []string{
	"danger", "dangerous", "fear", "afraid", "terror", "terrified",
	"threat", "threatened", "attack", "attacked", "scream", "screamed",
	"blood", "dead", "death", "dying", "panic", "desperate", "urgent",
	"crisis", "trapped", "escape", "knife", "gun", "weapon", "enemy",
	"betrayed", "warning", "horror", "shadow", "silence", "frozen",
}

// ActionVerbs mark physical motion. Each hit adds 0.2.
var ActionVerbs = []string{
	"ran", "running", "grabbed", "struck", "leaped", "lunged", "chased",
	"slammed", "smashed", "fought", "fled", "dove", "crashed", "threw",
	"jumped", "sprinted", "burst", "shoved", "snatched", "charged",
	"ducked", "swung", "kicked", "tore",
}

// RevelationWords mark discovery and disclosure. Each hit adds 0.25.
var RevelationWords = []string{
	"realized", "discovered", "revealed", "truth", "secret", "confessed",
	"confession", "understood", "recognized", "uncovered", "admitted",
	"exposed", "learned", "finally", "suddenly",
}

// VisualActionWords are the screenplay-format tension bonus (+0.15 each).
var VisualActionWords = []string{
	"explosion", "explodes", "chase", "crash", "crashes", "fires",
	"shoots", "fight", "fighting", "runs", "slams", "shatters",
	"collapses", "leaps", "smoke", "flames",
}

// InternalChangeWords are the novel-format tension bonus (+0.15 each).
var InternalChangeWords = []string{
	"felt", "feeling", "realized", "understood", "changed", "doubt",
	"doubted", "hope", "hoped", "regret", "regretted", "remembered",
	"wondered", "decided", "forgave", "accepted",
}

// Cliches are stock phrases counted by case-insensitive substring search.
var Cliches = []string{
	"at the end of the day", "in the nick of time", "dead as a doornail",
	"fit as a fiddle", "calm before the storm", "cold as ice",
	"crystal clear", "easier said than done", "few and far between",
	"heart of gold", "in the blink of an eye", "last but not least",
	"like a moth to a flame", "needle in a haystack", "no stone unturned",
	"old as time", "plenty of fish in the sea", "quiet as a mouse",
	"scared to death", "take the bull by the horns", "the tip of the iceberg",
	"time will tell", "tooth and nail", "white as a sheet",
	"without a care in the world", "a sigh of relief",
}

// FilterWords distance the reader from direct experience.
var FilterWords = []string{
	"saw", "heard", "felt", "noticed", "realized", "watched", "seemed",
	"wondered", "thought", "knew", "decided", "looked", "sounded",
	"appeared", "observed", "considered",
}

// WeakVerbs carry little specific meaning.
var WeakVerbs = []string{
	"was", "were", "is", "are", "been", "being", "went", "got", "get",
	"put", "took", "made", "came", "had", "did", "said",
}

// SensoryWords ground prose in the five senses.
var SensoryWords = []string{
	"bright", "dark", "glowing", "shimmering", "crimson", "golden",
	"loud", "quiet", "whisper", "echo", "hum", "roar",
	"rough", "smooth", "cold", "warm", "sharp", "soft",
	"sweet", "bitter", "sour", "salty", "acrid", "fragrant",
	"musty", "fresh", "damp", "sticky",
}

// AttributionVerbs are dialogue tags; variety among them is one
// dialogue-quality criterion.
var AttributionVerbs = []string{
	"said", "asked", "replied", "whispered", "shouted", "muttered",
	"murmured", "answered", "called", "cried", "snapped", "hissed",
	"growled", "sighed", "exclaimed", "stammered",
}

// DialogueFillers are filler tokens inside spoken lines.
var DialogueFillers = []string{
	"um", "uh", "er", "well", "you know", "i mean", "like", "so",
	"anyway", "actually", "basically",
}

// PredictablePhrases are clichéd lines of dialogue.
var PredictablePhrases = []string{
	"we need to talk", "it's not what it looks like", "i can explain",
	"you don't understand", "trust me", "it's complicated",
	"we've got company", "is that all you've got", "i have a bad feeling",
	"you just don't get it",
}

// ConflictWords signal friction inside a dialogue segment.
var ConflictWords = []string{
	"no", "never", "can't", "won't", "don't", "stop", "liar", "lie",
	"hate", "wrong", "enough", "leave", "why",
}

// BeliefCues open a belief-bearing sentence.
var BeliefCues = []string{
	"believe", "believed", "believes", "think", "thinks", "thought",
	"realize", "realized", "trust", "trusted", "convinced", "certain",
	"sure", "faith", "doubt", "doubted", "knew", "knows",
}

// EvidenceCues justify a belief.
var EvidenceCues = []string{
	"because", "shows", "showed", "demonstrates", "demonstrated",
	"proved", "proof", "since", "chose", "refused", "evidence",
	"after all", "clearly",
}

// CounterpressureCues push against a belief.
var CounterpressureCues = []string{
	"but", "however", "challenged", "despite", "although", "though",
	"forced", "yet", "threatened", "pressured", "instead", "against",
	"refused",
}

// DecisionCues mark a character committing to a course.
var DecisionCues = []string{
	"decided", "chose", "choose", "refused", "accepted", "agreed",
	"resolved", "determined", "committed", "vowed", "swore", "promised",
	"would", "must",
}

// OutcomeCues mark immediate consequence.
var OutcomeCues = []string{
	"resulted", "consequence", "led to", "therefore", "caused", "ended",
	"cost", "so that", "as a result", "meant",
}

// EffectCues mark long-range change.
var EffectCues = []string{
	"changed", "transformed", "learned", "became", "grew", "never again",
	"from then on", "no longer", "forever",
}

// Fallback text used when a cue category yields no sentence for a
// chapter that otherwise qualifies.
const (
	GenericPressure = "External circumstances press on the character."
	GenericEvidence = "Evidence is implied rather than stated."
	GenericCounter  = "No explicit counterpressure is voiced."
	GenericOutcome  = "The outcome is left implicit."
	GenericEffect   = "No lasting change is made explicit."
	GenericShift    = "The belief holds unchanged."
)
