package plot

import "github.com/vampirenirmal/storyscope/internal/domain/manuscript"

// Beat describes one expected story beat for a format: the position
// band it classifies into, where it is expected when back-filling, the
// diagnostic question attached to it, and the improvement note used
// when the beat had to be synthesized.
type Beat struct {
	Name      string
	Band      float64 // upper bound of the classification band (exclusive); the last beat takes the remainder
	Expected  float64 // expected fractional position, used for back-fill
	Mandatory bool
	Question  string
	Failure   string
}

var novelBeats = []Beat{
	{
		Name: "Opening State", Band: 0.05, Expected: 0.02,
		Question: "Does the opening ground the reader in the protagonist's ordinary world?",
		Failure:  "No distinct opening state found. Establish the status quo before disrupting it.",
	},
	{
		Name: "Inciting Disruption", Band: 0.18, Expected: 0.12, Mandatory: true,
		Question: "What event breaks the protagonist's equilibrium, and is it irreversible?",
		Failure:  "No inciting disruption detected in the first act. Introduce a destabilizing event early.",
	},
	{
		Name: "First Threshold", Band: 0.30, Expected: 0.25,
		Question: "Where does the protagonist commit to engaging with the disruption?",
		Failure:  "The protagonist never visibly commits. Mark the point of no return.",
	},
	{
		Name: "Rising Complications", Band: 0.45, Expected: 0.38,
		Question: "Are obstacles compounding rather than repeating?",
		Failure:  "Complications plateau. Each obstacle should raise the cost of the last.",
	},
	{
		Name: "Midpoint Reversal", Band: 0.55, Expected: 0.50, Mandatory: true,
		Question: "Does the middle recontextualize the goal or flip the protagonist's standing?",
		Failure:  "No midpoint reversal detected. The middle should turn the story, not extend it.",
	},
	{
		Name: "Escalation", Band: 0.70, Expected: 0.62,
		Question: "Is pressure visibly increasing after the midpoint?",
		Failure:  "Post-midpoint tension stays level. Escalate stakes toward the crisis.",
	},
	{
		Name: "Crisis", Band: 0.80, Expected: 0.75, Mandatory: true,
		Question: "What impossible choice does the protagonist face before the climax?",
		Failure:  "No crisis point detected. Force a choice between mutually exclusive losses.",
	},
	{
		Name: "Climax", Band: 0.90, Expected: 0.88, Mandatory: true,
		Question: "Does the climax resolve the story question raised by the disruption?",
		Failure:  "No climax detected. The tension curve should peak near the end of the manuscript.",
	},
	{
		Name: "Resolution", Band: 0.96, Expected: 0.93,
		Question: "Are the consequences of the climax shown rather than summarized?",
		Failure:  "Resolution is abrupt. Show the new equilibrium taking hold.",
	},
	{
		Name: "Aftermath", Band: 1.01, Expected: 0.98,
		Question: "What lasting change does the final image leave with the reader?",
		Failure:  "No aftermath beat. Close on the changed world, however briefly.",
	},
}

var screenplayBeats = []Beat{
	{
		Name: "Opening Image", Band: 0.03, Expected: 0.01, Mandatory: true,
		Question: "Does the first image state the film's tone and thesis visually?",
		Failure:  "No opening image beat. The first page should be a visual statement of theme.",
	},
	{
		Name: "Setup", Band: 0.10, Expected: 0.06,
		Question: "Are the protagonist's world and flaws established before the catalyst?",
		Failure:  "Setup is thin. Show the status quo that the catalyst will break.",
	},
	{
		Name: "Catalyst", Band: 0.15, Expected: 0.12, Mandatory: true,
		Question: "What single event knocks the protagonist's life off its rails?",
		Failure:  "No catalyst detected around the 12% mark. The story starts too passively.",
	},
	{
		Name: "Debate", Band: 0.22, Expected: 0.18,
		Question: "Does the protagonist visibly resist the call before acting?",
		Failure:  "No debate section. Let the protagonist weigh the cost of acting.",
	},
	{
		Name: "Break Into Two", Band: 0.28, Expected: 0.25, Mandatory: true,
		Question: "Where does the protagonist choose to enter the new world?",
		Failure:  "No act-one break detected. The protagonist must choose, not drift, into act two.",
	},
	{
		Name: "B Story", Band: 0.35, Expected: 0.30,
		Question: "Which relationship carries the theme while the A story carries the plot?",
		Failure:  "No B story detected. A secondary thread should carry the thematic argument.",
	},
	{
		Name: "Fun and Games", Band: 0.50, Expected: 0.42,
		Question: "Does the premise deliver the scenes it promised?",
		Failure:  "The promise of the premise is underplayed between the break and the midpoint.",
	},
	{
		Name: "Midpoint", Band: 0.57, Expected: 0.52, Mandatory: true,
		Question: "Is the midpoint a false victory or a false defeat, and does it raise stakes?",
		Failure:  "No midpoint detected. Tension should spike or reverse near the center.",
	},
	{
		Name: "Bad Guys Close In", Band: 0.72, Expected: 0.65,
		Question: "Are external and internal pressures tightening together?",
		Failure:  "Opposition slackens in act two's back half. Close the walls in.",
	},
	{
		Name: "All Is Lost", Band: 0.80, Expected: 0.76, Mandatory: true,
		Question: "What does the protagonist lose that makes victory seem impossible?",
		Failure:  "No all-is-lost moment detected. The low point is missing or too shallow.",
	},
	{
		Name: "Finale", Band: 0.97, Expected: 0.90, Mandatory: true,
		Question: "Does the finale apply the lesson of the B story to the A story's problem?",
		Failure:  "No finale beat detected. The last act needs a sustained tension peak.",
	},
	{
		Name: "Closing Image", Band: 1.01, Expected: 0.99, Mandatory: true,
		Question: "Does the closing image mirror and invert the opening image?",
		Failure:  "No closing image. End on a visual proof that the world has changed.",
	},
}

// beatsFor returns the beat table for the detected format.
func beatsFor(f manuscript.DocumentFormat) []Beat {
	if f == manuscript.FormatScreenplay {
		return screenplayBeats
	}
	return novelBeats
}

// classify maps a fractional position to its beat purely by position band.
func classify(beats []Beat, position float64) Beat {
	for _, b := range beats {
		if position < b.Band {
			return b
		}
	}
	return beats[len(beats)-1]
}
