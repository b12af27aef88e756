package assessment

// seedCompetencies defines the five competencies of the Professional Compass
// framework, in the order they appear in the evaluation prompt.
var seedCompetencies = []Competency{
	{
		Name:       "Risk and Adaptability",
		Definition: "Measures how candidates handle risk and adapt to challenges. Reflects willingness to step out of their comfort zone and respond to uncertain situations.",
		Rubric: Rubric{
			1: "Avoids risks; struggles with adaptability.",
			3: "Takes calculated risks; moderately adaptable.",
			5: "Embraces significant risks; highly adaptable to change.",
		},
		Evidence: []int{0, 6, 9},
	},
	{
		Name:       "Work Style and Approach",
		Definition: "Assesses whether candidates are strategic or tactical, and their focus on quality versus efficiency.",
		Rubric: Rubric{
			1: "Highly tactical; focuses on immediate action and efficiency.",
			3: "Balances strategic planning with action; considers both quality and efficiency.",
			5: "Highly strategic; prioritizes planning and quality over immediate efficiency.",
		},
		Evidence: []int{2, 16, 17},
	},
	{
		Name:       "Motivation and Passion",
		Definition: "Evaluates what drives the candidate—financial gain, influence, or intrinsic passion.",
		Rubric: Rubric{
			1: "Primarily motivated by financial gain.",
			3: "Equally motivated by financial gain and influence/passion.",
			5: "Driven by intrinsic passion and the desire to influence positively.",
		},
		Evidence: []int{5, 7, 8, 12},
	},
	{
		Name:       "Interpersonal Skills and Stress Management",
		Definition: "Looks at conflict resolution, stress handling, and preference for collaboration or solitude.",
		Rubric: Rubric{
			1: "Struggles with conflict resolution; prefers solitude under stress.",
			3: "Moderate interpersonal skills; sometimes seeks support.",
			5: "Excellent at handling conflicts; collaborates and seeks support when needed.",
		},
		Evidence: []int{1, 13, 14, 18},
	},
	{
		Name:       "Self-awareness and Learning Orientation",
		Definition: "Gauges the candidate's self-understanding and commitment to professional growth.",
		Rubric: Rubric{
			1: "Limited self-awareness; does not actively pursue growth.",
			3: "Moderate self-awareness; occasionally engages in professional development.",
			5: "Highly self-aware; continuously seeks learning and growth opportunities.",
		},
		// TODO: question 11 (employer reputation vs role) reads as a poor fit
		// for this definition; confirm the mapping with the framework owners.
		Evidence: []int{3, 4, 11, 15, 19},
	},
}
