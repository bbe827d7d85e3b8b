package scriptgen

// Format describes one podcast archetype and the roles it typically casts.
type Format struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	MinSpeakers     int      `json:"min_speakers"`
	TypicalSpeakers []string `json:"typical_speakers"`
	StyleNotes      string   `json:"style_notes"`
}

// formats is ordered for stable listing on the tool and HTTP surfaces.
var formats = []Format{
	{
		Name:            "interview",
		Description:     "Classic interview format with host and guest(s)",
		MinSpeakers:     2,
		TypicalSpeakers: []string{"Host", "Guest Expert", "Co-host", "Special Guest"},
		StyleNotes:      "Professional yet conversational, with follow-up questions and deep dives",
	},
	{
		Name:            "debate",
		Description:     "Point-counterpoint discussion with opposing viewpoints",
		MinSpeakers:     2,
		TypicalSpeakers: []string{"Moderator", "Advocate", "Opponent", "Neutral Expert"},
		StyleNotes:      "Balanced, respectful disagreement with evidence-based arguments",
	},
	{
		Name:            "storytelling",
		Description:     "Narrative-driven format with immersive storytelling",
		MinSpeakers:     1,
		TypicalSpeakers: []string{"Narrator", "Character Voice 1", "Character Voice 2", "Witness"},
		StyleNotes:      "Dramatic pacing, emotional depth, vivid descriptions",
	},
	{
		Name:            "educational",
		Description:     "Teaching-focused format with clear explanations",
		MinSpeakers:     1,
		TypicalSpeakers: []string{"Instructor", "Student", "Expert", "Assistant"},
		StyleNotes:      "Clear, structured, with examples and analogies",
	},
	{
		Name:            "comedy",
		Description:     "Entertainment-focused with humor and banter",
		MinSpeakers:     2,
		TypicalSpeakers: []string{"Main Host", "Co-host", "Comedian Guest", "Straight Man"},
		StyleNotes:      "Timing-focused, witty, with natural chemistry",
	},
	{
		Name:            "news_analysis",
		Description:     "Current events discussion with expert analysis",
		MinSpeakers:     2,
		TypicalSpeakers: []string{"Anchor", "Field Reporter", "Expert Analyst", "Correspondent"},
		StyleNotes:      "Authoritative, factual, with multiple perspectives",
	},
	{
		Name:            "roundtable",
		Description:     "Multi-person discussion with equal participation",
		MinSpeakers:     3,
		TypicalSpeakers: []string{"Moderator", "Panelist 1", "Panelist 2", "Panelist 3"},
		StyleNotes:      "Balanced speaking time, diverse viewpoints, collaborative",
	},
}

// Formats lists all supported podcast formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// LookupFormat resolves a format by name, defaulting to interview for unknown
// names so a mistyped format still yields a usable script.
func LookupFormat(name string) Format {
	for _, f := range formats {
		if f.Name == name {
			return f
		}
	}
	return formats[0]
}
