package scriptgen

import (
	"fmt"
	"strings"
)

// Request describes the podcast to script.
type Request struct {
	Topic           string `json:"topic"`
	Format          string `json:"format"`
	DurationMinutes int    `json:"duration_minutes"`
	NumSpeakers     int    `json:"num_speakers"`
	Context         string `json:"context,omitempty"`
}

func (r *Request) applyDefaults() {
	if r.DurationMinutes <= 0 {
		r.DurationMinutes = 5
	}
	if r.NumSpeakers <= 0 {
		r.NumSpeakers = 2
	}
}

// personalityNotes biases each cast role toward a speaking style, first
// keyword hit wins. Mirrors the archetype keywords used by voice assignment
// so generated roles and assigned voices agree.
var personalityNotes = []struct {
	keyword string
	notes   string
}{
	{"host", "friendly and approachable, varied intonation, personal anecdotes"},
	{"moderator", "friendly and approachable, keeps the discussion balanced"},
	{"expert", "logical and precise, steady pace, structured arguments"},
	{"analyst", "logical and precise, technical vocabulary"},
	{"comedian", "dynamic and animated, fast-paced, emotionally expressive"},
	{"narrator", "thoughtful, slower pace, meaningful pauses"},
}

// BuildPrompt renders the script-generation prompt for the given request.
// The formatting rules it dictates are exactly what the parser accepts.
func BuildPrompt(req Request) string {
	req.applyDefaults()
	format := LookupFormat(req.Format)

	var b strings.Builder
	fmt.Fprintf(&b, "Create a natural, engaging %s podcast script about %q.\n\n", format.Name, req.Topic)
	fmt.Fprintf(&b, "FORMAT: %s\n", format.Description)
	fmt.Fprintf(&b, "STYLE: %s\n", format.StyleNotes)
	fmt.Fprintf(&b, "DURATION: Approximately %d minutes\n", req.DurationMinutes)
	fmt.Fprintf(&b, "SPEAKERS: %d speakers\n", req.NumSpeakers)

	b.WriteString("\nSPEAKER PROFILES:\n")
	for i := 0; i < req.NumSpeakers && i < len(format.TypicalSpeakers); i++ {
		role := format.TypicalSpeakers[i]
		fmt.Fprintf(&b, "Speaker %d - %s: %s\n", i+1, role, personalityFor(role))
	}

	b.WriteString(`
IMPORTANT FORMATTING RULES:
1. Each line of dialogue MUST start with the speaker name followed by a colon
2. Use simple format: "Speaker Name: Dialogue text"
3. For emotions, place them in brackets BEFORE the colon: "Speaker Name [emotion]: Dialogue text"
4. Common emotions: [laughing], [sighing], [surprised], [thinking], [excited], [nervous]
5. Do NOT include stage directions or emotion descriptions in the spoken text
6. When someone laughs, just put [laughing] - don't write "haha" in the dialogue

CONTENT STRUCTURE:
1. INTRODUCTION: natural speaker introductions, hook the audience, introduce the topic
2. MAIN CONTENT: develop key points with specific examples and natural transitions
3. CONCLUSION: summarize insights, actionable takeaways, natural sign-off

DIALOGUE REQUIREMENTS:
- Write natural, conversational dialogue
- Include verbal fillers occasionally (um, uh, you know) for realism
- Show personality through word choice and speech patterns
- Use emotions in brackets, NOT in the spoken text
- Vary sentence length and structure for each speaker
`)

	if req.Context != "" {
		fmt.Fprintf(&b, "\nADDITIONAL CONTEXT:\n%s\n", req.Context)
	}
	return b.String()
}

func personalityFor(role string) string {
	lower := strings.ToLower(role)
	for _, pn := range personalityNotes {
		if strings.Contains(lower, pn.keyword) {
			return pn.notes
		}
	}
	return "balanced and conversational"
}
