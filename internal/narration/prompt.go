package narration

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

const defaultInstruction = `You are an experienced course presenter recording narration for a slide deck.
Analyse the slides in the order given and write natural spoken narration for each one.

Requirements:
1. Continuity: the narration must flow from slide to slide, using natural transitions such as "building on the previous slide" or "next".
2. Explain what each slide shows to the listener instead of reading it out verbatim.
3. Write anything a speech engine could mispronounce (abbreviations, symbols, foreign words) the way it should be spoken.
4. tts_prompt is a short delivery instruction for the speech engine describing tone and pacing.`

func batchPrompt(instruction string, count int) string {
	return fmt.Sprintf(`%s

Output format:
Return only a JSON array with exactly %d elements, one per slide, in slide order:
[
  {"content": "narration for this slide", "tts_prompt": "warm voice, moderate pace"}
]`, instruction, count)
}

func rollingPrompt(instruction string, index, count int, previous []model.NarrationEntry) string {
	var sb strings.Builder
	sb.WriteString(instruction)
	fmt.Fprintf(&sb, "\n\nThe attached image is slide %d of %d.", index+1, count)

	if len(previous) > 0 {
		sb.WriteString("\nNarration already recorded for the preceding slides:\n")
		for _, e := range previous {
			fmt.Fprintf(&sb, "- Slide %d: %s\n", e.Index+1, e.Content)
		}
		sb.WriteString("Continue naturally from there.")
	} else if index == 0 {
		sb.WriteString("\nThis is the opening slide, so introduce the topic.")
	}

	sb.WriteString(`

Output format:
Return only a JSON object:
{"content": "narration for this slide", "tts_prompt": "warm voice, moderate pace"}`)
	return sb.String()
}
