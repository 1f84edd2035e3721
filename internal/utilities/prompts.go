package utilities

import (
	"fmt"
	"strings"
)

// BuildPostPrompt renders the draft fields into the fixed instruction
// template sent to the completion model. Existing content is only appended
// as key points when it is non-empty after trimming.
func BuildPostPrompt(tone, targetReaction, topic, targetAudience, content string) string {
	prompt := fmt.Sprintf(`Generate a LinkedIn post with the following specifications:
- Tone: %s
- Target Reaction: %s
- Topic: %s
- Target Audience: %s`, tone, targetReaction, topic, targetAudience)

	if strings.TrimSpace(content) != "" {
		prompt += fmt.Sprintf("\n\nExisting content/key points to consider:\n%s", content)
	}

	prompt += `

Please generate a professional LinkedIn post that follows these guidelines and is tailored for the specified target audience.
   Avoid mentioning the tone, target reaction, target audience. Make sure to generate a post that is relevant to the topic and target audience. Display in text format, avoid using bold, italic, or any other formatting.
   Include hashtags, emojis in the post.`

	return prompt
}
