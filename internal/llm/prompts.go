package llm

import "fmt"

// HeartfeltPrompt asks for a short message for a memory page. The page
// title is the only context the editor has when the user asks for help.
func HeartfeltPrompt(title, theme string) string {
	return fmt.Sprintf(`Write a beautiful, heartfelt message in Arabic (or English if requested) based on this theme: %s. Context: %s. Keep it meaningful and artistic.

Return only the message text, with no preamble, title or quotation marks.`, theme, title)
}
