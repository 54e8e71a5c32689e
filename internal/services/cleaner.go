package services

import "strings"

// StripCodeFence removes a leading/trailing Markdown code fence (optionally
// tagged "json") from a model reply. The model is known to sometimes wrap
// its JSON in fences even when told not to. Anything else in the reply is
// left untouched: recovery from trailing prose or unbalanced braces is the
// parser's problem, and a parse failure there is a hard failure.
func StripCodeFence(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}
