// Package compose builds model prompts and turns raw model output into
// publishable reply text.
package compose

import (
	"fmt"
	"regexp"
	"strings"

	"pagepilot/internal/domain/model"
)

// promptInputLimit caps free-text inputs embedded in prompts. Keeps model
// latency bounded and blunts prompt injection by sheer length.
const promptInputLimit = 1200

var whitespaceRun = regexp.MustCompile(`\s+`)

// BuildReplyPrompt assembles the system instruction and task prompt for one
// comment. Both free-text inputs are collapsed, trimmed, and capped before
// they are embedded.
func BuildReplyPrompt(brandName, brandVoice, commentText, commenterName string) model.PromptParts {
	safeComment := sanitize(commentText, promptInputLimit)
	safeName := sanitize(commenterName, promptInputLimit)
	if safeName == "" {
		safeName = "Unknown"
	}

	system := fmt.Sprintf(
		"You are the Social Media Coordinator for '%s'. Brand voice: %s\n\n"+
			"Rules:\n"+
			"- Write ONE short reply (1-3 sentences).\n"+
			"- Be polite, natural, and on-brand.\n"+
			"- If the comment is a complaint, apologize and ask one clarifying question.\n"+
			"- If the comment asks for pricing/availability and you don't know, ask for location or link to DM.\n"+
			"- Do NOT mention you are an AI or model.\n"+
			"- Do NOT invent facts (hours, prices, policies).\n"+
			"- Avoid sensitive/personal data requests.\n",
		brandName, brandVoice,
	)

	prompt := fmt.Sprintf(
		"Write a reply to this Facebook comment.\n\n"+
			"Commenter name: %s\n"+
			"Comment: %s\n\n"+
			"Reply:",
		safeName, safeComment,
	)

	return model.PromptParts{System: system, Prompt: prompt}
}

// sanitize collapses whitespace runs to single spaces, trims, and caps the
// result at maxRunes characters.
func sanitize(text string, maxRunes int) string {
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes])
	}
	return text
}
