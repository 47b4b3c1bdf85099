package model

// PromptParts is a prompt for the text-generation model, split into the
// system instruction and the task prompt. Built fresh per comment.
type PromptParts struct {
	System string
	Prompt string
}

// GenerationRequest carries a prompt plus sampling parameters to the
// text-generation client.
type GenerationRequest struct {
	System      string
	Prompt      string
	Temperature float64
	TopP        float64
	MaxTokens   int
}
