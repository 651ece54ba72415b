package meter

import openai "github.com/openai/openai-go/v3"

// FromCompletion converts the usage block of a chat completion response
// into a Usage record. PointsToDeduct is left for Reconcile.
func FromCompletion(u openai.CompletionUsage) Usage {
	return Usage{
		PromptTokens:     int(u.PromptTokens),
		CompletionTokens: int(u.CompletionTokens),
		TotalTokens:      int(u.TotalTokens),
	}
}
