// Package curriculum holds the fixed prompt sent to the provider and the
// extraction of curriculum text from a chat completion body.
package curriculum

import (
	"fmt"

	"curriculumstudio/internal/providers"
)

const (
	Model       = "gpt-4o-mini"
	Temperature = 0.8

	SystemPrompt = "You are a curriculum designer. Create a table of contents."

	userPromptTemplate = `Create a curriculum table of contents for the topic: "%s". Provide 6-10 modules. Each module should include 2-4 lesson bullets. Keep it concise and imaginative.`
)

// UserPrompt interpolates topic verbatim; it is neither trimmed nor escaped.
func UserPrompt(topic string) string {
	return fmt.Sprintf(userPromptTemplate, topic)
}

func BuildRequest(topic string) providers.ChatRequest {
	return providers.ChatRequest{
		Model:        Model,
		SystemPrompt: SystemPrompt,
		UserPrompt:   UserPrompt(topic),
		Temperature:  Temperature,
	}
}
