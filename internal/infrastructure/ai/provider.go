// Package ai talks to the hosted language model that drafts ticket replies.
package ai

import "context"

// DefaultModel is used when the provider's catalog offers no usable flash model.
const DefaultModel = "models/gemini-1.5-flash"

const generateContentMethod = "generateContent"

// ModelInfo is one entry of the provider's model catalog.
type ModelInfo struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

// SupportsGeneration reports whether the model accepts content-generation requests.
func (m ModelInfo) SupportsGeneration() bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == generateContentMethod {
			return true
		}
	}
	return false
}

// Provider is a language-model backend.
type Provider interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
	Generate(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}
