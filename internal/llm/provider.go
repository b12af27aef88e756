// Package llm is the boundary to hosted text-generation services. Providers
// translate a Request into one SDK call and return schema-validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a single request to the model. When req.Schema is set
	// the provider asks for output constrained to that schema and validates
	// the reply before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system instruction.
	System string

	// Messages is the conversation. Evaluation requests carry exactly one
	// user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// response Content is the raw model text.
	Schema *Schema

	// MaxTokens bounds the length of the reply.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero is sent explicitly
	// to every backend rather than left to the backend default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, e.g. "competency-evaluation". It is also
	// the cache key for the compiled validator.
	Name string

	// Description is sent to backends that accept one.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
