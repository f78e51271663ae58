package contract

import "context"

// Assistant produces the next assistant turn by replaying the full transcript
// to the model under a fixed role instruction. History is the ordered message
// log snapshot; the assistant never mutates it.
type Assistant interface {
	Invoke(ctx context.Context, history []Message) (Message, error)
}

// StreamingAssistant additionally emits content chunks in order as the model
// produces them. The returned message carries the complete concatenated
// content.
type StreamingAssistant interface {
	Assistant
	InvokeStream(ctx context.Context, history []Message, onChunk func(string) error) (Message, error)
}

// ToolGateway executes tool-call requests against the remote tool backend.
// Execute returns one RoleTool message per request; order follows completion,
// correlation is by ToolCallID. An individual tool failure becomes an
// error-content result message, never an error return. A non-nil error means
// the backend itself is unusable (ErrToolBackend).
type ToolGateway interface {
	Definitions() []ToolDefinition
	Execute(ctx context.Context, calls []ToolCall) ([]Message, error)
}

// InputReader suspends until the next human utterance is available.
type InputReader interface {
	Prompt(kind AssistantKind) (string, error)
}
