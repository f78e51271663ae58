package contract

// Role tags a conversation turn. The set is closed: routing and wire
// conversion switch over it exhaustively instead of sniffing optional fields.
type Role string

const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// AssistantKind distinguishes the two cooperating assistant roles.
type AssistantKind string

const (
	AssistantShopping AssistantKind = "shopping"
	AssistantCheckout AssistantKind = "checkout"
)

// CheckoutToolName is the tool whose invocation by the model signals the
// one-way handoff from the shopping role to the checkout role.
const CheckoutToolName = "proceed_to_checkout"

// ToolCall is a remote-procedure invocation requested by the model.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Message is one immutable turn in the conversation transcript.
// Content may be empty on assistant turns that are pure tool-call requests.
// ToolCallID is set only on RoleTool messages and correlates the result to
// the originating ToolCall.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// HumanMessage builds a human turn from a raw utterance.
func HumanMessage(text string) Message {
	return Message{Role: RoleHuman, Content: text}
}

// ToolResultMessage builds the result turn for a single tool call.
func ToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

// RequestsCheckout reports whether an assistant turn names the checkout tool.
func (m Message) RequestsCheckout() bool {
	if m.Role != RoleAssistant {
		return false
	}
	for _, tc := range m.ToolCalls {
		if tc.Name == CheckoutToolName {
			return true
		}
	}
	return false
}

// ToolDefinition describes a remote tool as advertised to the model.
// Schema is the raw JSON-schema object for the tool's arguments.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
}
