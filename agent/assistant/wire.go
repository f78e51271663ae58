package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

// toWireMessages prepends the role instruction and converts the transcript to
// the completions wire format. The model is stateless between calls, so the
// full history is replayed every time.
func toWireMessages(instruction string, history []contractx.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	out = append(out, openai.SystemMessage(instruction))

	for _, msg := range history {
		switch msg.Role {
		case contractx.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case contractx.RoleHuman:
			out = append(out, openai.UserMessage(msg.Content))
		case contractx.RoleAssistant:
			out = append(out, assistantParam(msg))
		case contractx.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		}
	}
	return out
}

func assistantParam(msg contractx.Message) openai.ChatCompletionMessageParamUnion {
	if len(msg.ToolCalls) == 0 {
		return openai.AssistantMessage(msg.Content)
	}

	calls := make([]openai.ChatCompletionMessageToolCallParam, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		args := "{}"
		if len(tc.Arguments) > 0 {
			if encoded, err := json.Marshal(tc.Arguments); err == nil {
				args = string(encoded)
			}
		}
		calls = append(calls, openai.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Name,
				Arguments: args,
			},
		})
	}

	param := openai.ChatCompletionAssistantMessageParam{ToolCalls: calls}
	if msg.Content != "" {
		param.Content.OfString = openai.String(msg.Content)
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &param}
}

func toWireTools(defs []contractx.ToolDefinition) []openai.ChatCompletionToolParam {
	if len(defs) == 0 {
		return nil
	}
	out := make([]openai.ChatCompletionToolParam, 0, len(defs))
	for _, def := range defs {
		fn := openai.FunctionDefinitionParam{Name: def.Name}
		if def.Description != "" {
			fn.Description = openai.String(def.Description)
		}
		if len(def.Schema) > 0 {
			fn.Parameters = openai.FunctionParameters(def.Schema)
		}
		out = append(out, openai.ChatCompletionToolParam{Function: fn})
	}
	return out
}

// fromWireMessage converts a completion choice back into a transcript turn.
// Providers occasionally omit tool-call ids; those are synthesized so result
// correlation stays unambiguous.
func fromWireMessage(msg openai.ChatCompletionMessage) (contractx.Message, error) {
	out := contractx.Message{
		Role:    contractx.RoleAssistant,
		Content: msg.Content,
	}

	for _, call := range msg.ToolCalls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return contractx.Message{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrModelInvoke)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return contractx.Message{}, fmt.Errorf("%w: invalid arguments for tool=%s: %v", contractx.ErrModelInvoke, name, err)
			}
		}

		id := call.ID
		if id == "" {
			id = "call_" + uuid.NewString()
		}

		out.ToolCalls = append(out.ToolCalls, contractx.ToolCall{
			ID:        id,
			Name:      name,
			Arguments: args,
		})
	}
	return out, nil
}
