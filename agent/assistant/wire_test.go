package assistant

import (
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

func TestToWireMessagesPrependsInstruction(t *testing.T) {
	t.Parallel()

	history := []contractx.Message{
		contractx.HumanMessage("any laptops?"),
		{Role: contractx.RoleAssistant, Content: "Yes, two models."},
		contractx.ToolResultMessage("c1", "done"),
	}
	wire := toWireMessages("You are a shopping assistant.", history)

	if len(wire) != len(history)+1 {
		t.Fatalf("expected %d wire messages, got %d", len(history)+1, len(wire))
	}
	if wire[0].OfSystem == nil {
		t.Fatal("first wire message must be the system instruction")
	}
	if wire[1].OfUser == nil || wire[2].OfAssistant == nil || wire[3].OfTool == nil {
		t.Fatalf("role mapping broken: %+v", wire[1:])
	}
	if wire[3].OfTool.ToolCallID != "c1" {
		t.Fatalf("tool result must keep its call id, got %q", wire[3].OfTool.ToolCallID)
	}
}

func TestAssistantParamReplaysToolCalls(t *testing.T) {
	t.Parallel()

	msg := contractx.Message{
		Role:    contractx.RoleAssistant,
		Content: "checking the catalog",
		ToolCalls: []contractx.ToolCall{
			{ID: "c1", Name: "search_products", Arguments: map[string]any{"query": "laptop"}},
			{ID: "c2", Name: "view_cart"},
		},
	}
	wire := assistantParam(msg)

	if wire.OfAssistant == nil {
		t.Fatal("expected assistant union member")
	}
	calls := wire.OfAssistant.ToolCalls
	if len(calls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(calls))
	}
	if calls[0].ID != "c1" || calls[0].Function.Name != "search_products" {
		t.Fatalf("first call mapped wrong: %+v", calls[0])
	}
	if !strings.Contains(calls[0].Function.Arguments, `"query":"laptop"`) {
		t.Fatalf("arguments not encoded: %q", calls[0].Function.Arguments)
	}
	// Calls without arguments still need a valid JSON object.
	if calls[1].Function.Arguments != "{}" {
		t.Fatalf("empty arguments must encode as {}, got %q", calls[1].Function.Arguments)
	}
}

func TestToWireTools(t *testing.T) {
	t.Parallel()

	defs := []contractx.ToolDefinition{
		{
			Name:        "search_products",
			Description: "Search the catalog",
			Schema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"query": map[string]any{"type": "string"}},
			},
		},
		{Name: "view_cart"},
	}
	wire := toWireTools(defs)

	if len(wire) != 2 {
		t.Fatalf("expected 2 tool params, got %d", len(wire))
	}
	if wire[0].Function.Name != "search_products" {
		t.Fatalf("name mapped wrong: %q", wire[0].Function.Name)
	}
	if wire[0].Function.Parameters["type"] != "object" {
		t.Fatalf("schema not carried: %+v", wire[0].Function.Parameters)
	}
	if len(wire[1].Function.Parameters) != 0 {
		t.Fatalf("schema-less tool must have no parameters, got %+v", wire[1].Function.Parameters)
	}

	if got := toWireTools(nil); got != nil {
		t.Fatalf("no definitions should yield nil, got %+v", got)
	}
}

func TestFromWireMessage(t *testing.T) {
	t.Parallel()

	msg := openai.ChatCompletionMessage{
		Content: "",
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{
				ID: "c1",
				Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      "add_item_to_cart",
					Arguments: `{"productName":"ThinkPad","quantity":2}`,
				},
			},
		},
	}

	got, err := fromWireMessage(msg)
	if err != nil {
		t.Fatalf("fromWireMessage() error = %v", err)
	}
	if got.Role != contractx.RoleAssistant {
		t.Fatalf("role = %s", got.Role)
	}
	if len(got.ToolCalls) != 1 || got.ToolCalls[0].ID != "c1" {
		t.Fatalf("tool calls mapped wrong: %+v", got.ToolCalls)
	}
	if got.ToolCalls[0].Arguments["quantity"] != float64(2) {
		t.Fatalf("arguments not decoded: %+v", got.ToolCalls[0].Arguments)
	}
}

func TestFromWireMessageSynthesizesMissingID(t *testing.T) {
	t.Parallel()

	msg := openai.ChatCompletionMessage{
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{Function: openai.ChatCompletionMessageToolCallFunction{Name: "view_cart"}},
		},
	}
	got, err := fromWireMessage(msg)
	if err != nil {
		t.Fatalf("fromWireMessage() error = %v", err)
	}
	if !strings.HasPrefix(got.ToolCalls[0].ID, "call_") {
		t.Fatalf("missing id must be synthesized, got %q", got.ToolCalls[0].ID)
	}
}

func TestFromWireMessageRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	cases := map[string]openai.ChatCompletionMessage{
		"empty tool name": {
			ToolCalls: []openai.ChatCompletionMessageToolCall{
				{ID: "c1", Function: openai.ChatCompletionMessageToolCallFunction{Name: "  "}},
			},
		},
		"malformed arguments": {
			ToolCalls: []openai.ChatCompletionMessageToolCall{
				{ID: "c1", Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      "view_cart",
					Arguments: "{not json",
				}},
			},
		},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := fromWireMessage(msg); !errors.Is(err, contractx.ErrModelInvoke) {
				t.Fatalf("expected ErrModelInvoke, got %v", err)
			}
		})
	}
}
