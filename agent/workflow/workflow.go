// Package workflow drives the multi-role shopping conversation as an explicit
// finite state machine: human input, assistant invocation, and tool execution
// nodes per role, with a one-way handoff from the shopping role to the
// checkout role.
package workflow

import (
	"errors"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

// Node identifies a state of the conversation machine.
type Node string

const (
	NodeStart             Node = "start"
	NodeQueryUserShopping Node = "query_user_shopping"
	NodeShoppingAssistant Node = "shopping_assistant"
	NodeToolShopping      Node = "tool_node_shopping"
	NodeReplyShopping     Node = "llm_response_shopping"
	NodeQueryUserCheckout Node = "query_user_checkout"
	NodeCheckoutAssistant Node = "checkout_assistant"
	NodeToolCheckout      Node = "tool_node_checkout"
	NodeReplyCheckout     Node = "llm_response_checkout"
	NodeEnd               Node = "end"
)

// ExitSentinel ends the REPL session when typed at either query prompt. It is
// an input-stage decision, never shown to the model.
const ExitSentinel = "exit"

// DefaultMaxSteps bounds node visits per session so a model oscillating
// between tool calls cannot loop forever.
const DefaultMaxSteps = 100

// ReplyFunc receives each terminal assistant reply together with the role
// that produced it.
type ReplyFunc func(kind contractx.AssistantKind, text string)

type Workflow struct {
	shopping contractx.Assistant
	checkout contractx.Assistant
	tools    contractx.ToolGateway
	input    contractx.InputReader
	reply    ReplyFunc
	maxSteps int
}

// Option customizes a Workflow.
type Option func(*Workflow)

// WithMaxSteps overrides the node-visit budget. Values <= 0 keep the default.
func WithMaxSteps(n int) Option {
	return func(w *Workflow) {
		if n > 0 {
			w.maxSteps = n
		}
	}
}

// WithReplyFunc installs the sink for terminal assistant replies.
func WithReplyFunc(fn ReplyFunc) Option {
	return func(w *Workflow) {
		if fn != nil {
			w.reply = fn
		}
	}
}

func New(
	shopping contractx.Assistant,
	checkout contractx.Assistant,
	tools contractx.ToolGateway,
	input contractx.InputReader,
	opts ...Option,
) (*Workflow, error) {
	if shopping == nil {
		return nil, errors.New("shopping assistant is required")
	}
	if checkout == nil {
		return nil, errors.New("checkout assistant is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	if input == nil {
		return nil, errors.New("input reader is required")
	}

	w := &Workflow{
		shopping: shopping,
		checkout: checkout,
		tools:    tools,
		input:    input,
		reply:    func(contractx.AssistantKind, string) {},
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}
