package workflow

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
	conversationx "github.com/worapol/shop-multiagent/agent/conversation"
)

// TurnRunner drives one request/response cycle for a single assistant role,
// the serving variant of the graph: no human-input suspension mid-turn, just
// model -> tools -> model until a plain reply comes back.
type TurnRunner struct {
	assistant contractx.StreamingAssistant
	tools     contractx.ToolGateway
	maxSteps  int
}

func NewTurnRunner(assistant contractx.StreamingAssistant, tools contractx.ToolGateway, maxSteps int) (*TurnRunner, error) {
	if assistant == nil {
		return nil, errors.New("assistant is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &TurnRunner{assistant: assistant, tools: tools, maxSteps: maxSteps}, nil
}

// Run appends the human prompt, loops model and tool stages until the model
// returns a turn without tool calls, and returns that final reply. When
// onChunk is non-nil every model invocation streams its content through it
// in order; the concatenation of all chunks equals the returned reply for
// the final invocation.
func (r *TurnRunner) Run(
	ctx context.Context,
	st *conversationx.State,
	prompt string,
	onChunk func(string) error,
) (string, error) {
	st.Log.Append(contractx.HumanMessage(prompt))

	for steps := 0; steps < r.maxSteps; steps++ {
		msg, err := r.invoke(ctx, st, onChunk)
		if err != nil {
			return "", err
		}
		st.Log.Append(msg)

		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		results, err := r.tools.Execute(ctx, PendingToolCalls(st.Log.Snapshot()))
		if err != nil {
			return "", err
		}
		for _, res := range results {
			st.Log.Append(res)
		}
	}
	return "", fmt.Errorf("%w: turn did not settle within %d steps", contractx.ErrStepBudget, r.maxSteps)
}

func (r *TurnRunner) invoke(
	ctx context.Context,
	st *conversationx.State,
	onChunk func(string) error,
) (contractx.Message, error) {
	if onChunk == nil {
		return r.assistant.Invoke(ctx, st.Log.Snapshot())
	}
	return r.assistant.InvokeStream(ctx, st.Log.Snapshot(), onChunk)
}
