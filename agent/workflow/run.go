package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
	conversationx "github.com/worapol/shop-multiagent/agent/conversation"
)

// Run walks the state machine for one conversation until the exit sentinel
// ends it or the step budget aborts it. The machine is monotonic in the
// checkout dimension: after the handoff no shopping-prefixed node is visited
// again.
func (w *Workflow) Run(ctx context.Context, st *conversationx.State) error {
	node := NodeQueryUserShopping
	for steps := 0; node != NodeEnd; steps++ {
		if steps >= w.maxSteps {
			return fmt.Errorf("%w: aborted at node=%s after %d visits", contractx.ErrStepBudget, node, steps)
		}

		next, err := w.step(ctx, st, node)
		if err != nil {
			return fmt.Errorf("node %s: %w", node, err)
		}

		log.Debug().
			Str("conversation_id", st.ID).
			Str("node", string(node)).
			Str("next", string(next)).
			Bool("checkout", st.CheckedOut()).
			Msg("workflow transition")
		node = next
	}
	return nil
}

func (w *Workflow) step(ctx context.Context, st *conversationx.State, node Node) (Node, error) {
	switch node {
	case NodeQueryUserShopping:
		return w.queryUser(st, contractx.AssistantShopping, NodeShoppingAssistant)
	case NodeQueryUserCheckout:
		return w.queryUser(st, contractx.AssistantCheckout, NodeCheckoutAssistant)
	case NodeShoppingAssistant:
		return w.shoppingAssistant(ctx, st)
	case NodeCheckoutAssistant:
		return w.checkoutAssistant(ctx, st)
	case NodeToolShopping:
		if err := w.resolvePendingToolCalls(ctx, st); err != nil {
			return NodeEnd, err
		}
		return NodeShoppingAssistant, nil
	case NodeToolCheckout:
		// Symmetric with the shopping side: results go back to the
		// checkout assistant, never straight to the reply node.
		if err := w.resolvePendingToolCalls(ctx, st); err != nil {
			return NodeEnd, err
		}
		return NodeCheckoutAssistant, nil
	case NodeReplyShopping:
		w.emitReply(st, contractx.AssistantShopping)
		return NodeQueryUserShopping, nil
	case NodeReplyCheckout:
		w.emitReply(st, contractx.AssistantCheckout)
		return NodeQueryUserCheckout, nil
	default:
		return NodeEnd, fmt.Errorf("%w: unknown node %q", contractx.ErrValidation, node)
	}
}

func (w *Workflow) queryUser(st *conversationx.State, kind contractx.AssistantKind, next Node) (Node, error) {
	utterance, err := w.input.Prompt(kind)
	if err != nil {
		return NodeEnd, err
	}
	if utterance == ExitSentinel {
		return NodeEnd, nil
	}
	st.Log.Append(contractx.HumanMessage(utterance))
	return next, nil
}

func (w *Workflow) shoppingAssistant(ctx context.Context, st *conversationx.State) (Node, error) {
	// The handoff is a one-way valve: never invoke the shopping role again
	// once the checkout signal has been observed.
	if st.CheckedOut() {
		return NodeCheckoutAssistant, nil
	}

	msg, err := w.shopping.Invoke(ctx, st.Log.Snapshot())
	if err != nil {
		return NodeEnd, err
	}
	st.Log.Append(msg)

	switch {
	case msg.RequestsCheckout():
		// The checkout signal wins over tool routing even when the same
		// turn carries other tool calls; those are resolved by the
		// checkout assistant before its first model invocation.
		st.MarkCheckout()
		return NodeCheckoutAssistant, nil
	case len(msg.ToolCalls) > 0:
		return NodeToolShopping, nil
	default:
		return NodeReplyShopping, nil
	}
}

func (w *Workflow) checkoutAssistant(ctx context.Context, st *conversationx.State) (Node, error) {
	// Pairing barrier: every request from the latest assistant turn must
	// have its result before the model sees the transcript again. This
	// covers the handoff case where the shopping turn's calls (including
	// proceed_to_checkout itself) are still unresolved.
	if err := w.resolvePendingToolCalls(ctx, st); err != nil {
		return NodeEnd, err
	}

	msg, err := w.checkout.Invoke(ctx, st.Log.Snapshot())
	if err != nil {
		return NodeEnd, err
	}
	st.Log.Append(msg)

	if len(msg.ToolCalls) > 0 {
		return NodeToolCheckout, nil
	}
	return NodeReplyCheckout, nil
}

func (w *Workflow) resolvePendingToolCalls(ctx context.Context, st *conversationx.State) error {
	pending := PendingToolCalls(st.Log.Snapshot())
	if len(pending) == 0 {
		return nil
	}
	results, err := w.tools.Execute(ctx, pending)
	if err != nil {
		return err
	}
	for _, res := range results {
		st.Log.Append(res)
	}
	return nil
}

func (w *Workflow) emitReply(st *conversationx.State, kind contractx.AssistantKind) {
	if last, ok := st.Log.Last(); ok && last.Role == contractx.RoleAssistant {
		w.reply(kind, last.Content)
	}
}

// PendingToolCalls returns the tool-call requests of the latest assistant
// turn that have no matching result yet. Resolved requests are never
// reissued.
func PendingToolCalls(history []contractx.Message) []contractx.ToolCall {
	last := -1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == contractx.RoleAssistant {
			last = i
			break
		}
	}
	if last < 0 || len(history[last].ToolCalls) == 0 {
		return nil
	}

	resolved := make(map[string]struct{})
	for _, msg := range history[last+1:] {
		if msg.Role == contractx.RoleTool && msg.ToolCallID != "" {
			resolved[msg.ToolCallID] = struct{}{}
		}
	}

	var pending []contractx.ToolCall
	for _, call := range history[last].ToolCalls {
		if _, ok := resolved[call.ID]; !ok {
			pending = append(pending, call)
		}
	}
	return pending
}
