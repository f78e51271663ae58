// Package assistant implements the LLM-backed assistant roles on top of the
// chat completions API. Each instance pairs one opaque role instruction with
// the advertised tool definitions; the model decides whether to reply or to
// request tool calls.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

type Assistant struct {
	kind        contractx.AssistantKind
	instruction string
	client      *openai.Client
	model       string
	temperature float64
	tools       []openai.ChatCompletionToolParam
}

var _ contractx.StreamingAssistant = (*Assistant)(nil)

func New(
	kind contractx.AssistantKind,
	instruction string,
	client *openai.Client,
	model string,
	temperature float64,
	defs []contractx.ToolDefinition,
) (*Assistant, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil completions client", contractx.ErrValidation)
	}
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: role instruction is empty", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: model name is empty", contractx.ErrValidation)
	}

	return &Assistant{
		kind:        kind,
		instruction: strings.TrimSpace(instruction),
		client:      client,
		model:       model,
		temperature: temperature,
		tools:       toWireTools(defs),
	}, nil
}

func (a *Assistant) Kind() contractx.AssistantKind {
	return a.kind
}

// Invoke replays the transcript under the role instruction and returns the
// next assistant turn. Failures are not retried here; they abort the turn.
func (a *Assistant) Invoke(ctx context.Context, history []contractx.Message) (contractx.Message, error) {
	completion, err := a.client.Chat.Completions.New(ctx, a.params(history))
	if err != nil {
		return contractx.Message{}, fmt.Errorf("%w: %s completion: %v", contractx.ErrModelInvoke, a.kind, err)
	}
	if len(completion.Choices) == 0 {
		return contractx.Message{}, fmt.Errorf("%w: %s completion returned no choices", contractx.ErrModelInvoke, a.kind)
	}
	return fromWireMessage(completion.Choices[0].Message)
}

// InvokeStream is Invoke with content chunks forwarded in arrival order.
// Chunks are concatenated by the accumulator, so the returned message content
// equals the concatenation of everything passed to onChunk.
func (a *Assistant) InvokeStream(
	ctx context.Context,
	history []contractx.Message,
	onChunk func(string) error,
) (contractx.Message, error) {
	stream := a.client.Chat.Completions.NewStreaming(ctx, a.params(history))
	defer stream.Close()

	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" && onChunk != nil {
			if err := onChunk(delta); err != nil {
				return contractx.Message{}, err
			}
		}
	}
	if err := stream.Err(); err != nil {
		return contractx.Message{}, fmt.Errorf("%w: %s stream: %v", contractx.ErrModelInvoke, a.kind, err)
	}
	if len(acc.Choices) == 0 {
		return contractx.Message{}, fmt.Errorf("%w: %s stream returned no choices", contractx.ErrModelInvoke, a.kind)
	}
	return fromWireMessage(acc.Choices[0].Message)
}

func (a *Assistant) params(history []contractx.Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    a.model,
		Messages: toWireMessages(a.instruction, history),
	}
	if a.temperature >= 0 {
		params.Temperature = openai.Float(a.temperature)
	}
	if len(a.tools) > 0 {
		params.Tools = a.tools
	}
	return params
}
