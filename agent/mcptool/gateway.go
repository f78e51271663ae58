// Package mcptool connects the workflow to the remote tool backend over the
// MCP streamable-HTTP transport. Tools are discovered once at startup and
// advertised to the model; execution fans out per request and correlates
// results by tool-call id.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

type Config struct {
	URL     string        `envconfig:"URL" split_words:"true" default:"http://localhost:8001/mcp"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// rpcSession is the slice of the MCP client session the gateway uses.
type rpcSession interface {
	CallTool(ctx context.Context, params *mcpsdk.CallToolParams) (*mcpsdk.CallToolResult, error)
	Close() error
}

type Gateway struct {
	session rpcSession
	defs    []contractx.ToolDefinition
}

var _ contractx.ToolGateway = (*Gateway)(nil)

// Connect dials the tool backend and performs tool discovery. An unreachable
// backend is fatal here, before any conversation starts.
func Connect(ctx context.Context, cfg Config) (*Gateway, error) {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: tool backend url is required", contractx.ErrValidation)
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "shop-multiagent", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcpsdk.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", contractx.ErrToolBackend, endpoint, err)
	}

	var defs []contractx.ToolDefinition
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			_ = session.Close()
			return nil, fmt.Errorf("%w: list tools: %v", contractx.ErrToolBackend, err)
		}
		defs = append(defs, toDefinition(tool))
	}

	log.Info().Int("tools", len(defs)).Str("endpoint", endpoint).Msg("tool backend connected")
	return &Gateway{session: session, defs: defs}, nil
}

// Definitions returns the discovered tool descriptors for model advertising.
func (g *Gateway) Definitions() []contractx.ToolDefinition {
	out := make([]contractx.ToolDefinition, len(g.defs))
	copy(out, g.defs)
	return out
}

// Close shuts down the backend session.
func (g *Gateway) Close() error {
	if g.session == nil {
		return nil
	}
	return g.session.Close()
}

type outcome struct {
	msg contractx.Message
	err error
}

// Execute dispatches every request concurrently and blocks until all have an
// outcome. Results are returned in completion order; the tool-call id on each
// message is authoritative for correlation. Individual tool failures become
// error-content results so the model can react; only cancellation and backend
// loss abort the step.
func (g *Gateway) Execute(ctx context.Context, calls []contractx.ToolCall) ([]contractx.Message, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	results := make(chan outcome, len(calls))
	var wg sync.WaitGroup
	for _, call := range calls {
		wg.Add(1)
		go func(c contractx.ToolCall) {
			defer wg.Done()
			results <- g.execute(ctx, c)
		}(call)
	}
	wg.Wait()
	close(results)

	msgs := make([]contractx.Message, 0, len(calls))
	var fatal error
	for out := range results {
		if out.err != nil {
			fatal = out.err
			continue
		}
		msgs = append(msgs, out.msg)
	}
	if fatal != nil {
		return nil, fatal
	}
	return msgs, nil
}

func (g *Gateway) execute(ctx context.Context, call contractx.ToolCall) outcome {
	res, err := g.session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      call.Name,
		Arguments: call.Arguments,
	})
	if err != nil {
		if ctx.Err() != nil {
			return outcome{err: fmt.Errorf("%w: call %s: %v", contractx.ErrToolBackend, call.Name, err)}
		}
		// Protocol-level rejection (unknown tool, malformed arguments):
		// feed the error back to the model instead of aborting.
		log.Warn().Str("tool", call.Name).Err(err).Msg("tool call rejected")
		return outcome{msg: contractx.ToolResultMessage(call.ID, fmt.Sprintf("tool %s failed: %v", call.Name, err))}
	}

	content := textContent(res)
	if res.IsError {
		log.Warn().Str("tool", call.Name).Str("error", content).Msg("tool returned error")
		if content == "" {
			content = fmt.Sprintf("tool %s returned an error", call.Name)
		}
	}
	return outcome{msg: contractx.ToolResultMessage(call.ID, content)}
}

func textContent(res *mcpsdk.CallToolResult) string {
	if res == nil {
		return ""
	}
	var parts []string
	for _, c := range res.Content {
		if text, ok := c.(*mcpsdk.TextContent); ok && text.Text != "" {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func toDefinition(tool *mcpsdk.Tool) contractx.ToolDefinition {
	if tool == nil {
		return contractx.ToolDefinition{}
	}
	def := contractx.ToolDefinition{
		Name:        tool.Name,
		Description: tool.Description,
	}
	if tool.InputSchema != nil {
		if raw, err := json.Marshal(tool.InputSchema); err == nil {
			var schema map[string]any
			if err := json.Unmarshal(raw, &schema); err == nil {
				def.Schema = schema
			}
		}
	}
	return def
}
