package assistant

import (
	"errors"
	"testing"

	"github.com/openai/openai-go"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	client := &openai.Client{}

	cases := map[string]struct {
		client      *openai.Client
		instruction string
		model       string
	}{
		"nil client":        {nil, "be helpful", "m"},
		"empty instruction": {client, "  ", "m"},
		"empty model":       {client, "be helpful", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := New(contractx.AssistantShopping, tc.instruction, tc.client, tc.model, 0.7, nil)
			if !errors.Is(err, contractx.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	a, err := New(contractx.AssistantCheckout, "handle checkout", client, "qwen2.5", 0.7, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Kind() != contractx.AssistantCheckout {
		t.Fatalf("Kind() = %s", a.Kind())
	}
}

func TestParams(t *testing.T) {
	t.Parallel()

	client := &openai.Client{}
	defs := []contractx.ToolDefinition{{Name: "search_products"}}
	a, err := New(contractx.AssistantShopping, "assist shoppers", client, "qwen2.5", 0.2, defs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := a.params([]contractx.Message{contractx.HumanMessage("hi")})
	if params.Model != "qwen2.5" {
		t.Fatalf("model = %q", params.Model)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("expected instruction + human message, got %d", len(params.Messages))
	}
	if len(params.Tools) != 1 {
		t.Fatalf("tools not advertised: %+v", params.Tools)
	}
	if !params.Temperature.Valid() || params.Temperature.Value != 0.2 {
		t.Fatalf("temperature = %+v", params.Temperature)
	}

	// Negative temperature means "let the provider default apply".
	b, err := New(contractx.AssistantShopping, "assist shoppers", client, "qwen2.5", -1, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if b.params(nil).Temperature.Valid() {
		t.Fatal("negative temperature must not be sent")
	}
}
