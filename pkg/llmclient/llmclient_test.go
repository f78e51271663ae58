package llmclient

import "testing"

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{Model: "qwen2.5-7b-instruct"}).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := (Config{Model: "  "}).Validate(); err == nil {
		t.Fatal("blank model must be rejected")
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	// Construction must be side-effect free and never nil, with or without
	// a key. Request behavior is the SDK's concern.
	if client := NewClient(Config{BaseURL: "http://127.0.0.1:1234/v1/", Model: "m"}); client == nil {
		t.Fatal("nil client")
	}
	if client := NewClient(Config{APIKey: "sk-test", Model: "m"}); client == nil {
		t.Fatal("nil client")
	}
}
