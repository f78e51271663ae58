package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/shopping.txt
	shoppingRaw string

	//go:embed template/checkout.txt
	checkoutRaw string
)

// PromptSet holds the role instructions for both assistant roles. The
// instructions are opaque configuration strings; nothing parses them.
type PromptSet struct {
	Shopping string
	Checkout string
}

// LoadPromptSet returns the embedded role instructions with surrounding
// whitespace trimmed. Safe for concurrent use.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Shopping: strings.TrimSpace(shoppingRaw),
		Checkout: strings.TrimSpace(checkoutRaw),
	}
}
