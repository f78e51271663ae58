package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
	workflowx "github.com/worapol/shop-multiagent/agent/workflow"
)

var (
	shoppingLabel = color.RGB(255, 69, 0).Add(color.Bold).Sprint("Query Shopping Assistant> ")
	checkoutLabel = color.RGB(10, 152, 46).Add(color.Bold).Sprint("Query Checkout Assistant> ")
)

// replReader blocks on stdin for the next human utterance, one line per turn.
type replReader struct {
	scanner *bufio.Scanner
}

func newReplReader(r io.Reader) *replReader {
	return &replReader{scanner: bufio.NewScanner(r)}
}

func (r *replReader) Prompt(kind contractx.AssistantKind) (string, error) {
	label := shoppingLabel
	if kind == contractx.AssistantCheckout {
		label = checkoutLabel
	}
	fmt.Print(label)

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		// Closed stdin ends the session the same way the sentinel does.
		return workflowx.ExitSentinel, nil
	}
	return r.scanner.Text(), nil
}

func printReply(kind contractx.AssistantKind, text string) {
	fmt.Println()
	fmt.Println("🤖 Assistant:")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println(text)
	fmt.Println(strings.Repeat("═", 50))
	fmt.Println()
}
