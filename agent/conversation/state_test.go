package conversation

import (
	"fmt"
	"sync"
	"testing"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

func TestLogAppendOnly(t *testing.T) {
	t.Parallel()

	var l Log
	l.Append(contractx.HumanMessage("first"))
	l.Append(contractx.Message{Role: contractx.RoleAssistant, Content: "second"})

	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	// Snapshots are copies: mutating one must not leak into the log.
	snap := l.Snapshot()
	snap[0].Content = "tampered"
	if got := l.Snapshot()[0].Content; got != "first" {
		t.Fatalf("log entry mutated through snapshot: %q", got)
	}

	last, ok := l.Last()
	if !ok || last.Content != "second" {
		t.Fatalf("Last() = %+v, %v", last, ok)
	}
}

func TestLogLastEmpty(t *testing.T) {
	t.Parallel()

	var l Log
	if _, ok := l.Last(); ok {
		t.Fatal("Last() on empty log must report false")
	}
}

func TestLogConcurrentAppend(t *testing.T) {
	t.Parallel()

	var l Log
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append(contractx.HumanMessage(fmt.Sprintf("msg-%d", i)))
		}(i)
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", l.Len())
	}
}

func TestStateCheckoutIsOneWay(t *testing.T) {
	t.Parallel()

	st := NewState("conv-1")
	if st.CheckedOut() {
		t.Fatal("new state must start in the shopping stage")
	}

	st.MarkCheckout()
	if !st.CheckedOut() {
		t.Fatal("MarkCheckout must set the flag")
	}

	// Repeated marking keeps the flag set; there is no way back.
	st.MarkCheckout()
	if !st.CheckedOut() {
		t.Fatal("checkout flag must be monotonic")
	}
}

func TestNewStateGeneratesID(t *testing.T) {
	t.Parallel()

	a := NewState("")
	b := NewState("")
	if a.ID == "" || b.ID == "" {
		t.Fatal("generated IDs must be non-empty")
	}
	if a.ID == b.ID {
		t.Fatalf("generated IDs must be unique, both were %q", a.ID)
	}

	c := NewState("given")
	if c.ID != "given" {
		t.Fatalf("explicit ID must be kept, got %q", c.ID)
	}
}
