package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"

	"gocalc/calculator"
	"gocalc/internal/metrics"
)

type handler func(context.Context, mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error)

func newServer() (*Server, *metrics.Collector) {
	c := metrics.New()
	return New(calculator.NewShared(nil), Options{Version: "test", Precision: 10, Metrics: c}), c
}

// call invokes h with args and returns the text content and error flag.
func call(t *testing.T, h handler, args map[string]any) (string, bool) {
	t.Helper()
	var req mcpsdk.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := res.Content[0].(mcpsdk.TextContent)
	if !ok {
		t.Fatalf("content %T is not text", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		a, b    float64
		op      string
		want    string
		wantErr bool
	}{
		{2, 3, "add", "5", false},
		{2, 3, "+", "5", false},
		{10, 4, "subtract", "6", false},
		{6, 7, "Multiply", "42", false},
		{6, 7, "×", "42", false},
		{10, 4, "divide", "2.5", false},
		{10, 0, "divide", "calculate 10 / 0: division by zero", true},
		{1, 2, "pow", "", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%s_%v", tt.a, tt.op, tt.b), func(t *testing.T) {
			s, _ := newServer()
			got, isErr := call(t, s.handleCalculate, map[string]any{"a": tt.a, "b": tt.b, "operation": tt.op})
			if isErr != tt.wantErr {
				t.Fatalf("isError = %v (%q), want %v", isErr, got, tt.wantErr)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculate_MissingArgument(t *testing.T) {
	s, _ := newServer()
	if _, isErr := call(t, s.handleCalculate, map[string]any{"a": 1.0, "operation": "add"}); !isErr {
		t.Error("missing b should be an error result")
	}
}

func TestTrigAndAngleMode(t *testing.T) {
	s, _ := newServer()

	if got, isErr := call(t, s.handleTrig, map[string]any{"function": "sin", "value": 90.0}); isErr || got != "1" {
		t.Errorf("sin 90 = %q (error=%v)", got, isErr)
	}

	if got, _ := call(t, s.handleSetAngleMode, map[string]any{"mode": "radians"}); got != "angle mode: Radians" {
		t.Errorf("set_angle_mode = %q", got)
	}
	if got, isErr := call(t, s.handleTrig, map[string]any{"function": "cosine", "value": 0.0}); isErr || got != "1" {
		t.Errorf("cos 0 = %q (error=%v)", got, isErr)
	}

	got, isErr := call(t, s.handleTrig, map[string]any{"function": "asin", "value": 1.5})
	if !isErr || !strings.Contains(got, "domain error") {
		t.Errorf("asin 1.5 = %q (error=%v)", got, isErr)
	}
	if _, isErr := call(t, s.handleTrig, map[string]any{"function": "sinh", "value": 1.0}); !isErr {
		t.Error("unknown function should be an error result")
	}
	if _, isErr := call(t, s.handleSetAngleMode, map[string]any{"mode": "gradians"}); !isErr {
		t.Error("unknown mode should be an error result")
	}
}

func TestMemoryTools(t *testing.T) {
	s, c := newServer()

	if got, isErr := call(t, s.handleMemoryRecall, nil); !isErr || got != "memory is empty" {
		t.Errorf("recall on empty memory = %q (error=%v)", got, isErr)
	}

	call(t, s.handleCalculate, map[string]any{"a": 4.0, "b": 5.0, "operation": "*"})
	if got, _ := call(t, s.handleMemoryStore, map[string]any{}); got != "stored 20 in memory" {
		t.Errorf("memory_store default = %q", got)
	}
	if got, _ := call(t, s.handleMemoryStore, map[string]any{"value": -1.5}); got != "stored -1.5 in memory" {
		t.Errorf("memory_store = %q", got)
	}
	if got, _ := call(t, s.handleMemoryRecall, nil); got != "-1.5" {
		t.Errorf("recall = %q", got)
	}
	if got, _ := call(t, s.handleMemoryClear, nil); got != "memory cleared" {
		t.Errorf("clear = %q", got)
	}
	if _, isErr := call(t, s.handleMemoryRecall, nil); !isErr {
		t.Error("recall after clear should fail")
	}

	if n := c.Snapshot().MemoryStores; n != 2 {
		t.Errorf("memory stores = %d, want 2", n)
	}
	if n := c.FailuresOf("empty_memory"); n != 2 {
		t.Errorf("empty_memory failures = %d, want 2", n)
	}
}

func TestSetLastResultAndStatus(t *testing.T) {
	s, _ := newServer()

	if got, _ := call(t, s.handleSetLastResult, map[string]any{"value": 7.0}); got != "7" {
		t.Errorf("set_last_result = %q", got)
	}
	call(t, s.handleMemoryStore, nil)

	got, _ := call(t, s.handleStatus, nil)
	var st struct {
		HasMemory  bool    `json:"has_memory"`
		Memory     float64 `json:"memory"`
		Mode       string  `json:"mode"`
		LastResult float64 `json:"last_result"`
	}
	if err := json.Unmarshal([]byte(got), &st); err != nil {
		t.Fatalf("status is not JSON: %v (%q)", err, got)
	}
	if !st.HasMemory || st.Memory != 7 || st.Mode != "Degrees" || st.LastResult != 7 {
		t.Errorf("status = %+v", st)
	}
}

// TestConcurrentCalls exercises the shared engine from many goroutines.
func TestConcurrentCalls(t *testing.T) {
	s, c := newServer()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var req mcpsdk.CallToolRequest
			req.Params.Arguments = map[string]any{"a": float64(i), "b": 2.0, "operation": "multiply"}
			s.handleCalculate(context.Background(), req) //nolint:errcheck
		}(i)
	}
	wg.Wait()

	if c.Operations() != 20 {
		t.Errorf("operations = %d, want 20", c.Operations())
	}
}

// TestServe_Stdio runs a tools/call over the stdio transport.
func TestServe_Stdio(t *testing.T) {
	s, _ := newServer()

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Serve(ctx, inR, outW) //nolint:errcheck

	msgs := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"calculate","arguments":{"a":2,"b":3,"operation":"add"}}}`,
	}
	go func() {
		for _, m := range msgs {
			fmt.Fprintln(inW, m)
		}
	}()

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(outR)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case line := <-lines:
			if strings.Contains(line, `"id":2`) {
				if !strings.Contains(line, `"text":"5"`) {
					t.Errorf("tools/call response = %s", line)
				}
				return
			}
		case <-deadline:
			t.Fatal("no tools/call response")
		}
	}
}
