package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpsdk "github.com/mark3labs/mcp-go/mcp"

	"gocalc/calculator"
	calcerr "gocalc/internal/errors"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcpsdk.NewTool("calculate",
		mcpsdk.WithDescription("Apply a binary arithmetic operation to two numbers"),
		mcpsdk.WithNumber("a", mcpsdk.Required(), mcpsdk.Description("Left operand")),
		mcpsdk.WithNumber("b", mcpsdk.Required(), mcpsdk.Description("Right operand")),
		mcpsdk.WithString("operation",
			mcpsdk.Required(),
			mcpsdk.Description("One of add, subtract, multiply, divide (or + - * /)"),
		),
	), s.handleCalculate)

	s.mcp.AddTool(mcpsdk.NewTool("trig",
		mcpsdk.WithDescription("Evaluate a trigonometric function in the current angle mode"),
		mcpsdk.WithString("function",
			mcpsdk.Required(),
			mcpsdk.Description("sin, cos, tan, asin, acos or atan (long names accepted)"),
		),
		mcpsdk.WithNumber("value", mcpsdk.Required(), mcpsdk.Description("Argument")),
	), s.handleTrig)

	s.mcp.AddTool(mcpsdk.NewTool("memory_store",
		mcpsdk.WithDescription("Store a value in memory (default: the last result)"),
		mcpsdk.WithNumber("value", mcpsdk.Description("Value to store")),
	), s.handleMemoryStore)

	s.mcp.AddTool(mcpsdk.NewTool("memory_recall",
		mcpsdk.WithDescription("Return the value held in memory"),
	), s.handleMemoryRecall)

	s.mcp.AddTool(mcpsdk.NewTool("memory_clear",
		mcpsdk.WithDescription("Empty the memory register"),
	), s.handleMemoryClear)

	s.mcp.AddTool(mcpsdk.NewTool("set_angle_mode",
		mcpsdk.WithDescription("Select degrees or radians for trigonometric functions"),
		mcpsdk.WithString("mode",
			mcpsdk.Required(),
			mcpsdk.Enum("degrees", "radians", "deg", "rad"),
		),
	), s.handleSetAngleMode)

	s.mcp.AddTool(mcpsdk.NewTool("set_last_result",
		mcpsdk.WithDescription("Overwrite the last result, e.g. to seed a calculation"),
		mcpsdk.WithNumber("value", mcpsdk.Required()),
	), s.handleSetLastResult)

	s.mcp.AddTool(mcpsdk.NewTool("status",
		mcpsdk.WithDescription("Report memory, angle mode and last result as JSON"),
	), s.handleStatus)
}

// ── handlers ─────────────────────────────────────────────────────────

var operationNames = map[string]calculator.Operator{
	"add":      calculator.Add,
	"subtract": calculator.Subtract,
	"multiply": calculator.Multiply,
	"divide":   calculator.Divide,
}

func (s *Server) handleCalculate(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	args := req.GetArguments()
	a, ok := args["a"].(float64)
	if !ok {
		return mcpsdk.NewToolResultError("a is required"), nil
	}
	b, ok := args["b"].(float64)
	if !ok {
		return mcpsdk.NewToolResultError("b is required"), nil
	}
	name, _ := args["operation"].(string)
	op, ok := operationNames[strings.ToLower(name)]
	if !ok {
		var err error
		if op, err = calculator.ParseOperator(name); err != nil {
			return s.fail("calculate", err), nil
		}
	}

	var r float64
	err := s.calc.Do(func(e *calculator.Engine) error {
		var err error
		r, err = e.Calculate(a, b, op)
		return err
	})
	if err != nil {
		return s.fail("calculate", calcerr.Wrap("calculate", fmt.Sprintf("%s %s %s", s.num(a), op, s.num(b)), err)), nil
	}
	return s.ok(r), nil
}

func (s *Server) handleTrig(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	args := req.GetArguments()
	name, ok := args["function"].(string)
	if !ok {
		return mcpsdk.NewToolResultError("function is required"), nil
	}
	v, ok := args["value"].(float64)
	if !ok {
		return mcpsdk.NewToolResultError("value is required"), nil
	}

	var r float64
	err := s.calc.Do(func(e *calculator.Engine) error {
		var err error
		r, err = e.Trig(name, v)
		return err
	})
	if err != nil {
		return s.fail("trig", err), nil
	}
	return s.ok(r), nil
}

func (s *Server) handleMemoryStore(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	v, given := req.GetArguments()["value"].(float64)
	s.calc.Do(func(e *calculator.Engine) error { //nolint:errcheck
		if !given {
			v = e.LastResult()
		}
		e.StoreInMemory(v)
		return nil
	})
	s.metrics.MemoryStored()
	return mcpsdk.NewToolResultText("stored " + s.num(v) + " in memory"), nil
}

func (s *Server) handleMemoryRecall(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var v float64
	err := s.calc.Do(func(e *calculator.Engine) error {
		var err error
		v, err = e.RecallFromMemory()
		return err
	})
	if err != nil {
		return s.fail("memory_recall", err), nil
	}
	return mcpsdk.NewToolResultText(s.num(v)), nil
}

func (s *Server) handleMemoryClear(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	s.calc.Do(func(e *calculator.Engine) error { //nolint:errcheck
		e.ClearMemory()
		return nil
	})
	return mcpsdk.NewToolResultText("memory cleared"), nil
}

func (s *Server) handleSetAngleMode(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	mode, _ := req.GetArguments()["mode"].(string)
	var degrees bool
	switch strings.ToLower(mode) {
	case "degrees", "deg":
		degrees = true
	case "radians", "rad":
	default:
		return mcpsdk.NewToolResultError(fmt.Sprintf("unknown angle mode %q (want degrees or radians)", mode)), nil
	}

	var name string
	s.calc.Do(func(e *calculator.Engine) error { //nolint:errcheck
		e.SetAngleMode(degrees)
		name = e.AngleModeString()
		return nil
	})
	return mcpsdk.NewToolResultText("angle mode: " + name), nil
}

func (s *Server) handleSetLastResult(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	v, ok := req.GetArguments()["value"].(float64)
	if !ok {
		return mcpsdk.NewToolResultError("value is required"), nil
	}
	s.calc.Do(func(e *calculator.Engine) error { //nolint:errcheck
		e.SetLastResult(v)
		return nil
	})
	return mcpsdk.NewToolResultText(s.num(v)), nil
}

func (s *Server) handleStatus(ctx context.Context, req mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	st := s.calc.Status()
	data, err := json.Marshal(st)
	if err != nil {
		// Infinite values have no JSON form.
		return mcpsdk.NewToolResultText(st.String()), nil
	}
	return mcpsdk.NewToolResultText(string(data)), nil
}

// ── result helpers ───────────────────────────────────────────────────

func (s *Server) ok(v float64) *mcpsdk.CallToolResult {
	s.metrics.OperationSucceeded()
	return mcpsdk.NewToolResultText(s.num(v))
}

func (s *Server) fail(tool string, err error) *mcpsdk.CallToolResult {
	s.metrics.OperationFailed(calcerr.Kind(err), err.Error())
	s.logger.Debug("%s: %v", tool, err)
	return mcpsdk.NewToolResultError(err.Error())
}
