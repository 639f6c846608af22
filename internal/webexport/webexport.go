//go:build js && wasm

// Package webexport publishes the calculator to JavaScript as a global
// "gocalc" object when the module is compiled to WebAssembly.
//
// Calls return plain JS values.  Failing calls return an object
// {error: "<message>", kind: "<kind>"} instead of throwing, so pages
// can show the message next to the keypad.
package webexport

import (
	"syscall/js"

	"gocalc/calculator"
	"gocalc/internal/keypad"
)

// Register installs the gocalc object on the JS global scope.  The
// returned function releases the callbacks.
func Register(e *calculator.Engine) (release func()) {
	kp := keypad.New(e)
	e = kp.Engine()

	var funcs []js.Func
	obj := js.Global().Get("Object").New()
	def := func(name string, fn func(args []js.Value) any) {
		f := js.FuncOf(func(_ js.Value, args []js.Value) any { return fn(args) })
		funcs = append(funcs, f)
		obj.Set(name, f)
	}

	binary := func(op calculator.Operator) func([]js.Value) any {
		return func(args []js.Value) any {
			return result(e.Calculate(arg(args, 0), arg(args, 1), op))
		}
	}
	def("add", binary(calculator.Add))
	def("subtract", binary(calculator.Subtract))
	def("multiply", binary(calculator.Multiply))
	def("divide", binary(calculator.Divide))

	for _, fn := range []calculator.Func{
		calculator.Sin, calculator.Cos, calculator.Tan,
		calculator.Asin, calculator.Acos, calculator.Atan,
	} {
		fn := fn
		def(fn.String(), func(args []js.Value) any {
			return result(e.Apply(fn, arg(args, 0)))
		})
	}

	def("memoryStore", func(args []js.Value) any {
		e.StoreInMemory(arg(args, 0))
		return nil
	})
	def("memoryRecall", func([]js.Value) any { return result(e.RecallFromMemory()) })
	def("memoryClear", func([]js.Value) any {
		e.ClearMemory()
		return nil
	})
	def("hasMemory", func([]js.Value) any { return e.HasMemoryValue() })
	def("memoryStatus", func([]js.Value) any { return e.MemoryStatus() })

	def("setAngleMode", func(args []js.Value) any {
		e.SetAngleMode(len(args) == 0 || args[0].Truthy())
		return nil
	})
	def("angleMode", func([]js.Value) any { return e.AngleModeString() })
	def("lastResult", func([]js.Value) any { return e.LastResult() })
	def("setLastResult", func(args []js.Value) any {
		e.SetLastResult(arg(args, 0))
		return nil
	})
	def("status", func([]js.Value) any { return e.Status().String() })

	// Keypad: press(key) returns the new display text.
	def("press", func(args []js.Value) any {
		if len(args) == 0 {
			return failure(keypad.ErrUnknownKey)
		}
		return press(kp, args[0].String())
	})
	def("display", func([]js.Value) any { return kp.Display() })

	js.Global().Set("gocalc", obj)
	return func() {
		js.Global().Delete("gocalc")
		for _, f := range funcs {
			f.Release()
		}
	}
}

func arg(args []js.Value, i int) float64 {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 0
	}
	return args[i].Float()
}
