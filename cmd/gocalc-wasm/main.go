//go:build js && wasm

// Command gocalc-wasm exposes the calculator to a web page.  Build with
//
//	GOOS=js GOARCH=wasm go build -o gocalc.wasm ./cmd/gocalc-wasm
//
// and load it with the wasm_exec.js shipped with Go.
package main

import (
	"gocalc/calculator"
	"gocalc/internal/webexport"
)

func main() {
	release := webexport.Register(calculator.New())
	defer release()
	select {}
}
