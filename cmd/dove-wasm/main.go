//go:build js && wasm

// Command dove-wasm is the WebAssembly entry point for the Dove
// interpreter. It exposes a single `runDove(source)` function to
// JavaScript, backed directly by pkg/dove rather than a separate
// platform-abstraction package.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o dove.wasm ./cmd/dove-wasm
//
// Usage from JavaScript:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go();
//	  WebAssembly.instantiateStreaming(fetch("dove.wasm"), go.importObject)
//	    .then((result) => {
//	      go.run(result.instance);
//	      window.runDove("print 1 + 1");
//	    });
//	</script>
package main

import (
	"strings"
	"syscall/js"

	"github.com/dove-lang/dove/pkg/dove"
)

// jsOutput buffers print/warning/error lines so a single runDove call can
// return them all to its JavaScript caller as one string.
type jsOutput struct {
	lines []string
}

func (o *jsOutput) Print(message string)   { o.lines = append(o.lines, message) }
func (o *jsOutput) Warning(message string) { o.lines = append(o.lines, "Warning: "+message) }
func (o *jsOutput) Error(message string)   { o.lines = append(o.lines, message) }

// runDove runs a single batch of Dove source and returns its accumulated
// print/diagnostic output as a newline-joined string.
func runDove(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return "Error: runDove(source) requires one string argument."
	}
	source := args[0].String()

	out := &jsOutput{}
	d := dove.New(out)
	d.Run(source, false)

	return strings.Join(out.lines, "\n")
}

func main() {
	done := make(chan struct{})

	js.Global().Set("runDove", js.FuncOf(runDove))
	js.Global().Get("console").Call("log", "Dove WASM module initialized")

	<-done
}
