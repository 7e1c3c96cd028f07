// Package dove is Dove's embedding API: it wires the lexer, importer,
// parser, resolver, and interpreter into the single entry point described
// in spec.md §6 — the shape every external collaborator (CLI driver, REPL
// loop, WebAssembly bridge) consumes the language core through.
package dove

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dove-lang/dove/internal/ast"
	doveErrors "github.com/dove-lang/dove/internal/errors"
	"github.com/dove-lang/dove/internal/importer"
	"github.com/dove-lang/dove/internal/interp"
	"github.com/dove-lang/dove/internal/lexer"
	"github.com/dove-lang/dove/internal/parser"
	"github.com/dove-lang/dove/internal/resolver"
	"github.com/dove-lang/dove/internal/runtime"
)

// OutputSink is the only channel the core writes through: print output and
// warning/error diagnostics. Embedders (CLI, REPL, wasm bridge) supply
// their own sink instead of the core touching stdout/stderr directly.
type OutputSink = interp.OutputSink

// Dove wires one interpreter instance across however many Run calls an
// embedder makes, so top-level `let`/`fun`/`class` declarations persist
// across REPL lines the way spec.md's REPL state machine requires.
type Dove struct {
	interpreter *interp.Interpreter
	output      OutputSink

	// IsReplUnfinished reports whether the most recent Run call stopped
	// because an open block was never closed (see spec.md §4.7's REPL
	// unfinished-block state machine).
	IsReplUnfinished bool

	// visitedImports tracks which import paths have already been run, so
	// a self-import or a repeated import is rejected rather than silently
	// re-executed.
	visitedImports map[string]bool
}

// New creates a Dove instance writing through output.
func New(output OutputSink) *Dove {
	return &Dove{
		interpreter:    interp.New(output),
		output:         output,
		visitedImports: make(map[string]bool),
	}
}

// Run lexes, imports, parses, resolves, and interprets one batch of source
// text. isInRepl enables the parser's unfinished-block detection; callers
// driving a REPL should re-issue the previous buffer concatenated with the
// new line whenever IsReplUnfinished is true after a Run call.
func (d *Dove) Run(source string, isInRepl bool) {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()
	if len(lx.Errors()) > 0 {
		d.reportCompileErrors(lx.Errors(), source, "")
		return
	}

	im := importer.New(tokens)
	remaining, imports := im.Analyze()
	if len(im.Errors()) > 0 {
		d.reportCompileErrors(im.Errors(), source, "")
		return
	}

	for _, path := range imports {
		if d.visitedImports[path] {
			d.output.Error(fmt.Sprintf("Import Error: Cannot import file '%s'.", path))
			os.Exit(92)
		}
		d.visitedImports[path] = true
		d.RunFile(path)
	}

	p := parser.New(remaining, isInRepl)
	program := p.ParseProgram()

	d.IsReplUnfinished = p.IsUnfinishedBlock()
	if d.IsReplUnfinished {
		return
	}

	if len(p.Errors()) > 0 {
		d.reportCompileErrors(p.Errors(), source, "")
		return
	}

	res := resolver.New()
	res.Resolve(program)
	if len(res.Errors()) > 0 {
		d.reportCompileErrors(res.Errors(), source, "")
		return
	}

	d.interpreter.SetResolver(res)
	d.interpreter.Interpret(program.Statements)
}

// ParseAST lexes, strips imports, and parses source without resolving or
// interpreting it, for callers that only want to inspect the syntax tree
// (e.g. the CLI's `--dump-ast` flag).
func (d *Dove) ParseAST(source string) (*ast.Program, []string) {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()
	if len(lx.Errors()) > 0 {
		return nil, lx.Errors()
	}

	im := importer.New(tokens)
	remaining, _ := im.Analyze()
	if len(im.Errors()) > 0 {
		return nil, im.Errors()
	}

	p := parser.New(remaining, false)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, p.Errors()
	}
	return program, nil
}

// RunFile reads path and runs it as a non-REPL batch. File I/O failures
// exit the process with the codes spec.md §6 assigns: 53 for a missing
// file, 75 for any other read error.
func (d *Dove) RunFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			d.output.Error(fmt.Sprintf("File: '%s' not found.", path))
			os.Exit(53)
		}
		d.output.Error(fmt.Sprintf("Error while reading file: %s %v", path, err))
		os.Exit(75)
	}
	d.Run(string(content), false)
}

// RunPrompt drives an interactive read-eval-print loop over in, printing
// prompts and a startup banner to out. It prompts "... " instead of ">>> "
// while a block is left open across lines, accumulating the buffered source
// until the block closes or the parser reports real errors — mirroring the
// reference CLI's run_prompt loop.
func (d *Dove) RunPrompt(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Dove REPL. Press Ctrl+D to exit.")

	scanner := bufio.NewScanner(in)
	var codeBuffer string

	for {
		if d.IsReplUnfinished {
			fmt.Fprint(out, "... ")
		} else {
			fmt.Fprint(out, ">>> ")
		}

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		if codeBuffer == "" {
			codeBuffer = scanner.Text()
		} else {
			codeBuffer += "\n" + scanner.Text()
		}

		d.Run(codeBuffer, true)
		if !d.IsReplUnfinished {
			codeBuffer = ""
		}
	}
}

// Globals exposes the interpreter's top-level scope, for embedders that
// want to define additional native functions before running a program.
func (d *Dove) Globals() *runtime.Environment {
	return d.interpreter.Globals()
}

func (d *Dove) reportCompileErrors(messages []string, source, file string) {
	for _, ce := range doveErrors.FromStringErrors(messages, source, file) {
		d.output.Error(ce.Format(false))
	}
}
