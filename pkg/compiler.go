package meri

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// CompilerOptions carries the toggles merilang/cli.py exposed as flags
// (--ir, --no-semantic) plus the diagnostic language — expressed here as
// data since flag parsing itself is named out of scope (spec.md §1). The
// --debug toggle is not carried here; the driver reads it from config.Config.
type CompilerOptions struct {
	Lang           ErrorLanguage
	EmitIR         bool
	RunSemantic    bool // if false, the semantic gate is skipped entirely
	RunInterpreter bool
}

func DefaultOptions() CompilerOptions {
	return CompilerOptions{Lang: ErrorLanguageBilingual, RunSemantic: true, RunInterpreter: true}
}

// PipelineResult carries every phase's output, mirroring
// merilang/cli.py's `_run_pipeline` return shape. A phase's fields stay at
// their zero value when a CompilerOptions toggle skipped it; Ran and
// RuntimeErr also stay zero when an earlier phase reported errors, since
// the interpreter is the only phase gated on them.
type PipelineResult struct {
	Tokens         []Token
	LexErrors      []*LexerError
	Program        *Program
	ParseErrors    []*ParserError
	SemanticErrors []error
	IR             *IRProgram
	Ran            bool // true if the interpreter actually executed
	RuntimeErr     error
}

// HasErrors reports whether any phase up to and including semantic
// analysis found a problem — the gate spec.md §2/§4.5 describe ("phase 5
// only when phases 1-3 produced no errors").
func (r *PipelineResult) HasErrors() bool {
	return len(r.LexErrors) > 0 || len(r.ParseErrors) > 0 || len(r.SemanticErrors) > 0
}

// Compiler runs the five-phase Merilang pipeline end to end. Grounded on
// the teacher's Compiler type (this file, pre-transformation), generalized
// from its single `compile(p *Parser) error` stub into the full
// lexer → parser → semantic analyzer → (IR) → interpreter chain.
type Compiler struct {
	opts CompilerOptions
	out  io.Writer
	in   io.Reader
}

func NewCompiler(opts CompilerOptions, out io.Writer, in io.Reader) *Compiler {
	return &Compiler{opts: opts, out: out, in: in}
}

// Run executes phases 1-3 (lexer, parser, semantic analyzer)
// unconditionally over whatever partial tokens/AST each phase produces,
// so a single run can surface a lexer error and a parser error from the
// same source together (spec.md §2, §8 scenario 3). Only phase 5 (the
// interpreter) is gated on the accumulated error count; phase 4 (IR) is
// diagnostic-only and runs whenever EmitIR is requested.
func (c *Compiler) Run(source string) (*PipelineResult, error) {
	result := &PipelineResult{}

	tokens, lexErr := Tokenize(source)
	if lexErr != nil {
		collection, ok := lexErr.(*LexerErrorCollection)
		if !ok {
			return result, errors.Wrap(lexErr, "tokenizing source")
		}
		result.LexErrors = collection.Errors
		result.Tokens, _ = TokenizeSafe(source)
	} else {
		result.Tokens = tokens
	}

	prog, parseErr := Parse(result.Tokens)
	result.Program = prog
	if parseErr != nil {
		collection, ok := parseErr.(*ParserErrorCollection)
		if !ok {
			return result, errors.Wrap(parseErr, "parsing tokens")
		}
		result.ParseErrors = collection.Errors
	}

	if c.opts.RunSemantic {
		analyzer := NewSemanticAnalyzer()
		result.SemanticErrors = analyzer.Analyze(result.Program)
	}

	if c.opts.EmitIR {
		result.IR = NewIRGenerator().Generate(result.Program)
	}

	if c.opts.RunInterpreter && !result.HasErrors() {
		interp := NewInterpreter(c.out, c.in)
		result.RuntimeErr = interp.Run(result.Program)
		result.Ran = true
	}

	return result, nil
}

// FormatDiagnostics renders every collected error across phases, each on
// its own line, in the configured ErrorLanguage (spec.md §6).
func (r *PipelineResult) FormatDiagnostics(lang ErrorLanguage) []string {
	var lines []string
	for _, e := range r.LexErrors {
		lines = append(lines, e.Format(lang))
	}
	for _, e := range r.ParseErrors {
		lines = append(lines, e.Format(lang))
	}
	for _, e := range r.SemanticErrors {
		if me, ok := e.(MeriError); ok {
			lines = append(lines, me.Format(lang))
		} else {
			lines = append(lines, fmt.Sprint(e))
		}
	}
	if r.RuntimeErr != nil {
		if me, ok := r.RuntimeErr.(MeriError); ok {
			lines = append(lines, me.Format(lang))
		} else {
			lines = append(lines, r.RuntimeErr.Error())
		}
	}
	return lines
}
