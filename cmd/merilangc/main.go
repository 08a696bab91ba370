// Command merilangc runs the Merilang pipeline over a source file:
// lex, parse, (optionally) analyze, (optionally) dump 3AC, then
// interpret — gated on phases 1-3 reporting no errors.
package main

import (
	"fmt"
	"log"
	"os"

	"merilang.dev/internal/config"
	"merilang.dev/internal/debugdump"
	"merilang.dev/pkg"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: merilangc <source.ml> [config.yaml]")
	}
	sourcePath := os.Args[1]
	configPath := "merilangc.yaml"
	if len(os.Args) >= 3 {
		configPath = os.Args[2]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		log.Fatalf("reading %s: %v", sourcePath, err)
	}

	compiler := meri.NewCompiler(cfg.CompilerOptions(), os.Stdout, os.Stdin)
	result, err := compiler.Run(string(source))
	if err != nil {
		log.Fatalf("running pipeline: %v", err)
	}

	if cfg.Debug {
		debugdump.Tokens(os.Stderr, result.Tokens)
		if result.Program != nil {
			debugdump.AST(os.Stderr, result.Program)
		}
	}
	if result.IR != nil {
		debugdump.IR(os.Stderr, result.IR.Dump(), result.IR)
	}

	for _, line := range result.FormatDiagnostics(cfg.ErrorLanguage()) {
		fmt.Fprintln(os.Stderr, line)
	}

	if result.HasErrors() {
		os.Exit(1)
	}
	if result.RuntimeErr != nil {
		os.Exit(1)
	}
}
