// Package debugdump implements cli.py's "print tokens" / "print AST"
// --debug mode: structural dumps good enough to eyeball a pipeline stage
// without writing a bespoke pretty-printer for every AST node type.
package debugdump

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

var config = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Tokens writes a structural dump of a token slice, one spew.Dump block.
func Tokens(w io.Writer, tokens interface{}) {
	fmt.Fprintln(w, "--- tokens ---")
	config.Fdump(w, tokens)
}

// AST writes a structural dump of a parsed program (or any AST node).
func AST(w io.Writer, node interface{}) {
	fmt.Fprintln(w, "--- ast ---")
	config.Fdump(w, node)
}

// IR writes the flat instruction dump alongside a spew fallback, used
// when the textual Dump() form alone isn't enough to see temp/label
// allocator state.
func IR(w io.Writer, dump string, program interface{}) {
	fmt.Fprintln(w, "--- ir ---")
	fmt.Fprintln(w, dump)
	config.Fdump(w, program)
}
