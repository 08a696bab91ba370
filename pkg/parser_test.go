package meri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, source string) *Program {
	t.Helper()
	toks, err := Tokenize(source)
	assert.NoError(t, err)
	prog, err := Parse(toks)
	assert.NoError(t, err)
	return prog
}

func TestParserVarDeclAndBinaryPrecedence(t *testing.T) {
	prog := mustParse(t, "maan x = 1 + 2 * 3")
	assert.Len(t, prog.Statements, 1)

	decl, ok := prog.Statements[0].(*VarDecl)
	assert.True(t, ok)
	assert.Equal(t, "x", decl.Name)

	add, ok := decl.Value.(*BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, "+", add.Operator)
	assert.Equal(t, &NumberLit{baseNode: newBase(1), Value: 1}, add.Left)

	mul, ok := add.Right.(*BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, "*", mul.Operator)
}

func TestParserStandaloneBlockStatement(t *testing.T) {
	prog := mustParse(t, `
maan x = 10
{
maan x = x + 5
likho(x)
}
likho(x)
`)
	assert.Len(t, prog.Statements, 3)
	block, ok := prog.Statements[1].(*Block)
	assert.True(t, ok)
	assert.Len(t, block.Body, 2)
}

func TestParserNotBindsTighterThanEquality(t *testing.T) {
	prog := mustParse(t, "likho(nahi a == b)")
	call, ok := prog.Statements[0].(*Print)
	assert.True(t, ok)
	assert.Len(t, call.Args, 1)

	eq, ok := call.Args[0].(*BinaryOp)
	assert.True(t, ok)
	assert.Equal(t, "==", eq.Operator)

	not, ok := eq.Left.(*UnaryOp)
	assert.True(t, ok)
	assert.Equal(t, "nahi", not.Operator)
	_, ok = not.Operand.(*Variable)
	assert.True(t, ok)
}

func TestParserIfElifElse(t *testing.T) {
	prog := mustParse(t, `
agar x == 1 { likho("one") }
warna_agar x == 2 { likho("two") }
warna { likho("other") }
`)
	assert.Len(t, prog.Statements, 1)
	ifNode, ok := prog.Statements[0].(*If)
	assert.True(t, ok)
	assert.Len(t, ifNode.Elifs, 1)
	assert.NotNil(t, ifNode.Else)
}

func TestParserFunctionDefAndCall(t *testing.T) {
	prog := mustParse(t, `
kaam add(a, b) {
	wapas a + b
}
likho(add(1, 2))
`)
	assert.Len(t, prog.Statements, 2)

	fn, ok := prog.Statements[0].(*FunctionDef)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)

	printStmt, ok := prog.Statements[1].(*Print)
	assert.True(t, ok)
	assert.Len(t, printStmt.Args, 1)
	_, ok = printStmt.Args[0].(*FunctionCall)
	assert.True(t, ok)
}

func TestParserClassWithExtendsAndSuper(t *testing.T) {
	prog := mustParse(t, `
class Animal {
	kaam __init__(naam) { yeh.naam = naam }
}
class Dog extends Animal {
	kaam __init__(naam) { upar(naam) }
}
`)
	assert.Len(t, prog.Statements, 2)
	dog, ok := prog.Statements[1].(*ClassDef)
	assert.True(t, ok)
	assert.Equal(t, "Animal", dog.Parent)
	assert.Len(t, dog.Methods, 1)

	init := dog.Methods[0]
	assert.Len(t, init.Body, 1)
	_, ok = init.Body[0].(*Super)
	assert.True(t, ok)
}

func TestParserTryCatchFinally(t *testing.T) {
	prog := mustParse(t, `koshish { uchalo "boom" } pakad e { likho("caught:" + e) } aakhir { likho("fin") }`)
	assert.Len(t, prog.Statements, 1)
	tryNode, ok := prog.Statements[0].(*Try)
	assert.True(t, ok)
	assert.Equal(t, "e", tryNode.CatchVar)
	assert.NotNil(t, tryNode.FinallyBody)
}

func TestParserLambdaAndList(t *testing.T) {
	prog := mustParse(t, "maan sq = lambda(n) -> n * n\nmaan xs = [1, 2, 3]")
	assert.Len(t, prog.Statements, 2)

	lambdaDecl := prog.Statements[0].(*VarDecl)
	_, ok := lambdaDecl.Value.(*Lambda)
	assert.True(t, ok)

	listDecl := prog.Statements[1].(*VarDecl)
	list, ok := listDecl.Value.(*ListLit)
	assert.True(t, ok)
	assert.Len(t, list.Elements, 3)
}

func TestParserIndexAndPropertyAssignment(t *testing.T) {
	prog := mustParse(t, "xs[0] = 1\nyeh.naam = \"a\"")
	assert.Len(t, prog.Statements, 2)
	_, ok := prog.Statements[0].(*IndexAssignment)
	assert.True(t, ok)
	_, ok = prog.Statements[1].(*PropertyAssignment)
	assert.True(t, ok)
}

func TestParserRecoversFromSyntaxError(t *testing.T) {
	toks, err := Tokenize(`
likho("ok"
likho("done")
`)
	assert.NoError(t, err)
	_, parseErr := Parse(toks)
	assert.Error(t, parseErr)
	collection, ok := parseErr.(*ParserErrorCollection)
	assert.True(t, ok)
	assert.NotEmpty(t, collection.Errors)
}

func TestParserPrintInline(t *testing.T) {
	prog := mustParse(t, `likho_online("no newline")`)
	p := prog.Statements[0].(*Print)
	assert.False(t, p.Newline)

	prog = mustParse(t, `likho("with newline")`)
	p = prog.Statements[0].(*Print)
	assert.True(t, p.Newline)
}
