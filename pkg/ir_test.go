package meri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func generateIR(t *testing.T, source string) *IRProgram {
	t.Helper()
	toks, err := Tokenize(source)
	assert.NoError(t, err)
	prog, err := Parse(toks)
	assert.NoError(t, err)
	return NewIRGenerator().Generate(prog)
}

func TestIRVarDeclAndBinaryOp(t *testing.T) {
	ir := generateIR(t, "maan x = 3 + 4")
	dump := ir.Dump()
	assert.Contains(t, dump, "t0 = 3")
	assert.Contains(t, dump, "t1 = 4")
	assert.Contains(t, dump, "t2 = t0 + t1")
	assert.Contains(t, dump, "x = t2")
}

func TestIRWhileLoopLabels(t *testing.T) {
	ir := generateIR(t, "jab_tak sach { ruk }")
	dump := ir.Dump()
	assert.True(t, strings.HasPrefix(dump, "while_start_0:"))
	assert.Contains(t, dump, "while_body_1:")
	assert.Contains(t, dump, "while_end_2")
	assert.Contains(t, dump, "GOTO while_end_2")
}

func TestIRFunctionCallLowersParamsThenCall(t *testing.T) {
	ir := generateIR(t, "kaam add(a, b) { wapas a + b }\nadd(1, 2)")
	dump := ir.Dump()
	assert.Contains(t, dump, "FUNC add:")
	assert.Contains(t, dump, "PARAM t0")
	assert.Contains(t, dump, "PARAM t1")

	var callLine string
	for _, line := range strings.Split(dump, "\n") {
		if strings.Contains(line, "CALL add 2") {
			callLine = line
		}
	}
	assert.NotEmpty(t, callLine)
	assert.Contains(t, callLine, "= CALL add 2")
}

func TestIRForEachUsesIteratorProtocol(t *testing.T) {
	ir := generateIR(t, "har i mein [1, 2, 3] { likho(i) }")
	dump := ir.Dump()
	assert.Contains(t, dump, "__iter__")
	assert.Contains(t, dump, "__has_next__")
	assert.Contains(t, dump, "__next__")
}

func TestIRClassAndMethodsEmitFuncBlocks(t *testing.T) {
	ir := generateIR(t, `
class Animal {
	kaam __init__(naam) { yeh.naam = naam }
}
class Dog extends Animal {
	kaam __init__(naam) { upar(naam) }
}
`)
	dump := ir.Dump()
	assert.Contains(t, dump, "CLASS Animal")
	assert.Contains(t, dump, "CLASS Dog EXTENDS Animal")
	assert.Contains(t, dump, "FUNC Animal.__init__:")
	assert.Contains(t, dump, "FUNC Dog.__init__:")
	assert.Contains(t, dump, "__super__.__init__")
}

func TestIRLambdaJumpsOverBody(t *testing.T) {
	ir := generateIR(t, "maan sq = lambda(n) -> n * n")
	dump := ir.Dump()
	lines := strings.Split(dump, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "GOTO lambda_end_"))
	foundFunc := false
	for _, line := range lines {
		if strings.HasPrefix(line, "FUNC lambda_") {
			foundFunc = true
		}
	}
	assert.True(t, foundFunc)
}

func TestIRMethodCallPassesReceiverAsFirstParam(t *testing.T) {
	ir := generateIR(t, `
class Counter {
	kaam __init__() { yeh.n = 0 }
	kaam bump() { yeh.n = yeh.n + 1 }
}
maan c = naya Counter()
c.bump()
`)
	dump := ir.Dump()
	assert.Contains(t, dump, "PARAM c")
	assert.Contains(t, dump, "CALL bump 1")
}

func TestIRPrintEmitsOperands(t *testing.T) {
	ir := generateIR(t, `likho("hi", 1)`)
	dump := ir.Dump()
	assert.Contains(t, dump, "PRINT")
	assert.Contains(t, dump, `"hi"`)
}

func TestIRTryEmitsBeginEndCatch(t *testing.T) {
	ir := generateIR(t, `koshish { uchalo "x" } pakad e { likho(e) }`)
	dump := ir.Dump()
	assert.Contains(t, dump, "TRY_BEGIN")
	assert.Contains(t, dump, "TRY_END")
	assert.Contains(t, dump, "CATCH_BEGIN e")
}
