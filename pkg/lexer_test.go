package meri

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"merilang.dev/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		fail   bool
		expect []TokenType
	}{
		{
			"var decl",
			"maan x = 5",
			false,
			[]TokenType{TokenMaan, TokenIdentifier, TokenAssign, TokenNumber, TokenEOF},
		},
		{
			"line comment",
			"// a comment\nmaan x = 1",
			false,
			[]TokenType{TokenMaan, TokenIdentifier, TokenAssign, TokenNumber, TokenEOF},
		},
		{
			"devanagari identifier",
			"maan नाम = \"ravi\"",
			false,
			[]TokenType{TokenMaan, TokenIdentifier, TokenAssign, TokenString, TokenEOF},
		},
		{
			"two char operators",
			"agar x == 1 aur y != 2",
			false,
			[]TokenType{TokenIf, TokenIdentifier, TokenEqual, TokenNumber, TokenAnd, TokenIdentifier, TokenNotEqual, TokenNumber, TokenEOF},
		},
		{
			"empty string",
			"\"\"",
			false,
			[]TokenType{TokenString, TokenEOF},
		},
		{
			"unterminated string",
			"\"unclosed",
			true,
			nil,
		},
		{
			"unexpected character",
			"@",
			true,
			nil,
		},
		{
			"malformed number",
			"1.2.3",
			true,
			nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.data)
			if c.fail {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			got := make([]TokenType, len(toks))
			for i, tok := range toks {
				got[i] = tok.Type
			}
			assert.Equal(t, c.expect, got)
		})
	}
}

func TestTokenizeSafeNeverFails(t *testing.T) {
	toks, errs := TokenizeSafe("@ maan x = 1 #")
	assert.NotEmpty(t, errs)
	assert.NotEmpty(t, toks)
	assert.Equal(t, TokenEOF, toks[len(toks)-1].Type)
}

// Use a package-level variable to avoid compiler optimisation eliding the call.
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := test.GetRandomTokens(size)
		b.StartTimer()

		toks, _ := TokenizeSafe(data)
		benchResult = toks
	}
}

func BenchmarkLexer100(b *testing.B)    { benchmarkLexer(100, b) }
func BenchmarkLexer1000(b *testing.B)   { benchmarkLexer(1000, b) }
func BenchmarkLexer10000(b *testing.B)  { benchmarkLexer(10000, b) }
