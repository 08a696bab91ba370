package meri

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompilerReportsLexerAndParserErrorsTogether(t *testing.T) {
	var out bytes.Buffer
	compiler := NewCompiler(DefaultOptions(), &out, strings.NewReader(""))

	result, err := compiler.Run("maan x = @\nlikho(x\n")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.LexErrors)
	assert.NotEmpty(t, result.ParseErrors)
	assert.False(t, result.Ran)
}

func TestCompilerRunsInterpreterOnlyWhenNoEarlierErrors(t *testing.T) {
	var out bytes.Buffer
	compiler := NewCompiler(DefaultOptions(), &out, strings.NewReader(""))

	result, err := compiler.Run(`likho(1 + 1)`)

	assert.NoError(t, err)
	assert.Empty(t, result.LexErrors)
	assert.Empty(t, result.ParseErrors)
	assert.Empty(t, result.SemanticErrors)
	assert.True(t, result.Ran)
	assert.NoError(t, result.RuntimeErr)
	assert.Equal(t, "2\n", out.String())
}
