package meri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableScopingResolvesOuterAndShadowsInner(t *testing.T) {
	table := NewSymbolTable()
	table.Define(&Symbol{Name: "x", Kind: SymbolVariable, InferredType: MTypeNumber, Line: 1})

	table.EnterScope()
	assert.NotNil(t, table.Resolve("x"))
	assert.Nil(t, table.ResolveLocal("x"))

	table.Define(&Symbol{Name: "x", Kind: SymbolVariable, InferredType: MTypeString, Line: 2})
	shadowed := table.ResolveLocal("x")
	assert.NotNil(t, shadowed)
	assert.Equal(t, MTypeString, shadowed.InferredType)

	table.ExitScope()
	assert.Equal(t, MTypeNumber, table.Resolve("x").InferredType)
}

func TestSymbolTableAllNamesIncludesEveryVisibleScope(t *testing.T) {
	table := NewSymbolTable()
	table.Define(&Symbol{Name: "outer", Kind: SymbolVariable, Line: 1})
	table.EnterScope()
	table.Define(&Symbol{Name: "inner", Kind: SymbolVariable, Line: 2})

	names := table.AllNames()
	assert.Contains(t, names, "outer")
	assert.Contains(t, names, "inner")
}

func TestSuggestNamesFindsCloseTypo(t *testing.T) {
	suggestions := suggestNames("coutn", []string{"count", "total", "unrelated"}, 3, 0.6)
	assert.Contains(t, suggestions, "count")
	assert.NotContains(t, suggestions, "unrelated")
}

func TestSuggestNamesExcludesExactMatch(t *testing.T) {
	suggestions := suggestNames("count", []string{"count", "counts"}, 3, 0.6)
	assert.NotContains(t, suggestions, "count")
}

func TestSuggestNamesRespectsMaxAndCutoff(t *testing.T) {
	suggestions := suggestNames("zzz", []string{"aaa", "bbb"}, 3, 0.6)
	assert.Empty(t, suggestions)

	suggestions = suggestNames("abcd", []string{"abce", "abcf", "abcg", "abch"}, 2, 0.6)
	assert.Len(t, suggestions, 2)
}

func TestSimilarityRatioIdenticalStringsIsOne(t *testing.T) {
	assert.Equal(t, 1.0, similarityRatio("same", "same"))
}

func TestLevenshteinDistanceBasic(t *testing.T) {
	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 1, levenshtein("abc", "abd"))
	assert.Equal(t, 3, levenshtein("", "abc"))
}
