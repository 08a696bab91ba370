package test

import (
	"math/rand"
	"strings"
)

// validTokens is a pool of fragments that tokenize cleanly under
// Merilang's lexer — keywords, punctuation, literals, and a Devanagari
// identifier — used to generate synthetic source for the lexer
// benchmarks (adapted from the teacher's toy-language pool).
const validTokens = "maan;likho;kaam;agar;warna;jab_tak;wapas;(;);{;};\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"small\";\"\";+;-;=;==;नाम;123;321;3.14;//comment\n;\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
