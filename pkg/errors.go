package meri

import (
	"fmt"
	"strings"
)

// ErrorLanguage selects which half of a bilingual diagnostic message is
// shown. Mirrors merilang/errors_enhanced.ErrorLanguage from the original
// source; spec.md §6 fixes BILINGUAL as the default.
type ErrorLanguage int

const (
	ErrorLanguageBilingual ErrorLanguage = iota
	ErrorLanguageEnglish
	ErrorLanguageHindi
)

// MeriError is the common interface every diagnostic in the taxonomy
// (spec.md §7) satisfies. Modeled on the teacher's CompileError
// (fmt.Stringer) in pkg/semantics.go.
type MeriError interface {
	error
	Format(lang ErrorLanguage) string
	Pos() (line, col int)
}

func formatDiagnostic(kind string, line, col int, msgEn, msgHi string, lang ErrorLanguage) string {
	var msg string
	switch lang {
	case ErrorLanguageEnglish:
		msg = msgEn
	case ErrorLanguageHindi:
		msg = msgHi
	default:
		if msgHi != "" && msgHi != msgEn {
			msg = msgEn + " / " + msgHi
		} else {
			msg = msgEn
		}
	}
	if col > 0 {
		return fmt.Sprintf("[%s] Line %d, Col %d: %s", kind, line, col, msg)
	}
	return fmt.Sprintf("[%s] Line %d: %s", kind, line, msg)
}

// ---------------------------------------------------------------------------
// Lexical errors
// ---------------------------------------------------------------------------

// LexerError records one bad character or malformed literal. The lexer
// never stops at the first one (spec.md §4.1).
type LexerError struct {
	MessageEn string
	MessageHi string
	Line      int
	Column    int
}

func (e *LexerError) Error() string { return e.Format(ErrorLanguageBilingual) }
func (e *LexerError) Pos() (int, int) { return e.Line, e.Column }
func (e *LexerError) Format(lang ErrorLanguage) string {
	return formatDiagnostic("LexerError", e.Line, e.Column, e.MessageEn, e.MessageHi, lang)
}

func newUnexpectedCharError(ch rune, line, col int) *LexerError {
	return &LexerError{
		MessageEn: fmt.Sprintf("unexpected character %q", ch),
		MessageHi: fmt.Sprintf("अप्रत्याशित वर्ण %q", ch),
		Line:      line,
		Column:    col,
	}
}

func newUnterminatedStringError(line, col int) *LexerError {
	return &LexerError{
		MessageEn: "unterminated string",
		MessageHi: "अधूरी स्ट्रिंग",
		Line:      line,
		Column:    col,
	}
}

func newMalformedNumberError(line, col int) *LexerError {
	return &LexerError{
		MessageEn: "malformed number literal (multiple decimal points)",
		MessageHi: "गलत संख्या साहित्य (कई दशमलव बिंदु)",
		Line:      line,
		Column:    col,
	}
}

// LexerErrorCollection batches all lexical errors reported by Tokenize.
type LexerErrorCollection struct {
	Errors []*LexerError
}

func (c *LexerErrorCollection) Error() string {
	lines := make([]string, len(c.Errors))
	for i, e := range c.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Syntactic errors
// ---------------------------------------------------------------------------

// ParserError is one of three factory-constructed shapes (spec.md §4.2).
type ParserError struct {
	MessageEn string
	MessageHi string
	Line      int
	Column    int
}

func (e *ParserError) Error() string   { return e.Format(ErrorLanguageBilingual) }
func (e *ParserError) Pos() (int, int) { return e.Line, e.Column }
func (e *ParserError) Format(lang ErrorLanguage) string {
	return formatDiagnostic("ParserError", e.Line, e.Column, e.MessageEn, e.MessageHi, lang)
}

func newExpectedTokenError(expected, got string, line, col int) *ParserError {
	return &ParserError{
		MessageEn: fmt.Sprintf("expected %s, got %s", expected, got),
		MessageHi: fmt.Sprintf("%s अपेक्षित था, %s मिला", expected, got),
		Line:      line,
		Column:    col,
	}
}

func newMissingTokenError(expected string, line, col int) *ParserError {
	return &ParserError{
		MessageEn: fmt.Sprintf("missing %s", expected),
		MessageHi: fmt.Sprintf("%s गायब है", expected),
		Line:      line,
		Column:    col,
	}
}

func newInvalidSyntaxError(message string, line, col int) *ParserError {
	return &ParserError{
		MessageEn: message,
		MessageHi: message,
		Line:      line,
		Column:    col,
	}
}

// ParserErrorCollection batches all syntax errors found during one parse.
type ParserErrorCollection struct {
	Errors []*ParserError
}

func (c *ParserErrorCollection) Error() string {
	lines := make([]string, len(c.Errors))
	for i, e := range c.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ---------------------------------------------------------------------------
// Static (semantic) errors
// ---------------------------------------------------------------------------

// SemanticError is the base static-analysis diagnostic; TypeCheckError,
// UndefinedNameError, and RedefinitionError refine it (spec.md §7).
type SemanticError struct {
	MessageEn string
	MessageHi string
	Line      int
}

func (e *SemanticError) Error() string   { return e.Format(ErrorLanguageBilingual) }
func (e *SemanticError) Pos() (int, int) { return e.Line, 0 }
func (e *SemanticError) Format(lang ErrorLanguage) string {
	return formatDiagnostic("SemanticError", e.Line, 0, e.MessageEn, e.MessageHi, lang)
}

// TypeCheckError reports an operator applied to incompatible operand types.
type TypeCheckError struct {
	SemanticError
}

func (e *TypeCheckError) Format(lang ErrorLanguage) string {
	return formatDiagnostic("TypeCheckError", e.Line, 0, e.MessageEn, e.MessageHi, lang)
}

func newInvalidBinaryOpError(op, left, right string, line int) *TypeCheckError {
	return &TypeCheckError{SemanticError{
		MessageEn: fmt.Sprintf("invalid operation: %s %s %s", left, op, right),
		MessageHi: fmt.Sprintf("अमान्य ऑपरेशन: %s %s %s", left, op, right),
		Line:      line,
	}}
}

func newInvalidUnaryOpError(op, operand string, line int) *TypeCheckError {
	return &TypeCheckError{SemanticError{
		MessageEn: fmt.Sprintf("invalid unary operation: %s %s", op, operand),
		MessageHi: fmt.Sprintf("अमान्य एकल ऑपरेशन: %s %s", op, operand),
		Line:      line,
	}}
}

// UndefinedNameError carries up to three "did you mean?" suggestions.
type UndefinedNameError struct {
	SemanticError
	Name       string
	Suggestions []string
}

func (e *UndefinedNameError) Format(lang ErrorLanguage) string {
	msg := fmt.Sprintf("undefined name '%s'", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return formatDiagnostic("UndefinedNameError", e.Line, 0, msg, msg, lang)
}

func newUndefinedNameError(name string, line int, suggestions []string) *UndefinedNameError {
	return &UndefinedNameError{
		SemanticError: SemanticError{Line: line},
		Name:          name,
		Suggestions:   suggestions,
	}
}

// RedefinitionError reports a name declared twice in the same scope.
type RedefinitionError struct {
	SemanticError
	Name         string
	OriginalLine int
}

func (e *RedefinitionError) Format(lang ErrorLanguage) string {
	msg := fmt.Sprintf("'%s' redefined (originally declared on line %d)", e.Name, e.OriginalLine)
	return formatDiagnostic("RedefinitionError", e.Line, 0, msg, msg, lang)
}

func newRedefinitionError(name string, originalLine, line int) *RedefinitionError {
	return &RedefinitionError{
		SemanticError: SemanticError{Line: line},
		Name:          name,
		OriginalLine:  originalLine,
	}
}

func newSemanticError(msgEn, msgHi string, line int) *SemanticError {
	return &SemanticError{MessageEn: msgEn, MessageHi: msgHi, Line: line}
}

// ---------------------------------------------------------------------------
// Runtime errors
// ---------------------------------------------------------------------------

// RuntimeErrorKind classifies the refinements of RuntimeError (spec.md §7).
type RuntimeErrorKind int

const (
	RuntimeErrorGeneric RuntimeErrorKind = iota
	RuntimeErrorType
	RuntimeErrorName
	RuntimeErrorDivisionByZero
	RuntimeErrorIndex
	RuntimeErrorAttribute
	RuntimeErrorRecursion
	RuntimeErrorFileIO
	RuntimeErrorImport
	RuntimeErrorUserException
)

var runtimeKindNames = map[RuntimeErrorKind]string{
	RuntimeErrorGeneric:        "RuntimeError",
	RuntimeErrorType:           "TypeError",
	RuntimeErrorName:           "NameError",
	RuntimeErrorDivisionByZero: "DivisionByZeroError",
	RuntimeErrorIndex:          "IndexError",
	RuntimeErrorAttribute:      "AttributeError",
	RuntimeErrorRecursion:      "RecursionError",
	RuntimeErrorFileIO:         "FileIOError",
	RuntimeErrorImport:         "ImportError",
	RuntimeErrorUserException:  "UserException",
}

// RuntimeError halts the interpreter unless caught by a koshish/pakad.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Line    int
	// Value holds the thrown value for RuntimeErrorUserException.
	Value Value
}

func (e *RuntimeError) Error() string   { return e.Format(ErrorLanguageBilingual) }
func (e *RuntimeError) Pos() (int, int) { return e.Line, 0 }
func (e *RuntimeError) Format(lang ErrorLanguage) string {
	kind := runtimeKindNames[e.Kind]
	return formatDiagnostic(kind, e.Line, 0, e.Message, e.Message, lang)
}

func newRuntimeError(kind RuntimeErrorKind, message string, line int) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: message, Line: line}
}

func newTypeError(message string, line int) *RuntimeError {
	return newRuntimeError(RuntimeErrorType, message, line)
}

func newDivisionByZeroError(line int) *RuntimeError {
	return newRuntimeError(RuntimeErrorDivisionByZero, "division by zero", line)
}

func newNameError(name string, line int) *RuntimeError {
	return newRuntimeError(RuntimeErrorName, fmt.Sprintf("undefined name '%s'", name), line)
}

func newIndexError(message string, line int) *RuntimeError {
	return newRuntimeError(RuntimeErrorIndex, message, line)
}

func newAttributeError(message string, line int) *RuntimeError {
	return newRuntimeError(RuntimeErrorAttribute, message, line)
}

func newRecursionError(line int) *RuntimeError {
	return newRuntimeError(RuntimeErrorRecursion, "maximum recursion depth exceeded", line)
}

func newUserException(value Value, line int) *RuntimeError {
	return &RuntimeError{
		Kind:    RuntimeErrorUserException,
		Message: stringifyValue(value),
		Line:    line,
		Value:   value,
	}
}
