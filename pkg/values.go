package meri

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the dynamic type of a runtime Value (spec.md §4.5).
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueNumber
	ValueString
	ValueBool
	ValueList
	ValueDict
	ValueFunction
	ValueLambda
	ValueClass
	ValueInstance
	ValueBuiltin
)

// Value is the tagged union every Merilang runtime value satisfies.
// The interpreter and builtins switch on Kind rather than using a Go
// interface per variant, matching the teacher's habit (pkg/semantics.go's
// Type system) of keeping one concrete struct per domain rather than
// many tiny interface implementations.
type Value struct {
	Kind ValueKind

	Number float64
	Str    string
	Bool   bool

	List *[]Value
	Dict *OrderedMap

	Function *FunctionValue
	Lambda   *LambdaValue
	Class    *ClassValue
	Instance *InstanceValue
	Builtin  *BuiltinFunc
}

// FunctionValue closes over the environment active at its definition
// site (spec.md §4.5's lexical-closure invariant), not the caller's.
type FunctionValue struct {
	Name    string
	Params  []string
	Body    []Node
	Closure *Environment

	// DefiningClass is set for methods only, so `upar(...)` can find the
	// parent of whichever class actually defined the running method
	// (not necessarily the instance's own class).
	DefiningClass *ClassValue
}

// LambdaValue is a FunctionValue whose body is a single expression.
type LambdaValue struct {
	Params  []string
	Expr    Node
	Closure *Environment
}

// ClassValue describes a class: its own methods and an optional parent
// for single inheritance (spec.md §4.5's OOP model).
type ClassValue struct {
	Name    string
	Parent  *ClassValue
	Methods map[string]*FunctionValue
}

// Method resolves a method by walking the inheritance chain.
func (c *ClassValue) Method(name string) (*FunctionValue, *ClassValue) {
	for cls := c; cls != nil; cls = cls.Parent {
		if m, ok := cls.Methods[name]; ok {
			return m, cls
		}
	}
	return nil, nil
}

// InstanceValue is an object created with `naya`; Fields holds its
// per-instance state.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

// BuiltinFunc wraps a host-implemented function (spec.md §4.3/§4.5's
// shared builtin table). ParamCount is -1 for variadic builtins.
type BuiltinFunc struct {
	Name       string
	ParamCount int
	Call       func(interp *Interpreter, args []Value, line int) (Value, error)
}

func NoneValue() Value               { return Value{Kind: ValueNone} }
func NumberValue(n float64) Value    { return Value{Kind: ValueNumber, Number: n} }
func StringValue(s string) Value     { return Value{Kind: ValueString, Str: s} }
func BoolValue(b bool) Value         { return Value{Kind: ValueBool, Bool: b} }
func ListValue(items []Value) Value  { return Value{Kind: ValueList, List: &items} }
func DictValue(m *OrderedMap) Value  { return Value{Kind: ValueDict, Dict: m} }

func FunctionVal(f *FunctionValue) Value { return Value{Kind: ValueFunction, Function: f} }
func LambdaVal(l *LambdaValue) Value      { return Value{Kind: ValueLambda, Lambda: l} }
func ClassVal(c *ClassValue) Value        { return Value{Kind: ValueClass, Class: c} }
func InstanceVal(i *InstanceValue) Value  { return Value{Kind: ValueInstance, Instance: i} }
func BuiltinVal(b *BuiltinFunc) Value     { return Value{Kind: ValueBuiltin, Builtin: b} }

// TypeName returns the user-facing type name used in error messages and
// the `type()` builtin (spec.md §9).
func (v Value) TypeName() string {
	switch v.Kind {
	case ValueNone:
		return "khaali"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueBool:
		return "bool"
	case ValueList:
		return "list"
	case ValueDict:
		return "dict"
	case ValueFunction, ValueLambda, ValueBuiltin:
		return "function"
	case ValueClass:
		return "class"
	case ValueInstance:
		return "object"
	default:
		return "unknown"
	}
}

// Truthy implements Merilang's truthiness rules (spec.md §4.5): khaali,
// jhoot, 0, "", empty list/dict are false; everything else is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case ValueNone:
		return false
	case ValueBool:
		return v.Bool
	case ValueNumber:
		return v.Number != 0
	case ValueString:
		return v.Str != ""
	case ValueList:
		return len(*v.List) != 0
	case ValueDict:
		return v.Dict.Len() != 0
	default:
		return true
	}
}

// stringifyValue renders a Value the way `likho` does, also used to
// stringify thrown exception values for RuntimeError.Message.
func stringifyValue(v Value) string {
	switch v.Kind {
	case ValueNone:
		return "khaali"
	case ValueNumber:
		return formatNumber(v.Number)
	case ValueString:
		return v.Str
	case ValueBool:
		if v.Bool {
			return "sach"
		}
		return "jhoot"
	case ValueList:
		parts := make([]string, len(*v.List))
		for i, item := range *v.List {
			parts[i] = reprValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValueDict:
		var parts []string
		v.Dict.Each(func(k, val Value) {
			parts = append(parts, reprValue(k)+": "+reprValue(val))
		})
		return "{" + strings.Join(parts, ", ") + "}"
	case ValueFunction:
		return fmt.Sprintf("<kaam %s>", v.Function.Name)
	case ValueLambda:
		return "<lambda>"
	case ValueClass:
		return fmt.Sprintf("<class %s>", v.Class.Name)
	case ValueInstance:
		return fmt.Sprintf("<%s object>", v.Instance.Class.Name)
	case ValueBuiltin:
		return fmt.Sprintf("<builtin %s>", v.Builtin.Name)
	default:
		return "?"
	}
}

// reprValue is stringifyValue but quotes strings, used inside list/dict
// renderings so ["a", "b"] doesn't print as [a, b].
func reprValue(v Value) string {
	if v.Kind == ValueString {
		return strconv.Quote(v.Str)
	}
	return stringifyValue(v)
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// valuesEqual implements `==` (spec.md §4.5): same kind and same
// contents, structural for list/dict, reference for instances.
func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		// Numbers and bools never cross-compare equal in Merilang.
		return false
	}
	switch a.Kind {
	case ValueNone:
		return true
	case ValueNumber:
		return a.Number == b.Number
	case ValueString:
		return a.Str == b.Str
	case ValueBool:
		return a.Bool == b.Bool
	case ValueList:
		if len(*a.List) != len(*b.List) {
			return false
		}
		for i := range *a.List {
			if !valuesEqual((*a.List)[i], (*b.List)[i]) {
				return false
			}
		}
		return true
	case ValueDict:
		if a.Dict.Len() != b.Dict.Len() {
			return false
		}
		equal := true
		a.Dict.Each(func(k, v Value) {
			bv, ok := b.Dict.Get(k)
			if !ok || !valuesEqual(v, bv) {
				equal = false
			}
		})
		return equal
	case ValueInstance:
		return a.Instance == b.Instance
	case ValueClass:
		return a.Class == b.Class
	default:
		return false
	}
}

// OrderedMap is a Value-keyed map that preserves insertion order, since
// Merilang dicts (spec.md §3/§9) iterate and print in insertion order
// like the host language's dict did.
type OrderedMap struct {
	keys   []Value
	values []Value
}

func NewOrderedMap() *OrderedMap { return &OrderedMap{} }

func (m *OrderedMap) Get(key Value) (Value, bool) {
	for i, k := range m.keys {
		if valuesEqual(k, key) {
			return m.values[i], true
		}
	}
	return Value{}, false
}

func (m *OrderedMap) Set(key, value Value) {
	for i, k := range m.keys {
		if valuesEqual(k, key) {
			m.values[i] = value
			return
		}
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

func (m *OrderedMap) Delete(key Value) bool {
	for i, k := range m.keys {
		if valuesEqual(k, key) {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			m.values = append(m.values[:i], m.values[i+1:]...)
			return true
		}
	}
	return false
}

func (m *OrderedMap) Len() int { return len(m.keys) }

func (m *OrderedMap) Each(fn func(k, v Value)) {
	for i := range m.keys {
		fn(m.keys[i], m.values[i])
	}
}

func (m *OrderedMap) Keys() []Value {
	out := make([]Value, len(m.keys))
	copy(out, m.keys)
	return out
}

// Clone returns a shallow copy: setting or deleting keys on the copy
// leaves the original map unchanged.
func (m *OrderedMap) Clone() *OrderedMap {
	clone := &OrderedMap{
		keys:   make([]Value, len(m.keys)),
		values: make([]Value, len(m.values)),
	}
	copy(clone.keys, m.keys)
	copy(clone.values, m.values)
	return clone
}
