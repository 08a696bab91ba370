package meri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueTruthiness(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"none", NoneValue(), false},
		{"zero number", NumberValue(0), false},
		{"nonzero number", NumberValue(1), true},
		{"empty string", StringValue(""), false},
		{"nonempty string", StringValue("x"), true},
		{"false bool", BoolValue(false), false},
		{"true bool", BoolValue(true), true},
		{"empty list", ListValue(nil), false},
		{"nonempty list", ListValue([]Value{NumberValue(1)}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.Truthy())
		})
	}
}

func TestValueTypeName(t *testing.T) {
	assert.Equal(t, "number", NumberValue(1).TypeName())
	assert.Equal(t, "string", StringValue("a").TypeName())
	assert.Equal(t, "bool", BoolValue(true).TypeName())
	assert.Equal(t, "khaali", NoneValue().TypeName())
	assert.Equal(t, "list", ListValue(nil).TypeName())
}

func TestValuesEqualAcrossKindsNeverMatch(t *testing.T) {
	assert.False(t, valuesEqual(NumberValue(1), StringValue("1")))
	assert.False(t, valuesEqual(BoolValue(true), NumberValue(1)))
}

func TestValuesEqualStructuralForLists(t *testing.T) {
	a := ListValue([]Value{NumberValue(1), StringValue("x")})
	b := ListValue([]Value{NumberValue(1), StringValue("x")})
	c := ListValue([]Value{NumberValue(1), StringValue("y")})
	assert.True(t, valuesEqual(a, b))
	assert.False(t, valuesEqual(a, c))
}

func TestValuesEqualInstancesAreReferenceBased(t *testing.T) {
	cls := &ClassValue{Name: "Point"}
	a := InstanceVal(&InstanceValue{Class: cls, Fields: map[string]Value{}})
	b := InstanceVal(&InstanceValue{Class: cls, Fields: map[string]Value{}})
	assert.True(t, valuesEqual(a, a))
	assert.False(t, valuesEqual(a, b))
}

func TestFormatNumberDropsTrailingZero(t *testing.T) {
	assert.Equal(t, "7", formatNumber(7))
	assert.Equal(t, "7.5", formatNumber(7.5))
	assert.Equal(t, "-3", formatNumber(-3))
}

func TestStringifyValueQuotesNestedStringsInLists(t *testing.T) {
	v := ListValue([]Value{StringValue("a"), NumberValue(1)})
	assert.Equal(t, `["a", 1]`, stringifyValue(v))
}

func TestClassValueMethodWalksInheritanceChain(t *testing.T) {
	init := &FunctionValue{Name: "__init__"}
	parent := &ClassValue{Name: "Animal", Methods: map[string]*FunctionValue{"__init__": init}}
	child := &ClassValue{Name: "Dog", Parent: parent, Methods: map[string]*FunctionValue{}}

	found, owner := child.Method("__init__")
	assert.Same(t, init, found)
	assert.Same(t, parent, owner)
}

func TestClassValueMethodMissingReturnsNil(t *testing.T) {
	cls := &ClassValue{Name: "Empty", Methods: map[string]*FunctionValue{}}
	found, owner := cls.Method("missing")
	assert.Nil(t, found)
	assert.Nil(t, owner)
}

func TestOrderedMapPreservesInsertionOrderAndOverwrites(t *testing.T) {
	m := NewOrderedMap()
	m.Set(StringValue("a"), NumberValue(1))
	m.Set(StringValue("b"), NumberValue(2))
	m.Set(StringValue("a"), NumberValue(99))

	assert.Equal(t, 2, m.Len())
	v, ok := m.Get(StringValue("a"))
	assert.True(t, ok)
	assert.Equal(t, float64(99), v.Number)

	var order []string
	m.Each(func(k, _ Value) { order = append(order, k.Str) })
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap()
	m.Set(StringValue("a"), NumberValue(1))
	assert.True(t, m.Delete(StringValue("a")))
	assert.False(t, m.Delete(StringValue("a")))
	assert.Equal(t, 0, m.Len())
}

func TestOrderedMapCloneIsIndependent(t *testing.T) {
	m := NewOrderedMap()
	m.Set(StringValue("a"), NumberValue(1))
	clone := m.Clone()
	clone.Set(StringValue("a"), NumberValue(2))

	orig, _ := m.Get(StringValue("a"))
	cloned, _ := clone.Get(StringValue("a"))
	assert.Equal(t, float64(1), orig.Number)
	assert.Equal(t, float64(2), cloned.Number)
}
