package meri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinStrIntFloatBoolConversions(t *testing.T) {
	v, err := builtinStr(nil, []Value{NumberValue(5)}, 1)
	assert.NoError(t, err)
	assert.Equal(t, "5", v.Str)

	v, err = builtinInt(nil, []Value{StringValue("42")}, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), v.Number)

	v, err = builtinFloat(nil, []Value{StringValue("3.5")}, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3.5, v.Number)

	v, err = builtinBool(nil, []Value{NumberValue(0)}, 1)
	assert.NoError(t, err)
	assert.False(t, v.Bool)
}

func TestBuiltinIntRejectsMalformedString(t *testing.T) {
	_, err := builtinInt(nil, []Value{StringValue("not a number")}, 1)
	assert.Error(t, err)
}

func TestBuiltinLengthAcrossKinds(t *testing.T) {
	v, err := builtinLength(nil, []Value{StringValue("hello")}, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(5), v.Number)

	v, err = builtinLength(nil, []Value{ListValue([]Value{NumberValue(1), NumberValue(2)})}, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(2), v.Number)

	_, err = builtinLength(nil, []Value{NumberValue(1)}, 1)
	assert.Error(t, err)
}

func TestBuiltinAppendMutatesInPlace(t *testing.T) {
	list := ListValue([]Value{NumberValue(1)})
	_, err := builtinAppend(nil, []Value{list, NumberValue(2)}, 1)
	assert.NoError(t, err)
	assert.Equal(t, []Value{NumberValue(1), NumberValue(2)}, *list.List)
}

func TestBuiltinPopDefaultsToLastElement(t *testing.T) {
	list := ListValue([]Value{NumberValue(1), NumberValue(2), NumberValue(3)})
	popped, err := builtinPop(nil, []Value{list}, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), popped.Number)
	assert.Len(t, *list.List, 2)
}

func TestBuiltinPopOutOfRangeIsIndexError(t *testing.T) {
	list := ListValue([]Value{NumberValue(1)})
	_, err := builtinPop(nil, []Value{list, NumberValue(5)}, 1)
	assert.Error(t, err)
}

func TestBuiltinSortAscending(t *testing.T) {
	list := ListValue([]Value{NumberValue(3), NumberValue(1), NumberValue(2)})
	_, err := builtinSort(nil, []Value{list}, 1)
	assert.NoError(t, err)
	assert.Equal(t, []Value{NumberValue(1), NumberValue(2), NumberValue(3)}, *list.List)
}

func TestBuiltinSumRejectsNonNumbers(t *testing.T) {
	_, err := builtinSum(nil, []Value{ListValue([]Value{NumberValue(1), StringValue("x")})}, 1)
	assert.Error(t, err)
}

func TestBuiltinMinMaxAcceptVariadicOrList(t *testing.T) {
	v, err := builtinMin(nil, []Value{NumberValue(3), NumberValue(1), NumberValue(2)}, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), v.Number)

	v, err = builtinMax(nil, []Value{ListValue([]Value{NumberValue(3), NumberValue(1), NumberValue(2)})}, 1)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), v.Number)
}

func TestBuiltinUpperLowerSplitJoinReplace(t *testing.T) {
	v, _ := builtinUpper(nil, []Value{StringValue("abc")}, 1)
	assert.Equal(t, "ABC", v.Str)

	v, _ = builtinLower(nil, []Value{StringValue("ABC")}, 1)
	assert.Equal(t, "abc", v.Str)

	v, _ = builtinSplit(nil, []Value{StringValue("a,b,c"), StringValue(",")}, 1)
	assert.Len(t, *v.List, 3)

	v, _ = builtinJoin(nil, []Value{StringValue("-"), ListValue([]Value{StringValue("a"), StringValue("b")})}, 1)
	assert.Equal(t, "a-b", v.Str)

	v, _ = builtinReplace(nil, []Value{StringValue("hello world"), StringValue("world"), StringValue("there")}, 1)
	assert.Equal(t, "hello there", v.Str)
}

func TestBuiltinAbsAndRound(t *testing.T) {
	v, _ := builtinAbs(nil, []Value{NumberValue(-5)}, 1)
	assert.Equal(t, float64(5), v.Number)

	v, _ = builtinRound(nil, []Value{NumberValue(3.456), NumberValue(2)}, 1)
	assert.InDelta(t, 3.46, v.Number, 0.0001)
}

func TestBuiltinRangeThreeArgForms(t *testing.T) {
	v, err := builtinRange(nil, []Value{NumberValue(5)}, 1)
	assert.NoError(t, err)
	assert.Len(t, *v.List, 5)

	v, err = builtinRange(nil, []Value{NumberValue(0), NumberValue(10), NumberValue(2)}, 1)
	assert.NoError(t, err)
	assert.Len(t, *v.List, 5)

	_, err = builtinRange(nil, []Value{NumberValue(0), NumberValue(10), NumberValue(0)}, 1)
	assert.Error(t, err)
}

func TestBuiltinKeysAndHasKey(t *testing.T) {
	m := NewOrderedMap()
	m.Set(StringValue("a"), NumberValue(1))
	dict := DictValue(m)

	v, err := builtinKeys(nil, []Value{dict}, 1)
	assert.NoError(t, err)
	assert.Equal(t, []Value{StringValue("a")}, *v.List)

	found, err := builtinHasKey(nil, []Value{dict, StringValue("a")}, 1)
	assert.NoError(t, err)
	assert.True(t, found.Bool)

	missing, err := builtinHasKey(nil, []Value{dict, StringValue("z")}, 1)
	assert.NoError(t, err)
	assert.False(t, missing.Bool)
}
