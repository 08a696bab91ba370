package meri

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// sharedBuiltins is injected into both the semantic analyzer's global
// scope and the interpreter's root environment (spec.md §4.3/§4.5),
// so the two phases never disagree about what names exist. Grounded on
// original_source/merilang/semantic_analyzer.py's _register_builtins
// table; ParamCount -1 marks a builtin as variadic/unchecked the same
// way that module uses param_count == 0.
var sharedBuiltins = map[string]*BuiltinFunc{
	"str":     {Name: "str", ParamCount: 1, Call: builtinStr},
	"int":     {Name: "int", ParamCount: 1, Call: builtinInt},
	"float":   {Name: "float", ParamCount: 1, Call: builtinFloat},
	"bool":    {Name: "bool", ParamCount: 1, Call: builtinBool},
	"type":    {Name: "type", ParamCount: 1, Call: builtinType},
	"length":  {Name: "length", ParamCount: 1, Call: builtinLength},
	"append":  {Name: "append", ParamCount: 2, Call: builtinAppend},
	"pop":     {Name: "pop", ParamCount: -1, Call: builtinPop},
	"insert":  {Name: "insert", ParamCount: 3, Call: builtinInsert},
	"sort":    {Name: "sort", ParamCount: 1, Call: builtinSort},
	"reverse": {Name: "reverse", ParamCount: 1, Call: builtinReverse},
	"sum":     {Name: "sum", ParamCount: 1, Call: builtinSum},
	"min":     {Name: "min", ParamCount: -1, Call: builtinMin},
	"max":     {Name: "max", ParamCount: -1, Call: builtinMax},
	"upper":   {Name: "upper", ParamCount: 1, Call: builtinUpper},
	"lower":   {Name: "lower", ParamCount: 1, Call: builtinLower},
	"split":   {Name: "split", ParamCount: -1, Call: builtinSplit},
	"join":    {Name: "join", ParamCount: 2, Call: builtinJoin},
	"replace": {Name: "replace", ParamCount: 3, Call: builtinReplace},
	"abs":     {Name: "abs", ParamCount: 1, Call: builtinAbs},
	"round":   {Name: "round", ParamCount: -1, Call: builtinRound},
	"range":   {Name: "range", ParamCount: -1, Call: builtinRange},
	"keys":    {Name: "keys", ParamCount: 1, Call: builtinKeys},
	"has_key": {Name: "has_key", ParamCount: 2, Call: builtinHasKey},
}

func arityError(name string, line int) error {
	return newTypeError("wrong number of arguments to '"+name+"'", line)
}

func builtinStr(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 {
		return Value{}, arityError("str", line)
	}
	return StringValue(stringifyValue(args[0])), nil
}

func builtinInt(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 {
		return Value{}, arityError("int", line)
	}
	switch args[0].Kind {
	case ValueNumber:
		return NumberValue(math.Trunc(args[0].Number)), nil
	case ValueString:
		n, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		if err != nil {
			wrapped := errors.Wrap(err, "converting string to int")
			return Value{}, newTypeError("cannot convert '"+args[0].Str+"' to int: "+wrapped.Error(), line)
		}
		return NumberValue(math.Trunc(n)), nil
	case ValueBool:
		if args[0].Bool {
			return NumberValue(1), nil
		}
		return NumberValue(0), nil
	default:
		return Value{}, newTypeError("cannot convert "+args[0].TypeName()+" to int", line)
	}
}

func builtinFloat(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 {
		return Value{}, arityError("float", line)
	}
	switch args[0].Kind {
	case ValueNumber:
		return args[0], nil
	case ValueString:
		n, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		if err != nil {
			wrapped := errors.Wrap(err, "converting string to float")
			return Value{}, newTypeError("cannot convert '"+args[0].Str+"': "+wrapped.Error(), line)
		}
		return NumberValue(n), nil
	default:
		return Value{}, newTypeError("cannot convert "+args[0].TypeName()+" to float", line)
	}
}

func builtinBool(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 {
		return Value{}, arityError("bool", line)
	}
	return BoolValue(args[0].Truthy()), nil
}

func builtinType(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 {
		return Value{}, arityError("type", line)
	}
	return StringValue(args[0].TypeName()), nil
}

func builtinLength(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 {
		return Value{}, arityError("length", line)
	}
	switch args[0].Kind {
	case ValueString:
		return NumberValue(float64(len([]rune(args[0].Str)))), nil
	case ValueList:
		return NumberValue(float64(len(*args[0].List))), nil
	case ValueDict:
		return NumberValue(float64(args[0].Dict.Len())), nil
	default:
		return Value{}, newTypeError("object of type "+args[0].TypeName()+" has no length", line)
	}
}

func builtinAppend(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 2 || args[0].Kind != ValueList {
		return Value{}, arityError("append", line)
	}
	*args[0].List = append(*args[0].List, args[1])
	return NoneValue(), nil
}

func builtinPop(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) < 1 || args[0].Kind != ValueList {
		return Value{}, arityError("pop", line)
	}
	list := *args[0].List
	idx := len(list) - 1
	if len(args) == 2 {
		idx = int(args[1].Number)
	}
	if idx < 0 || idx >= len(list) {
		return Value{}, newIndexError("pop index out of range", line)
	}
	item := list[idx]
	*args[0].List = append(list[:idx], list[idx+1:]...)
	return item, nil
}

func builtinInsert(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 3 || args[0].Kind != ValueList {
		return Value{}, arityError("insert", line)
	}
	list := *args[0].List
	idx := int(args[1].Number)
	if idx < 0 {
		idx = 0
	}
	if idx > len(list) {
		idx = len(list)
	}
	out := make([]Value, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, args[2])
	out = append(out, list[idx:]...)
	*args[0].List = out
	return NoneValue(), nil
}

func builtinSort(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueList {
		return Value{}, arityError("sort", line)
	}
	list := *args[0].List
	var sortErr error
	sort.SliceStable(list, func(i, j int) bool {
		less, err := lessThan(list[i], list[j], line)
		if err != nil {
			sortErr = err
		}
		return less
	})
	return NoneValue(), sortErr
}

func lessThan(a, b Value, line int) (bool, error) {
	if a.Kind == ValueNumber && b.Kind == ValueNumber {
		return a.Number < b.Number, nil
	}
	if a.Kind == ValueString && b.Kind == ValueString {
		return a.Str < b.Str, nil
	}
	return false, newTypeError("cannot compare "+a.TypeName()+" and "+b.TypeName(), line)
}

func builtinReverse(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueList {
		return Value{}, arityError("reverse", line)
	}
	list := *args[0].List
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return NoneValue(), nil
}

func builtinSum(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueList {
		return Value{}, arityError("sum", line)
	}
	total := 0.0
	for _, v := range *args[0].List {
		if v.Kind != ValueNumber {
			return Value{}, newTypeError("sum() requires a list of numbers", line)
		}
		total += v.Number
	}
	return NumberValue(total), nil
}

func builtinMin(interp *Interpreter, args []Value, line int) (Value, error) {
	items, err := variadicOrListArgs("min", args, line)
	if err != nil {
		return Value{}, err
	}
	best := items[0]
	for _, v := range items[1:] {
		less, err := lessThan(v, best, line)
		if err != nil {
			return Value{}, err
		}
		if less {
			best = v
		}
	}
	return best, nil
}

func builtinMax(interp *Interpreter, args []Value, line int) (Value, error) {
	items, err := variadicOrListArgs("max", args, line)
	if err != nil {
		return Value{}, err
	}
	best := items[0]
	for _, v := range items[1:] {
		less, err := lessThan(best, v, line)
		if err != nil {
			return Value{}, err
		}
		if less {
			best = v
		}
	}
	return best, nil
}

func variadicOrListArgs(name string, args []Value, line int) ([]Value, error) {
	if len(args) == 1 && args[0].Kind == ValueList {
		if len(*args[0].List) == 0 {
			return nil, newTypeError(name+"() arg is an empty sequence", line)
		}
		return *args[0].List, nil
	}
	if len(args) == 0 {
		return nil, newTypeError(name+"() expected at least 1 argument", line)
	}
	return args, nil
}

func builtinUpper(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueString {
		return Value{}, arityError("upper", line)
	}
	return StringValue(strings.ToUpper(args[0].Str)), nil
}

func builtinLower(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueString {
		return Value{}, arityError("lower", line)
	}
	return StringValue(strings.ToLower(args[0].Str)), nil
}

func builtinSplit(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) < 1 || args[0].Kind != ValueString {
		return Value{}, arityError("split", line)
	}
	sep := " "
	if len(args) == 2 {
		sep = args[1].Str
	}
	var parts []string
	if sep == "" {
		parts = strings.Fields(args[0].Str)
	} else {
		parts = strings.Split(args[0].Str, sep)
	}
	out := make([]Value, len(parts))
	for i, p := range parts {
		out[i] = StringValue(p)
	}
	return ListValue(out), nil
}

func builtinJoin(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 2 || args[0].Kind != ValueString || args[1].Kind != ValueList {
		return Value{}, arityError("join", line)
	}
	parts := make([]string, len(*args[1].List))
	for i, v := range *args[1].List {
		if v.Kind != ValueString {
			return Value{}, newTypeError("join() requires a list of strings", line)
		}
		parts[i] = v.Str
	}
	return StringValue(strings.Join(parts, args[0].Str)), nil
}

func builtinReplace(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 3 || args[0].Kind != ValueString {
		return Value{}, arityError("replace", line)
	}
	return StringValue(strings.ReplaceAll(args[0].Str, args[1].Str, args[2].Str)), nil
}

func builtinAbs(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueNumber {
		return Value{}, arityError("abs", line)
	}
	return NumberValue(math.Abs(args[0].Number)), nil
}

func builtinRound(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) < 1 || args[0].Kind != ValueNumber {
		return Value{}, arityError("round", line)
	}
	if len(args) == 1 {
		return NumberValue(math.Round(args[0].Number)), nil
	}
	digits := int(args[1].Number)
	mult := math.Pow(10, float64(digits))
	return NumberValue(math.Round(args[0].Number*mult) / mult), nil
}

func builtinRange(interp *Interpreter, args []Value, line int) (Value, error) {
	var start, stop, step float64 = 0, 0, 1
	switch len(args) {
	case 1:
		stop = args[0].Number
	case 2:
		start, stop = args[0].Number, args[1].Number
	case 3:
		start, stop, step = args[0].Number, args[1].Number, args[2].Number
	default:
		return Value{}, arityError("range", line)
	}
	if step == 0 {
		return Value{}, newRuntimeError(RuntimeErrorGeneric, "range() step argument must not be zero", line)
	}
	var out []Value
	if step > 0 {
		for v := start; v < stop; v += step {
			out = append(out, NumberValue(v))
		}
	} else {
		for v := start; v > stop; v += step {
			out = append(out, NumberValue(v))
		}
	}
	return ListValue(out), nil
}

func builtinKeys(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 1 || args[0].Kind != ValueDict {
		return Value{}, arityError("keys", line)
	}
	return ListValue(args[0].Dict.Keys()), nil
}

func builtinHasKey(interp *Interpreter, args []Value, line int) (Value, error) {
	if len(args) != 2 || args[0].Kind != ValueDict {
		return Value{}, arityError("has_key", line)
	}
	_, ok := args[0].Dict.Get(args[1])
	return BoolValue(ok), nil
}
