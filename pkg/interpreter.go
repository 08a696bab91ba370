package meri

import (
	"bufio"
	"fmt"
	"io"
)

// maxRecursionDepth bounds the call stack the same way the reference
// implementation does, so runaway recursion surfaces as a RecursionError
// instead of exhausting the Go goroutine stack (spec.md §4.5).
const maxRecursionDepth = 1000

// Control-flow signals are explicit sum-type values threaded back
// through eval's error return, never host panics/exceptions (spec.md
// §4.5's "no host exceptions for control flow" invariant). *RuntimeError
// already implements error and doubles as the thrown-value signal for
// `uchalo`; these three cover break/continue/return.
type breakSignal struct{}

func (*breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (*continueSignal) Error() string { return "continue" }

type returnSignal struct{ Value Value }

func (*returnSignal) Error() string { return "return" }

// Interpreter tree-walks a Program, evaluating it directly against the
// AST rather than the diagnostic 3AC form IRGenerator produces — the IR
// phase is diagnostic-only (spec.md §4.4), execution always re-walks the
// tree (spec.md §4.5).
type Interpreter struct {
	global           *Environment
	classes          map[string]*ClassValue
	depth            int
	methodClassStack []*ClassValue
	out              io.Writer
	in               *bufio.Reader
}

// NewInterpreter builds an interpreter writing to out and reading `poocho`
// prompts from in, with the shared builtin table bound in the root scope.
func NewInterpreter(out io.Writer, in io.Reader) *Interpreter {
	interp := &Interpreter{
		global:  NewEnvironment(),
		classes: make(map[string]*ClassValue),
		out:     out,
		in:      bufio.NewReader(in),
	}
	for name, b := range sharedBuiltins {
		interp.global.Define(name, BuiltinVal(b))
	}
	return interp
}

// Run executes every top-level statement in order and returns the first
// uncaught RuntimeError, if any.
func (interp *Interpreter) Run(prog *Program) error {
	for _, stmt := range prog.Statements {
		if _, err := interp.eval(stmt, interp.global); err != nil {
			if _, isCtl := err.(*breakSignal); isCtl {
				continue
			}
			if _, isCtl := err.(*continueSignal); isCtl {
				continue
			}
			if _, isCtl := err.(*returnSignal); isCtl {
				continue
			}
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Statement and expression dispatch
// ---------------------------------------------------------------------------

func (interp *Interpreter) eval(n Node, env *Environment) (Value, error) {
	switch node := n.(type) {
	case *NumberLit:
		return NumberValue(node.Value), nil
	case *StringLit:
		return StringValue(node.Value), nil
	case *BoolLit:
		return BoolValue(node.Value), nil
	case *NoneLit:
		return NoneValue(), nil
	case *ListLit:
		items := make([]Value, len(node.Elements))
		for i, e := range node.Elements {
			v, err := interp.eval(e, env)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return ListValue(items), nil
	case *DictLit:
		m := NewOrderedMap()
		for _, pair := range node.Pairs {
			k, err := interp.eval(pair.Key, env)
			if err != nil {
				return Value{}, err
			}
			v, err := interp.eval(pair.Value, env)
			if err != nil {
				return Value{}, err
			}
			m.Set(k, v)
		}
		return DictValue(m), nil
	case *VarDecl:
		v, err := interp.eval(node.Value, env)
		if err != nil {
			return Value{}, err
		}
		env.Define(node.Name, v)
		return NoneValue(), nil
	case *Variable:
		if v, ok := env.Get(node.Name); ok {
			return v, nil
		}
		return Value{}, newNameError(node.Name, node.Line())
	case *Assignment:
		v, err := interp.eval(node.Value, env)
		if err != nil {
			return Value{}, err
		}
		if !env.Assign(node.Name, v) {
			env.Define(node.Name, v)
		}
		return NoneValue(), nil
	case *IndexAssignment:
		return interp.evalIndexAssignment(node, env)
	case *PropertyAssignment:
		return interp.evalPropertyAssignment(node, env)
	case *BinaryOp:
		return interp.evalBinaryOp(node, env)
	case *UnaryOp:
		return interp.evalUnaryOp(node, env)
	case *Parenthesized:
		return interp.eval(node.Inner, env)
	case *Index:
		return interp.evalIndex(node, env)
	case *If:
		return interp.evalIf(node, env)
	case *While:
		return interp.evalWhile(node, env)
	case *Block:
		return NoneValue(), interp.execBlock(node.Body, NewChildEnvironment(env))
	case *ForEach:
		return interp.evalForEach(node, env)
	case *Break:
		return Value{}, &breakSignal{}
	case *Continue:
		return Value{}, &continueSignal{}
	case *FunctionDef:
		fn := &FunctionValue{Name: node.Name, Params: node.Params, Body: node.Body, Closure: env}
		env.Define(node.Name, FunctionVal(fn))
		return NoneValue(), nil
	case *Lambda:
		return LambdaVal(&LambdaValue{Params: node.Params, Expr: node.Expr, Closure: env}), nil
	case *Return:
		if node.Value == nil {
			return Value{}, &returnSignal{Value: NoneValue()}
		}
		v, err := interp.eval(node.Value, env)
		if err != nil {
			return Value{}, err
		}
		return Value{}, &returnSignal{Value: v}
	case *FunctionCall:
		return interp.evalFunctionCall(node, env)
	case *ClassDef:
		return interp.evalClassDef(node, env)
	case *NewObject:
		return interp.evalNewObject(node, env)
	case *MethodCall:
		return interp.evalMethodCall(node, env)
	case *PropertyAccess:
		return interp.evalPropertyAccess(node, env)
	case *This:
		if v, ok := env.Get("yeh"); ok {
			return v, nil
		}
		return Value{}, newRuntimeError(RuntimeErrorGeneric, "'yeh' used outside a method", node.Line())
	case *Super:
		return interp.evalSuper(node, env)
	case *Try:
		return interp.evalTry(node, env)
	case *Throw:
		v, err := interp.eval(node.Value, env)
		if err != nil {
			return Value{}, err
		}
		return Value{}, newUserException(v, node.Line())
	case *Print:
		return interp.evalPrint(node, env)
	case *Input:
		return interp.evalInput(node, env)
	case *Import:
		// Module loading is out of scope (spec.md Non-goals); `lao` is
		// parsed and walked for diagnostics only, never resolved at runtime.
		return NoneValue(), nil
	default:
		return Value{}, fmt.Errorf("meri: unhandled node %T", n)
	}
}

// execBlock runs stmts in order, short-circuiting on the first signal or
// error (control-flow or runtime).
func (interp *Interpreter) execBlock(stmts []Node, env *Environment) error {
	for _, stmt := range stmts {
		if _, err := interp.eval(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------------

func (interp *Interpreter) evalIf(n *If, env *Environment) (Value, error) {
	cond, err := interp.eval(n.Condition, env)
	if err != nil {
		return Value{}, err
	}
	if cond.Truthy() {
		return NoneValue(), interp.execBlock(n.Then, NewChildEnvironment(env))
	}
	for _, elif := range n.Elifs {
		econd, err := interp.eval(elif.Condition, env)
		if err != nil {
			return Value{}, err
		}
		if econd.Truthy() {
			return NoneValue(), interp.execBlock(elif.Body, NewChildEnvironment(env))
		}
	}
	if n.Else != nil {
		return NoneValue(), interp.execBlock(n.Else, NewChildEnvironment(env))
	}
	return NoneValue(), nil
}

func (interp *Interpreter) evalWhile(n *While, env *Environment) (Value, error) {
	for {
		cond, err := interp.eval(n.Condition, env)
		if err != nil {
			return Value{}, err
		}
		if !cond.Truthy() {
			return NoneValue(), nil
		}
		err = interp.execBlock(n.Body, NewChildEnvironment(env))
		if err != nil {
			if _, ok := err.(*breakSignal); ok {
				return NoneValue(), nil
			}
			if _, ok := err.(*continueSignal); ok {
				continue
			}
			return Value{}, err
		}
	}
}

// evalForEach iterates a list's elements or a dict's keys (spec.md §4.5;
// the diagnostic IR lowers this through a synthetic iterator protocol
// per the supplemented feature in SPEC_FULL.md, but execution here walks
// the collection directly).
func (interp *Interpreter) evalForEach(n *ForEach, env *Environment) (Value, error) {
	iterable, err := interp.eval(n.Iterable, env)
	if err != nil {
		return Value{}, err
	}
	var items []Value
	switch iterable.Kind {
	case ValueList:
		items = *iterable.List
	case ValueDict:
		items = iterable.Dict.Keys()
	case ValueString:
		for _, r := range iterable.Str {
			items = append(items, StringValue(string(r)))
		}
	default:
		return Value{}, newTypeError("'"+iterable.TypeName()+"' object is not iterable", n.Line())
	}
	for _, item := range items {
		loopEnv := NewChildEnvironment(env)
		loopEnv.Define(n.VarName, item)
		if err := interp.execBlock(n.Body, loopEnv); err != nil {
			if _, ok := err.(*breakSignal); ok {
				return NoneValue(), nil
			}
			if _, ok := err.(*continueSignal); ok {
				continue
			}
			return Value{}, err
		}
	}
	return NoneValue(), nil
}

func (interp *Interpreter) evalTry(n *Try, env *Environment) (Value, error) {
	bodyErr := interp.execBlock(n.Body, NewChildEnvironment(env))
	result := bodyErr
	if rte, ok := bodyErr.(*RuntimeError); ok {
		catchEnv := NewChildEnvironment(env)
		catchEnv.Define(n.CatchVar, exceptionValueOf(rte))
		result = interp.execBlock(n.CatchBody, catchEnv)
	}
	if n.FinallyBody != nil {
		if finallyErr := interp.execBlock(n.FinallyBody, NewChildEnvironment(env)); finallyErr != nil {
			result = finallyErr
		}
	}
	return NoneValue(), result
}

func exceptionValueOf(rte *RuntimeError) Value {
	if rte.Kind == RuntimeErrorUserException {
		return rte.Value
	}
	return StringValue(rte.Format(ErrorLanguageEnglish))
}

// ---------------------------------------------------------------------------
// I/O
// ---------------------------------------------------------------------------

func (interp *Interpreter) evalPrint(n *Print, env *Environment) (Value, error) {
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		v, err := interp.eval(arg, env)
		if err != nil {
			return Value{}, err
		}
		parts[i] = stringifyValue(v)
	}
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " "
		}
		line += p
	}
	if n.Newline {
		fmt.Fprintln(interp.out, line)
	} else {
		fmt.Fprint(interp.out, line)
	}
	return NoneValue(), nil
}

// evalInput binds the read line as a string (spec.md §4.3 supplemented
// feature #3: input-bound variables are immediately typed STRING).
func (interp *Interpreter) evalInput(n *Input, env *Environment) (Value, error) {
	if n.Prompt != nil {
		p, err := interp.eval(n.Prompt, env)
		if err != nil {
			return Value{}, err
		}
		fmt.Fprint(interp.out, stringifyValue(p))
	}
	line, _ := interp.in.ReadString('\n')
	line = trimNewline(line)
	env.Define(n.VarName, StringValue(line))
	return NoneValue(), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func (interp *Interpreter) evalBinaryOp(n *BinaryOp, env *Environment) (Value, error) {
	if n.Operator == "aur" {
		left, err := interp.eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		if !left.Truthy() {
			return left, nil
		}
		return interp.eval(n.Right, env)
	}
	if n.Operator == "ya" {
		left, err := interp.eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		if left.Truthy() {
			return left, nil
		}
		return interp.eval(n.Right, env)
	}

	left, err := interp.eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := interp.eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	return applyBinaryOp(n.Operator, left, right, n.Line())
}

func applyBinaryOp(op string, left, right Value, line int) (Value, error) {
	switch op {
	case "+":
		if left.Kind == ValueString || right.Kind == ValueString {
			return StringValue(stringifyValue(left) + stringifyValue(right)), nil
		}
		if left.Kind == ValueList && right.Kind == ValueList {
			combined := append(append([]Value{}, *left.List...), *right.List...)
			return ListValue(combined), nil
		}
		if left.Kind == ValueNumber && right.Kind == ValueNumber {
			return NumberValue(left.Number + right.Number), nil
		}
		return Value{}, newInvalidBinaryOpTypeError(op, left, right, line)
	case "-", "*", "/", "%":
		if left.Kind != ValueNumber || right.Kind != ValueNumber {
			return Value{}, newInvalidBinaryOpTypeError(op, left, right, line)
		}
		switch op {
		case "-":
			return NumberValue(left.Number - right.Number), nil
		case "*":
			return NumberValue(left.Number * right.Number), nil
		case "/":
			if right.Number == 0 {
				return Value{}, newDivisionByZeroError(line)
			}
			return NumberValue(left.Number / right.Number), nil
		case "%":
			if right.Number == 0 {
				return Value{}, newDivisionByZeroError(line)
			}
			return NumberValue(numberMod(left.Number, right.Number)), nil
		}
	case "==":
		return BoolValue(valuesEqual(left, right)), nil
	case "!=":
		return BoolValue(!valuesEqual(left, right)), nil
	case ">", "<", ">=", "<=":
		less, err := lessThan(left, right, line)
		if err != nil {
			return Value{}, err
		}
		eq := valuesEqual(left, right)
		switch op {
		case ">":
			return BoolValue(!less && !eq), nil
		case "<":
			return BoolValue(less), nil
		case ">=":
			return BoolValue(!less), nil
		case "<=":
			return BoolValue(less || eq), nil
		}
	}
	return Value{}, newInvalidBinaryOpTypeError(op, left, right, line)
}

func numberMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

func newInvalidBinaryOpTypeError(op string, left, right Value, line int) *RuntimeError {
	return newTypeError("unsupported operand types for '"+op+"': "+left.TypeName()+" and "+right.TypeName(), line)
}

func (interp *Interpreter) evalUnaryOp(n *UnaryOp, env *Environment) (Value, error) {
	operand, err := interp.eval(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	switch n.Operator {
	case "nahi":
		return BoolValue(!operand.Truthy()), nil
	case "-":
		if operand.Kind != ValueNumber {
			return Value{}, newTypeError("bad operand type for unary '-': "+operand.TypeName(), n.Line())
		}
		return NumberValue(-operand.Number), nil
	case "+":
		if operand.Kind != ValueNumber {
			return Value{}, newTypeError("bad operand type for unary '+': "+operand.TypeName(), n.Line())
		}
		return operand, nil
	default:
		return Value{}, newTypeError("unknown unary operator '"+n.Operator+"'", n.Line())
	}
}

// ---------------------------------------------------------------------------
// Indexing
// ---------------------------------------------------------------------------

func (interp *Interpreter) evalIndex(n *Index, env *Environment) (Value, error) {
	target, err := interp.eval(n.Target, env)
	if err != nil {
		return Value{}, err
	}
	idx, err := interp.eval(n.Idx, env)
	if err != nil {
		return Value{}, err
	}
	return indexValue(target, idx, n.Line())
}

func indexValue(target, idx Value, line int) (Value, error) {
	switch target.Kind {
	case ValueList:
		i, err := listIndex(*target.List, idx, line)
		if err != nil {
			return Value{}, err
		}
		return (*target.List)[i], nil
	case ValueString:
		runes := []rune(target.Str)
		i, err := normalizedIndex(int(idx.Number), len(runes), line)
		if err != nil {
			return Value{}, err
		}
		return StringValue(string(runes[i])), nil
	case ValueDict:
		v, ok := target.Dict.Get(idx)
		if !ok {
			return Value{}, newIndexError("key not found: "+stringifyValue(idx), line)
		}
		return v, nil
	default:
		return Value{}, newTypeError("'"+target.TypeName()+"' object is not subscriptable", line)
	}
}

func listIndex(list []Value, idx Value, line int) (int, error) {
	if idx.Kind != ValueNumber {
		return 0, newTypeError("list indices must be numbers", line)
	}
	return normalizedIndex(int(idx.Number), len(list), line)
}

func normalizedIndex(i, length, line int) (int, error) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, newIndexError("index out of range", line)
	}
	return i, nil
}

func (interp *Interpreter) evalIndexAssignment(n *IndexAssignment, env *Environment) (Value, error) {
	target, err := interp.eval(n.Target, env)
	if err != nil {
		return Value{}, err
	}
	idx, err := interp.eval(n.Idx, env)
	if err != nil {
		return Value{}, err
	}
	val, err := interp.eval(n.Value, env)
	if err != nil {
		return Value{}, err
	}
	switch target.Kind {
	case ValueList:
		i, err := listIndex(*target.List, idx, n.Line())
		if err != nil {
			return Value{}, err
		}
		(*target.List)[i] = val
	case ValueDict:
		target.Dict.Set(idx, val)
	default:
		return Value{}, newTypeError("'"+target.TypeName()+"' object does not support item assignment", n.Line())
	}
	return NoneValue(), nil
}

// ---------------------------------------------------------------------------
// Functions, lambdas, calls
// ---------------------------------------------------------------------------

func (interp *Interpreter) evalFunctionCall(n *FunctionCall, env *Environment) (Value, error) {
	callee, err := interp.eval(n.Callee, env)
	if err != nil {
		return Value{}, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := interp.eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return interp.call(callee, args, n.Line())
}

func (interp *Interpreter) call(callee Value, args []Value, line int) (Value, error) {
	switch callee.Kind {
	case ValueBuiltin:
		return callee.Builtin.Call(interp, args, line)
	case ValueFunction:
		return interp.callFunction(callee.Function, args, nil, line)
	case ValueLambda:
		return interp.callLambda(callee.Lambda, args, line)
	case ValueClass:
		return interp.instantiate(callee.Class, args, line)
	default:
		return Value{}, newTypeError("'"+callee.TypeName()+"' object is not callable", line)
	}
}

func (interp *Interpreter) callFunction(fn *FunctionValue, args []Value, this *InstanceValue, line int) (Value, error) {
	if len(args) != len(fn.Params) {
		return Value{}, newTypeError(fmt.Sprintf("'%s' expects %d arguments, got %d", fn.Name, len(fn.Params), len(args)), line)
	}
	interp.depth++
	defer func() { interp.depth-- }()
	if interp.depth > maxRecursionDepth {
		return Value{}, newRecursionError(line)
	}

	callEnv := NewChildEnvironment(fn.Closure)
	for i, p := range fn.Params {
		callEnv.Define(p, args[i])
	}
	if this != nil {
		callEnv.Define("yeh", InstanceVal(this))
	}
	if fn.DefiningClass != nil {
		interp.methodClassStack = append(interp.methodClassStack, fn.DefiningClass)
		defer func() { interp.methodClassStack = interp.methodClassStack[:len(interp.methodClassStack)-1] }()
	}

	err := interp.execBlock(fn.Body, callEnv)
	if err == nil {
		return NoneValue(), nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.Value, nil
	}
	return Value{}, err
}

func (interp *Interpreter) callLambda(l *LambdaValue, args []Value, line int) (Value, error) {
	if len(args) != len(l.Params) {
		return Value{}, newTypeError(fmt.Sprintf("lambda expects %d arguments, got %d", len(l.Params), len(args)), line)
	}
	interp.depth++
	defer func() { interp.depth-- }()
	if interp.depth > maxRecursionDepth {
		return Value{}, newRecursionError(line)
	}
	callEnv := NewChildEnvironment(l.Closure)
	for i, p := range l.Params {
		callEnv.Define(p, args[i])
	}
	return interp.eval(l.Expr, callEnv)
}

// ---------------------------------------------------------------------------
// Classes and objects
// ---------------------------------------------------------------------------

func (interp *Interpreter) evalClassDef(n *ClassDef, env *Environment) (Value, error) {
	var parent *ClassValue
	if n.Parent != "" {
		p, ok := interp.classes[n.Parent]
		if !ok {
			return Value{}, newNameError(n.Parent, n.Line())
		}
		parent = p
	}
	cls := &ClassValue{Name: n.Name, Parent: parent, Methods: make(map[string]*FunctionValue)}
	for _, m := range n.Methods {
		cls.Methods[m.Name] = &FunctionValue{Name: m.Name, Params: m.Params, Body: m.Body, Closure: env, DefiningClass: cls}
	}
	interp.classes[n.Name] = cls
	env.Define(n.Name, ClassVal(cls))
	return NoneValue(), nil
}

// instantiate allocates an instance and, if a method named `__init__` is
// visible through the class chain, invokes it bound to the new instance
// (spec.md: "naya C(args) ... invokes [__init__] with args").
func (interp *Interpreter) instantiate(cls *ClassValue, args []Value, line int) (Value, error) {
	inst := &InstanceValue{Class: cls, Fields: make(map[string]Value)}
	if ctor, definingCls := cls.Method("__init__"); ctor != nil {
		ctorBound := &FunctionValue{Name: ctor.Name, Params: ctor.Params, Body: ctor.Body, Closure: ctor.Closure, DefiningClass: definingCls}
		if _, err := interp.callFunction(ctorBound, args, inst, line); err != nil {
			return Value{}, err
		}
	}
	return InstanceVal(inst), nil
}

func (interp *Interpreter) evalNewObject(n *NewObject, env *Environment) (Value, error) {
	cls, ok := interp.classes[n.ClassName]
	if !ok {
		return Value{}, newNameError(n.ClassName, n.Line())
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := interp.eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return interp.instantiate(cls, args, n.Line())
}

func (interp *Interpreter) evalMethodCall(n *MethodCall, env *Environment) (Value, error) {
	target, err := interp.eval(n.Target, env)
	if err != nil {
		return Value{}, err
	}
	if target.Kind != ValueInstance {
		return Value{}, newAttributeError("'"+target.TypeName()+"' object has no method '"+n.Name+"'", n.Line())
	}
	method, definingCls := target.Instance.Class.Method(n.Name)
	if method == nil {
		return Value{}, newAttributeError("'"+target.Instance.Class.Name+"' object has no method '"+n.Name+"'", n.Line())
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := interp.eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	bound := &FunctionValue{Name: method.Name, Params: method.Params, Body: method.Body, Closure: method.Closure, DefiningClass: definingCls}
	return interp.callFunction(bound, args, target.Instance, n.Line())
}

func (interp *Interpreter) evalPropertyAccess(n *PropertyAccess, env *Environment) (Value, error) {
	target, err := interp.eval(n.Target, env)
	if err != nil {
		return Value{}, err
	}
	if target.Kind != ValueInstance {
		return Value{}, newAttributeError("'"+target.TypeName()+"' object has no attribute '"+n.Name+"'", n.Line())
	}
	if v, ok := target.Instance.Fields[n.Name]; ok {
		return v, nil
	}
	if method, definingCls := target.Instance.Class.Method(n.Name); method != nil {
		boundEnv := NewChildEnvironment(method.Closure)
		boundEnv.Define("yeh", target)
		return FunctionVal(&FunctionValue{Name: method.Name, Params: method.Params, Body: method.Body, Closure: boundEnv, DefiningClass: definingCls}), nil
	}
	return Value{}, newAttributeError("'"+target.Instance.Class.Name+"' object has no attribute '"+n.Name+"'", n.Line())
}

func (interp *Interpreter) evalPropertyAssignment(n *PropertyAssignment, env *Environment) (Value, error) {
	target, err := interp.eval(n.Target, env)
	if err != nil {
		return Value{}, err
	}
	if target.Kind != ValueInstance {
		return Value{}, newAttributeError("'"+target.TypeName()+"' object has no attribute '"+n.Name+"'", n.Line())
	}
	val, err := interp.eval(n.Value, env)
	if err != nil {
		return Value{}, err
	}
	target.Instance.Fields[n.Name] = val
	return NoneValue(), nil
}

// evalSuper resolves the current method's DefiningClass (top of
// methodClassStack) and calls the parent's `__init__` with the current
// `yeh` bound (spec.md: "upar(args) inside __init__ invokes the parent's
// __init__ bound to the same instance").
func (interp *Interpreter) evalSuper(n *Super, env *Environment) (Value, error) {
	if len(interp.methodClassStack) == 0 {
		return Value{}, newRuntimeError(RuntimeErrorGeneric, "'upar' used outside a method", n.Line())
	}
	current := interp.methodClassStack[len(interp.methodClassStack)-1]
	if current.Parent == nil {
		return Value{}, newRuntimeError(RuntimeErrorGeneric, "'"+current.Name+"' has no parent class", n.Line())
	}
	thisVal, ok := env.Get("yeh")
	if !ok || thisVal.Kind != ValueInstance {
		return Value{}, newRuntimeError(RuntimeErrorGeneric, "'upar' used outside a method", n.Line())
	}
	parent := current.Parent
	ctor, definingCls := parent.Method("__init__")
	if ctor == nil {
		return NoneValue(), nil
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := interp.eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	bound := &FunctionValue{Name: ctor.Name, Params: ctor.Params, Body: ctor.Body, Closure: ctor.Closure, DefiningClass: definingCls}
	return interp.callFunction(bound, args, thisVal.Instance, n.Line())
}
