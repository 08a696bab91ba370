package meri

import (
	"strconv"
	"strings"
)

// Instr is one immutable 3AC instruction (spec.md §4.4). Every variant
// below corresponds one-for-one with the instruction set in spec.md §3;
// String() produces the exact textual shape in spec.md §6.
type Instr interface {
	String() string
}

type AssignInstr struct{ Temp, Literal string }

func (i *AssignInstr) String() string { return i.Temp + " = " + i.Literal }

type CopyInstr struct{ Dest, Src string }

func (i *CopyInstr) String() string { return i.Dest + " = " + i.Src }

type BinOpInstr struct{ Result, Op, Left, Right string }

func (i *BinOpInstr) String() string { return i.Result + " = " + i.Left + " " + i.Op + " " + i.Right }

type UnaryOpInstr struct{ Result, Op, Operand string }

func (i *UnaryOpInstr) String() string { return i.Result + " = " + i.Op + " " + i.Operand }

type LabelInstr struct{ Name string }

func (i *LabelInstr) String() string { return i.Name + ":" }

type JumpInstr struct{ Label string }

func (i *JumpInstr) String() string { return "GOTO " + i.Label }

type CondJumpInstr struct{ Cond, Then, Else string }

func (i *CondJumpInstr) String() string {
	return "IF " + i.Cond + " GOTO " + i.Then + " ELSE " + i.Else
}

type FuncLabelInstr struct{ Name string }

func (i *FuncLabelInstr) String() string { return "FUNC " + i.Name + ":" }

type ParamInstr struct{ Operand string }

func (i *ParamInstr) String() string { return "PARAM " + i.Operand }

type CallInstr struct {
	Result   string // "" if the call's value is discarded
	Name     string
	ArgCount int
}

func (i *CallInstr) String() string {
	call := "CALL " + i.Name + " " + strconv.Itoa(i.ArgCount)
	if i.Result == "" {
		return call
	}
	return i.Result + " = " + call
}

type ReturnInstr struct{ Value string } // "" for bare `wapas`

func (i *ReturnInstr) String() string {
	if i.Value == "" {
		return "RETURN"
	}
	return "RETURN " + i.Value
}

type NewObjInstr struct{ Result, Class string }

func (i *NewObjInstr) String() string { return i.Result + " = NEW " + i.Class }

type FieldLoadInstr struct{ Result, Obj, Name string }

func (i *FieldLoadInstr) String() string { return i.Result + " = FIELD " + i.Obj + "." + i.Name }

type FieldStoreInstr struct{ Obj, Name, Value string }

func (i *FieldStoreInstr) String() string { return "FIELD " + i.Obj + "." + i.Name + " = " + i.Value }

type IndexLoadInstr struct{ Result, Obj, Index string }

func (i *IndexLoadInstr) String() string {
	return i.Result + " = INDEX " + i.Obj + "[" + i.Index + "]"
}

type IndexStoreInstr struct{ Obj, Index, Value string }

func (i *IndexStoreInstr) String() string {
	return "INDEX " + i.Obj + "[" + i.Index + "] = " + i.Value
}

type PrintInstr struct{ Operands []string }

func (i *PrintInstr) String() string { return "PRINT " + strings.Join(i.Operands, ", ") }

type InputInstr struct{ Name string }

func (i *InputInstr) String() string { return "INPUT " + i.Name }

type ThrowInstr struct{ Value string }

func (i *ThrowInstr) String() string { return "THROW " + i.Value }

type TryBeginInstr struct{ CatchLabel string }

func (i *TryBeginInstr) String() string { return "TRY_BEGIN " + i.CatchLabel }

type TryEndInstr struct{}

func (i *TryEndInstr) String() string { return "TRY_END" }

type CatchBeginInstr struct{ Var string }

func (i *CatchBeginInstr) String() string { return "CATCH_BEGIN " + i.Var }

// ClassInstr marks a class declaration in the IR listing; its methods
// each follow as their own FUNC block named "<Class>.<method>".
type ClassInstr struct{ Name, Parent string }

func (i *ClassInstr) String() string {
	if i.Parent == "" {
		return "CLASS " + i.Name
	}
	return "CLASS " + i.Name + " EXTENDS " + i.Parent
}

// IRProgram is the flat, append-only instruction listing an IRGenerator
// run produces, plus the final state of its temp/label allocators
// (spec.md §3's "temp identifiers are unique within an IRProgram").
type IRProgram struct {
	Instrs     []Instr
	TempCount  int
	LabelCount int
}

// Dump renders one instruction per line, the textual form spec.md §6 shows.
func (p *IRProgram) Dump() string {
	lines := make([]string, len(p.Instrs))
	for i, instr := range p.Instrs {
		lines[i] = instr.String()
	}
	return strings.Join(lines, "\n")
}

type loopLabels struct{ start, end string }

// IRGenerator lowers an already semantically-analyzed AST to 3AC
// (spec.md §4.4). It is diagnostic-only: nothing downstream executes
// the IR it produces, so every synthetic call name here (__list__,
// __iter__, __super__.__init__, __import__) exists purely to give the
// dump a complete, inspectable shape.
type IRGenerator struct {
	instrs    []Instr
	tempN     int
	labelN    int
	loopStack []loopLabels
}

func NewIRGenerator() *IRGenerator { return &IRGenerator{} }

// Generate lowers every top-level statement in order.
func (g *IRGenerator) Generate(prog *Program) *IRProgram {
	for _, stmt := range prog.Statements {
		g.lowerStmt(stmt)
	}
	return &IRProgram{Instrs: g.instrs, TempCount: g.tempN, LabelCount: g.labelN}
}

func (g *IRGenerator) emit(i Instr) { g.instrs = append(g.instrs, i) }

func (g *IRGenerator) newTemp() string {
	t := "t" + strconv.Itoa(g.tempN)
	g.tempN++
	return t
}

func (g *IRGenerator) newLabel(prefix string) string {
	l := prefix + "_" + strconv.Itoa(g.labelN)
	g.labelN++
	return l
}

func (g *IRGenerator) lowerBlock(stmts []Node) {
	for _, s := range stmts {
		g.lowerStmt(s)
	}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (g *IRGenerator) lowerStmt(n Node) {
	switch node := n.(type) {
	case *VarDecl:
		v := g.lowerExpr(node.Value)
		g.emit(&CopyInstr{Dest: node.Name, Src: v})
	case *Assignment:
		v := g.lowerExpr(node.Value)
		g.emit(&CopyInstr{Dest: node.Name, Src: v})
	case *IndexAssignment:
		obj := g.lowerExpr(node.Target)
		idx := g.lowerExpr(node.Idx)
		val := g.lowerExpr(node.Value)
		g.emit(&IndexStoreInstr{Obj: obj, Index: idx, Value: val})
	case *PropertyAssignment:
		obj := g.lowerExpr(node.Target)
		val := g.lowerExpr(node.Value)
		g.emit(&FieldStoreInstr{Obj: obj, Name: node.Name, Value: val})
	case *If:
		g.lowerIf(node)
	case *While:
		g.lowerWhile(node)
	case *Block:
		for _, s := range node.Body {
			g.lowerStmt(s)
		}
	case *ForEach:
		g.lowerForEach(node)
	case *Break:
		if len(g.loopStack) > 0 {
			top := g.loopStack[len(g.loopStack)-1]
			g.emit(&JumpInstr{Label: top.end})
		}
	case *Continue:
		if len(g.loopStack) > 0 {
			top := g.loopStack[len(g.loopStack)-1]
			g.emit(&JumpInstr{Label: top.start})
		}
	case *FunctionDef:
		g.lowerFunctionDef(node.Name, node.Body)
	case *ClassDef:
		g.emit(&ClassInstr{Name: node.Name, Parent: node.Parent})
		for _, m := range node.Methods {
			g.lowerFunctionDef(node.Name+"."+m.Name, m.Body)
		}
	case *Return:
		if node.Value == nil {
			g.emit(&ReturnInstr{})
			return
		}
		v := g.lowerExpr(node.Value)
		g.emit(&ReturnInstr{Value: v})
	case *Try:
		g.lowerTry(node)
	case *Throw:
		v := g.lowerExpr(node.Value)
		g.emit(&ThrowInstr{Value: v})
	case *Print:
		operands := make([]string, len(node.Args))
		for i, a := range node.Args {
			operands[i] = g.lowerExpr(a)
		}
		g.emit(&PrintInstr{Operands: operands})
	case *Input:
		g.emit(&InputInstr{Name: node.VarName})
	case *Import:
		g.emit(&ParamInstr{Operand: strconv.Quote(node.ModuleName)})
		g.emit(&CallInstr{Name: "__import__", ArgCount: 1})
	default:
		// Bare expression statement (e.g. a FunctionCall used for effect).
		g.lowerExpr(n)
	}
}

func (g *IRGenerator) lowerFunctionDef(name string, body []Node) {
	g.emit(&FuncLabelInstr{Name: name})
	g.lowerBlock(body)
	if len(g.instrs) == 0 {
		g.emit(&ReturnInstr{})
		return
	}
	if _, ok := g.instrs[len(g.instrs)-1].(*ReturnInstr); !ok {
		g.emit(&ReturnInstr{})
	}
}

func (g *IRGenerator) lowerIf(n *If) {
	endLbl := g.newLabel("if_end")
	branches := append([]ElifBranch{{Condition: n.Condition, Body: n.Then}}, n.Elifs...)
	for i, br := range branches {
		isLast := i == len(branches)-1
		cond := g.lowerExpr(br.Condition)
		thenLbl := g.newLabel("if_then")
		var nextLbl string
		if isLast && n.Else == nil {
			nextLbl = endLbl
		} else {
			nextLbl = g.newLabel("if_else")
		}
		g.emit(&CondJumpInstr{Cond: cond, Then: thenLbl, Else: nextLbl})
		g.emit(&LabelInstr{Name: thenLbl})
		g.lowerBlock(br.Body)
		g.emit(&JumpInstr{Label: endLbl})
		if nextLbl != endLbl {
			g.emit(&LabelInstr{Name: nextLbl})
		}
	}
	if n.Else != nil {
		g.lowerBlock(n.Else)
	}
	g.emit(&LabelInstr{Name: endLbl})
}

func (g *IRGenerator) lowerWhile(n *While) {
	startLbl := g.newLabel("while_start")
	bodyLbl := g.newLabel("while_body")
	endLbl := g.newLabel("while_end")
	g.loopStack = append(g.loopStack, loopLabels{start: startLbl, end: endLbl})
	defer func() { g.loopStack = g.loopStack[:len(g.loopStack)-1] }()

	g.emit(&LabelInstr{Name: startLbl})
	cond := g.lowerExpr(n.Condition)
	g.emit(&CondJumpInstr{Cond: cond, Then: bodyLbl, Else: endLbl})
	g.emit(&LabelInstr{Name: bodyLbl})
	g.lowerBlock(n.Body)
	g.emit(&JumpInstr{Label: startLbl})
	g.emit(&LabelInstr{Name: endLbl})
}

// lowerForEach lowers through a synthetic iterator protocol
// (__iter__/__has_next__/__next__), the supplemented shape carried from
// the original ir_generator.py rather than the simpler index-loop sketch
// spec.md's prose offers, because it also covers dict iteration.
func (g *IRGenerator) lowerForEach(n *ForEach) {
	iterable := g.lowerExpr(n.Iterable)
	g.emit(&ParamInstr{Operand: iterable})
	iter := g.newTemp()
	g.emit(&CallInstr{Result: iter, Name: "__iter__", ArgCount: 1})

	startLbl := g.newLabel("foreach_start")
	bodyLbl := g.newLabel("foreach_body")
	endLbl := g.newLabel("foreach_end")
	g.loopStack = append(g.loopStack, loopLabels{start: startLbl, end: endLbl})
	defer func() { g.loopStack = g.loopStack[:len(g.loopStack)-1] }()

	g.emit(&LabelInstr{Name: startLbl})
	g.emit(&ParamInstr{Operand: iter})
	hasNext := g.newTemp()
	g.emit(&CallInstr{Result: hasNext, Name: "__has_next__", ArgCount: 1})
	g.emit(&CondJumpInstr{Cond: hasNext, Then: bodyLbl, Else: endLbl})
	g.emit(&LabelInstr{Name: bodyLbl})
	g.emit(&ParamInstr{Operand: iter})
	next := g.newTemp()
	g.emit(&CallInstr{Result: next, Name: "__next__", ArgCount: 1})
	g.emit(&CopyInstr{Dest: n.VarName, Src: next})
	g.lowerBlock(n.Body)
	g.emit(&JumpInstr{Label: startLbl})
	g.emit(&LabelInstr{Name: endLbl})
}

func (g *IRGenerator) lowerTry(n *Try) {
	catchLbl := g.newLabel("catch")
	endLbl := g.newLabel("try_end")
	g.emit(&TryBeginInstr{CatchLabel: catchLbl})
	g.lowerBlock(n.Body)
	g.emit(&TryEndInstr{})
	g.emit(&JumpInstr{Label: endLbl})
	g.emit(&LabelInstr{Name: catchLbl})
	g.emit(&CatchBeginInstr{Var: n.CatchVar})
	g.lowerBlock(n.CatchBody)
	g.emit(&LabelInstr{Name: endLbl})
	if n.FinallyBody != nil {
		g.lowerBlock(n.FinallyBody)
	}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (g *IRGenerator) lowerExpr(n Node) string {
	switch node := n.(type) {
	case *NumberLit:
		t := g.newTemp()
		g.emit(&AssignInstr{Temp: t, Literal: formatNumber(node.Value)})
		return t
	case *StringLit:
		t := g.newTemp()
		g.emit(&AssignInstr{Temp: t, Literal: strconv.Quote(node.Value)})
		return t
	case *BoolLit:
		t := g.newTemp()
		lit := "jhoot"
		if node.Value {
			lit = "sach"
		}
		g.emit(&AssignInstr{Temp: t, Literal: lit})
		return t
	case *NoneLit:
		t := g.newTemp()
		g.emit(&AssignInstr{Temp: t, Literal: "khaali"})
		return t
	case *Variable:
		return node.Name
	case *This:
		return "yeh"
	case *Parenthesized:
		return g.lowerExpr(node.Inner)
	case *ListLit:
		for _, e := range node.Elements {
			v := g.lowerExpr(e)
			g.emit(&ParamInstr{Operand: v})
		}
		result := g.newTemp()
		g.emit(&CallInstr{Result: result, Name: "__list__", ArgCount: len(node.Elements)})
		return result
	case *DictLit:
		count := 0
		for _, pair := range node.Pairs {
			k := g.lowerExpr(pair.Key)
			v := g.lowerExpr(pair.Value)
			g.emit(&ParamInstr{Operand: k})
			g.emit(&ParamInstr{Operand: v})
			count += 2
		}
		result := g.newTemp()
		g.emit(&CallInstr{Result: result, Name: "__dict__", ArgCount: count})
		return result
	case *BinaryOp:
		left := g.lowerExpr(node.Left)
		right := g.lowerExpr(node.Right)
		result := g.newTemp()
		g.emit(&BinOpInstr{Result: result, Op: node.Operator, Left: left, Right: right})
		return result
	case *UnaryOp:
		operand := g.lowerExpr(node.Operand)
		result := g.newTemp()
		g.emit(&UnaryOpInstr{Result: result, Op: node.Operator, Operand: operand})
		return result
	case *Index:
		obj := g.lowerExpr(node.Target)
		idx := g.lowerExpr(node.Idx)
		result := g.newTemp()
		g.emit(&IndexLoadInstr{Result: result, Obj: obj, Index: idx})
		return result
	case *PropertyAccess:
		obj := g.lowerExpr(node.Target)
		result := g.newTemp()
		g.emit(&FieldLoadInstr{Result: result, Obj: obj, Name: node.Name})
		return result
	case *FunctionCall:
		name := ""
		if v, ok := node.Callee.(*Variable); ok {
			name = v.Name
		} else {
			name = g.lowerExpr(node.Callee)
		}
		for _, a := range node.Args {
			v := g.lowerExpr(a)
			g.emit(&ParamInstr{Operand: v})
		}
		result := g.newTemp()
		g.emit(&CallInstr{Result: result, Name: name, ArgCount: len(node.Args)})
		return result
	case *MethodCall:
		// The receiver is passed as an implicit first PARAM ahead of the
		// declared arguments (supplemented feature carried from
		// ir_generator.py's method-call lowering).
		receiver := g.lowerExpr(node.Target)
		g.emit(&ParamInstr{Operand: receiver})
		for _, a := range node.Args {
			v := g.lowerExpr(a)
			g.emit(&ParamInstr{Operand: v})
		}
		result := g.newTemp()
		g.emit(&CallInstr{Result: result, Name: node.Name, ArgCount: len(node.Args) + 1})
		return result
	case *NewObject:
		for _, a := range node.Args {
			v := g.lowerExpr(a)
			g.emit(&ParamInstr{Operand: v})
		}
		result := g.newTemp()
		g.emit(&NewObjInstr{Result: result, Class: node.ClassName})
		return result
	case *Super:
		// super(args) always reaches the parent's __init__ bound to `yeh`
		// (spec.md §4.5); the IR name mirrors that exactly.
		g.emit(&ParamInstr{Operand: "yeh"})
		for _, a := range node.Args {
			v := g.lowerExpr(a)
			g.emit(&ParamInstr{Operand: v})
		}
		result := g.newTemp()
		g.emit(&CallInstr{Result: result, Name: "__super__.__init__", ArgCount: len(node.Args) + 1})
		return result
	case *Lambda:
		return g.lowerLambda(node)
	default:
		// Reached only for malformed/defensive cases; yields a value so
		// callers needing an operand don't crash, with no diagnostic value.
		t := g.newTemp()
		g.emit(&AssignInstr{Temp: t, Literal: "khaali"})
		return t
	}
}

// lowerLambda emits an auto-named FUNC block guarded by a jump-over, the
// exact shape ir_generator.py's _visit_LambdaNode uses: execution at the
// definition site jumps past the body to an end label, and the lambda's
// "value" loaded into a temp is the function's generated name.
func (g *IRGenerator) lowerLambda(n *Lambda) string {
	endLbl := g.newLabel("lambda_end")
	fnName := g.newLabel("lambda")
	g.emit(&JumpInstr{Label: endLbl})
	g.emit(&FuncLabelInstr{Name: fnName})
	body := g.lowerExpr(n.Expr)
	g.emit(&ReturnInstr{Value: body})
	g.emit(&LabelInstr{Name: endLbl})
	result := g.newTemp()
	g.emit(&AssignInstr{Temp: result, Literal: fnName})
	return result
}
