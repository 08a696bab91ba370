package meri

// SemanticAnalyzer walks the AST built by the parser and resolves names,
// checks operand types, and enforces scoping rules (spec.md §4.3),
// batching every static error it finds rather than stopping at the
// first one — the same panic-mode philosophy as the lexer and parser.
// Grounded on original_source/merilang/semantic_analyzer.py, generalized
// from the teacher's ContextAnalyzer (pkg/semantics.go) which resolved a
// much smaller toy grammar through a similar stab-walking Type/Entries
// design; that design is replaced here by SymbolTable (pkg/symboltable.go)
// plus MType instead of a bespoke Type interface hierarchy.
type SemanticAnalyzer struct {
	symbols     *SymbolTable
	errs        []error
	funcDepth   int
	loopDepth   int
	classStack  []*ClassDef
	inheritedOf map[string]string // class name -> parent name, recorded for every class that extends another
}

// NewSemanticAnalyzer builds an analyzer with the shared builtin table
// already registered in the global scope (spec.md §4.3/§9).
func NewSemanticAnalyzer() *SemanticAnalyzer {
	a := &SemanticAnalyzer{
		symbols:     NewSymbolTable(),
		inheritedOf: make(map[string]string),
	}
	a.registerBuiltins()
	return a
}

// Analyze runs the full pass and returns every error found, empty if the
// program is well-formed. Interpretation should only proceed when this
// returns no errors (spec.md §4's five-phase pipeline gate).
func (a *SemanticAnalyzer) Analyze(prog *Program) []error {
	for _, stmt := range prog.Statements {
		a.visit(stmt)
	}
	return a.errs
}

func (a *SemanticAnalyzer) report(err error) {
	a.errs = append(a.errs, err)
}

func (a *SemanticAnalyzer) suggestFor(name string, line int) *UndefinedNameError {
	suggestions := suggestNames(name, a.symbols.AllNames(), 3, 0.6)
	return newUndefinedNameError(name, line, suggestions)
}

// ---------------------------------------------------------------------------
// Statement visitors
// ---------------------------------------------------------------------------

func (a *SemanticAnalyzer) visit(n Node) MType {
	switch node := n.(type) {
	case *VarDecl:
		return a.visitVarDecl(node)
	case *Assignment:
		return a.visitAssignment(node)
	case *IndexAssignment:
		a.visit(node.Target)
		a.visit(node.Idx)
		return a.visit(node.Value)
	case *PropertyAssignment:
		a.visit(node.Target)
		return a.visit(node.Value)
	case *If:
		return a.visitIf(node)
	case *While:
		return a.visitWhile(node)
	case *Block:
		return a.visitBlock(node)
	case *ForEach:
		return a.visitForEach(node)
	case *Break:
		if a.loopDepth == 0 {
			a.report(newSemanticError("'ruk' outside a loop", "लूप के बाहर 'ruk'", node.Line()))
		}
		return MTypeNone
	case *Continue:
		if a.loopDepth == 0 {
			a.report(newSemanticError("'age_badho' outside a loop", "लूप के बाहर 'age_badho'", node.Line()))
		}
		return MTypeNone
	case *FunctionDef:
		return a.visitFunctionDef(node)
	case *Return:
		if a.funcDepth == 0 {
			a.report(newSemanticError("'wapas' outside a function", "फंक्शन के बाहर 'wapas'", node.Line()))
		}
		if node.Value != nil {
			return a.visit(node.Value)
		}
		return MTypeNone
	case *ClassDef:
		return a.visitClassDef(node)
	case *Try:
		return a.visitTry(node)
	case *Throw:
		a.visit(node.Value)
		return MTypeNone
	case *Print:
		for _, arg := range node.Args {
			a.visit(arg)
		}
		return MTypeNone
	case *Input:
		if node.Prompt != nil {
			a.visit(node.Prompt)
		}
		a.defineOrRebind(node.VarName, SymbolVariable, MTypeString, node.Line())
		return MTypeNone
	case *Import:
		return MTypeNone

	// expressions
	case *NumberLit:
		return MTypeNumber
	case *StringLit:
		return MTypeString
	case *BoolLit:
		return MTypeBool
	case *NoneLit:
		return MTypeNone
	case *ListLit:
		for _, e := range node.Elements {
			a.visit(e)
		}
		return MTypeList
	case *DictLit:
		for _, pair := range node.Pairs {
			a.visit(pair.Key)
			a.visit(pair.Value)
		}
		return MTypeDict
	case *Variable:
		return a.visitVariable(node)
	case *BinaryOp:
		return a.visitBinaryOp(node)
	case *UnaryOp:
		return a.visitUnaryOp(node)
	case *Parenthesized:
		return a.visit(node.Inner)
	case *FunctionCall:
		return a.visitFunctionCall(node)
	case *Lambda:
		return a.visitLambda(node)
	case *NewObject:
		return a.visitNewObject(node)
	case *MethodCall:
		a.visit(node.Target)
		for _, arg := range node.Args {
			a.visit(arg)
		}
		return MTypeAny
	case *PropertyAccess:
		a.visit(node.Target)
		return MTypeAny
	case *This:
		if len(a.classStack) == 0 {
			a.report(newSemanticError("'yeh' outside a method", "मेथड के बाहर 'yeh'", node.Line()))
		}
		return MTypeAny
	case *Super:
		if len(a.classStack) == 0 || a.classStack[len(a.classStack)-1].Parent == "" {
			a.report(newSemanticError("'upar' used without a parent class", "कोई मूल क्लास नहीं है", node.Line()))
		}
		for _, arg := range node.Args {
			a.visit(arg)
		}
		return MTypeAny
	case *Index:
		a.visit(node.Target)
		a.visit(node.Idx)
		return MTypeAny
	default:
		return MTypeAny
	}
}

// visitVarDecl implements `maan x = ...`: it reports a RedefinitionError
// whenever ResolveLocal finds the name already bound in the current scope,
// whatever bound it (an earlier `maan`, a plain assignment, a parameter).
// A `maan` of a name bound only in an outer scope shadows it without error.
func (a *SemanticAnalyzer) visitVarDecl(n *VarDecl) MType {
	valType := a.visit(n.Value)
	if existing := a.symbols.ResolveLocal(n.Name); existing != nil {
		a.report(newRedefinitionError(n.Name, existing.Line, n.Line()))
	}
	a.symbols.Define(&Symbol{Name: n.Name, Kind: SymbolVariable, InferredType: valType, Line: n.Line()})
	return valType
}

// visitAssignment implements plain `x = ...` reassignment: rebinding an
// existing VARIABLE in the same or an outer scope is never an error
// (supplemented feature #2); assigning to a name that was never declared
// defines it in the current scope, matching Python's implicit dynamic
// binding in semantic_analyzer.py's _visit_AssignmentNode.
func (a *SemanticAnalyzer) visitAssignment(n *Assignment) MType {
	valType := a.visit(n.Value)
	a.defineOrRebind(n.Name, SymbolVariable, valType, n.Line())
	return valType
}

// defineOrRebind updates an existing symbol's inferred type in place if
// one is visible, or defines a fresh one in the current scope.
func (a *SemanticAnalyzer) defineOrRebind(name string, kind SymbolKind, t MType, line int) {
	if existing := a.symbols.Resolve(name); existing != nil {
		existing.InferredType = t
		return
	}
	a.symbols.Define(&Symbol{Name: name, Kind: kind, InferredType: t, Line: line})
}

func (a *SemanticAnalyzer) visitVariable(n *Variable) MType {
	sym := a.symbols.Resolve(n.Name)
	if sym == nil {
		a.report(a.suggestFor(n.Name, n.Line()))
		return MTypeAny
	}
	return sym.InferredType
}

func (a *SemanticAnalyzer) visitIf(n *If) MType {
	a.visit(n.Condition)
	a.withScope(func() {
		for _, s := range n.Then {
			a.visit(s)
		}
	})
	for _, elif := range n.Elifs {
		a.visit(elif.Condition)
		a.withScope(func() {
			for _, s := range elif.Body {
				a.visit(s)
			}
		})
	}
	if n.Else != nil {
		a.withScope(func() {
			for _, s := range n.Else {
				a.visit(s)
			}
		})
	}
	return MTypeNone
}

func (a *SemanticAnalyzer) visitWhile(n *While) MType {
	a.visit(n.Condition)
	a.loopDepth++
	a.withScope(func() {
		for _, s := range n.Body {
			a.visit(s)
		}
	})
	a.loopDepth--
	return MTypeNone
}

// visitBlock opens a child scope for a standalone `{ ... }` statement
// (spec.md §8 scenario 2) — it carries no loop/function semantics of its
// own, only a fresh lexical scope.
func (a *SemanticAnalyzer) visitBlock(n *Block) MType {
	a.withScope(func() {
		for _, s := range n.Body {
			a.visit(s)
		}
	})
	return MTypeNone
}

func (a *SemanticAnalyzer) visitForEach(n *ForEach) MType {
	a.visit(n.Iterable)
	a.loopDepth++
	a.withScope(func() {
		a.symbols.Define(&Symbol{Name: n.VarName, Kind: SymbolVariable, InferredType: MTypeAny, Line: n.Line()})
		for _, s := range n.Body {
			a.visit(s)
		}
	})
	a.loopDepth--
	return MTypeNone
}

// visitFunctionDef rejects same-scope redefinition outright — unlike
// plain assignment, a second `kaam f(...)` with the same name always
// errors (supplemented feature #2).
func (a *SemanticAnalyzer) visitFunctionDef(n *FunctionDef) MType {
	if existing := a.symbols.ResolveLocal(n.Name); existing != nil {
		a.report(newRedefinitionError(n.Name, existing.Line, n.Line()))
	}
	a.symbols.Define(&Symbol{Name: n.Name, Kind: SymbolFunction, InferredType: MTypeFunc, Line: n.Line(), ParamCount: len(n.Params)})
	a.funcDepth++
	a.withScope(func() {
		for _, p := range n.Params {
			a.symbols.Define(&Symbol{Name: p, Kind: SymbolParameter, InferredType: MTypeAny, Line: n.Line()})
		}
		for _, s := range n.Body {
			a.visit(s)
		}
	})
	a.funcDepth--
	return MTypeFunc
}

func (a *SemanticAnalyzer) visitLambda(n *Lambda) MType {
	a.funcDepth++
	a.withScope(func() {
		for _, p := range n.Params {
			a.symbols.Define(&Symbol{Name: p, Kind: SymbolParameter, InferredType: MTypeAny, Line: n.Line()})
		}
		a.visit(n.Expr)
	})
	a.funcDepth--
	return MTypeFunc
}

func (a *SemanticAnalyzer) visitClassDef(n *ClassDef) MType {
	if existing := a.symbols.ResolveLocal(n.Name); existing != nil {
		a.report(newRedefinitionError(n.Name, existing.Line, n.Line()))
	}
	a.symbols.Define(&Symbol{Name: n.Name, Kind: SymbolClass, InferredType: MTypeClass, Line: n.Line()})
	if n.Parent != "" {
		if a.symbols.Resolve(n.Parent) == nil {
			a.report(a.suggestFor(n.Parent, n.Line()))
		}
		a.inheritedOf[n.Name] = n.Parent
	}
	a.classStack = append(a.classStack, n)
	a.withScope(func() {
		for _, m := range n.Methods {
			a.visitFunctionDef(m)
		}
	})
	a.classStack = a.classStack[:len(a.classStack)-1]
	return MTypeClass
}

func (a *SemanticAnalyzer) visitNewObject(n *NewObject) MType {
	if a.symbols.Resolve(n.ClassName) == nil {
		a.report(a.suggestFor(n.ClassName, n.Line()))
	}
	for _, arg := range n.Args {
		a.visit(arg)
	}
	return MTypeAny
}

func (a *SemanticAnalyzer) visitTry(n *Try) MType {
	a.withScope(func() {
		for _, s := range n.Body {
			a.visit(s)
		}
	})
	a.withScope(func() {
		a.symbols.Define(&Symbol{Name: n.CatchVar, Kind: SymbolVariable, InferredType: MTypeAny, Line: n.Line()})
		for _, s := range n.CatchBody {
			a.visit(s)
		}
	})
	if n.FinallyBody != nil {
		a.withScope(func() {
			for _, s := range n.FinallyBody {
				a.visit(s)
			}
		})
	}
	return MTypeNone
}

func (a *SemanticAnalyzer) visitFunctionCall(n *FunctionCall) MType {
	if callee, ok := n.Callee.(*Variable); ok {
		sym := a.symbols.Resolve(callee.Name)
		if sym == nil {
			a.report(a.suggestFor(callee.Name, n.Line()))
		} else if sym.Kind == SymbolFunction && sym.ParamCount != 0 && sym.ParamCount != len(n.Args) {
			a.report(newSemanticError(
				badArityMessage(callee.Name, sym.ParamCount, len(n.Args)),
				badArityMessage(callee.Name, sym.ParamCount, len(n.Args)),
				n.Line(),
			))
		}
	} else {
		a.visit(n.Callee)
	}
	for _, arg := range n.Args {
		a.visit(arg)
	}
	return MTypeAny
}

func badArityMessage(name string, want, got int) string {
	if want == 1 {
		return "'" + name + "' expects 1 argument, got " + itoa(got)
	}
	return "'" + name + "' expects " + itoa(want) + " arguments, got " + itoa(got)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// visitBinaryOp checks operand types once neither side is ANY:
// arithmetic needs two numbers (except + which also accepts two strings
// or two lists, both for concatenation) and ordering comparisons need two
// numbers (spec.md §4.3, grounded on semantic_analyzer.py's
// _check_binary_types). == and != are not type-checked: operands of
// different types pass the analyzer, and at run time they compare unequal.
// aur/ya are not checked either.
func (a *SemanticAnalyzer) visitBinaryOp(n *BinaryOp) MType {
	left := a.visit(n.Left)
	right := a.visit(n.Right)
	if left == MTypeAny || right == MTypeAny {
		return a.binaryResultType(n.Operator, left, right)
	}
	switch n.Operator {
	case "+", "-", "*", "/", "%", ">", "<", ">=", "<=":
		if n.Operator == "+" && left == MTypeString && right == MTypeString {
			return MTypeString
		}
		if n.Operator == "+" && left == MTypeList && right == MTypeList {
			return MTypeList
		}
		if left != MTypeNumber || right != MTypeNumber {
			a.report(newInvalidBinaryOpError(n.Operator, string(left), string(right), n.Line()))
			return MTypeAny
		}
	}
	return a.binaryResultType(n.Operator, left, right)
}

func (a *SemanticAnalyzer) binaryResultType(op string, left, right MType) MType {
	switch op {
	case "==", "!=", ">", "<", ">=", "<=", "aur", "ya":
		return MTypeBool
	case "+":
		if left == MTypeList || right == MTypeList {
			return MTypeList
		}
		if left == MTypeString || right == MTypeString {
			return MTypeString
		}
		return MTypeNumber
	default:
		return MTypeNumber
	}
}

func (a *SemanticAnalyzer) visitUnaryOp(n *UnaryOp) MType {
	operand := a.visit(n.Operand)
	if operand == MTypeAny {
		if n.Operator == "nahi" {
			return MTypeBool
		}
		return MTypeNumber
	}
	switch n.Operator {
	case "nahi":
		return MTypeBool
	case "-", "+":
		if operand != MTypeNumber {
			a.report(newInvalidUnaryOpError(n.Operator, string(operand), n.Line()))
			return MTypeAny
		}
		return MTypeNumber
	default:
		return MTypeAny
	}
}

func (a *SemanticAnalyzer) withScope(fn func()) {
	a.symbols.EnterScope()
	fn()
	a.symbols.ExitScope()
}

// registerBuiltins seeds the global scope with the shared builtin table
// (pkg/builtins.go) so calls to them resolve without error. ParamCount
// 0 means variadic/unchecked, matching symbol_table.py's convention.
func (a *SemanticAnalyzer) registerBuiltins() {
	for name, b := range sharedBuiltins {
		paramCount := b.ParamCount
		if paramCount < 0 {
			paramCount = 0
		}
		a.symbols.Define(&Symbol{Name: name, Kind: SymbolFunction, InferredType: MTypeFunc, ParamCount: paramCount})
	}
}

