package meri

// Environment is a chained runtime scope, the dynamic-execution analogue
// of SymbolTable (spec.md §4.5). Functions and lambdas capture the
// Environment active at their definition site by pointer, which is what
// gives Merilang lexical closures instead of dynamic scoping.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment creates a root environment with no parent.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

// NewChildEnvironment creates a scope nested inside parent.
func NewChildEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]Value), parent: parent}
}

// Define binds name in this environment, shadowing any outer binding.
func (e *Environment) Define(name string, v Value) {
	e.vars[name] = v
}

// Get resolves name by walking outward through parent environments.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Assign rebinds the nearest existing definition of name, walking
// outward. It does not create a new binding — VarDecl/Define does that;
// Assign is for plain `x = ...` re-assignment (spec.md §4.5's
// reassignment-vs-declaration distinction).
func (e *Environment) Assign(name string, v Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}
