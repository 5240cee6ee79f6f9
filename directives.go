package fieldslist

import "github.com/vektah/gqlparser/v2/ast"

// passes reports whether a node survives its directives. Directives
// combine with logical AND, so the first failing one decides.
func passes(directives ast.DirectiveList, variables map[string]any) bool {
	for _, d := range directives {
		if !directivePasses(d, variables) {
			return false
		}
	}
	return true
}

// directivePasses evaluates a single @skip or @include against the
// variable bindings. Any other directive name always passes, as does an
// argument that is neither a boolean literal nor a bound boolean
// variable; lenient handling mirrors the upstream AST contract.
func directivePasses(d *ast.Directive, variables map[string]any) bool {
	switch d.Name {
	case "skip", "include":
	default:
		return true
	}
	for _, arg := range d.Arguments {
		val, ok := argValue(arg.Value, variables)
		if !ok {
			continue
		}
		if d.Name == "skip" && val {
			return false
		}
		if d.Name == "include" && !val {
			return false
		}
	}
	return true
}

// argValue resolves a directive argument to a boolean. The second
// result is false when the argument carries no evaluable constraint.
func argValue(v *ast.Value, variables map[string]any) (bool, bool) {
	if v == nil {
		return false, false
	}
	switch v.Kind {
	case ast.BooleanValue:
		return v.Raw == "true", true
	case ast.Variable:
		b, ok := variables[v.Raw].(bool)
		if !ok {
			return false, false
		}
		return b, true
	}
	return false, false
}
