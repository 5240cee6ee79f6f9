package fieldslist

import (
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Mikhus/graphql-fields-list/internal/skippattern"
)

// buildContext carries the per-call inputs of one selection walk.
type buildContext struct {
	fragments  map[string]*ast.FragmentDefinition
	variables  map[string]any
	directives bool
}

// build walks a selection set and returns its field tree. Fragment
// spreads and inline fragments contribute their selections at the same
// level; repeated mentions of a field merge into one entry. Fields
// failing their directives or matching an exclusion rule contribute
// nothing, and an unknown fragment name is an empty selection.
func build(selections ast.SelectionSet, bc *buildContext, scope *skippattern.Tree) *FieldTree {
	out := &FieldTree{}
	for _, sel := range selections {
		switch node := sel.(type) {
		case *ast.Field:
			if bc.directives && !passes(node.Directives, bc.variables) {
				continue
			}
			next, excluded := scope.Match(node.Name)
			if excluded {
				continue
			}
			if len(node.SelectionSet) == 0 {
				out.mergeChild(node.Name, &FieldTree{leaf: true})
				continue
			}
			out.mergeChild(node.Name, build(node.SelectionSet, bc, next))

		case *ast.InlineFragment:
			if bc.directives && !passes(node.Directives, bc.variables) {
				continue
			}
			out.merge(build(node.SelectionSet, bc, scope))

		case *ast.FragmentSpread:
			if bc.directives && !passes(node.Directives, bc.variables) {
				continue
			}
			def := bc.fragments[node.Name]
			if def == nil {
				continue
			}
			out.merge(build(def.SelectionSet, bc, scope))
		}
	}
	return out
}
