package fieldslist

import "github.com/vektah/gqlparser/v2/ast"

// ResolveInfo is the read-only slice of an executing query that the
// extraction entry points consume: the field being resolved, the field
// nodes of the enclosing selection set, the document's named fragments,
// and the coerced variable values.
type ResolveInfo struct {
	// FieldName identifies which of the field nodes is being resolved.
	FieldName string

	// FieldNodes holds the selection nodes among which FieldName is
	// looked up.
	FieldNodes ast.SelectionSet

	// FieldASTs is the historical name for FieldNodes; it is consulted
	// only when FieldNodes is empty so callers holding the older shape
	// keep working.
	FieldASTs ast.SelectionSet

	// Fragments maps fragment names to their definitions. A spread of
	// a name missing here contributes no fields.
	Fragments map[string]*ast.FragmentDefinition

	// Variables are the operation's variable values. Only boolean
	// values participate in @skip/@include evaluation.
	Variables map[string]any
}

// fieldNode finds the node being resolved. It returns nil on a nil
// info, empty node list, or when no field carries FieldName; callers
// turn that into an empty result.
func (info *ResolveInfo) fieldNode() *ast.Field {
	if info == nil {
		return nil
	}
	nodes := info.FieldNodes
	if len(nodes) == 0 {
		nodes = info.FieldASTs
	}
	for _, sel := range nodes {
		if f, ok := sel.(*ast.Field); ok && f.Name == info.FieldName {
			return f
		}
	}
	return nil
}

// ResolveInfoFromQuery derives a ResolveInfo from a parsed query
// document, for callers outside an executor such as tooling. The
// operation is chosen by name, falling back to the document's only
// operation; fieldName defaults to the first top-level field. Returns
// nil when no operation matches.
func ResolveInfoFromQuery(doc *ast.QueryDocument, operationName, fieldName string, variables map[string]any) *ResolveInfo {
	if doc == nil {
		return nil
	}
	op := doc.Operations.ForName(operationName)
	if op == nil && len(doc.Operations) == 1 {
		op = doc.Operations[0]
	}
	if op == nil {
		return nil
	}
	if fieldName == "" {
		for _, sel := range op.SelectionSet {
			if f, ok := sel.(*ast.Field); ok {
				fieldName = f.Name
				break
			}
		}
	}
	fragments := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, f := range doc.Fragments {
		fragments[f.Name] = f
	}
	return &ResolveInfo{
		FieldName:  fieldName,
		FieldNodes: op.SelectionSet,
		Fragments:  fragments,
		Variables:  variables,
	}
}
