package fieldslist

import "github.com/Mikhus/graphql-fields-list/internal/skippattern"

// Projection is the flattened form of a field tree: every requested
// field keyed by its dot path, suited to column or field-selection
// queries against a backing store.
type Projection map[string]bool

// FieldsMap returns the nested tree of fields requested under the
// resolved field. Invalid or absent input yields an empty tree, never
// an error.
func FieldsMap(info *ResolveInfo, opts ...Option) *FieldTree {
	return extract(info, newOptions(opts))
}

// FieldsList returns the immediate child field names in selection
// order, each renamed through the transform table when an exact name
// match exists.
func FieldsList(info *ResolveInfo, opts ...Option) []string {
	o := newOptions(opts)
	names := extract(info, o).Names()
	for i, name := range names {
		if renamed, ok := o.transform[name]; ok {
			names[i] = renamed
		}
	}
	return names
}

// FieldsProjection flattens the requested fields into dot paths. Leaf
// paths are renamed through the transform table on an exact path match;
// with WithKeepParentField, branch paths are emitted too, unrenamed.
func FieldsProjection(info *ResolveInfo, opts ...Option) Projection {
	o := newOptions(opts)
	entries := flatten(extract(info, o), o)
	proj := make(Projection, len(entries))
	for _, e := range entries {
		proj[e.path] = true
	}
	return proj
}

// extract runs the shared pipeline: locate the resolved field node,
// build its tree with exclusion applied, then navigate the root path.
func extract(info *ResolveInfo, o *options) *FieldTree {
	node := info.fieldNode()
	if node == nil {
		return &FieldTree{}
	}
	bc := &buildContext{
		fragments:  info.Fragments,
		variables:  info.Variables,
		directives: o.directives,
	}
	return build(node.SelectionSet, bc, skippattern.Compile(o.skip)).Navigate(o.path)
}

type flatEntry struct {
	path string
	leaf bool
}

// flatten walks the tree breadth first, accumulating dot paths. Leaf
// entries pass through the transform table; branch entries appear only
// with keepParentField and keep their computed path.
func flatten(tree *FieldTree, o *options) []flatEntry {
	type item struct {
		prefix string
		node   *FieldTree
	}
	var out []flatEntry
	queue := []item{{node: tree}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		for _, name := range it.node.names {
			child := it.node.child[name]
			path := name
			if it.prefix != "" {
				path = it.prefix + "." + name
			}
			if child.IsLeaf() {
				if renamed, ok := o.transform[path]; ok {
					path = renamed
				}
				out = append(out, flatEntry{path: path, leaf: true})
				continue
			}
			if o.keepParentField {
				out = append(out, flatEntry{path: path})
			}
			queue = append(queue, item{prefix: path, node: child})
		}
	}
	return out
}
