package fieldslist

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FieldTree is the canonical nested structure of requested fields. A
// node is either a leaf (the field was selected with no sub-selection)
// or a branch mapping child field names to subtrees. Child order is the
// first-occurrence order across the whole selection walk, even when a
// field is mentioned again through fragments.
type FieldTree struct {
	leaf  bool
	names []string
	child map[string]*FieldTree
}

// IsLeaf reports whether the node was selected without a sub-selection.
func (t *FieldTree) IsLeaf() bool { return t != nil && t.leaf }

// Len returns the number of immediate children.
func (t *FieldTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns the immediate child names in insertion order.
func (t *FieldTree) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// Child returns the subtree for name, or nil when absent.
func (t *FieldTree) Child(name string) *FieldTree {
	if t == nil {
		return nil
	}
	return t.child[name]
}

// Navigate descends the tree along a dot-separated path. A missing
// segment, or a leaf hit before the path is exhausted, yields an empty
// tree rather than an error. The empty path returns the tree itself.
func (t *FieldTree) Navigate(path string) *FieldTree {
	if t == nil {
		return &FieldTree{}
	}
	if path == "" {
		return t
	}
	cur := t
	for _, seg := range strings.Split(path, ".") {
		next, ok := cur.child[seg]
		if !ok {
			return &FieldTree{}
		}
		cur = next
	}
	return cur
}

// mergeChild unions sub into the entry for name. A new name keeps its
// arrival position. When occurrences disagree, the sub-selection wins:
// an entry is a leaf only if every occurrence of it was leaf-like.
func (t *FieldTree) mergeChild(name string, sub *FieldTree) {
	cur, ok := t.child[name]
	if !ok {
		if t.child == nil {
			t.child = make(map[string]*FieldTree)
		}
		t.child[name] = sub
		t.names = append(t.names, name)
		return
	}
	switch {
	case sub.leaf:
		// The existing entry already covers a plain selection.
	case cur.leaf:
		t.child[name] = sub
	default:
		cur.merge(sub)
	}
}

// merge unions all of other's children into t, preserving order.
func (t *FieldTree) merge(other *FieldTree) {
	for _, name := range other.names {
		t.mergeChild(name, other.child[name])
	}
}

// MarshalJSON renders the tree with children in insertion order; leaves
// encode as false, matching the map view's external shape.
func (t *FieldTree) MarshalJSON() ([]byte, error) {
	if t == nil || t.leaf {
		return []byte("false"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := t.child[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
