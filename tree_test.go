package fieldslist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func leafTree() *FieldTree { return &FieldTree{leaf: true} }

func branchOf(names ...string) *FieldTree {
	t := &FieldTree{}
	for _, n := range names {
		t.mergeChild(n, leafTree())
	}
	return t
}

func TestTreeMerge(t *testing.T) {
	t.Run("new names keep arrival order", func(t *testing.T) {
		tree := branchOf("b", "a", "c")
		require.Equal(t, []string{"b", "a", "c"}, tree.Names())
	})

	t.Run("leaf into leaf is a no-op", func(t *testing.T) {
		tree := branchOf("a")
		tree.mergeChild("a", leafTree())
		require.Equal(t, []string{"a"}, tree.Names())
		require.True(t, tree.Child("a").IsLeaf())
	})

	t.Run("branch replaces leaf", func(t *testing.T) {
		tree := branchOf("a")
		tree.mergeChild("a", branchOf("x"))
		require.False(t, tree.Child("a").IsLeaf())
		require.Equal(t, []string{"x"}, tree.Child("a").Names())
	})

	t.Run("leaf never downgrades a branch", func(t *testing.T) {
		tree := &FieldTree{}
		tree.mergeChild("a", branchOf("x"))
		tree.mergeChild("a", leafTree())
		require.Equal(t, []string{"x"}, tree.Child("a").Names())
	})

	t.Run("branches union recursively in order", func(t *testing.T) {
		tree := &FieldTree{}
		tree.mergeChild("a", branchOf("x", "y"))
		tree.mergeChild("a", branchOf("y", "z"))
		require.Equal(t, []string{"x", "y", "z"}, tree.Child("a").Names())
	})
}

func TestTreeNavigate(t *testing.T) {
	tree := &FieldTree{}
	mid := &FieldTree{}
	mid.mergeChild("b", branchOf("c"))
	tree.mergeChild("a", mid)

	t.Run("empty path returns the tree", func(t *testing.T) {
		require.Same(t, tree, tree.Navigate(""))
	})

	t.Run("descends segment by segment", func(t *testing.T) {
		got := tree.Navigate("a.b")
		require.Equal(t, []string{"c"}, got.Names())
	})

	t.Run("absent segment yields empty tree", func(t *testing.T) {
		require.Zero(t, tree.Navigate("a.nope").Len())
		require.Zero(t, tree.Navigate("nope").Len())
	})

	t.Run("leaf before path end yields empty tree", func(t *testing.T) {
		require.Zero(t, tree.Navigate("a.b.c.d").Len())
	})

	t.Run("nil tree navigates to empty", func(t *testing.T) {
		var none *FieldTree
		require.Zero(t, none.Navigate("a").Len())
	})
}

func TestTreeMarshalJSON(t *testing.T) {
	tree := &FieldTree{}
	tree.mergeChild("z", leafTree())
	tree.mergeChild("a", branchOf("m", "k"))

	b, err := tree.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"z":false,"a":{"m":false,"k":false}}`, string(b))

	empty, err := (&FieldTree{}).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{}`, string(empty))
}
